package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/controller"
)

const eventBufferSize = 32

func registerEventEndpoint(rest *echo.Echo, notifier *controller.Notifier) {
	rest.GET("/events/", func(c echo.Context) error {
		return streamEvents(c, notifier)
	})
}

// streamEvents sends every notification as a server-sent event until the client disconnects
func streamEvents(c echo.Context, notifier *controller.Notifier) error {
	id, notifications := notifier.Subscribe(eventBufferSize)
	defer notifier.Unsubscribe(id)

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case notification, ok := <-notifications:
			if !ok {
				return nil
			}
			data, err := json.Marshal(notification)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", notification.Signal, data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
