package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/markusressel/asus2go/internal/api"
	"github.com/markusressel/asus2go/internal/controller"
)

const requestTimeout = 30 * time.Second

// ApiError is a non successful response of the daemon
type ApiError struct {
	Status  int
	Name    string
	Message string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Status, e.Message)
}

func (e *ApiError) Is(target error) bool {
	switch target {
	case controller.ErrNotSupported:
		return e.Status == http.StatusNotImplemented
	case controller.ErrInvalidValue:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// Client talks to the daemon api on its unix socket
type Client struct {
	http *http.Client
	base string
}

func New(socket string) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socket)
		},
	}
	return newClient(&http.Client{Transport: transport}, "http://asus2go")
}

func newClient(httpClient *http.Client, base string) *Client {
	return &Client{http: httpClient, base: strings.TrimSuffix(base, "/")}
}

func (c *Client) request(ctx context.Context, method string, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daemon not reachable: %w", err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		apiErr := &ApiError{Status: resp.StatusCode, Name: http.StatusText(resp.StatusCode)}
		var result api.Result
		if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
			apiErr.Name = result.Name
			apiErr.Message = result.Message
		}
		return nil, apiErr
	}
	return resp, nil
}

// do sends body as json and decodes the response into result if it is not nil
func (c *Client) do(method string, path string, body any, result any) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func get[T any](c *Client, path string) (T, error) {
	var value api.Value[T]
	err := c.do(http.MethodGet, path, nil, &value)
	return value.Value, err
}

func put[T any](c *Client, path string, value T) error {
	return c.do(http.MethodPut, path, api.Value[T]{Value: value}, nil)
}

// Event is a notification received from the event stream
type Event struct {
	Signal controller.Signal
	Data   json.RawMessage
}

// Value returns the value carried by the notification
func (e Event) Value() (json.RawMessage, error) {
	var notification struct {
		Value json.RawMessage `json:"value"`
	}
	err := json.Unmarshal(e.Data, &notification)
	return notification.Value, err
}

// Events calls handle for every notification until ctx is cancelled or the daemon stops
func (c *Client) Events(ctx context.Context, handle func(Event)) error {
	resp, err := c.request(ctx, http.MethodGet, "/events/", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var event Event
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event.Signal = controller.Signal(strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			event.Data = json.RawMessage(strings.TrimPrefix(line, "data: "))
		case line == "" && event.Signal != "":
			handle(event)
			event = Event{}
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return err
	}
	return nil
}
