package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/ui"
)

// Serve runs the api on a unix socket at path until ctx is cancelled
func Serve(ctx context.Context, rest *echo.Echo, path string) error {
	listener, err := listenUnix(path)
	if err != nil {
		return err
	}
	rest.Listener = listener

	go func() {
		<-ctx.Done()
		ui.Info("Stopping api server...")
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		if err := rest.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping api server: %v", err)
		}
	}()

	ui.Info("Api listening on %s", path)
	err = rest.Start("")
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// listenUnix replaces a stale socket left behind by a previous run
func listenUnix(path string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSocket != 0 {
		if err := os.Remove(path); err != nil {
			return nil, err
		}
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	// any local user may connect, writes are still limited by the capability snapshot
	if err := os.Chmod(path, 0666); err != nil {
		_ = listener.Close()
		return nil, err
	}
	return listener, nil
}
