package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/api"
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownAnimationTimeout limits how long the shutdown list may delay the exit
const shutdownAnimationTimeout = 5 * time.Second

// RunDaemon starts all actors and blocks until one of them stops
func RunDaemon() {
	if os.Geteuid() != 0 {
		ui.Fatal("asus2go requires root permissions to access the platform devices, please run it as root")
	}

	config := configuration.CurrentConfig
	d, err := Initialize(config)
	if err != nil {
		var fatal *StartupFatalError
		if errors.As(err, &fatal) {
			ui.Fatal("Startup failed: %v", fatal)
		}
		ui.Fatal("Unexpected startup error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	if config.Statistics.Enabled {
		d.RegisterCollectors()
		addr := fmt.Sprintf("%s:%d", config.Statistics.Host, config.Statistics.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addHttpServer(&g, ctx, "statistics", &http.Server{Addr: addr, Handler: mux})
	}
	if config.Profiling.Enabled {
		addr := fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port)
		// pprof registers its handlers on the default mux
		addHttpServer(&g, ctx, "profiling", &http.Server{Addr: addr, Handler: http.DefaultServeMux})
	}
	if config.Api.Enabled {
		services := d.Services
		services.Registerer = prometheus.DefaultRegisterer
		rest := api.CreateRestService(services)
		g.Add(func() error {
			return api.Serve(ctx, rest, config.Api.Socket)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error stopping api server: %v", err)
			} else {
				ui.Info("Api server stopped.")
			}
		})
	}
	if d.Supported.Anime.Present {
		animeCtx, animeCancel := context.WithCancel(context.Background())
		g.Add(func() error {
			if err := d.Engine.Trigger(anime.EventBoot); err != nil {
				ui.Warning("Could not start AniMe boot animation: %v", err)
			}
			err := d.Engine.Run(animeCtx)
			ui.Info("AniMe engine stopped.")
			return err
		}, func(err error) {
			playShutdown(d.Engine, shutdownAnimationTimeout, config.Anime.TickRate)
			animeCancel()
		})
	}
	if config.Notifications.Enabled.Get() {
		monitor := NewNotificationMonitor(d.Notifier, config.Notifications)
		g.Add(func() error {
			return monitor.Run(ctx)
		}, func(err error) {})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	ui.Success("asus2go is running")
	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

func addHttpServer(g *run.Group, ctx context.Context, name string, server *http.Server) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, server.Addr)
		go func() {
			<-ctx.Done()
			ui.Info("Stopping %s server...", name)
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer timeoutCancel()
			_ = server.Shutdown(timeoutCtx)
		}()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s server: %w", name, err)
		}
		return nil
	}, func(err error) {
		if err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

// playShutdown triggers the shutdown list and waits until it finished playing or timeout passed
func playShutdown(engine *anime.Engine, timeout time.Duration, pollRate time.Duration) {
	if err := engine.Trigger(anime.EventShutdown); err != nil {
		ui.Warning("Could not start AniMe shutdown animation: %v", err)
		return
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		status := engine.Status()
		if status.State == anime.StateIdle || status.Event != anime.EventShutdown {
			return
		}
		time.Sleep(pollRate)
	}
	ui.Debug("AniMe shutdown animation did not finish within %s", timeout)
}
