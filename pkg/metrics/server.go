package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xaionaro-go/observability"
)

const shutdownTimeout = 5 * time.Second

// Serve serves /metrics on the listener until the context is cancelled.
func Serve(
	ctx context.Context,
	listener net.Listener,
	g prometheus.Gatherer,
) (_err error) {
	logger.Debugf(ctx, "Serve(ctx, %s)", listener.Addr())
	defer func() { logger.Debugf(ctx, "/Serve(ctx, %s): %v", listener.Addr(), _err) }()

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	observability.Go(ctx, func() {
		errCh <- srv.Serve(listener)
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("unable to serve metrics: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancelFn := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancelFn()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shutdown the metrics server: %w", err)
	}
	return nil
}

// ListenAndServe is Serve on a new TCP listener.
func ListenAndServe(
	ctx context.Context,
	addr string,
	g prometheus.Gatherer,
) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("unable to listen '%s': %w", addr, err)
	}
	logger.Infof(ctx, "serving metrics at http://%s/metrics", listener.Addr())
	return Serve(ctx, listener, g)
}
