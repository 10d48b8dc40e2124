package node

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/NethermindEth/makimono/service"
	"github.com/NethermindEth/makimono/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sourcegraph/conc"
)

type httpService struct {
	srv      *http.Server
	listener net.Listener
}

var _ service.Service = (*httpService)(nil)

func (h *httpService) Run(ctx context.Context) error {
	// Buffered so that Serve can report an error after Run stopped listening.
	errCh := make(chan error, 1)

	var wg conc.WaitGroup
	defer wg.Wait()
	wg.Go(func() {
		if err := h.srv.Serve(h.listener); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	})

	select {
	case <-ctx.Done():
		return h.srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func newHTTPService(listener net.Listener, handler http.Handler) *httpService {
	return &httpService{
		srv: &http.Server{
			Addr:    listener.Addr().String(),
			Handler: handler,
			// ReadTimeout also sets ReadHeaderTimeout and IdleTimeout.
			ReadTimeout: 30 * time.Second,
		},
		listener: listener,
	}
}

// makeAPI serves the REST API under /api and the runtime log level under /log/level
func makeAPI(listener net.Listener, api http.Handler, logLevel *utils.LogLevel) *httpService {
	mux := http.NewServeMux()
	mux.Handle("/", api)
	mux.HandleFunc("/log/level", func(w http.ResponseWriter, r *http.Request) {
		utils.HTTPLogSettings(w, r, logLevel)
	})
	return newHTTPService(listener, mux)
}

func makeMetrics(listener net.Listener, registry *prometheus.Registry) *httpService {
	return newHTTPService(listener, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}
