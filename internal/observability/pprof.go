package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fbref-fixtures/internal/config"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
)

// DebugServer exposes net/http/pprof on its own listener, away from the
// public API address.
type DebugServer struct {
	srv    *http.Server
	addr   string
	logger *logging.Logger
}

// StartPprofServer returns nil, nil when pprof is disabled. The listener is
// bound before returning so a taken port fails startup.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*DebugServer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, crerr.Wrapf(err, "listen pprof on %s", cfg.PprofAddr)
	}

	ds := &DebugServer{
		srv: &http.Server{
			Handler:           pprofMux(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   ln.Addr().String(),
		logger: logger.Named("pprof"),
	}

	go func() {
		ds.logger.Info("pprof server starting", "addr", ds.addr)
		if err := ds.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ds.logger.Error("pprof server failed", "error", err)
		}
	}()

	return ds, nil
}

func (s *DebugServer) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

func (s *DebugServer) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("pprof server stopped")
	return nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("POST /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	return mux
}
