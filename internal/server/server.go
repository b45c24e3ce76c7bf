package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parking-engine/internal/logging"
	"parking-engine/internal/parking"
)

type Server struct {
	httpServer   *http.Server
	handler      *Handler
	broadcaster  *Broadcaster
	cancelFanout context.CancelFunc
}

func NewServer(port string, engine *parking.InstrumentedEngine, pricing *parking.Pricing) *Server {
	handler := NewHandler(engine, pricing)
	broadcaster := NewBroadcaster()

	fanoutCtx, cancelFanout := context.WithCancel(context.Background())
	go broadcaster.Run(fanoutCtx, engine.Events())

	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(TracingMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/events", broadcaster.ServeHTTP)

	r.Route("/api/parking", func(r chi.Router) {
		r.Post("/allocate", handler.Allocate)
		r.Post("/release", handler.Release)
		r.Post("/pass", handler.PurchasePass)
		r.Get("/status", handler.GetStatus)
		r.Get("/find/{plate}", handler.FindByPlate)
	})

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer:   httpServer,
		handler:      handler,
		broadcaster:  broadcaster,
		cancelFanout: cancelFanout,
	}
}

func (s *Server) Start() error {
	logging.Logger().Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Logger().Info().Msg("shutting down HTTP server")
	s.cancelFanout()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://localhost%s", s.httpServer.Addr)
}
