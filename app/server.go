package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/arossel/planboard/api"
	"github.com/arossel/planboard/infra/metrics"
)

// Run serves the API until the context is cancelled. The Prometheus endpoint
// runs on its own listener, and the MQTT notifier forwards recompute events
// while the service is up.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.pub != nil {
		go s.notify(ctx)
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: api.NewRouter(s)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// notify republishes recompute events to the MQTT topic so wallboard
// displays refresh without polling.
func (s *Service) notify(ctx context.Context) {
	events := s.bus.Subscribe()
	defer s.bus.Unsubscribe(events)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev.Openings)
			if err != nil {
				s.log.Errorf("marshal openings: %v", err)
				continue
			}
			if err := s.pub.Publish(payload); err != nil {
				s.log.Errorf("publish openings: %v", err)
			}
		}
	}
}
