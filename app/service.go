// Package app wires the configuration into a running assignment service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apimissions "github.com/skylark/droneops/api/missions"
	apiroster "github.com/skylark/droneops/api/roster"
	"github.com/skylark/droneops/config"
	"github.com/skylark/droneops/core/assign"
	coremetrics "github.com/skylark/droneops/core/metrics"
	"github.com/skylark/droneops/core/roster"
	corestore "github.com/skylark/droneops/core/store"
	"github.com/skylark/droneops/infra/logger"
	"github.com/skylark/droneops/infra/metrics"
	"github.com/skylark/droneops/infra/mqtt"
	infrastore "github.com/skylark/droneops/infra/store"
	"github.com/skylark/droneops/internal/eventbus"
)

// Service holds the wired components of the assignment service.
type Service struct {
	Coordinator *assign.Coordinator
	Pilots      *roster.PilotManager
	Drones      *roster.DroneManager
	Missions    *roster.MissionManager
	Bus         *eventbus.TypedBus[assign.Event]

	store    corestore.Store
	sink     coremetrics.MetricsSink
	notifier assign.Notifier
	log      logger.Logger
	cfg      *config.Config
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, err := newStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if cfg.Store.SeedPath != "" {
		if err := seedStore(context.Background(), st, cfg.Store.SeedPath); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket, logg))
	}
	var sink coremetrics.MetricsSink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	var notifier assign.Notifier = assign.NopNotifier{}
	if cfg.MQTT.Enabled {
		paho, err := mqtt.NewPahoNotifier(cfg.MQTT, logg)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		notifier = paho
	}

	bus := eventbus.NewTyped[assign.Event]()
	pilots := roster.NewPilotManager(st, logg)
	drones := roster.NewDroneManager(st, logg)
	missions := roster.NewMissionManager(st, logg)
	coord, err := assign.NewCoordinator(cfg.Assign, pilots, drones, missions,
		assign.NewCommitter(st, logg), sink, bus, notifier, logg)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	return &Service{
		Coordinator: coord,
		Pilots:      pilots,
		Drones:      drones,
		Missions:    missions,
		Bus:         bus,
		store:       st,
		sink:        sink,
		notifier:    notifier,
		log:         logg,
		cfg:         cfg,
	}, nil
}

func newStore(cfg config.StoreConfig) (corestore.Store, error) {
	switch cfg.Backend {
	case "memory":
		return infrastore.NewMemoryStore(), nil
	default:
		return infrastore.NewSQLiteStore(cfg.Path)
	}
}

// Run starts the HTTP API and the Prometheus endpoint and blocks until
// the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		metrics.StartPromServer(ctx, ":"+s.cfg.Metrics.PrometheusPort, s.log)
	}

	if !s.cfg.API.Enabled {
		<-ctx.Done()
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/api/pilots", apiroster.NewPilotsHandler(s.Pilots))
	mux.Handle("/api/drones", apiroster.NewDronesHandler(s.Drones))
	mux.Handle("/api/missions/plan", apimissions.NewPlanHandler(s.Coordinator))
	mux.Handle("/api/missions/commit", apimissions.NewCommitHandler(s.Coordinator))

	srv := &http.Server{
		Addr:              s.cfg.API.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("assignment API listening on %s", s.cfg.API.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// Store exposes the backing record store, used by the export command.
func (s *Service) Store() corestore.Store { return s.store }

// Close releases resources held by the service.
func (s *Service) Close() error {
	if d, ok := s.notifier.(interface{ Disconnect() }); ok {
		d.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if c, ok := s.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
