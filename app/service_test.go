package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylark/droneops/config"
)

func memoryConfig(seedPath string) *config.Config {
	cfg := &config.Config{}
	cfg.Store.Backend = "memory"
	cfg.Store.SeedPath = seedPath
	cfg.Store.SetDefaults()
	cfg.Assign.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.API.SetDefaults()
	return cfg
}

func TestNewServiceWiresCoordinator(t *testing.T) {
	svc, err := New(memoryConfig(writeSeed(t, seedJSON)))
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	plan, err := svc.Coordinator.Plan(context.Background(), "M101", false)
	require.NoError(t, err)
	require.Len(t, plan.Candidates, 1)
	assert.Equal(t, "Ana", plan.Candidates[0].PilotName)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc, err := New(memoryConfig(""))
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
