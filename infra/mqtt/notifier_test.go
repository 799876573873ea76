package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylark/droneops/core/assign"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)       {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)        {}
func (nopLogger) Warnf(string, ...any)        {}
func (nopLogger) Errorf(string, ...any)       {}

type fakeToken struct{ err error }

func (t fakeToken) Wait() bool                       { return true }
func (t fakeToken) WaitTimeout(time.Duration) bool   { return true }
func (t fakeToken) Done() <-chan struct{}            { ch := make(chan struct{}); close(ch); return ch }
func (t fakeToken) Error() error                     { return t.err }

type fakeClient struct {
	mu        sync.Mutex
	published map[string][]byte
	failures  int
}

func (f *fakeClient) IsConnected() bool        { return true }
func (f *fakeClient) Connect() paho.Token      { return fakeToken{} }
func (f *fakeClient) Disconnect(quiesce uint)  {}
func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return fakeToken{err: errors.New("broker unavailable")}
	}
	if f.published == nil {
		f.published = make(map[string][]byte)
	}
	f.published[topic] = payload.([]byte)
	return fakeToken{}
}

func TestNotifyAssignmentPublishes(t *testing.T) {
	cli := &fakeClient{}
	p := &PahoNotifier{cli: cli, topic: "missions", maxRetries: 1, backoff: time.Millisecond, log: nopLogger{}}

	err := p.NotifyAssignment(context.Background(), assign.Notice{
		MissionID: "M101",
		PilotName: "Ana",
		DroneID:   "D7",
		Time:      time.Now(),
	})
	require.NoError(t, err)

	payload, ok := cli.published["missions/M101/assignment"]
	require.True(t, ok)

	var got struct {
		NoticeID  string `json:"notice_id"`
		MissionID string `json:"mission_id"`
		PilotName string `json:"pilot_name"`
	}
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.NotEmpty(t, got.NoticeID)
	assert.Equal(t, "M101", got.MissionID)
	assert.Equal(t, "Ana", got.PilotName)
}

func TestNotifyAssignmentRetries(t *testing.T) {
	cli := &fakeClient{failures: 2}
	p := &PahoNotifier{cli: cli, topic: "missions", maxRetries: 3, backoff: time.Millisecond, log: nopLogger{}}

	err := p.NotifyAssignment(context.Background(), assign.Notice{MissionID: "M102"})
	require.NoError(t, err)
	assert.Contains(t, cli.published, "missions/M102/assignment")
}

func TestNotifyAssignmentExhaustsRetries(t *testing.T) {
	cli := &fakeClient{failures: 10}
	p := &PahoNotifier{cli: cli, topic: "missions", maxRetries: 2, backoff: time.Millisecond, log: nopLogger{}}

	err := p.NotifyAssignment(context.Background(), assign.Notice{MissionID: "M103"})
	assert.Error(t, err)
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{Enabled: true}
	cfg.SetDefaults()
	assert.Equal(t, "droneops-notifier", cfg.ClientID)
	assert.Equal(t, "missions", cfg.Topic)
	assert.Error(t, cfg.Validate())

	cfg.Broker = "tcp://localhost:1883"
	assert.NoError(t, cfg.Validate())

	disabled := Config{}
	assert.NoError(t, disabled.Validate())
}

func TestLoadTLSConfigRequiresFiles(t *testing.T) {
	cfg := Config{UseTLS: true}
	_, err := cfg.LoadTLSConfig()
	assert.Error(t, err)
}

func TestMockNotifier(t *testing.T) {
	m := NewMockNotifier()
	require.NoError(t, m.NotifyAssignment(context.Background(), assign.Notice{MissionID: "M101"}))

	m.FailIDs["M102"] = true
	assert.Error(t, m.NotifyAssignment(context.Background(), assign.Notice{MissionID: "M102"}))

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "M101", sent[0].MissionID)
}
