package service

import (
	"errors"
	"testing"

	"horizon_backend/internal/config"
	"horizon_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestStatusBeforeFirstSample(t *testing.T) {
	svc := NewStatusService(config.GameServerConfig{Name: "Horizon RP", MaxPlayers: 64})

	_, err := svc.Status()
	assert.Equal(t, util.ErrGameServerOffline, err)
}

func TestStatusOnline(t *testing.T) {
	svc := NewStatusService(config.GameServerConfig{Name: "Horizon RP", MaxPlayers: 64})
	svc.probe = func(address string) (bool, error) { return true, nil }
	svc.sample()

	snapshot, err := svc.Status()
	assert.NoError(t, err)
	assert.True(t, snapshot.Online)
	assert.Equal(t, "Horizon RP", snapshot.Name)
	assert.Equal(t, 64, snapshot.MaxPlayers)
}

func TestStatusOffline(t *testing.T) {
	svc := NewStatusService(config.GameServerConfig{Name: "Horizon RP"})
	svc.probe = func(address string) (bool, error) { return false, errors.New("refused") }
	svc.sample()

	snapshot, err := svc.Status()
	assert.Equal(t, util.ErrGameServerOffline, err)
	assert.False(t, snapshot.Online)
	assert.Equal(t, "Horizon RP", snapshot.Name)
}
