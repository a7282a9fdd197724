package service

import (
	"net"
	"sync"
	"time"

	"horizon_backend/internal/config"
	"horizon_backend/internal/util"
	"horizon_backend/pkg/logger"

	"go.uber.org/zap"
)

// GameServerStatus is the public snapshot shown on the landing page.
type GameServerStatus struct {
	Name       string    `json:"name"`
	Online     bool      `json:"online"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// probeFunc checks reachability of the game server address. Swappable in
// tests.
type probeFunc func(address string) (bool, error)

// StatusService samples the game server in the background and serves the
// last snapshot, so the landing page never blocks on a dead socket.
type StatusService struct {
	cfg   config.GameServerConfig
	probe probeFunc

	mu       sync.RWMutex
	snapshot GameServerStatus
	sampled  bool
}

func NewStatusService(cfg config.GameServerConfig) *StatusService {
	return &StatusService{
		cfg:   cfg,
		probe: tcpProbe,
	}
}

func tcpProbe(address string) (bool, error) {
	conn, err := net.DialTimeout("tcp", address, 3*time.Second)
	if err != nil {
		return false, err
	}
	conn.Close()
	return true, nil
}

// StartSampler probes immediately and then once a minute.
func (s *StatusService) StartSampler() {
	s.sample()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s.sample()
		}
	}()
}

func (s *StatusService) sample() {
	online, err := s.probe(s.cfg.Address)
	if err != nil {
		logger.Log.Debug("game server probe failed",
			zap.String("address", s.cfg.Address), zap.Error(err))
	}

	s.mu.Lock()
	s.snapshot = GameServerStatus{
		Name:       s.cfg.Name,
		Online:     online,
		MaxPlayers: s.cfg.MaxPlayers,
		CheckedAt:  time.Now(),
	}
	s.sampled = true
	s.mu.Unlock()
}

// Status returns the last sampled snapshot. Before the first sample
// completes, or when the server is unreachable, callers get
// ErrGameServerOffline along with the snapshot so the page can still
// render the name.
func (s *StatusService) Status() (*GameServerStatus, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	sampled := s.sampled
	s.mu.RUnlock()

	if !sampled || !snapshot.Online {
		return &snapshot, util.ErrGameServerOffline
	}
	return &snapshot, nil
}
