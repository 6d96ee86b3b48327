package memory

import (
	"sync"

	"go.uber.org/zap"
	"teamboard/internal/model"
)

type Store struct {
	mu            sync.Mutex
	notifications []model.Notification
	reports       []model.DailyReport
	todos         []model.Todo
	admins        map[string]struct{}
	log           *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{admins: make(map[string]struct{}), log: logger}
}

func (s *Store) Close() error {
	return nil
}
