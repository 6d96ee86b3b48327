package store

import (
	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/repository"
	"teamboard/internal/store/memory"
	"teamboard/internal/store/mysql"
	"teamboard/internal/store/sqlite"
)

func NewStore(cfg *config.Config, logger *zap.Logger) (repository.Store, func(), error) {
	switch {
	case cfg.MySQLDSN != "":
		sqlDB, err := mysql.Open(cfg.MySQLDSN)
		if err != nil {
			logger.Error("mysql open failed", zap.Error(err))
			return nil, nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			logger.Error("mysql ping failed", zap.Error(err))
			_ = sqlDB.Close()
			return nil, nil, err
		}
		s := mysql.New(sqlDB, logger)
		return s, closer(s, logger), nil
	case cfg.SQLitePath != "":
		s, err := sqlite.New(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("sqlite open failed", zap.String("path", cfg.SQLitePath), zap.Error(err))
			return nil, nil, err
		}
		return s, closer(s, logger), nil
	default:
		logger.Warn("no database configured, using in-memory store")
		s := memory.New(logger)
		return s, closer(s, logger), nil
	}
}

func closer(s repository.Store, logger *zap.Logger) func() {
	return func() {
		if err := s.Close(); err != nil {
			logger.Error("store close failed", zap.Error(err))
		}
	}
}
