package mysql

import (
	"context"

	"go.uber.org/zap"
)

func (s *Store) ReportUserIDs(ctx context.Context, limit int) ([]string, error) {
	ids, err := s.queries.ListReportUserIDs(ctx, sqlLimit(limit))
	if err != nil {
		s.log.Warn("sql list report user ids failed", zap.Int("limit", limit), zap.Error(err))
		return nil, storeError("list report user ids", err)
	}
	return ids, nil
}

func (s *Store) TodoUserIDs(ctx context.Context, limit int) ([]string, error) {
	ids, err := s.queries.ListTodoUserIDs(ctx, sqlLimit(limit))
	if err != nil {
		s.log.Warn("sql list todo user ids failed", zap.Int("limit", limit), zap.Error(err))
		return nil, storeError("list todo user ids", err)
	}
	return ids, nil
}

func (s *Store) IsAdmin(ctx context.Context, userID string) (bool, error) {
	n, err := s.queries.CountAdmin(ctx, userID)
	if err != nil {
		return false, storeError("check admin", err)
	}
	return n > 0, nil
}

func (s *Store) UpsertAdmin(ctx context.Context, userID string) error {
	if err := s.queries.UpsertAdmin(ctx, userID); err != nil {
		return storeError("upsert admin", err)
	}
	return nil
}
