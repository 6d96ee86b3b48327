package sqlite

import "context"

func (s *Store) ReportUserIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1
	}
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT user_id FROM daily_reports LIMIT ?", limit); err != nil {
		return nil, storeError("list report user ids", err)
	}
	return ids, nil
}

func (s *Store) TodoUserIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1
	}
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT user_id FROM todos LIMIT ?", limit); err != nil {
		return nil, storeError("list todo user ids", err)
	}
	return ids, nil
}

func (s *Store) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM admins WHERE user_id = ?", userID); err != nil {
		return false, storeError("check admin", err)
	}
	return n > 0, nil
}

func (s *Store) UpsertAdmin(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO admins (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING", userID)
	if err != nil {
		return storeError("upsert admin", err)
	}
	return nil
}
