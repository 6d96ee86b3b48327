package memory

import "context"

func (s *Store) ReportUserIDs(_ context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.reports))
	for _, r := range s.reports {
		if limit > 0 && len(ids) >= limit {
			break
		}
		ids = append(ids, r.UserID)
	}
	return ids, nil
}

func (s *Store) TodoUserIDs(_ context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.todos))
	for _, t := range s.todos {
		if limit > 0 && len(ids) >= limit {
			break
		}
		ids = append(ids, t.UserID)
	}
	return ids, nil
}

func (s *Store) IsAdmin(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.admins[userID]
	return ok, nil
}

func (s *Store) UpsertAdmin(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[userID] = struct{}{}
	return nil
}
