package mysql

import (
	"database/sql"
	"errors"
	"math"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"teamboard/internal/db"
	"teamboard/internal/domain"
)

const (
	dateLayout = "2006-01-02"

	errNoSuchTable = 1146
)

type Store struct {
	conn    *sql.DB
	queries *db.Queries
	log     *zap.Logger
}

func New(conn *sql.DB, logger *zap.Logger) *Store {
	return &Store{conn: conn, queries: db.New(conn), log: logger}
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func storeError(op string, err error) error {
	kind := domain.KindGeneric
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errNoSuchTable {
		kind = domain.KindTableMissing
	}
	return &domain.StoreError{Op: op, Kind: kind, Err: err}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// sqlLimit maps a non-positive limit to "no limit".
func sqlLimit(limit int) int32 {
	if limit <= 0 || limit > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(limit)
}

func affected(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return storeError(op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Open connects with found-rows semantics so updates that change nothing still
// report the matched row.
func Open(dsn string) (*sql.DB, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}
