package sqlite

type migration struct {
	version int
	sql     string
}

// Versions must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	title      TEXT NOT NULL,
	body       TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL DEFAULT '',
	icon       TEXT NOT NULL DEFAULT '',
	image      TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL DEFAULT '',
	push_id    TEXT NOT NULL DEFAULT '',
	is_read    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_user_push ON notifications(user_id, push_id);

CREATE TABLE IF NOT EXISTS daily_reports (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	user_email   TEXT NOT NULL DEFAULT '',
	report_date  TEXT NOT NULL,
	reflection   TEXT NOT NULL DEFAULT '',
	wake_up_time TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL,
	UNIQUE (user_id, report_date)
);

CREATE TABLE IF NOT EXISTS todos (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	user_email   TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0,
	target_date  TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_user_date ON todos(user_id, target_date);

CREATE TABLE IF NOT EXISTS admins (
	user_id    TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}
