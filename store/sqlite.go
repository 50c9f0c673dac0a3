package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	moodtrack "github.com/cyberFlowTech/moodtrack-go"
)

// SQLiteSessionRepository implements moodtrack.SessionRepository on SQLite.
//
// It uses two tables (auto-created if AutoMigrate is true):
//   - {prefix}users:        one row per session with streak, moods and profile
//   - {prefix}chat_history: one row per turn, ordered by id
type SQLiteSessionRepository struct {
	db     *sql.DB
	prefix string
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	Prefix      string // table prefix, default ""
	AutoMigrate bool   // create tables if not exist, default true
}

// OpenSQLite opens (or creates) a database file with the pure-Go driver.
// ":memory:" is accepted; the pool is then pinned to one connection so every
// query sees the same database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	return db, nil
}

// NewSQLiteSessionRepository creates a repository on an opened database.
func NewSQLiteSessionRepository(db *sql.DB, config ...SQLiteStoreConfig) (*SQLiteSessionRepository, error) {
	cfg := SQLiteStoreConfig{AutoMigrate: true}
	if len(config) > 0 {
		cfg = config[0]
	}

	s := &SQLiteSessionRepository{db: db, prefix: cfg.Prefix}
	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return nil, fmt.Errorf("auto-migrate failed: %w", err)
		}
	}
	return s, nil
}

func (s *SQLiteSessionRepository) usersTable() string   { return s.prefix + "users" }
func (s *SQLiteSessionRepository) historyTable() string { return s.prefix + "chat_history" }

func (s *SQLiteSessionRepository) migrate() error {
	usersDDL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		session_id                   TEXT    NOT NULL PRIMARY KEY,
		preferred_response_type      TEXT    NOT NULL DEFAULT '共感',
		last_psychological_state     TEXT    NOT NULL DEFAULT 'neutral',
		previous_psychological_state TEXT    NOT NULL DEFAULT 'neutral',
		stress_count                 INTEGER NOT NULL DEFAULT 0,
		department                   TEXT,
		age_group                    TEXT,
		updated_at                   TEXT
	)`, s.usersTable())

	historyDDL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id          TEXT    NOT NULL,
		user_message        TEXT    NOT NULL,
		bot_response        TEXT    NOT NULL,
		department          TEXT,
		age_group           TEXT,
		timestamp           TEXT    NOT NULL,
		psychological_state TEXT,
		harassment_flag     INTEGER NOT NULL DEFAULT 0,
		sensitive_flag      INTEGER NOT NULL DEFAULT 0
	)`, s.historyTable())

	indexDDL := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_session ON %s (session_id, id)`,
		s.historyTable(), s.historyTable())

	for _, ddl := range []string{usersDDL, historyDDL, indexDDL} {
		if _, err := s.db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteSessionRepository) Load(ctx context.Context, sessionID string) (*moodtrack.SessionContext, error) {
	var (
		rt, last, prev string
		count          int
		dept, age, upd sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT preferred_response_type, last_psychological_state, previous_psychological_state,
			stress_count, department, age_group, updated_at FROM %s WHERE session_id=?`, s.usersTable()),
		sessionID,
	).Scan(&rt, &last, &prev, &count, &dept, &age, &upd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, moodtrack.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	lastMood, err := moodtrack.ParseMoodLabel(last)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", moodtrack.ErrInvalidSessionState, err)
	}
	prevMood, err := moodtrack.ParseMoodLabel(prev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", moodtrack.ErrInvalidSessionState, err)
	}
	sess := &moodtrack.SessionContext{
		SessionID:    sessionID,
		StressCount:  count,
		LastMood:     lastMood,
		PreviousMood: prevMood,
		Profile: moodtrack.Profile{
			Department:   dept.String,
			AgeGroup:     age.String,
			ResponseType: moodtrack.ResponseType(rt),
		},
	}
	if upd.Valid && upd.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, upd.String); err == nil {
			sess.UpdatedAt = t
		}
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLiteSessionRepository) Save(ctx context.Context, sess *moodtrack.SessionContext) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	rt := sess.Profile.ResponseType
	if rt == "" {
		rt = moodtrack.ResponseEmpathy
	}
	q := fmt.Sprintf(`INSERT INTO %s
		(session_id, preferred_response_type, last_psychological_state, previous_psychological_state,
		 stress_count, department, age_group, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			preferred_response_type=excluded.preferred_response_type,
			last_psychological_state=excluded.last_psychological_state,
			previous_psychological_state=excluded.previous_psychological_state,
			stress_count=excluded.stress_count,
			department=excluded.department,
			age_group=excluded.age_group,
			updated_at=excluded.updated_at`, s.usersTable())
	_, err := s.db.ExecContext(ctx, q,
		sess.SessionID, string(rt), string(sess.LastMood), string(sess.PreviousMood),
		sess.StressCount, nullString(sess.Profile.Department), nullString(sess.Profile.AgeGroup),
		sess.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionRepository) AppendTurn(ctx context.Context, sessionID string, turn moodtrack.Turn) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s
			(session_id, user_message, bot_response, department, age_group, timestamp,
			 psychological_state, harassment_flag, sensitive_flag)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.historyTable()),
		sessionID, turn.UserMessage, turn.BotResponse,
		nullString(turn.Department), nullString(turn.AgeGroup),
		turn.Timestamp.UTC().Format(time.RFC3339Nano),
		string(turn.Mood), turn.HarassmentFlag, turn.SensitiveFlag,
	)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

func (s *SQLiteSessionRepository) RecentTurns(ctx context.Context, sessionID string, limit int) ([]moodtrack.Turn, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT user_message, bot_response, department, age_group, timestamp,
			psychological_state, harassment_flag, sensitive_flag
			FROM %s WHERE session_id=? ORDER BY id DESC LIMIT ?`, s.historyTable()),
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	var turns []moodtrack.Turn
	for rows.Next() {
		var (
			t             moodtrack.Turn
			dept, age, st sql.NullString
			ts            string
		)
		if err := rows.Scan(&t.UserMessage, &t.BotResponse, &dept, &age, &ts, &st, &t.HarassmentFlag, &t.SensitiveFlag); err != nil {
			return nil, err
		}
		t.Department, t.AgeGroup = dept.String, age.String
		if mood, err := moodtrack.ParseMoodLabel(st.String); err == nil {
			t.Mood = mood
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			t.Timestamp = parsed
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// newest-first from the query; callers want oldest first
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	if turns == nil {
		turns = []moodtrack.Turn{}
	}
	return turns, nil
}

func (s *SQLiteSessionRepository) Close() error {
	return s.db.Close()
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// Compile-time interface check.
var _ moodtrack.SessionRepository = (*SQLiteSessionRepository)(nil)
