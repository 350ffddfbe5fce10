package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createTeamTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		owner_user_id TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE team_members (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		full_name TEXT,
		avatar_url TEXT,
		joined_at DATETIME,
		UNIQUE (team_id, user_id)
	);`)
}

func createInviteTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_invites (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		accepted_at DATETIME,
		created_by_user_id TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createProjectTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		name TEXT NOT NULL,
		key TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE (team_id, key)
	);`)
}

func createIssueTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE issues (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		project_id TEXT,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		priority TEXT NOT NULL,
		type TEXT,
		assignee_id TEXT,
		reporter_id TEXT NOT NULL,
		sort_order REAL,
		summary_doc TEXT,
		details_doc TEXT,
		impact_doc TEXT,
		steps_taken_doc TEXT,
		next_steps_doc TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE labels (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT,
		UNIQUE (team_id, name)
	);`)
	mustExec(t, db, `CREATE TABLE issue_labels (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		issue_id TEXT NOT NULL,
		label_id TEXT NOT NULL,
		UNIQUE (issue_id, label_id)
	);`)
}

func createTodoTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE todos (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		team_id TEXT,
		owner_user_id TEXT,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		assignee_id TEXT,
		due_date DATETIME,
		sort_order REAL,
		created_by_user_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEventTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_events (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		actor_id TEXT,
		type TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE issue_events (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		issue_id TEXT NOT NULL,
		actor_id TEXT,
		type TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME
	);`)
}
