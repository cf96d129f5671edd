package bank

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func createSQLiteBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	stmts := []string{
		`CREATE TABLE questions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			question TEXT NOT NULL,
			correct_answer INTEGER NOT NULL,
			explanation TEXT NOT NULL,
			scenario TEXT,
			real_world_context TEXT,
			company_tags TEXT
		);`,
		`CREATE TABLE question_options (
			question_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			option TEXT NOT NULL,
			PRIMARY KEY (question_id, position)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	if _, err := db.Exec(`INSERT INTO questions (id, topic, difficulty, question, correct_answer, explanation, scenario, company_tags)
		VALUES ('docker-1', 'docker', 'medium', 'Which flag maps ports?', 2, 'The -p flag publishes ports.', 'A container must expose a web server.', 'startup, enterprise')`); err != nil {
		t.Fatalf("insert question: %v", err)
	}
	for i, opt := range []string{"--volume", "-p", "--env", "--network"} {
		if _, err := db.Exec(`INSERT INTO question_options (question_id, position, option) VALUES ('docker-1', ?, ?)`, i+1, opt); err != nil {
			t.Fatalf("insert option: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	return path
}

func TestLoadSQLiteBank(t *testing.T) {
	path := createSQLiteBank(t)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", b.Len())
	}
	q, ok := b.Get("docker-1")
	if !ok {
		t.Fatalf("expected question docker-1")
	}
	if len(q.Options) != 4 || q.Options[1] != "-p" {
		t.Fatalf("options not loaded in position order: %v", q.Options)
	}
	if q.CorrectAnswer != 2 || q.Scenario == "" {
		t.Fatalf("unexpected question fields: %+v", q)
	}
	if len(q.CompanyTags) != 2 || q.CompanyTags[0] != "startup" || q.CompanyTags[1] != "enterprise" {
		t.Fatalf("company tags not split: %v", q.CompanyTags)
	}
}

func TestLoadSQLiteMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.db"))
	if err == nil {
		t.Fatalf("expected error for missing sqlite bank")
	}
}
