package bank

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"devprep/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// loadSQLite reads a question bank from a read-only SQLite file. The
// expected schema is a questions table plus a question_options table
// ordered by position. The file is only a dataset source; nothing is
// ever written back.
func loadSQLite(path string) ([]model.Question, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close for read-only bank.
			_ = cerr
		}
	}()

	questions, err := readQuestions(db)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return questions, nil
}

func readQuestions(db *sql.DB) ([]model.Question, error) {
	rows, err := db.Query(`SELECT id, topic, difficulty, question, correct_answer, explanation,
		COALESCE(scenario, ''), COALESCE(real_world_context, ''), COALESCE(company_tags, '')
		FROM questions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var tags string
		if err := rows.Scan(&q.ID, &q.Topic, &q.Difficulty, &q.Question, &q.CorrectAnswer,
			&q.Explanation, &q.Scenario, &q.RealWorldContext, &tags); err != nil {
			return nil, err
		}
		q.CompanyTags = splitTags(tags)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		options, err := readOptions(db, questions[i].ID)
		if err != nil {
			return nil, fmt.Errorf("options for question %q: %w", questions[i].ID, err)
		}
		questions[i].Options = options
	}
	return questions, nil
}

func readOptions(db *sql.DB, questionID string) ([]string, error) {
	rows, err := db.Query(`SELECT option FROM question_options
		WHERE question_id = ? ORDER BY position ASC`, questionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var options []string
	for rows.Next() {
		var opt string
		if err := rows.Scan(&opt); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return options, nil
}

func splitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
