// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"time"
)

// Difficulty levels recognized in question banks.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one multiple-choice interview question. Immutable after load.
type Question struct {
	ID               string   `json:"id" yaml:"id"`
	Topic            string   `json:"topic" yaml:"topic"`
	Difficulty       string   `json:"difficulty" yaml:"difficulty"`
	Question         string   `json:"question" yaml:"question"`
	Options          []string `json:"options" yaml:"options"`
	CorrectAnswer    int      `json:"correct_answer" yaml:"correct_answer"`
	Explanation      string   `json:"explanation" yaml:"explanation"`
	Scenario         string   `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	CompanyTags      []string `json:"company_tags,omitempty" yaml:"company_tags,omitempty"`
	RealWorldContext string   `json:"real_world_context,omitempty" yaml:"real_world_context,omitempty"`
}

// Response records the outcome of one presented question.
type Response struct {
	QuestionID  string        `json:"question_id"`
	Topic       string        `json:"topic"`
	Difficulty  string        `json:"difficulty"`
	ChosenIndex int           `json:"chosen_index"`
	Correct     bool          `json:"correct"`
	TimedOut    bool          `json:"timed_out,omitempty"`
	Skipped     bool          `json:"skipped,omitempty"`
	TimeTaken   time.Duration `json:"-"`
}

// MarshalJSON reports TimeTaken in whole milliseconds; a raw time.Duration
// would serialize as nanoseconds.
func (r Response) MarshalJSON() ([]byte, error) {
	type response Response
	return json.Marshal(struct {
		response
		TimeTakenMS int64 `json:"time_taken_ms"`
	}{response(r), r.TimeTaken.Milliseconds()})
}

// SessionOptions configures one practice or interview run.
type SessionOptions struct {
	Topic         string
	Difficulty    string
	Count         int
	InterviewMode bool
	TimeLimit     time.Duration
	Shuffle       bool
}

// TopicInfo describes one topic of a loaded bank for display.
type TopicInfo struct {
	Topic        string
	Total        int
	ByDifficulty map[string]int
}

// GroupScore is a correct/total pair for one topic or difficulty group.
type GroupScore struct {
	Name       string  `json:"name"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Summary is the structured end-of-session report.
type Summary struct {
	SessionID     string        `json:"session_id"`
	InterviewMode bool          `json:"interview_mode"`
	Score         int           `json:"score"`
	Total         int           `json:"total"`
	Percentage    float64       `json:"percentage"`
	Tier          string        `json:"assessment"`
	Duration      time.Duration `json:"-"`
	ByTopic       []GroupScore  `json:"by_topic"`
	ByDifficulty  []GroupScore  `json:"by_difficulty"`
	TimedOut      bool          `json:"timed_out,omitempty"`
	Skipped       int           `json:"skipped,omitempty"`
}

// MarshalJSON reports Duration in seconds to match the exported results
// format.
func (s Summary) MarshalJSON() ([]byte, error) {
	type summary Summary
	return json.Marshal(struct {
		summary
		DurationSeconds float64 `json:"duration_seconds"`
	}{summary(s), s.Duration.Seconds()})
}
