// Package bank loads and indexes the static question collection.
package bank

import (
	"fmt"
	"sort"
	"strings"

	"devprep/internal/model"
)

// MinOptions is the smallest option count for a valid multiple-choice item.
const MinOptions = 2

var validDifficulties = map[string]struct{}{
	model.DifficultyEasy:   {},
	model.DifficultyMedium: {},
	model.DifficultyHard:   {},
}

// Bank is the full validated question collection. Immutable after New.
type Bank struct {
	questions []model.Question
	byID      map[string]model.Question
}

// New validates every question and builds a Bank. All violations are
// collected into a single *ValidationError; no partial bank is returned.
func New(questions []model.Question) (*Bank, error) {
	var violations []string
	byID := make(map[string]model.Question, len(questions))
	for i, q := range questions {
		violations = append(violations, validateQuestion(i, q)...)
		if q.ID != "" {
			if _, ok := byID[q.ID]; ok {
				violations = append(violations, fmt.Sprintf("questions[%d]: duplicate id %q", i, q.ID))
				continue
			}
			byID[q.ID] = q
		}
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	bank := &Bank{
		questions: append([]model.Question(nil), questions...),
		byID:      byID,
	}
	return bank, nil
}

func validateQuestion(i int, q model.Question) []string {
	var violations []string
	report := func(format string, args ...any) {
		prefix := fmt.Sprintf("questions[%d]", i)
		if q.ID != "" {
			prefix = fmt.Sprintf("questions[%d] (id %q)", i, q.ID)
		}
		violations = append(violations, prefix+": "+fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(q.ID) == "" {
		report("missing id")
	}
	if strings.TrimSpace(q.Topic) == "" {
		report("missing topic")
	}
	if _, ok := validDifficulties[q.Difficulty]; !ok {
		report("invalid difficulty %q (want easy, medium, or hard)", q.Difficulty)
	}
	if strings.TrimSpace(q.Question) == "" {
		report("missing question text")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		report("missing explanation")
	}
	if len(q.Options) < MinOptions {
		report("%d options (want at least %d)", len(q.Options), MinOptions)
	} else {
		seen := make(map[string]struct{}, len(q.Options))
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				report("empty option at position %d", j+1)
				continue
			}
			if _, ok := seen[opt]; ok {
				report("duplicate option %q", opt)
				continue
			}
			seen[opt] = struct{}{}
		}
		if q.CorrectAnswer < 1 || q.CorrectAnswer > len(q.Options) {
			report("correct_answer %d out of range [1, %d]", q.CorrectAnswer, len(q.Options))
		}
	}
	return violations
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns all questions in load order.
func (b *Bank) Questions() []model.Question {
	return b.questions
}

// Get looks up a question by id.
func (b *Bank) Get(id string) (model.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Filter returns the questions matching the optional topic and difficulty
// predicates. Empty string means no constraint on that dimension. A filter
// that matches nothing returns an empty slice, not an error.
func (b *Bank) Filter(topic, difficulty string) []model.Question {
	var out []model.Question
	for _, q := range b.questions {
		if topic != "" && !strings.EqualFold(q.Topic, topic) {
			continue
		}
		if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// HasTopic reports whether any question carries the given topic.
func (b *Bank) HasTopic(topic string) bool {
	for _, q := range b.questions {
		if strings.EqualFold(q.Topic, topic) {
			return true
		}
	}
	return false
}

// Topics returns the distinct topics present in the bank, sorted.
func (b *Bank) Topics() []string {
	seen := map[string]struct{}{}
	var topics []string
	for _, q := range b.questions {
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	sort.Strings(topics)
	return topics
}

// ListTopics returns per-topic question counts broken down by difficulty.
func (b *Bank) ListTopics() []model.TopicInfo {
	byTopic := map[string]*model.TopicInfo{}
	for _, q := range b.questions {
		info, ok := byTopic[q.Topic]
		if !ok {
			info = &model.TopicInfo{Topic: q.Topic, ByDifficulty: map[string]int{}}
			byTopic[q.Topic] = info
		}
		info.Total++
		info.ByDifficulty[q.Difficulty]++
	}
	out := make([]model.TopicInfo, 0, len(byTopic))
	for _, info := range byTopic {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}
