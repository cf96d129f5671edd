package bank

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"devprep/internal/model"
)

func makeQuestion(id, topic, difficulty string, correct int) model.Question {
	return model.Question{
		ID:            id,
		Topic:         topic,
		Difficulty:    difficulty,
		Question:      fmt.Sprintf("What does %s do?", id),
		Options:       []string{"first option", "second option", "third option", "fourth option"},
		CorrectAnswer: correct,
		Explanation:   "explained in the docs",
	}
}

func TestNewValidBank(t *testing.T) {
	b, err := New([]model.Question{
		makeQuestion("aws-1", "aws", "easy", 1),
		makeQuestion("k8s-1", "kubernetes", "hard", 4),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", b.Len())
	}
	q, ok := b.Get("k8s-1")
	if !ok || q.Topic != "kubernetes" {
		t.Fatalf("unexpected lookup result: %+v ok=%v", q, ok)
	}
}

func TestNewCollectsAllViolations(t *testing.T) {
	badIndex := makeQuestion("aws-1", "aws", "easy", 7)
	dup := makeQuestion("aws-1", "aws", "medium", 1)
	noOptions := makeQuestion("git-1", "git", "easy", 1)
	noOptions.Options = nil
	noExplanation := makeQuestion("net-1", "networking", "hard", 2)
	noExplanation.Explanation = ""
	badDifficulty := makeQuestion("sec-1", "security", "impossible", 2)

	_, err := New([]model.Question{badIndex, dup, noOptions, noExplanation, badDifficulty})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(validationErr.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(validationErr.Violations), validationErr.Violations)
	}
	for _, want := range []string{
		"correct_answer 7 out of range",
		`duplicate id "aws-1"`,
		"0 options",
		"missing explanation",
		`invalid difficulty "impossible"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected violation %q in:\n%v", want, err)
		}
	}
}

func TestNewRejectsDuplicateAndEmptyOptions(t *testing.T) {
	q := makeQuestion("aws-1", "aws", "easy", 1)
	q.Options = []string{"same", "same", "", "other"}
	_, err := New([]model.Question{q})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), `duplicate option "same"`) {
		t.Fatalf("expected duplicate option violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "empty option at position 3") {
		t.Fatalf("expected empty option violation, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	b, err := New([]model.Question{
		makeQuestion("aws-1", "aws", "easy", 1),
		makeQuestion("aws-2", "aws", "hard", 2),
		makeQuestion("k8s-1", "kubernetes", "easy", 3),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name       string
		topic      string
		difficulty string
		want       int
	}{
		{"no filters", "", "", 3},
		{"topic only", "aws", "", 2},
		{"topic case-insensitive", "AWS", "", 2},
		{"difficulty only", "easy", "", 0},
		{"difficulty dimension", "", "easy", 2},
		{"both", "aws", "hard", 1},
		{"no match", "aws", "medium", 0},
		{"unknown topic", "ansible", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.Filter(tc.topic, tc.difficulty)
			if len(got) != tc.want {
				t.Fatalf("Filter(%q, %q) returned %d questions, want %d", tc.topic, tc.difficulty, len(got), tc.want)
			}
		})
	}
}

func TestHasTopicAndTopics(t *testing.T) {
	b, err := New([]model.Question{
		makeQuestion("k8s-1", "kubernetes", "easy", 1),
		makeQuestion("aws-1", "aws", "easy", 1),
		makeQuestion("aws-2", "aws", "medium", 1),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !b.HasTopic("AWS") {
		t.Fatalf("expected HasTopic to be case-insensitive")
	}
	if b.HasTopic("ansible") {
		t.Fatalf("did not expect topic ansible")
	}
	topics := b.Topics()
	if len(topics) != 2 || topics[0] != "aws" || topics[1] != "kubernetes" {
		t.Fatalf("unexpected topics: %v", topics)
	}
}

func TestListTopics(t *testing.T) {
	b, err := New([]model.Question{
		makeQuestion("aws-1", "aws", "easy", 1),
		makeQuestion("aws-2", "aws", "easy", 2),
		makeQuestion("aws-3", "aws", "hard", 3),
		makeQuestion("k8s-1", "kubernetes", "medium", 4),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	infos := b.ListTopics()
	if len(infos) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(infos))
	}
	aws := infos[0]
	if aws.Topic != "aws" || aws.Total != 3 {
		t.Fatalf("unexpected aws info: %+v", aws)
	}
	if aws.ByDifficulty["easy"] != 2 || aws.ByDifficulty["hard"] != 1 {
		t.Fatalf("unexpected aws difficulty counts: %+v", aws.ByDifficulty)
	}
	if infos[1].Topic != "kubernetes" || infos[1].Total != 1 {
		t.Fatalf("unexpected kubernetes info: %+v", infos[1])
	}
}
