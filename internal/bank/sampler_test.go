package bank

import (
	"fmt"
	"math/rand"
	"testing"

	"devprep/internal/model"
)

func makePool(n int) []model.Question {
	pool := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, makeQuestion(fmt.Sprintf("q-%d", i), "aws", "easy", 1))
	}
	return pool
}

func TestSampleWithoutRepeats(t *testing.T) {
	sampler := NewSamplerWithRand(rand.New(rand.NewSource(1)))
	pool := makePool(10)

	got := sampler.Sample(pool, 4)
	if len(got) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(got))
	}
	seen := map[string]struct{}{}
	for _, q := range got {
		if _, ok := seen[q.ID]; ok {
			t.Fatalf("duplicate id %q in sample", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
}

func TestSampleCountExceedsPool(t *testing.T) {
	sampler := NewSamplerWithRand(rand.New(rand.NewSource(1)))
	pool := makePool(3)

	got := sampler.Sample(pool, 20)
	if len(got) != 3 {
		t.Fatalf("expected the full pool (3), got %d", len(got))
	}
	seen := map[string]struct{}{}
	for _, q := range got {
		seen[q.ID] = struct{}{}
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct ids, got %d", len(seen))
	}
}

func TestSampleWithRepeats(t *testing.T) {
	sampler := NewSamplerWithRand(rand.New(rand.NewSource(2)))
	pool := makePool(3)

	got := sampler.SampleWithRepeats(pool, 25)
	if len(got) != 25 {
		t.Fatalf("expected exactly 25 draws, got %d", len(got))
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	pool := makePool(8)
	first := NewSamplerWithRand(rand.New(rand.NewSource(42))).Sample(pool, 5)
	second := NewSamplerWithRand(rand.New(rand.NewSource(42))).Sample(pool, 5)
	if len(first) != len(second) {
		t.Fatalf("sample lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("samples diverge at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSampleEmptyOrZero(t *testing.T) {
	sampler := NewSamplerWithRand(rand.New(rand.NewSource(1)))
	if got := sampler.Sample(nil, 5); got != nil {
		t.Fatalf("expected nil for empty pool, got %v", got)
	}
	if got := sampler.Sample(makePool(3), 0); got != nil {
		t.Fatalf("expected nil for zero count, got %v", got)
	}
	if got := sampler.SampleWithRepeats(nil, 5); got != nil {
		t.Fatalf("expected nil for empty pool with repeats, got %v", got)
	}
}

func TestFilterThenSampleFewerThanRequested(t *testing.T) {
	b, err := New([]model.Question{
		makeQuestion("aws-1", "aws", "easy", 1),
		makeQuestion("aws-2", "aws", "medium", 2),
		makeQuestion("aws-3", "aws", "hard", 3),
		makeQuestion("k8s-1", "kubernetes", "easy", 4),
		makeQuestion("k8s-2", "kubernetes", "hard", 1),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sampler := NewSamplerWithRand(rand.New(rand.NewSource(7)))
	got := sampler.Sample(b.Filter("aws", ""), 5)
	if len(got) != 3 {
		t.Fatalf("expected the 3 aws questions, got %d", len(got))
	}
	for _, q := range got {
		if q.Topic != "aws" {
			t.Fatalf("unexpected topic %q in sample", q.Topic)
		}
	}
}
