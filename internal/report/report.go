// Package report turns recorded responses into a session summary.
package report

import (
	"sort"

	"devprep/internal/model"
	"devprep/internal/session"
)

// Tally holds scoring aggregates computed from responses.
type Tally struct {
	Score        int
	Total        int
	Percentage   float64
	Skipped      int
	ByTopic      []model.GroupScore
	ByDifficulty []model.GroupScore
}

// Compute tallies responses. It is a pure function of its input: the same
// responses always produce the same tally.
func Compute(responses []model.Response) Tally {
	t := Tally{Total: len(responses)}
	byTopic := map[string]*model.GroupScore{}
	byDifficulty := map[string]*model.GroupScore{}
	for _, resp := range responses {
		if resp.Correct {
			t.Score++
		}
		if resp.Skipped {
			t.Skipped++
		}
		bump(byTopic, resp.Topic, resp.Correct)
		bump(byDifficulty, resp.Difficulty, resp.Correct)
	}
	if t.Total > 0 {
		t.Percentage = 100 * float64(t.Score) / float64(t.Total)
	}
	t.ByTopic = sortedScores(byTopic)
	t.ByDifficulty = sortedScores(byDifficulty)
	return t
}

func bump(groups map[string]*model.GroupScore, name string, correct bool) {
	g, ok := groups[name]
	if !ok {
		g = &model.GroupScore{Name: name}
		groups[name] = g
	}
	g.Total++
	if correct {
		g.Correct++
	}
	g.Percentage = 100 * float64(g.Correct) / float64(g.Total)
}

func sortedScores(groups map[string]*model.GroupScore) []model.GroupScore {
	out := make([]model.GroupScore, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Build produces the structured end-of-session report.
func Build(sess *session.Session) model.Summary {
	t := Compute(sess.Responses)
	return model.Summary{
		SessionID:     sess.ID,
		InterviewMode: sess.Options.InterviewMode,
		Score:         t.Score,
		Total:         t.Total,
		Percentage:    t.Percentage,
		Tier:          ReadinessTier(t.Percentage),
		Duration:      sess.EndedAt.Sub(sess.StartedAt),
		ByTopic:       t.ByTopic,
		ByDifficulty:  t.ByDifficulty,
		TimedOut:      sess.TimedOut,
		Skipped:       t.Skipped,
	}
}
