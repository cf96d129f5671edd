// Package session drives one practice or interview run end-to-end.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devprep/internal/bank"
	"devprep/internal/model"
)

var (
	// ErrUnknownTopic marks a requested topic that is not in the bank. The
	// CLI layer checks it before a session ever starts.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrNoQuestionsAvailable is returned when the filter matches nothing.
	ErrNoQuestionsAvailable = errors.New("no questions available")
	// ErrInvalidInput is returned for an out-of-range answer. The boundary
	// re-prompts; no response is recorded.
	ErrInvalidInput = errors.New("answer out of range")
)

// State tracks session progress through the run.
type State int

// Session states, in lifecycle order.
const (
	StateCreated State = iota
	StateAwaitingAnswer
	StateRecorded
	StateComplete
)

// Prompt is one question as presented to the interaction boundary. Options
// may be in shuffled order; CorrectIndex is 1-based in presented order.
type Prompt struct {
	Question     model.Question
	Number       int
	Total        int
	Options      []string
	CorrectIndex int
}

// Session holds the state of one run. Owned exclusively by its Engine.
type Session struct {
	ID        string
	Options   model.SessionOptions
	Questions []model.Question
	Responses []model.Response
	StartedAt time.Time
	EndedAt   time.Time
	TimedOut  bool

	requested int
}

// Reduced reports whether the pool was smaller than the requested count.
func (s *Session) Reduced() bool {
	return len(s.Questions) < s.requested
}

// Engine runs the session state machine.
type Engine struct {
	bank    *bank.Bank
	sampler *bank.Sampler
	opts    model.SessionOptions

	sess          *Session
	state         State
	index         int
	current       Prompt
	questionStart time.Time
	deadline      time.Time
}

// New builds an Engine over a loaded bank. The sampler is injected so tests
// can drive deterministic draws.
func New(b *bank.Bank, sampler *bank.Sampler, opts model.SessionOptions) *Engine {
	return &Engine{bank: b, sampler: sampler, opts: opts}
}

// Start resolves the eligible pool and draws the session's questions.
func (e *Engine) Start() (*Session, error) {
	if e.sess != nil {
		return nil, fmt.Errorf("session already started")
	}
	if e.opts.Count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", e.opts.Count)
	}
	pool := e.bank.Filter(e.opts.Topic, e.opts.Difficulty)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w for topic=%q difficulty=%q", ErrNoQuestionsAvailable, e.opts.Topic, e.opts.Difficulty)
	}
	now := time.Now()
	e.sess = &Session{
		ID:        uuid.New().String(),
		Options:   e.opts,
		Questions: e.sampler.Sample(pool, e.opts.Count),
		StartedAt: now,
		requested: e.opts.Count,
	}
	if e.opts.TimeLimit > 0 {
		e.deadline = now.Add(e.opts.TimeLimit)
	}
	e.state = StateCreated
	return e.sess, nil
}

// Session returns the current session, or nil before Start.
func (e *Engine) Session() *Session {
	return e.sess
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// Deadline returns the session deadline when a time limit is configured.
func (e *Engine) Deadline() (time.Time, bool) {
	return e.deadline, !e.deadline.IsZero()
}

// IsComplete reports whether every drawn question has a recorded response.
func (e *Engine) IsComplete() bool {
	return e.state == StateComplete
}

// PresentNext yields the next question in draw order. It returns false once
// the session is complete or the deadline has passed; each question surfaces
// exactly once.
func (e *Engine) PresentNext() (Prompt, bool) {
	if e.sess == nil || e.state == StateComplete || e.state == StateAwaitingAnswer {
		return Prompt{}, false
	}
	if e.expired() {
		e.sess.TimedOut = true
		e.finish()
		return Prompt{}, false
	}
	if e.index >= len(e.sess.Questions) {
		e.finish()
		return Prompt{}, false
	}
	q := e.sess.Questions[e.index]
	e.current = e.buildPrompt(q)
	e.state = StateAwaitingAnswer
	e.questionStart = time.Now()
	return e.current, true
}

func (e *Engine) buildPrompt(q model.Question) Prompt {
	prompt := Prompt{
		Question:     q,
		Number:       e.index + 1,
		Total:        len(e.sess.Questions),
		Options:      q.Options,
		CorrectIndex: q.CorrectAnswer,
	}
	if !e.opts.Shuffle {
		return prompt
	}
	perm := e.sampler.Perm(len(q.Options))
	options := make([]string, len(q.Options))
	for i, src := range perm {
		options[i] = q.Options[src]
		if src+1 == q.CorrectAnswer {
			prompt.CorrectIndex = i + 1
		}
	}
	prompt.Options = options
	return prompt
}

// Current returns the prompt awaiting an answer.
func (e *Engine) Current() Prompt {
	return e.current
}

// SubmitAnswer validates and records the chosen 1-based option index.
// Out-of-range input returns ErrInvalidInput without recording anything,
// so the boundary can re-prompt. An answer arriving past the deadline is
// converted into a timeout record and the session ends.
func (e *Engine) SubmitAnswer(chosenIndex int) (model.Response, error) {
	if e.state != StateAwaitingAnswer {
		return model.Response{}, fmt.Errorf("no question awaiting an answer")
	}
	if e.expired() {
		return e.Timeout()
	}
	if chosenIndex < 1 || chosenIndex > len(e.current.Options) {
		return model.Response{}, fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidInput, chosenIndex, len(e.current.Options))
	}
	resp := model.Response{
		QuestionID:  e.current.Question.ID,
		Topic:       e.current.Question.Topic,
		Difficulty:  e.current.Question.Difficulty,
		ChosenIndex: chosenIndex,
		Correct:     chosenIndex == e.current.CorrectIndex,
		TimeTaken:   time.Since(e.questionStart),
	}
	e.record(resp)
	return resp, nil
}

// Skip records the current question as incorrect without an answer. Past
// the deadline it converts into a timeout record instead.
func (e *Engine) Skip() (model.Response, error) {
	if e.state != StateAwaitingAnswer {
		return model.Response{}, fmt.Errorf("no question awaiting an answer")
	}
	if e.expired() {
		return e.Timeout()
	}
	resp := model.Response{
		QuestionID: e.current.Question.ID,
		Topic:      e.current.Question.Topic,
		Difficulty: e.current.Question.Difficulty,
		Skipped:    true,
		TimeTaken:  time.Since(e.questionStart),
	}
	e.record(resp)
	return resp, nil
}

// Timeout records the awaited question as incorrect with a timed-out marker
// and ends the session early. Already-recorded responses are retained.
func (e *Engine) Timeout() (model.Response, error) {
	if e.state != StateAwaitingAnswer {
		return model.Response{}, fmt.Errorf("no question awaiting an answer")
	}
	resp := model.Response{
		QuestionID: e.current.Question.ID,
		Topic:      e.current.Question.Topic,
		Difficulty: e.current.Question.Difficulty,
		TimedOut:   true,
		TimeTaken:  time.Since(e.questionStart),
	}
	e.sess.Responses = append(e.sess.Responses, resp)
	e.sess.TimedOut = true
	e.finish()
	return resp, nil
}

func (e *Engine) expired() bool {
	return !e.deadline.IsZero() && time.Now().After(e.deadline)
}

func (e *Engine) record(resp model.Response) {
	e.sess.Responses = append(e.sess.Responses, resp)
	e.index++
	if e.index >= len(e.sess.Questions) {
		e.finish()
		return
	}
	e.state = StateRecorded
}

func (e *Engine) finish() {
	e.state = StateComplete
	if e.sess.EndedAt.IsZero() {
		e.sess.EndedAt = time.Now()
	}
}
