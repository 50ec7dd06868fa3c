// Package assessment holds the state of one questionnaire run: the response
// vector while answering, and the derived results once submitted.
package assessment

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/scoring"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseReporting
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseReporting:
		return "reporting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	ErrIndexOutOfRange  = errors.New("question index out of range")
	ErrValueOutOfRange  = errors.New("response value out of range")
	ErrAlreadySubmitted = errors.New("assessment already submitted")
	ErrNotSubmitted     = errors.New("assessment not submitted yet")
)

// Session is a single pass through a question bank. It is not safe for
// concurrent use; the TUI and the API each own their sessions.
type Session struct {
	ID          string
	StartedAt   time.Time
	SubmittedAt time.Time

	bank      *bank.Bank
	responses []int
	phase     Phase
	now       func() time.Time
}

// New starts a session with every response set to the scale default.
func New(b *bank.Bank) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		bank:      b,
		responses: b.DefaultResponses(),
		phase:     PhaseAnswering,
		now:       time.Now,
	}
	s.StartedAt = s.now()
	return s
}

// FromResponses starts a session and fills it with a complete response
// vector. Each value goes through SetAnswer, so the same range checks apply.
func FromResponses(b *bank.Bank, responses []int) (*Session, error) {
	if len(responses) != b.Len() {
		return nil, fmt.Errorf("%w: got %d responses, want %d", ErrIndexOutOfRange, len(responses), b.Len())
	}
	s := New(b)
	for i, v := range responses {
		if err := s.SetAnswer(i, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) Bank() *bank.Bank { return s.bank }
func (s *Session) Phase() Phase     { return s.phase }
func (s *Session) Submitted() bool  { return s.phase == PhaseReporting }

// SetAnswer records the rating for one question.
func (s *Session) SetAnswer(index, value int) error {
	if s.phase != PhaseAnswering {
		return ErrAlreadySubmitted
	}
	if index < 0 || index >= len(s.responses) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(s.responses))
	}
	if !s.bank.Scale.Contains(value) {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrValueOutOfRange, value, s.bank.Scale.Min, s.bank.Scale.Max)
	}
	s.responses[index] = value
	return nil
}

// Answer returns the current rating for a question, or 0 for an invalid index.
func (s *Session) Answer(index int) int {
	if index < 0 || index >= len(s.responses) {
		return 0
	}
	return s.responses[index]
}

// Responses returns a copy of the response vector.
func (s *Session) Responses() []int {
	return slices.Clone(s.responses)
}

// Answered counts questions whose rating differs from the scale default.
func (s *Session) Answered() int {
	n := 0
	for _, v := range s.responses {
		if v != s.bank.Scale.Default {
			n++
		}
	}
	return n
}

// Submit moves the session to the reporting phase. It succeeds once.
func (s *Session) Submit() error {
	if s.phase != PhaseAnswering {
		return ErrAlreadySubmitted
	}
	s.phase = PhaseReporting
	s.SubmittedAt = s.now()
	return nil
}

// Result scores the response vector. It is recomputed on every call.
func (s *Session) Result() ([]scoring.CategoryScore, error) {
	if s.phase != PhaseReporting {
		return nil, ErrNotSubmitted
	}
	return scoring.Score(s.bank, s.responses), nil
}

// Top returns the k highest-scoring categories.
func (s *Session) Top(k int) ([]scoring.CategoryScore, error) {
	scores, err := s.Result()
	if err != nil {
		return nil, err
	}
	return scoring.Top(scores, k), nil
}
