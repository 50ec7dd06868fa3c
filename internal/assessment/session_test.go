package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/scoring"
)

func pairBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New("pair", "Pair", 5, []string{"cat0", "cat1"},
		[]string{"q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9"})
	require.NoError(t, err)
	return b
}

func TestNew_InitialState(t *testing.T) {
	s := New(bank.Default())

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, PhaseAnswering, s.Phase())
	assert.False(t, s.Submitted())
	assert.False(t, s.StartedAt.IsZero())
	assert.True(t, s.SubmittedAt.IsZero())
	assert.Equal(t, 0, s.Answered())
	for i, v := range s.Responses() {
		assert.Equal(t, 3, v, "question %d", i)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	b := bank.Default()
	assert.NotEqual(t, New(b).ID, New(b).ID)
}

func TestSetAnswer(t *testing.T) {
	s := New(pairBank(t))

	require.NoError(t, s.SetAnswer(0, 1))
	require.NoError(t, s.SetAnswer(9, 5))
	assert.Equal(t, 1, s.Answer(0))
	assert.Equal(t, 5, s.Answer(9))
	assert.Equal(t, 2, s.Answered())

	// Moving back to the default no longer counts as answered.
	require.NoError(t, s.SetAnswer(0, 3))
	assert.Equal(t, 1, s.Answered())
}

func TestSetAnswer_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		value   int
		wantErr error
	}{
		{"negative index", -1, 3, ErrIndexOutOfRange},
		{"index past end", 10, 3, ErrIndexOutOfRange},
		{"value below scale", 0, 0, ErrValueOutOfRange},
		{"value above scale", 0, 6, ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(pairBank(t))
			err := s.SetAnswer(tt.index, tt.value)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, s.Responses())
		})
	}
}

func TestSetAnswer_BoundariesAccepted(t *testing.T) {
	s := New(pairBank(t))
	assert.NoError(t, s.SetAnswer(0, 1))
	assert.NoError(t, s.SetAnswer(1, 5))
}

func TestAnswer_InvalidIndex(t *testing.T) {
	s := New(pairBank(t))
	assert.Equal(t, 0, s.Answer(-1))
	assert.Equal(t, 0, s.Answer(100))
}

func TestResponses_ReturnsCopy(t *testing.T) {
	s := New(pairBank(t))
	r := s.Responses()
	r[0] = 5
	assert.Equal(t, 3, s.Answer(0))
}

func TestSubmit_OnlyOnce(t *testing.T) {
	s := New(pairBank(t))

	require.NoError(t, s.Submit())
	assert.Equal(t, PhaseReporting, s.Phase())
	assert.False(t, s.SubmittedAt.IsZero())

	assert.ErrorIs(t, s.Submit(), ErrAlreadySubmitted)
	assert.Equal(t, PhaseReporting, s.Phase())
}

func TestSetAnswer_AfterSubmit(t *testing.T) {
	s := New(pairBank(t))
	require.NoError(t, s.Submit())

	assert.ErrorIs(t, s.SetAnswer(0, 5), ErrAlreadySubmitted)
	assert.Equal(t, 3, s.Answer(0))
}

func TestResult_BeforeSubmit(t *testing.T) {
	s := New(pairBank(t))

	_, err := s.Result()
	assert.ErrorIs(t, err, ErrNotSubmitted)
	_, err = s.Top(2)
	assert.ErrorIs(t, err, ErrNotSubmitted)
	_, err = s.Report(2)
	assert.ErrorIs(t, err, ErrNotSubmitted)
}

func TestResult_SplitCategories(t *testing.T) {
	s, err := FromResponses(pairBank(t), []int{1, 1, 1, 1, 1, 5, 5, 5, 5, 5})
	require.NoError(t, err)
	require.NoError(t, s.Submit())

	scores, err := s.Result()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 1.0, scores[0].Score)
	assert.Equal(t, 5.0, scores[1].Score)

	top, err := s.Top(1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "cat1", top[0].Category.Label)
}

func TestResult_RecomputedEachCall(t *testing.T) {
	s := New(bank.Default())
	require.NoError(t, s.Submit())

	first, err := s.Result()
	require.NoError(t, err)
	first[0].Score = 99

	second, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, 3.0, second[0].Score)
}

func TestFromResponses_Validation(t *testing.T) {
	b := pairBank(t)

	_, err := FromResponses(b, []int{1, 2, 3})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = FromResponses(b, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 9})
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestReport(t *testing.T) {
	b := bank.Default()
	s := New(b)
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	require.NoError(t, s.Submit())

	r, err := s.Report(scoring.DefaultTopK)
	require.NoError(t, err)
	assert.Equal(t, s.ID, r.SessionID)
	assert.Equal(t, b.ID, r.BankID)
	assert.Equal(t, fixed, r.SubmittedAt)
	assert.Len(t, r.Scores, 9)
	require.Len(t, r.Top, 2)
	assert.Equal(t, 0, r.Top[0].Category.Index)
	assert.Equal(t, 1, r.Top[1].Category.Index)
	assert.Equal(t, [2]float64{0, 5}, r.Chart.Domain)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "answering", PhaseAnswering.String())
	assert.Equal(t, "reporting", PhaseReporting.String())
	assert.Equal(t, "phase(7)", Phase(7).String())
}

func TestReport_Record(t *testing.T) {
	b := bank.Default()
	resp := b.DefaultResponses()
	for i := 10; i < 15; i++ {
		resp[i] = 5
	}
	s, err := FromResponses(b, resp)
	require.NoError(t, err)
	require.NoError(t, s.Submit())
	r, err := s.Report(1)
	require.NoError(t, err)

	rec := r.Record("note")
	assert.Equal(t, s.ID, rec.SessionID)
	assert.Equal(t, b.ID, rec.BankID)
	assert.Equal(t, r.SubmittedAt, rec.Timestamp)
	assert.Equal(t, "note", rec.Insight)
	require.Len(t, rec.Scores, 9)
	assert.Equal(t, 3.0, rec.Scores[0].Score)
	require.Len(t, rec.Top, 1)
	assert.Equal(t, 2, rec.Top[0].Index)
	assert.Equal(t, b.Categories[2].Label, rec.Top[0].Label)
	assert.Equal(t, 5.0, rec.Top[0].Score)
}
