package scoring

import (
	"testing"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCategoryBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New("pair", "Pair", 5, []string{"cat0", "cat1"},
		[]string{"q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9"})
	require.NoError(t, err)
	return b
}

func scoresOf(cs []CategoryScore) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Score
	}
	return out
}

func labelsOf(cs []CategoryScore) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Category.Label
	}
	return out
}

func constant(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScore_ConstantInputYieldsConstantScores(t *testing.T) {
	b := bank.Default()
	for v := b.Scale.Min; v <= b.Scale.Max; v++ {
		got := Score(b, constant(b.Len(), v))
		require.Len(t, got, b.NumCategories())
		for _, s := range got {
			assert.Equal(t, float64(v), s.Score, "value %d category %s", v, s.Category.Label)
		}
	}
}

func TestScore_CategoryOrder(t *testing.T) {
	b := bank.Default()
	got := Score(b, b.DefaultResponses())
	assert.Equal(t, b.Labels(), labelsOf(got))
	for i, s := range got {
		assert.Equal(t, i, s.Category.Index)
	}
}

func TestScore_SplitCategories(t *testing.T) {
	b := twoCategoryBank(t)
	got := Score(b, []int{1, 1, 1, 1, 1, 5, 5, 5, 5, 5})
	assert.Equal(t, []float64{1.00, 5.00}, scoresOf(got))

	top := Top(got, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "cat1", top[0].Category.Label)
}

func TestScore_MixedValuesRoundToTwoDecimals(t *testing.T) {
	b := twoCategoryBank(t)
	// cat0: 1+2+2+2+2 = 9/5 = 1.8; cat1: 5+4+4+4+4 = 21/5 = 4.2
	got := Score(b, []int{1, 2, 2, 2, 2, 5, 4, 4, 4, 4})
	assert.Equal(t, []float64{1.8, 4.2}, scoresOf(got))
}

func TestScore_BoundedByScale(t *testing.T) {
	b := bank.Default()
	resp := make([]int, b.Len())
	for i := range resp {
		resp[i] = 1 + (i*7)%5
	}
	for _, s := range Score(b, resp) {
		assert.GreaterOrEqual(t, s.Score, 1.0)
		assert.LessOrEqual(t, s.Score, 5.0)
	}
}

func TestScore_Idempotent(t *testing.T) {
	b := bank.Default()
	resp := make([]int, b.Len())
	for i := range resp {
		resp[i] = 1 + i%5
	}
	assert.Equal(t, Score(b, resp), Score(b, resp))
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	b := twoCategoryBank(t)
	resp := []int{1, 2, 3, 4, 5, 5, 4, 3, 2, 1}
	before := append([]int(nil), resp...)
	Score(b, resp)
	assert.Equal(t, before, resp)
}

func TestScore_PanicsOnLengthMismatch(t *testing.T) {
	b := twoCategoryBank(t)
	assert.Panics(t, func() { Score(b, []int{1, 2, 3}) })
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name       string
		sum, count int
		want       float64
	}{
		{"exact integer", 15, 5, 3.00},
		{"one fifth", 16, 5, 3.20},
		{"half up at third decimal", 9, 8, 1.13},
		{"thirds round down", 10, 3, 3.33},
		{"two thirds round up", 11, 3, 3.67},
		{"minimum", 5, 5, 1.00},
		{"maximum", 25, 5, 5.00},
		{"zero sum", 0, 4, 0.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round2(tt.sum, tt.count))
		})
	}
}

func TestTop_AllEqualKeepsIndexOrder(t *testing.T) {
	b := twoCategoryBank(t)
	got := Top(Score(b, constant(10, 3)), DefaultTopK)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"cat0", "cat1"}, labelsOf(got))
}

func TestTop_DefaultBankAllNeutral(t *testing.T) {
	b := bank.Default()
	got := Top(Score(b, b.DefaultResponses()), DefaultTopK)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Category.Index)
	assert.Equal(t, 1, got[1].Category.Index)
}

func TestTop_SortsDescendingWithStableTies(t *testing.T) {
	scores := []CategoryScore{
		{Category: bank.Category{Index: 0, Label: "a"}, Score: 2.0},
		{Category: bank.Category{Index: 1, Label: "b"}, Score: 4.2},
		{Category: bank.Category{Index: 2, Label: "c"}, Score: 3.0},
		{Category: bank.Category{Index: 3, Label: "d"}, Score: 4.2},
	}
	got := Top(scores, 4)
	assert.Equal(t, []string{"b", "d", "c", "a"}, labelsOf(got))
}

func TestTop_KBounds(t *testing.T) {
	scores := []CategoryScore{
		{Category: bank.Category{Index: 0, Label: "a"}, Score: 1},
		{Category: bank.Category{Index: 1, Label: "b"}, Score: 2},
	}

	assert.Empty(t, Top(scores, 0))
	assert.Empty(t, Top(scores, -3))
	assert.NotNil(t, Top(scores, 0))
	assert.Len(t, Top(scores, 10), 2)
	assert.Empty(t, Top(nil, 2))
}

func TestTop_DoesNotMutateInput(t *testing.T) {
	scores := []CategoryScore{
		{Category: bank.Category{Index: 0, Label: "a"}, Score: 1},
		{Category: bank.Category{Index: 1, Label: "b"}, Score: 5},
		{Category: bank.Category{Index: 2, Label: "c"}, Score: 3},
	}
	before := append([]CategoryScore(nil), scores...)
	Top(scores, 2)
	assert.Equal(t, before, scores)
}

func TestTop_IsPrefixOfFullRanking(t *testing.T) {
	b := bank.Default()
	resp := make([]int, b.Len())
	for i := range resp {
		resp[i] = 1 + (i*3)%5
	}
	scores := Score(b, resp)
	full := Top(scores, len(scores))
	for k := 0; k <= len(scores); k++ {
		assert.Equal(t, full[:k], Top(scores, k), "k=%d", k)
	}
}

func TestChart(t *testing.T) {
	b := twoCategoryBank(t)
	data := Chart(Score(b, []int{1, 1, 1, 1, 1, 5, 5, 5, 5, 5}), b.Scale)

	assert.Equal(t, [2]float64{0, 5}, data.Domain)
	assert.Equal(t, []ChartPoint{{Type: "cat0", Score: 1}, {Type: "cat1", Score: 5}}, data.Points)
}

func TestBuildReport(t *testing.T) {
	b := bank.Default()
	res := BuildReport(b, b.DefaultResponses(), DefaultTopK)
	assert.Len(t, res.Scores, 9)
	assert.Len(t, res.Top, 2)
	assert.Len(t, res.Chart.Points, 9)
}
