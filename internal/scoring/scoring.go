// Package scoring turns a response vector into per-category averages and
// ranks them.
//
// The engine does not validate input: callers guarantee the vector has one
// in-range integer per question (see package assessment). Scores are
// recomputed on every call and never cached.
package scoring

import (
	"fmt"
	"slices"

	"github.com/abhisek/lifecompass/internal/bank"
)

// DefaultTopK is the number of categories highlighted on the report.
const DefaultTopK = 2

// CategoryScore is the averaged rating of one category.
type CategoryScore struct {
	Category bank.Category `json:"category"`
	Score    float64       `json:"score"`
}

// Score returns one CategoryScore per category, in category-index order.
// Each score is the mean of the category's responses rounded half-up to two
// decimals. It panics if len(responses) != b.Len().
func Score(b *bank.Bank, responses []int) []CategoryScore {
	if len(responses) != b.Len() {
		panic(fmt.Sprintf("scoring: got %d responses for a bank of %d questions", len(responses), b.Len()))
	}

	sums := make([]int, b.NumCategories())
	counts := make([]int, b.NumCategories())
	for i, v := range responses {
		c := b.CategoryOf(i)
		sums[c] += v
		counts[c]++
	}

	out := make([]CategoryScore, b.NumCategories())
	for c := range out {
		out[c] = CategoryScore{
			Category: b.Categories[c],
			Score:    Round2(sums[c], counts[c]),
		}
	}
	return out
}

// Round2 returns sum/count rounded half-up to two decimal places.
// The division is done on integers so exact halves such as 1.125 always
// round up. count must be positive; bank validation guarantees that.
func Round2(sum, count int) float64 {
	num := 200*sum + count
	den := 2 * count
	hundredths := num / den
	// Go truncates toward zero; keep floor semantics for negative sums.
	if num%den != 0 && (num < 0) != (den < 0) {
		hundredths--
	}
	return float64(hundredths) / 100
}

// Top returns the k highest-scoring categories, highest first. Equal scores
// keep ascending category-index order. The input slice is not modified.
func Top(scores []CategoryScore, k int) []CategoryScore {
	if k <= 0 {
		return []CategoryScore{}
	}

	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, func(a, b CategoryScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
