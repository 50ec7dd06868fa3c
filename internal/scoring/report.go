package scoring

import "github.com/abhisek/lifecompass/internal/bank"

// ChartPoint is one spoke of the radar chart.
type ChartPoint struct {
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// ChartData is what a radar renderer consumes: one point per category in
// category order and the value domain of the radius axis.
type ChartData struct {
	Points []ChartPoint `json:"points"`
	Domain [2]float64   `json:"domain"`
}

// Chart converts scores into radar chart input. The domain runs from 0 to
// the scale maximum so the centre of the chart means "no signal".
func Chart(scores []CategoryScore, scale bank.Scale) ChartData {
	points := make([]ChartPoint, len(scores))
	for i, s := range scores {
		points[i] = ChartPoint{Type: s.Category.Label, Score: s.Score}
	}
	return ChartData{
		Points: points,
		Domain: [2]float64{0, float64(scale.Max)},
	}
}

// Report bundles everything the presentation layer needs after submission.
type Report struct {
	Scores []CategoryScore `json:"scores"`
	Top    []CategoryScore `json:"top"`
	Chart  ChartData       `json:"chart"`
}

// BuildReport scores responses, ranks the top k and builds chart data.
func BuildReport(b *bank.Bank, responses []int, k int) Report {
	scores := Score(b, responses)
	return Report{
		Scores: scores,
		Top:    Top(scores, k),
		Chart:  Chart(scores, b.Scale),
	}
}
