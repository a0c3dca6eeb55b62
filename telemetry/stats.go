package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary is the one-row session digest written to summary.csv.
type Summary struct {
	Outcome        string  `csv:"outcome"`
	Duration       float64 `csv:"duration"`
	Score          int     `csv:"score"`
	BirdsRemaining int     `csv:"birds_remaining"`
	ScoreEvents    int     `csv:"score_events"`
	DeltaSum       int     `csv:"delta_sum"`
	DeltaMean      float64 `csv:"delta_mean"`
	DeltaStd       float64 `csv:"delta_std"`
	DeltaP50       float64 `csv:"delta_p50"`
	EggsCollected  int     `csv:"eggs_collected"`
	BirdsRanAway   int     `csv:"birds_ran_away"`
	BirdsKilled    int     `csv:"birds_killed"`
	PredatorsBeat  int     `csv:"predators_defeated"`
}

// Summarize reduces the collected event stream to a summary row. DeltaSum
// equaling the final score is the consistency check analysis scripts rely on.
func (c *Collector) Summarize(outcome string, duration float64, score, birdsRemaining int) Summary {
	s := Summary{
		Outcome:        outcome,
		Duration:       duration,
		Score:          score,
		BirdsRemaining: birdsRemaining,
		ScoreEvents:    c.scoreEvents,
		DeltaSum:       c.deltaSum,
		EggsCollected:  countKindDetail(c.Records, "egg_collected", ""),
		BirdsRanAway:   c.CountKind("bird_ran_away"),
		BirdsKilled:    c.CountKind("predator_escaped"),
		PredatorsBeat:  countDetailSuffix(c.Records, "predator_struck", " defeated"),
	}

	deltas := make([]float64, 0, c.scoreEvents)
	for _, r := range c.Records {
		if r.Kind == "score" {
			deltas = append(deltas, float64(r.Delta))
		}
	}
	if len(deltas) > 0 {
		s.DeltaMean = stat.Mean(deltas, nil)
		s.DeltaStd = stat.StdDev(deltas, nil)
		sort.Float64s(deltas)
		s.DeltaP50 = stat.Quantile(0.5, stat.Empirical, deltas, nil)
	}
	return s
}

// countKindDetail counts rows matching kind and detail exactly. The egg
// count must skip the bonus row that shares the egg_collected kind.
func countKindDetail(records []Record, kind, detail string) int {
	n := 0
	for _, r := range records {
		if r.Kind == kind && r.Detail == detail {
			n++
		}
	}
	return n
}

func countDetailSuffix(records []Record, kind, suffix string) int {
	n := 0
	for _, r := range records {
		if r.Kind == kind && len(r.Detail) >= len(suffix) && r.Detail[len(r.Detail)-len(suffix):] == suffix {
			n++
		}
	}
	return n
}
