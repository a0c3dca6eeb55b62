// Package telemetry records session events and writes CSV output for
// post-run analysis.
package telemetry

// Record is one timestamped session event row in events.csv.
type Record struct {
	Time   float64 `csv:"time"`
	Kind   string  `csv:"event"`
	Detail string  `csv:"detail"`
	Delta  int     `csv:"delta"`
	Score  int     `csv:"score"`
}

// Collector accumulates event records over a session. It is not safe for
// concurrent use; the step loop is the only writer.
type Collector struct {
	Records []Record

	scoreEvents int
	deltaSum    int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordEvent appends a non-scoring simulation event.
func (c *Collector) RecordEvent(time float64, kind, detail string, delta, score int) {
	c.Records = append(c.Records, Record{Time: time, Kind: kind, Detail: detail, Delta: delta, Score: score})
}

// RecordScore appends a score change. The running delta sum lets the summary
// cross-check the final score against the event stream.
func (c *Collector) RecordScore(time float64, reason string, delta, score int) {
	c.Records = append(c.Records, Record{Time: time, Kind: "score", Detail: reason, Delta: delta, Score: score})
	c.scoreEvents++
	c.deltaSum += delta
}

// DeltaSum returns the sum of all recorded score deltas.
func (c *Collector) DeltaSum() int {
	return c.deltaSum
}

// ScoreEvents returns the number of score changes recorded.
func (c *Collector) ScoreEvents() int {
	return c.scoreEvents
}

// CountKind returns how many records of the given kind were collected.
func (c *Collector) CountKind(kind string) int {
	n := 0
	for _, r := range c.Records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}
