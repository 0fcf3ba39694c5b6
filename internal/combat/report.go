package combat

import "github.com/google/uuid"

// Report is the JSON document handed to callers of the CLI and HTTP surface.
type Report struct {
	RunID      string            `json:"run_id"`
	A          string            `json:"a"`
	B          string            `json:"b"`
	Trials     int               `json:"trials"`
	Seed       int64             `json:"seed"`
	MaxTicks   int               `json:"max_ticks"`
	WinRateA   float64           `json:"win_rate_a"`
	Leader     string            `json:"leader"`
	LeaderRate float64           `json:"leader_rate"`
	Tally      Tally             `json:"tally"`
	ElapsedMS  float64           `json:"elapsed_ms"`
	Trajectory []TrajectoryPoint `json:"trajectory,omitempty"`

	HealthHistoryA HealthHistory `json:"health_history_a,omitempty"`
	HealthHistoryB HealthHistory `json:"health_history_b,omitempty"`
}

// NewReport labels a result. Raw histories are included only when withHistory
// is set; the averaged trajectory is included whenever health was tracked.
func NewReport(labelA, labelB string, res *Result, withHistory bool) Report {
	leader, rate := res.Leader()
	rep := Report{
		RunID:      uuid.NewString(),
		A:          labelA,
		B:          labelB,
		Trials:     res.Trials,
		Seed:       res.Seed,
		MaxTicks:   res.MaxTicks,
		WinRateA:   res.WinRateA,
		Leader:     leader,
		LeaderRate: rate,
		Tally:      res.Tally,
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		Trajectory: res.Trajectory(),
	}
	if withHistory {
		rep.HealthHistoryA = res.HistoryA
		rep.HealthHistoryB = res.HistoryB
	}
	return rep
}
