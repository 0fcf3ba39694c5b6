package combat

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"duelsim/internal/config"
	"duelsim/internal/util"
)

type Request struct {
	A           config.ArchetypeParams `json:"a"`
	B           config.ArchetypeParams `json:"b"`
	Trials      int                    `json:"trials"`
	TrackHealth bool                   `json:"track_health"`
	Seed        int64                  `json:"seed"`
}

func (r Request) Validate() error {
	var errs []error
	if r.Trials <= 0 {
		errs = append(errs, &config.ValidationError{Field: "trials", Value: r.Trials, Constraint: "> 0"})
	}
	errs = append(errs, r.A.Validate("a"), r.B.Validate("b"))
	return errors.Join(errs...)
}

// Tally counts trial outcomes. WinsA+WinsB+Ties+Stalemates equals the number
// of trials run.
type Tally struct {
	WinsA      int `json:"wins_a"`
	WinsB      int `json:"wins_b"`
	Ties       int `json:"ties"`
	Stalemates int `json:"stalemates"`
}

func (t *Tally) add(o Outcome) {
	switch o {
	case OutcomeWinA:
		t.WinsA++
	case OutcomeWinB:
		t.WinsB++
	case OutcomeStalemate:
		t.Stalemates++
	default:
		t.Ties++
	}
}

func (t *Tally) merge(o Tally) {
	t.WinsA += o.WinsA
	t.WinsB += o.WinsB
	t.Ties += o.Ties
	t.Stalemates += o.Stalemates
}

func (t Tally) Total() int { return t.WinsA + t.WinsB + t.Ties + t.Stalemates }

// WinRate is the percentage of decisive trials won by A, or exactly 50 when
// no trial was decisive.
func WinRate(winsA, winsB int) float64 {
	decisive := winsA + winsB
	if decisive == 0 {
		return 50.0
	}
	return float64(winsA) / float64(decisive) * 100
}

type Result struct {
	Trials   int           `json:"trials"`
	Seed     int64         `json:"seed"`
	MaxTicks int           `json:"max_ticks"`
	WinRateA float64       `json:"win_rate_a"`
	Tally    Tally         `json:"tally"`
	Elapsed  time.Duration `json:"-"`

	HistoryA HealthHistory `json:"health_history_a,omitempty"`
	HistoryB HealthHistory `json:"health_history_b,omitempty"`
}

// Leader names the side favoured by the win rate ("A", "B" or "even") and
// its rate.
func (r *Result) Leader() (string, float64) {
	switch {
	case r.WinRateA > 50:
		return "A", r.WinRateA
	case r.WinRateA < 50:
		return "B", 100 - r.WinRateA
	default:
		return "even", 50
	}
}

// Balanced reports whether the win rate is within tolerance points of 50.
func (r *Result) Balanced(tolerance float64) bool {
	d := r.WinRateA - 50
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// Trajectory averages the tracked histories; nil when health was not tracked.
func (r *Result) Trajectory() []TrajectoryPoint {
	if r.HistoryA == nil {
		return nil
	}
	return Summarize(r.HistoryA, r.HistoryB)
}

type Simulator struct {
	workers  int
	maxTicks int
	log      *zap.Logger
}

type Option func(*Simulator)

// WithWorkers bounds how many trial chunks run at once; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option { return func(s *Simulator) { s.workers = n } }

// WithMaxTicks sets the per-trial tick ceiling; n <= 0 keeps DefaultMaxTicks.
func WithMaxTicks(n int) Option { return func(s *Simulator) { s.maxTicks = n } }

func WithLogger(l *zap.Logger) Option { return func(s *Simulator) { s.log = l } }

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{}
	for _, o := range opts {
		o(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.maxTicks <= 0 {
		s.maxTicks = DefaultMaxTicks
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

func (s *Simulator) MaxTicks() int { return s.maxTicks }

// Simulate runs trials with default options and a time-based seed.
func Simulate(a, b config.ArchetypeParams, trials int, trackHealth bool) (*Result, error) {
	return NewSimulator().Run(context.Background(), Request{
		A: a, B: b, Trials: trials, TrackHealth: trackHealth,
		Seed: time.Now().UnixNano(),
	})
}

// partial is owned by exactly one goroutine until Run merges it.
type partial struct {
	tally    Tally
	historyA HealthHistory
	historyB HealthHistory
}

// Run validates req and plays req.Trials independent fights. Trials are split
// into contiguous chunks, one partial result per chunk, merged in chunk order
// so the result is identical for any worker count.
func (s *Simulator) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	chunks := partition(req.Trials, s.workers)
	parts := make([]partial, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, c := range chunks {
		g.Go(func() error {
			return s.runChunk(ctx, req, c, &parts[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Trials: req.Trials, Seed: req.Seed, MaxTicks: s.maxTicks}
	for _, p := range parts {
		res.Tally.merge(p.tally)
		if req.TrackHealth {
			res.HistoryA = res.HistoryA.merge(p.historyA)
			res.HistoryB = res.HistoryB.merge(p.historyB)
		}
	}
	res.WinRateA = WinRate(res.Tally.WinsA, res.Tally.WinsB)
	res.Elapsed = time.Since(start)

	if res.Tally.Stalemates > 0 {
		s.log.Warn("trials hit tick ceiling",
			zap.Int("stalemates", res.Tally.Stalemates),
			zap.Int("max_ticks", s.maxTicks))
	}
	s.log.Info("simulation finished",
		zap.Int("trials", req.Trials),
		zap.Int64("seed", req.Seed),
		zap.Int("wins_a", res.Tally.WinsA),
		zap.Int("wins_b", res.Tally.WinsB),
		zap.Int("ties", res.Tally.Ties),
		zap.Int("stalemates", res.Tally.Stalemates),
		zap.Float64("win_rate_a", res.WinRateA),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

type span struct{ lo, hi int }

func partition(n, parts int) []span {
	if parts > n {
		parts = n
	}
	out := make([]span, 0, parts)
	size, rem := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		out = append(out, span{lo, hi})
		lo = hi
	}
	return out
}

func (s *Simulator) runChunk(ctx context.Context, req Request, c span, p *partial) error {
	src := rand.NewPCG(0, 0)
	rng := rand.New(src)
	for i := c.lo; i < c.hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		src.Seed(util.TrialState(req.Seed, i))
		a := NewCombatant("A", req.A)
		b := NewCombatant("B", req.B)
		out := RunTrial(rng, a, b, s.maxTicks, req.TrackHealth)
		p.tally.add(out.Outcome())
		if req.TrackHealth {
			p.historyA = p.historyA.appendTrial(out.HistoryA)
			p.historyB = p.historyB.appendTrial(out.HistoryB)
		}
	}
	return nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
