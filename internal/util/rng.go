package util

import "math/rand/v2"

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewPCG(uint64(seed), 0)
	return rand.New(src)
}

// TrialState is the PCG state of one trial's stream: the run seed in the high
// word and the trial index in the low word. Distinct trials of a run never
// share a state, and a trial's stream does not depend on the worker running it.
func TrialState(base int64, trial int) (uint64, uint64) {
	return uint64(base), uint64(trial)
}

// NewTrial returns the stream of one trial.
func NewTrial(base int64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(TrialState(base, trial)))
}
