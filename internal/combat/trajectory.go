package combat

// HealthHistory holds, per tick index, one health sample from every trial
// still running at that tick. Samples at a tick keep trial order.
type HealthHistory [][]int

func (h HealthHistory) Ticks() int { return len(h) }

func (h HealthHistory) At(tick int) []int {
	if tick < 0 || tick >= len(h) {
		return nil
	}
	return h[tick]
}

func (h HealthHistory) appendTrial(snaps []int) HealthHistory {
	for t, hp := range snaps {
		if t == len(h) {
			h = append(h, nil)
		}
		h[t] = append(h[t], hp)
	}
	return h
}

func (h HealthHistory) merge(o HealthHistory) HealthHistory {
	for t, samples := range o {
		if t == len(h) {
			h = append(h, nil)
		}
		h[t] = append(h[t], samples...)
	}
	return h
}

type TrajectoryPoint struct {
	Tick    int     `json:"tick"`
	Time    float64 `json:"t"`
	AvgA    float64 `json:"avg_a"`
	AvgB    float64 `json:"avg_b"`
	Samples int     `json:"samples"`
}

// Summarize averages each tick's samples over the samples actually present at
// that tick. Ticks missing samples on either side are left out.
func Summarize(histA, histB HealthHistory) []TrajectoryPoint {
	n := max(len(histA), len(histB))
	out := make([]TrajectoryPoint, 0, n)
	for t := 0; t < n; t++ {
		sa, sb := histA.At(t), histB.At(t)
		if len(sa) == 0 || len(sb) == 0 {
			continue
		}
		out = append(out, TrajectoryPoint{
			Tick:    t,
			Time:    float64(t) * TickLength,
			AvgA:    mean(sa),
			AvgB:    mean(sb),
			Samples: len(sa),
		})
	}
	return out
}

func mean(xs []int) float64 {
	var sum int64
	for _, x := range xs {
		sum += int64(x)
	}
	return float64(sum) / float64(len(xs))
}
