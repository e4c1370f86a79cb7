package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AgentSummary is one agent's totals over a trace.
type AgentSummary struct {
	Kind           string  `csv:"kind"`
	Index          int     `csv:"index"`
	Ticks          int     `csv:"ticks"`
	PathLength     float64 `csv:"path_length"`
	MinPlayerDist  float64 `csv:"min_player_dist"`
	MeanPlayerDist float64 `csv:"mean_player_dist"`
	WatchFraction  float64 `csv:"watch_fraction"` // Villagers only
	WalkFraction   float64 `csv:"walk_fraction"`  // Villagers only
}

// TraceSummary aggregates a decoded trace.
type TraceSummary struct {
	Ticks         int
	FirstTick     int32
	LastTick      int32
	PlayerPath    float64
	Events        map[string]int
	Agents        []AgentSummary
	ZombieDistP10 float64 // Over every zombie-tick
	ZombieDistP50 float64
}

type agentKey struct {
	kind  string
	index int
}

type agentAccum struct {
	ticks int
	path  float64
	last  [3]float64
	dists []float64
	watch int
	walk  int
}

// SummarizeTrace computes per-agent and scene totals from trace records.
func SummarizeTrace(ticks []TickTrace) TraceSummary {
	sum := TraceSummary{Events: make(map[string]int)}
	if len(ticks) == 0 {
		return sum
	}
	sum.Ticks = len(ticks)
	sum.FirstTick = ticks[0].Tick
	sum.LastTick = ticks[len(ticks)-1].Tick

	accums := make(map[agentKey]*agentAccum)
	var zombieDists []float64

	for i, tt := range ticks {
		if i > 0 {
			sum.PlayerPath += dist3(ticks[i-1].Player, tt.Player)
		}
		for _, ev := range tt.Events {
			n := ev.Count
			if n == 0 {
				n = 1
			}
			sum.Events[ev.Type.String()] += n
		}

		for _, a := range tt.Agents {
			k := agentKey{a.Kind, a.Index}
			acc, ok := accums[k]
			if !ok {
				acc = &agentAccum{last: a.Pos}
				accums[k] = acc
			}
			acc.path += dist3(acc.last, a.Pos)
			acc.last = a.Pos
			acc.ticks++

			d := dist3(a.Pos, tt.Player)
			acc.dists = append(acc.dists, d)
			if a.Kind == "zombie" {
				zombieDists = append(zombieDists, d)
			}
			switch a.State {
			case "WATCH":
				acc.watch++
			case "WALK":
				acc.walk++
			}
		}
	}

	for k, acc := range accums {
		s := AgentSummary{
			Kind:           k.kind,
			Index:          k.index,
			Ticks:          acc.ticks,
			PathLength:     acc.path,
			MinPlayerDist:  math.Inf(1),
			MeanPlayerDist: stat.Mean(acc.dists, nil),
		}
		for _, d := range acc.dists {
			s.MinPlayerDist = math.Min(s.MinPlayerDist, d)
		}
		if k.kind == "villager" {
			s.WatchFraction = float64(acc.watch) / float64(acc.ticks)
			s.WalkFraction = float64(acc.walk) / float64(acc.ticks)
		}
		sum.Agents = append(sum.Agents, s)
	}
	sort.Slice(sum.Agents, func(i, j int) bool {
		if sum.Agents[i].Kind != sum.Agents[j].Kind {
			return kindRank(sum.Agents[i].Kind) < kindRank(sum.Agents[j].Kind)
		}
		return sum.Agents[i].Index < sum.Agents[j].Index
	})

	if len(zombieDists) > 0 {
		sort.Float64s(zombieDists)
		sum.ZombieDistP10 = stat.Quantile(0.1, stat.Empirical, zombieDists, nil)
		sum.ZombieDistP50 = stat.Quantile(0.5, stat.Empirical, zombieDists, nil)
	}
	return sum
}

// kindRank orders villagers before zombies, then any other kind.
func kindRank(kind string) int {
	switch kind {
	case "villager":
		return 0
	case "zombie":
		return 1
	}
	return 2
}

func dist3(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
