// Package main summarizes a compressed tick trace written by the scene:
// event totals, player travel and per-agent movement and proximity.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/hollow/telemetry"
)

func main() {
	tracePath := flag.String("trace", "", "Path to trace.jsonl.zst")
	outPath := flag.String("out", "", "Write per-agent CSV here (empty = stdout)")
	flag.Parse()

	if *tracePath == "" {
		log.Fatal("--trace is required")
	}

	ticks, err := telemetry.ReadTrace(*tracePath)
	if err != nil {
		log.Fatalf("reading trace: %v", err)
	}
	s := telemetry.SummarizeTrace(ticks)

	fmt.Fprintf(os.Stderr, "ticks %d..%d (%d records)\n", s.FirstTick, s.LastTick, s.Ticks)
	fmt.Fprintf(os.Stderr, "player path %.1f\n", s.PlayerPath)
	fmt.Fprintf(os.Stderr, "zombie distance p10 %.1f  p50 %.1f\n", s.ZombieDistP10, s.ZombieDistP50)

	names := make([]string, 0, len(s.Events))
	for name := range s.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-16s %d\n", name, s.Events[name])
	}

	if *outPath == "" {
		if err := gocsv.Marshal(s.Agents, os.Stdout); err != nil {
			log.Fatalf("writing agents: %v", err)
		}
		return
	}
	if err := writeAgents(*outPath, s.Agents); err != nil {
		log.Fatalf("writing agents: %v", err)
	}
}

// writeAgents writes per-agent rows to path, reporting write and close errors.
func writeAgents(path string, agents []telemetry.AgentSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := gocsv.Marshal(agents, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
