package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/hollow/telemetry"
)

func TestWriteAgents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.csv")
	agents := []telemetry.AgentSummary{
		{Kind: "villager", Index: 0, Ticks: 3, PathLength: 2},
		{Kind: "zombie", Index: 0, Ticks: 3, MinPlayerDist: 5},
	}

	if err := writeAgents(path, agents); err != nil {
		t.Fatalf("writeAgents: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []telemetry.AgentSummary
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Kind != "villager" || got[1].MinPlayerDist != 5 {
		t.Errorf("unexpected rows %+v", got)
	}
}

func TestWriteAgents_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "agents.csv")
	if err := writeAgents(path, nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
