package telemetry

import (
	"path/filepath"
	"testing"
)

func TestTraceWriter_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "trace")
	tw, err := NewTraceWriter(dir)
	if err != nil {
		t.Fatalf("NewTraceWriter: %v", err)
	}

	for tick := int32(0); tick < 50; tick++ {
		rec := TickTrace{
			Tick:   tick,
			Player: [3]float64{0, 15, 50 - float64(tick)*0.75},
			Agents: []AgentTrace{
				{Kind: "villager", Index: 0, Pos: [3]float64{30, 0, 40}, State: "IDLE"},
				{Kind: "zombie", Index: 0, Pos: [3]float64{0, 0, 40}},
			},
		}
		if tick == 10 {
			rec.Events = []Event{NewToggleEvent(EventDoorToggle, tick, true)}
		}
		if err := tw.Write(rec); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadTrace(tw.Path())
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("expected 50 ticks, got %d", len(got))
	}
	if got[49].Tick != 49 || len(got[49].Agents) != 2 {
		t.Errorf("unexpected last record %+v", got[49])
	}
	if len(got[10].Events) != 1 || got[10].Events[0].Tick != 10 || !got[10].Events[0].State {
		t.Errorf("expected door event at tick 10, got %+v", got[10].Events)
	}
}

func TestTraceWriter_NilIsDisabled(t *testing.T) {
	tw, err := NewTraceWriter("")
	if err != nil || tw != nil {
		t.Fatalf("expected nil writer, got %v, %v", tw, err)
	}
	if err := tw.Write(TickTrace{}); err != nil {
		t.Errorf("nil Write: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestTraceWriter_CloseReportsFileError(t *testing.T) {
	tw, err := NewTraceWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewTraceWriter: %v", err)
	}
	if err := tw.Write(TickTrace{Tick: 0}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Pull the file out from under the encoder.
	if err := tw.f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}
	if err := tw.Close(); err == nil {
		t.Error("expected Close to report the closed file")
	}
}
