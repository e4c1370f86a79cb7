package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// AgentTrace is one agent's placement at the end of a tick.
type AgentTrace struct {
	Kind  string     `json:"kind"` // "villager" or "zombie"
	Index int        `json:"index"`
	Pos   [3]float64 `json:"pos"`
	Yaw   float64    `json:"yaw"`
	State string     `json:"state,omitempty"`
}

// TickTrace is one JSONL line of the tick trace.
type TickTrace struct {
	Tick     int32        `json:"tick"`
	Player   [3]float64   `json:"player"`
	Airborne bool         `json:"airborne,omitempty"`
	DoorOpen bool         `json:"door_open"`
	LightOn  bool         `json:"light_on"`
	Agents   []AgentTrace `json:"agents,omitempty"`
	Events   []Event      `json:"events,omitempty"`
}

// TraceWriter writes a zstd-compressed JSONL tick trace.
// A nil *TraceWriter discards everything.
type TraceWriter struct {
	path string
	f    *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
}

// NewTraceWriter creates dir and opens trace.jsonl.zst inside it.
// Returns nil if dir is empty (tracing disabled).
func NewTraceWriter(dir string) (*TraceWriter, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}

	path := filepath.Join(dir, "trace.jsonl.zst")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &TraceWriter{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

// Write appends one tick. Data is buffered; Close flushes it.
func (t *TraceWriter) Write(tick TickTrace) error {
	if t == nil {
		return nil
	}
	b, err := json.Marshal(tick)
	if err != nil {
		return fmt.Errorf("encoding tick %d: %w", tick.Tick, err)
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Path returns the trace file path.
func (t *TraceWriter) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Close flushes buffered lines, finishes the zstd frame and closes the file.
func (t *TraceWriter) Close() error {
	if t == nil {
		return nil
	}
	var firstErr error
	if err := t.w.Flush(); err != nil {
		firstErr = err
	}
	if err := t.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := t.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ReadTrace decodes a trace file written by TraceWriter.
func ReadTrace(path string) ([]TickTrace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	var out []TickTrace
	s := bufio.NewScanner(dec)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for s.Scan() {
		var tt TickTrace
		if err := json.Unmarshal(s.Bytes(), &tt); err != nil {
			return out, fmt.Errorf("decoding line %d: %w", len(out)+1, err)
		}
		out = append(out, tt)
	}
	return out, s.Err()
}
