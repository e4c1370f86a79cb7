package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/hollow/config"
)

func TestOutputManager_NilIsDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil WriteTelemetry: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Errorf("nil WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir = %q", om.Dir())
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for _, tick := range []int32{600, 1200} {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: tick, Zombies: 3}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkZombieContact, Tick: 1200, Description: "close"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("header missing window_end: %s", lines[0])
	}

	bms, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bms), "zombie_contact") {
		t.Errorf("bookmarks.csv missing row:\n%s", bms)
	}

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if cfg.Zombie.Count != config.Default().Zombie.Count {
		t.Errorf("zombie count = %d after round trip", cfg.Zombie.Count)
	}
}
