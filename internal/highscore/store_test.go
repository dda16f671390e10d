package highscore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

var _ game.HighScoreStore = (*FileStore)(nil)
var _ game.HighScoreStore = (*MemoryStore)(nil)

func TestFileStore_MissingFileIsZero(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.txt"))
	if got := s.Load(); got != 0 {
		t.Fatalf("expected 0 for a missing file, got %d", got)
	}
	if _, err := s.Read(); err != nil {
		t.Fatalf("a missing file is not an error, got %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "highscore.txt")
	s := NewFileStore(path)
	if err := s.Save(120); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load(); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "120" {
		t.Fatalf("expected plain decimal text, got %q", raw)
	}
	if err := s.Save(45); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got := s.Load(); got != 45 {
		t.Fatalf("save must overwrite, got %d", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFileStore_BadContentIsZero(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"garbage":  "not a number",
		"negative": "-30",
		"empty":    "",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := NewFileStore(path).Load(); got != 0 {
				t.Fatalf("expected 0, got %d", got)
			}
		})
	}
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.txt")
	if err := os.WriteFile(path, []byte("  250\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewFileStore(path).Load(); got != 250 {
		t.Fatalf("expected 250, got %d", got)
	}
}

func TestFileStore_ParseErrorIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.txt")
	if err := os.WriteFile(path, []byte("x1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Read(); err == nil {
		t.Fatal("expected a parse error from Read")
	}
}

func TestMemoryStore_CountsSaves(t *testing.T) {
	m := NewMemoryStore(100)
	if m.Load() != 100 {
		t.Fatal("preload lost")
	}
	_ = m.Save(120)
	_ = m.Save(130)
	if m.Saves() != 2 || m.Load() != 130 {
		t.Fatalf("expected 2 saves ending at 130, got %d / %d", m.Saves(), m.Load())
	}
}

func TestFileStore_WithEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.txt")
	store := NewFileStore(path)
	if err := store.Save(100); err != nil {
		t.Fatal(err)
	}
	e := game.New(game.WithStore(store), game.WithSeed(1))
	if e.HighScore() != 100 {
		t.Fatalf("engine should load 100 from disk, got %d", e.HighScore())
	}
}
