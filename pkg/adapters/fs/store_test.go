package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/corkboard/pkg/adapters/fs"
	"github.com/aretw0/corkboard/pkg/core"
)

// setupStore helps create a file-backed store for testing.
func setupStore(t *testing.T, filename string) (*fs.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), filename)
	store, err := fs.NewStore(fs.Config{Path: path})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return store, path
}

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: "a", X: 10.5, Y: 20.25, Content: "first", Color: core.ColorYellow, Stack: 1, W: 220, H: 220},
		{ID: "b", X: -4, Y: 99, Content: "second\nline", Color: core.ColorPurple, Stack: 2, W: 220, H: 220},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("Rejects Unknown Extension", func(t *testing.T) {
		_, err := fs.NewStore(fs.Config{Path: "board.toml"})
		if err == nil {
			t.Error("expected an error for an unregistered extension")
		}
	})

	t.Run("Rejects Empty Path", func(t *testing.T) {
		if _, err := fs.NewStore(fs.Config{}); err == nil {
			t.Error("expected an error for an empty path")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	for _, filename := range []string{"board.json", "board.yaml"} {
		t.Run(filename, func(t *testing.T) {
			store, _ := setupStore(t, filename)
			ctx := context.Background()

			want := sampleNotes()
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, found, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !found {
				t.Fatal("expected record to exist")
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d notes, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("note %d: got %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestLoadAbsent(t *testing.T) {
	store, _ := setupStore(t, "board.json")

	notes, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("expected absent record for a missing file")
	}
	if notes != nil {
		t.Errorf("expected nil notes, got %v", notes)
	}
}

func TestLoadMalformed(t *testing.T) {
	cases := map[string]struct {
		filename string
		payload  string
	}{
		"Not JSON":             {"board.json", "this is not json"},
		"JSON Object Payload":  {"board.json", `{"id": "a"}`},
		"JSON Null Payload":    {"board.json", "null"},
		"JSON Number Payload":  {"board.json", "42"},
		"Empty JSON File":      {"board.json", ""},
		"YAML Null Payload":    {"board.yaml", "null"},
		"Empty YAML File":      {"board.yaml", ""},
		"YAML Scalar Payload":  {"board.yaml", "just a string"},
		"YAML Mapping Payload": {"board.yaml", "id: a\nx: 1"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store, path := setupStore(t, tc.filename)
			if err := os.WriteFile(path, []byte(tc.payload), 0644); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			notes, found, err := store.Load(context.Background())
			if err != nil {
				t.Fatalf("expected malformed payload to degrade, got error: %v", err)
			}
			if found {
				t.Error("expected malformed payload to be treated as absent")
			}
			if notes != nil {
				t.Errorf("expected nil notes, got %v", notes)
			}
		})
	}
}

func TestClearVersusEmptySave(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Save Keeps The Record", func(t *testing.T) {
		store, path := setupStore(t, "board.json")
		if err := store.Save(ctx, nil); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected snapshot file to exist: %v", err)
		}
		notes, found, err := store.Load(ctx)
		if err != nil || !found {
			t.Fatalf("expected an empty record, found=%v err=%v", found, err)
		}
		if len(notes) != 0 {
			t.Errorf("expected zero notes, got %d", len(notes))
		}
	})

	t.Run("Clear Removes The Record", func(t *testing.T) {
		store, path := setupStore(t, "board.json")
		if err := store.Save(ctx, sampleNotes()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected snapshot file to be removed")
		}
		_, found, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if found {
			t.Error("expected absent record after Clear")
		}
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		store, _ := setupStore(t, "board.json")
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear on a missing record failed: %v", err)
		}
	})
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store, path := setupStore(t, "board.json")
	if err := store.Save(context.Background(), sampleNotes()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name() != filepath.Base(path) && e.Name() != filepath.Base(path)+".lock" {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}

func TestWatchSignalsExternalChange(t *testing.T) {
	store, path := setupStore(t, "board.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signal, err := store.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Simulate another process rewriting the board file.
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatalf("external write failed: %v", err)
	}

	select {
	case <-signal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch signal")
	}
}
