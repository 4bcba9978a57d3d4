package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ashgrove/trackshift/internal/shared"
	tu "github.com/ashgrove/trackshift/internal/testing"
)

func TestNewRunner(t *testing.T) {
	t.Run("fills in defaults", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})

		if r.config == nil {
			t.Error("expected a default config")
		}
		if r.logger == nil {
			t.Error("expected a default logger")
		}
		if r.output == nil {
			t.Error("expected a default output writer")
		}
		if r.markers == nil {
			t.Error("expected a default marker store")
		}
	})

	t.Run("keeps provided options", func(t *testing.T) {
		var buf bytes.Buffer
		config := shared.DefaultConfig()
		config.Database.Path = "custom.db"

		r := NewRunner(RunnerOpts{Config: config, Output: &buf, Spotify: &tu.MockService{}})

		if r.config.Database.Path != "custom.db" {
			t.Errorf("expected custom config, got %s", r.config.Database.Path)
		}
		if r.output != &buf {
			t.Error("expected provided output writer")
		}
		if r.spotify == nil {
			t.Error("expected provided service")
		}
	})

	t.Run("registers all commands", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})
		commands := r.register()

		want := []string{"setup", "auth", "playlists", "move", "remove", "insert", "cache", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, name := range want {
			if commands[i].Name != name {
				t.Errorf("command %d: expected %s, got %s", i, name, commands[i].Name)
			}
		}
	})
}

func TestRequireEngine(t *testing.T) {
	r := NewRunner(RunnerOpts{Spotify: &tu.MockService{}})

	engine := r.requireEngine()
	if engine == nil {
		t.Fatal("expected an engine")
	}
	if r.requireEngine() != engine {
		t.Error("expected the engine reused")
	}
}

func TestParsePositions(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		cases := []struct {
			name string
			raw  string
			want []int
		}{
			{"single", "3", []int{3}},
			{"several", "1,3,4", []int{1, 3, 4}},
			{"spaces", " 1 , 3 ", []int{1, 3}},
			{"trailing comma", "1,3,", []int{1, 3}},
			{"empty", "", nil},
			{"blank", "   ", nil},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := parsePositions(tc.raw)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(got) != len(tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
				for i := range tc.want {
					if got[i] != tc.want[i] {
						t.Fatalf("expected %v, got %v", tc.want, got)
					}
				}
			})
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, raw := range []string{"abc", "1,x", "-2", "1,-3"} {
			t.Run(raw, func(t *testing.T) {
				_, err := parsePositions(raw)
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("writeJSON compact and pretty", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writeJSON(map[string]int{"a": 1}, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "{\"a\":1}\n" {
			t.Errorf("unexpected output %q", buf.String())
		}

		buf.Reset()
		if err := r.writeJSON(map[string]int{"a": 1}, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Errorf("expected indentation, got %q", buf.String())
		}
	})

	t.Run("writeJSON propagates write failures", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := r.writeJSON(map[string]int{"a": 1}, false); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("writePlain formats in place", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writePlain("%s %d", "tracks", 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "tracks 3" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("writePlainln pads with newlines", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writePlainln("done"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "\ndone\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}
