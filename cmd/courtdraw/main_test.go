package main

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/derekprior/courtdraw/internal/config"
	"github.com/derekprior/courtdraw/internal/schedule"
	"github.com/derekprior/courtdraw/internal/strategy"
)

func seeded(cfg *config.Config, seed int64) *config.Config {
	cfg.Seed = &seed
	return cfg
}

func TestRunInit(t *testing.T) {
	path := t.TempDir() + "/courtdraw.yaml"
	var out bytes.Buffer
	if err := runInit(&out, path); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	t.Run("template loads", func(t *testing.T) {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error: %v", err)
		}
		if len(cfg.Players) != 4 || len(cfg.Courts) != 2 {
			t.Errorf("players = %d, courts = %d, want 4 and 2", len(cfg.Players), len(cfg.Courts))
		}
		if cfg.Mode != strategy.Doubles {
			t.Errorf("mode = %q, want doubles", cfg.Mode)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		if err := runInit(&out, path); err == nil {
			t.Error("second runInit() should fail")
		}
	})
}

func TestReadList(t *testing.T) {
	path := t.TempDir() + "/players.txt"
	if err := os.WriteFile(path, []byte("Alice\r\nBob\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		path, text string
		want       []string
	}{
		{"nothing given", "", "", nil},
		{"flag only", "", "Carol, Dan", []string{"Carol", "Dan"}},
		{"file then flag", path, "Carol", []string{"Alice", "Bob", "Carol"}},
		{"blank flag", "", " , ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readList(tt.path, tt.text)
			if err != nil {
				t.Fatalf("readList() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("readList() = %#v, want %#v", got, tt.want)
			}
		})
	}

	if _, err := readList(t.TempDir()+"/missing.txt", ""); err == nil {
		t.Error("missing file should fail")
	}
}

func TestRunDraw(t *testing.T) {
	cfg := seeded(config.Default(), 1)
	cfg.Mode = strategy.Singles
	cfg.Players = []string{"Alice", "Bob", "Carol", "Dan", "Eve"}
	cfg.Courts = []string{"Court 1", "Court 2"}

	var out bytes.Buffer
	if err := runDraw(&out, cfg, ""); err != nil {
		t.Fatalf("runDraw() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Court 1: ", "Court 2: ", "Waiting:", "(BYE)", "Players:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	for _, name := range cfg.Players {
		if !strings.Contains(got, name) {
			t.Errorf("output missing player %s", name)
		}
	}
}

func TestRunDrawMissingInput(t *testing.T) {
	cfg := seeded(config.Default(), 1)
	cfg.Courts = []string{"Court 1"}

	var out bytes.Buffer
	err := runDraw(&out, cfg, "")
	if !errors.Is(err, schedule.ErrMissingInput) {
		t.Errorf("error = %v, want ErrMissingInput", err)
	}
	if out.Len() != 0 {
		t.Errorf("no output expected, got %q", out.String())
	}
}

func TestDrawThenValidate(t *testing.T) {
	cfg := seeded(config.Default(), 7)
	cfg.Players = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	cfg.Courts = []string{"Court 1", "Court 2"}

	path := t.TempDir() + "/draw.xlsx"
	var out bytes.Buffer
	if err := runDraw(&out, cfg, path); err != nil {
		t.Fatalf("runDraw() error: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Draw saved to") {
		t.Errorf("output = %q, want save confirmation", out.String())
	}

	out.Reset()
	if err := runValidate(&out, cfg, path); err != nil {
		t.Fatalf("runValidate() error: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "0 errors, 0 warnings") {
		t.Errorf("output = %q, want a clean validation", out.String())
	}

	// The same draw against a different roster fails.
	cfg.Players = append(cfg.Players, "J")
	out.Reset()
	if err := runValidate(&out, cfg, path); err == nil {
		t.Errorf("runValidate() should fail for a changed roster:\n%s", out.String())
	}
}

func TestDrawCommandFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := dir + "/courtdraw.yaml"
	if err := os.WriteFile(cfgPath, []byte("mode: doubles\nplayers: [X, Y]\ncourts: [Main]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"draw", "--config", cfgPath, "--players", "Alice, Bob", "--mode", "singles", "--seed", "3"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Main: ") {
		t.Errorf("courts should come from config:\n%s", got)
	}
	if strings.Contains(got, " & ") {
		t.Errorf("--mode singles should not produce teams:\n%s", got)
	}
	if !strings.Contains(got, "Alice") || strings.Contains(got, "X ") {
		t.Errorf("--players should replace the config roster:\n%s", got)
	}
}
