package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"schelling/internal/sims/schelling"
	"schelling/internal/snapshot"
)

// executeCmd runs the root command with args and returns what it printed.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("output %q does not mention version %q", out, version)
	}

	out, err = executeCmd(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if decoded["version"] != version {
		t.Fatalf("json version %q, want %q", decoded["version"], version)
	}
}

func TestRunSavesSnapshotAndShowPrintsIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.msgpack")
	out, err := executeCmd(t, "run", "--size", "10", "--seed", "5", "--max-steps", "5", "--out", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Type A:") {
		t.Fatalf("run output missing counts: %q", out)
	}

	snap, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snap.Size != 10 || snap.Seed != 5 || len(snap.Cells) != 100 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Iteration < 1 || snap.Iteration > 5 {
		t.Fatalf("iteration %d outside 1..5", snap.Iteration)
	}

	out, err = executeCmd(t, "show", path)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3+10 {
		t.Fatalf("show printed %d lines, want 13:\n%s", len(lines), out)
	}
	for _, row := range lines[3:] {
		if len(row) != 10 || strings.Trim(row, "AB.") != "" {
			t.Fatalf("bad grid row %q", row)
		}
	}

	out, err = executeCmd(t, "show", "--summary", path)
	if err != nil {
		t.Fatalf("show --summary: %v", err)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Fatalf("summary printed %d lines, want 3", n)
	}
}

func TestRunResumesFromSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.msgpack")
	if _, err := executeCmd(t, "run", "--size", "12", "--max-steps", "2", "--out", path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := executeCmd(t, "run", "--in", path, "--max-steps", "3", "--json", "--out", path)
	if err != nil {
		t.Fatalf("resumed run: %v", err)
	}
	var summary runSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if summary.Iteration != first.Iteration+summary.Steps {
		t.Fatalf("iteration %d, want %d+%d", summary.Iteration, first.Iteration, summary.Steps)
	}
	if got := summary.TypeA + summary.TypeB + summary.Empty; got != 144 {
		t.Fatalf("cell total %d, want 144", got)
	}

	second, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("load second: %v", err)
	}
	if second.Size != 12 || second.Iteration != summary.Iteration {
		t.Fatalf("second snapshot %+v", second)
	}
}

func TestRunConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "schelling.yaml")
	yaml := "simulation:\n  size: 14\n  seed: 3\nrun:\n  max_steps: 1\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out := filepath.Join(dir, "a.msgpack")
	if _, err := executeCmd(t, "run", "--config", cfgPath, "--out", out); err != nil {
		t.Fatalf("run with config: %v", err)
	}
	snap, err := snapshot.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Size != 14 || snap.Seed != 3 || snap.Iteration != 1 {
		t.Fatalf("config file ignored: %+v", snap)
	}

	if _, err := executeCmd(t, "run", "--config", cfgPath, "--size", "8", "--out", out); err != nil {
		t.Fatalf("run with override: %v", err)
	}
	snap, err = snapshot.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Size != 8 || snap.Seed != 3 {
		t.Fatalf("flag did not override file: %+v", snap)
	}
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"threshold above one", []string{"run", "--threshold", "1.5"}},
		{"negative empty ratio", []string{"run", "--empty-ratio=-0.1"}},
		{"zero size", []string{"run", "--size", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, tt.args...)
			if !errors.Is(err, schelling.ErrInvalidParameter) {
				t.Fatalf("error %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestShowMissingFile(t *testing.T) {
	if _, err := executeCmd(t, "show", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

func TestServeExitsAfterRun(t *testing.T) {
	out, err := executeCmd(t, "serve", "--addr", "127.0.0.1:0", "--size", "10", "--max-steps", "3", "--exit")
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !strings.Contains(out, "ws://127.0.0.1:") {
		t.Fatalf("serve output missing address: %q", out)
	}
}
