package cli

import (
	"io"
	"testing"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "docreel" {
		t.Errorf("Use = %q", root.Use)
	}
	if !root.SilenceUsage {
		t.Error("usage should be silenced on errors")
	}

	want := []string{"collate", "frames", "inspect", "shape", "cache", "completion"}
	have := map[string]bool{}
	for _, sub := range root.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer runner.Close()

	if runner.Logger != c.Logger {
		t.Error("runner should use the CLI logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
