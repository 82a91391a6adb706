// Package config loads interpreter options from an optional golox.yaml.
//
// The file is discovered by walking up from the working directory, so a
// project can pin its interpreter settings at its root. CLI flags override
// whatever the file sets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options holds the tunable interpreter behavior.
type Options struct {
	// TraceExecution dumps the stack and each instruction before dispatch.
	TraceExecution bool `yaml:"trace_execution,omitempty"`

	// DisassembleChunks prints every compiled chunk before it runs.
	DisassembleChunks bool `yaml:"disassemble_chunks,omitempty"`

	// Prompt is the REPL prompt string.
	Prompt string `yaml:"prompt,omitempty"`
}

// Default returns the options used when no config file is present.
func Default() Options {
	return Options{Prompt: "> "}
}

// Load reads and parses a golox.yaml file.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses config content from bytes. The path argument is used only for
// error messages.
func Parse(data []byte, path string) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.Prompt == "" {
		opts.Prompt = Default().Prompt
	}
	return opts, nil
}

// Find searches for golox.yaml starting from dir and walking up to parent
// directories. Returns the path if found, or empty string and nil error if
// not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "golox.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// also check golox.yml (common alternative)
		candidate = filepath.Join(dir, "golox.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// reached filesystem root
			return "", nil
		}
		dir = parent
	}
}
