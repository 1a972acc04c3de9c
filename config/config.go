// Package config loads zinc.toml project defaults, grounded on
// bootstrap/depm/load_mod.go's tomlModule pattern (and src/mods/load.go's
// similar per-project file): a small TOML file sitting beside the source
// file that supplies defaults for flags the CLI would otherwise need
// repeating on every invocation. Zinc has no module graph, so unlike
// ChaiModule this carries only build defaults, not package/dependency
// metadata.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the name of the project config file, searched for next to the
// source file and then in each parent directory.
const FileName = "zinc.toml"

// tomlConfig is the on-disk shape of zinc.toml.
type tomlConfig struct {
	Output       string   `toml:"output"`
	CCompiler    string   `toml:"c-compiler"`
	Std          string   `toml:"std"`
	Optimization int      `toml:"optimization"`
	Link         []string `toml:"link"`
}

// Config carries the resolved build defaults the CLI falls back on when a
// flag isn't given explicitly. A missing zinc.toml is not an error: Default
// is returned as-is.
type Config struct {
	Output       string
	CCompiler    string
	Std          string
	Optimization int
	Link         []string
}

// Default returns Zinc's built-in defaults, used when no zinc.toml is found.
func Default() *Config {
	return &Config{
		CCompiler:    "cc",
		Std:          "c11",
		Optimization: 2,
	}
}

// Load searches srcDir and its parent directories for zinc.toml and decodes
// it, starting from Default() so unspecified fields keep their built-in
// value. If no zinc.toml is found anywhere up the tree, Default() is
// returned unchanged.
func Load(srcDir string) (*Config, error) {
	cfg := Default()

	path, ok := find(srcDir)
	if !ok {
		return cfg, nil
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tc := tomlConfig{
		CCompiler:    cfg.CCompiler,
		Std:          cfg.Std,
		Optimization: cfg.Optimization,
	}
	if err := toml.Unmarshal(buf, &tc); err != nil {
		return nil, err
	}

	cfg.Output = tc.Output
	cfg.CCompiler = tc.CCompiler
	cfg.Std = tc.Std
	cfg.Optimization = tc.Optimization
	cfg.Link = tc.Link

	return cfg, nil
}

// find walks upward from dir looking for zinc.toml, returning its path and
// true if found.
func find(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(abs, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}
