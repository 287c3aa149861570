package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"racc/internal/tables"
)

const configName = "racc.toml"

// projectConfig is the content of racc.toml.
type projectConfig struct {
	Tables tablesConfig `toml:"tables"`
	Report reportConfig `toml:"report"`
}

type tablesConfig struct {
	Encoding   string `toml:"encoding"`
	Jobs       int    `toml:"jobs"`
	Output     string `toml:"output"`
	Binary     string `toml:"binary"`
	Verbose    string `toml:"verbose"`
	DebugTable bool   `toml:"debug_table"`
	Cache      bool   `toml:"cache"`
}

type reportConfig struct {
	Output string `toml:"output"`
	Debug  bool   `toml:"debug"`
}

// loadedConfig remembers which keys the file actually set, so that only
// those are applied under the command-line flags.
type loadedConfig struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

// IsDefined reports whether the file set the key. A nil config defines nothing.
func (c *loadedConfig) IsDefined(key ...string) bool {
	if c == nil {
		return false
	}
	return c.meta.IsDefined(key...)
}

// resolve makes a config path relative to the config file's directory.
func (c *loadedConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfigFor finds and loads the racc.toml governing modelPath.
// It returns nil without error when there is none.
func loadConfigFor(modelPath string) (*loadedConfig, error) {
	path, ok, err := findConfig(filepath.Dir(modelPath))
	if err != nil || !ok {
		return nil, err
	}
	return loadConfig(path)
}

func loadConfig(path string) (*loadedConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("tables", "encoding") {
		if _, err := tables.ParseEncoding(cfg.Tables.Encoding); err != nil {
			return nil, fmt.Errorf("%s: [tables].encoding: %w", path, err)
		}
	}
	if meta.IsDefined("tables", "jobs") && cfg.Tables.Jobs < 0 {
		return nil, fmt.Errorf("%s: [tables].jobs must not be negative", path)
	}
	return &loadedConfig{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}
