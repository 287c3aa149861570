package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configName), "[tables]\nencoding = \"flat\"\n")
	nested := filepath.Join(root, "grammars", "expr")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, configName))
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configName)
	writeFile(t, path, `
[tables]
encoding = "flat"
jobs = 4
output = "out/expr.tab"
debug_table = true

[report]
debug = true
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Config.Tables.Encoding != "flat" || cfg.Config.Tables.Jobs != 4 || !cfg.Config.Tables.DebugTable {
		t.Errorf("tables = %+v", cfg.Config.Tables)
	}
	if !cfg.Config.Report.Debug {
		t.Errorf("report.debug not set")
	}
	if !cfg.IsDefined("tables", "jobs") || cfg.IsDefined("tables", "binary") {
		t.Errorf("IsDefined does not follow the file")
	}
	if got, want := cfg.resolve(cfg.Config.Tables.Output), filepath.Join(dir, "out", "expr.tab"); got != want {
		t.Errorf("resolve = %q, want %q", got, want)
	}

	var none *loadedConfig
	if none.IsDefined("tables") {
		t.Errorf("nil config defines keys")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[tables\n", "failed to parse TOML"},
		{"unknown key", "[tables]\ncolour = 1\n", "unknown keys: tables.colour"},
		{"bad encoding", "[tables]\nencoding = \"zip\"\n", "[tables].encoding"},
		{"negative jobs", "[tables]\njobs = -2\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configName)
			writeFile(t, path, tt.content)
			_, err := loadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configName)
	writeFile(t, path, "[tables]\noutput = \"expr.tab\"\ncache = true\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "tables"}
		c.Flags().StringP("output", "o", "", "")
		c.Flags().String("binary", "", "")
		c.Flags().Bool("cache", false, "")
		c.Flags().Bool("debug-table", false, "")
		return c
	}

	cmd := newCmd()
	out, err := stringSetting(cmd, cfg, "output", "output")
	if err != nil || out != filepath.Join(dir, "expr.tab") {
		t.Errorf("config output = %q, %v", out, err)
	}
	bin, _ := stringSetting(cmd, cfg, "binary", "binary")
	if bin != "" {
		t.Errorf("binary = %q, want flag default", bin)
	}
	if c, _ := boolSetting(cmd, cfg, "cache", "cache"); !c {
		t.Errorf("cache from config not applied")
	}

	cmd = newCmd()
	if err := cmd.Flags().Set("output", "other.tab"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("cache", "false"); err != nil {
		t.Fatal(err)
	}
	if out, _ := stringSetting(cmd, cfg, "output", "output"); out != "other.tab" {
		t.Errorf("explicit flag lost: %q", out)
	}
	if c, _ := boolSetting(cmd, cfg, "cache", "cache"); c {
		t.Errorf("explicit --cache=false lost")
	}

	if out, _ := stringSetting(newCmd(), nil, "output", "output"); out != "" {
		t.Errorf("no config: output = %q", out)
	}
}
