package cli

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestCommandRegistration(t *testing.T) {
	expected := map[string]bool{
		"sample":  false,
		"analyze": false,
		"check":   false,
	}

	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestGetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	defer SetVersion("dev", "none", "unknown")

	got := getVersion()
	for _, want := range []string{"1.2.3", "abc123", "2026-01-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("getVersion() = %q, missing %q", got, want)
		}
	}
	if rootCmd.Version != got {
		t.Errorf("rootCmd.Version = %q, want %q", rootCmd.Version, got)
	}
}

func TestSetConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setConfigDefaults()

	tests := []struct {
		key      string
		expected any
	}{
		{"analyze.targets_file", "targets.txt"},
		{"analyze.ollama.model", "qwen3:8b"},
		{"checker.input_file", "input.csv"},
		{"checker.output_file", "output.csv"},
		{"checker.workers", defaultWorkerCount},
		{"logging.level", "info"},
		{"logging.format", "text"},
	}

	for _, tt := range tests {
		if got := viper.Get(tt.key); got != tt.expected {
			t.Errorf("default %s = %v, want %v", tt.key, got, tt.expected)
		}
	}
}

func TestSampleCountFlagDefault(t *testing.T) {
	flag := sampleCmd.Flags().Lookup("count")
	if flag == nil {
		t.Fatal("sample command has no count flag")
	}
	if flag.DefValue != "10" {
		t.Errorf("count flag default = %s, want 10", flag.DefValue)
	}
}
