package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netsurvey/netsurvey/internal/config"
	apperrors "github.com/netsurvey/netsurvey/internal/errors"
	"github.com/netsurvey/netsurvey/internal/ollama"
)

// fakeOllama serves both the tags and generate endpoints.
func fakeOllama(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"response": response,
				"done":     true,
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func writeTargets(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0600))
	return path
}

func testConfig(targetsFile, outputDir string, client ollama.Config) config.AnalyzeConfig {
	return config.AnalyzeConfig{
		TargetsFile: targetsFile,
		OutputDir:   outputDir,
		ScanTimeout: 30 * time.Second,
		Ollama:      client,
	}
}

func TestReadTargets(t *testing.T) {
	t.Run("skips blanks and comments", func(t *testing.T) {
		path := writeTargets(t, "192.168.1.1\n\n# comment\n  10.0.0.0/24  \n")
		targets, err := ReadTargets(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"192.168.1.1", "10.0.0.0/24"}, targets)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadTargets(filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeFileNotFound))
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTargets(t, "")
		targets, err := ReadTargets(path)
		require.NoError(t, err)
		assert.Empty(t, targets)
	})
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		target   string
		expected string
	}{
		{"192.168.1.1", "report_192.168.1.1.md"},
		{"10.0.0.0/24", "report_10.0.0.0_24.md"},
		{`host\path`, "report_host_path.md"},
		{"example.com", "report_example.com.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ReportFileName(tt.target))
	}
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteReport(dir, "10.0.0.0/24", "## Report")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_10.0.0.0_24.md"), path)

	data, err := os.ReadFile(path) //nolint:gosec // test-owned path
	require.NoError(t, err)
	assert.Equal(t, "## Report", string(data))
}

func TestValidateScanXML(t *testing.T) {
	assert.NoError(t, validateScanXML([]byte("<nmaprun><host/></nmaprun>")))

	err := validateScanXML([]byte("not xml at all <"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeOutputInvalid))
}

func TestRunWritesReportPerTarget(t *testing.T) {
	server := fakeOllama(t, "## Assessment\nNothing open.")
	defer server.Close()

	targetsFile := writeTargets(t, "192.168.1.1\nexample.com\n")
	outputDir := t.TempDir()

	cfg := testConfig(targetsFile, outputDir, ollama.Config{BaseURL: server.URL, Model: "test"})
	client := ollama.NewClient(cfg.Ollama)

	scanned := make([]string, 0, 2)
	o := New(cfg, client, WithScanFunc(func(ctx context.Context, target string) ([]byte, error) {
		scanned = append(scanned, target)
		return []byte("<nmaprun><host><address addr=\"" + target + "\"/></host></nmaprun>"), nil
	}))

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, []string{"192.168.1.1", "example.com"}, scanned)

	for _, target := range scanned {
		data, err := os.ReadFile(filepath.Join(outputDir, ReportFileName(target))) //nolint:gosec
		require.NoError(t, err)
		assert.Contains(t, string(data), "## Assessment")
	}
}

func TestRunSkipsFailedTargets(t *testing.T) {
	server := fakeOllama(t, "report body")
	defer server.Close()

	targetsFile := writeTargets(t, "bad-target\ngood-target\ninvalid-xml\n")
	outputDir := t.TempDir()

	cfg := testConfig(targetsFile, outputDir, ollama.Config{BaseURL: server.URL, Model: "test"})
	client := ollama.NewClient(cfg.Ollama)

	o := New(cfg, client, WithScanFunc(func(ctx context.Context, target string) ([]byte, error) {
		switch target {
		case "bad-target":
			return nil, fmt.Errorf("scan blew up")
		case "invalid-xml":
			return []byte("definitely not xml <"), nil
		default:
			return []byte("<nmaprun/>"), nil
		}
	}))

	require.NoError(t, o.Run(context.Background()))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ReportFileName("good-target"), entries[0].Name())
}

func TestRunFailsWhenServiceDown(t *testing.T) {
	server := fakeOllama(t, "unused")
	server.Close() // closed on purpose

	targetsFile := writeTargets(t, "192.168.1.1\n")
	cfg := testConfig(targetsFile, t.TempDir(), ollama.Config{BaseURL: server.URL, Model: "test"})
	client := ollama.NewClient(cfg.Ollama)

	o := New(cfg, client, WithScanFunc(func(ctx context.Context, target string) ([]byte, error) {
		t.Fatal("scan must not run when the analysis service is down")
		return nil, nil
	}))

	err := o.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeServiceUnavailable))
}

func TestRunFailsWithoutTargets(t *testing.T) {
	server := fakeOllama(t, "unused")
	defer server.Close()

	targetsFile := writeTargets(t, "\n# only a comment\n")
	cfg := testConfig(targetsFile, t.TempDir(), ollama.Config{BaseURL: server.URL, Model: "test"})

	o := New(cfg, ollama.NewClient(cfg.Ollama))
	err := o.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestRunHonorsCancellation(t *testing.T) {
	server := fakeOllama(t, "unused")
	defer server.Close()

	targetsFile := writeTargets(t, "a\nb\nc\n")
	cfg := testConfig(targetsFile, t.TempDir(), ollama.Config{BaseURL: server.URL, Model: "test"})
	client := ollama.NewClient(cfg.Ollama)

	ctx, cancel := context.WithCancel(context.Background())

	o := New(cfg, client, WithScanFunc(func(ctx context.Context, target string) ([]byte, error) {
		cancel() // cancel during the first scan
		return []byte("<nmaprun/>"), nil
	}))

	err := o.Run(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCanceled))
}
