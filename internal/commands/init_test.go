package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/rfm/internal/config"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "rfm-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "rfm")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/rfm")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runRFM runs the binary inside dir and returns stdout and stderr separately.
func runRFM(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runRFM(t, dir, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "format: online-retail")
	assert.Contains(t, contents, "exclude_cancelled: true")
	assert.Contains(t, contents, "recency_days_active: 21")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInit_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")
	_, _, err := runRFM(t, t.TempDir(), "init", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.FileName))
}

func TestInit_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runRFM(t, dir, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.FileName))
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("segmentation:\n  quantiles: 5\n"), 0o644))

	_, stderr, err := runRFM(t, dir, "init", dir)
	require.Error(t, err)
	assert.Contains(t, stderr, "already exists")

	_, _, err = runRFM(t, dir, "init", dir, "--force")
	require.NoError(t, err)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Segmentation.Quantiles)
}

func TestVersion(t *testing.T) {
	out, _, err := runRFM(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
