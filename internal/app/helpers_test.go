package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/hcl"
	"github.com/vk/xenoarch/internal/registry"
	"github.com/vk/xenoarch/internal/testutil"
)

// testConfig returns a valid configuration with a fixed seed and no HTTP
// server.
func testConfig() Config {
	return Config{
		LogFormat:        "text",
		LogLevel:         "debug",
		WorkerCount:      2,
		Cooldown:         5 * time.Second,
		NodesMin:         3,
		NodesMax:         9,
		PointsPerNode:    6500,
		DangerMultiplier: 1.35,
		Seed:             42,
	}
}

// writeCatalog writes src into a temporary catalog file and returns its path.
func writeCatalog(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

// SetupAppTest builds an App over cfg with the real HCL loader and captures
// its log output.
func SetupAppTest(t *testing.T, cfg Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()
	buf := &testutil.SafeBuffer{}
	valid, err := NewConfig(cfg)
	require.NoError(t, err)
	a := NewApp(buf, valid, hcl.NewLoader(), modules...)
	t.Cleanup(func() {
		if os.Getenv("XENOARCH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return a, buf
}
