package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/liftsim/internal/hcl"
	"github.com/vk/liftsim/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest writes fleet to a temp file and creates an app for it with
// debug logging. Set LIFTSIM_TEST_LOGS=true to dump the output.
func SetupAppTest(t *testing.T, fleet string, cfg Config, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fleet.hcl")
	require.NoError(t, os.WriteFile(path, []byte(fleet), 0600), "failed to write fleet file")

	cfg.FleetPath = path
	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp, err := NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("LIFTSIM_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
