package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/magnetsetup/internal/hcl_adapter"
	"github.com/vk/magnetsetup/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Logs are
// captured in the returned buffer and the summary in out.
func SetupAppTest(t *testing.T, cfg *Config) (a *App, out, logs *testutil.SafeBuffer) {
	t.Helper()

	out, logs = &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	a, err := NewApp(out, logs, cfg, hcl_adapter.NewLoader())
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("MAGNETSETUP_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return a, out, logs
}
