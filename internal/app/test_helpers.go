package app

import (
	"os"
	"strings"
	"testing"

	"github.com/specialistvlad/incidentfilter/internal/testutil"
)

// SetupAppTest creates an App that reads input from the given string and
// captures console and log output. Logs are printed on cleanup when
// INCIDENTFILTER_TEST_LOGS=true.
func SetupAppTest(t *testing.T, cfg Config, input string) (*App, *testutil.SafeBuffer) {
	t.Helper()

	out := &testutil.SafeBuffer{}
	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	if cfg.Color == "" {
		cfg.Color = "never"
	}
	testApp := NewApp(strings.NewReader(input), out, logBuffer, &cfg)

	t.Cleanup(func() {
		if os.Getenv("INCIDENTFILTER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out
}
