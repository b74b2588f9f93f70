package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/incidentfilter/internal/app"
	"github.com/specialistvlad/incidentfilter/internal/export"
	"github.com/specialistvlad/incidentfilter/internal/testutil"
	"github.com/stretchr/testify/require"
)

func withDefaults(mutate func(c *app.Config)) *app.Config {
	cfg := app.DefaultConfig()
	mutate(&cfg)
	return &cfg
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name:           "No arguments uses defaults",
			args:           []string{},
			expectedConfig: withDefaults(func(c *app.Config) {}),
		},
		{
			name: "Happy path with all flags",
			args: []string{
				"--source", "/data/in.xml",
				"-o", "/data/out.json.gz",
				"--record-tag=Incident",
				"--priority-tag=Priority",
				"--separator=*",
				"--field-width=12",
				"--export",
				"--no-pause",
				"-p", "2",
				"--color=NEVER",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				SourcePath:  "/data/in.xml",
				OutputPath:  "/data/out.json.gz",
				RecordTag:   "Incident",
				PriorityTag: "Priority",
				Separator:   "*",
				FieldWidth:  12,
				Export:      true,
				NoPause:     true,
				Priority:    2,
				Color:       "never",
				LogLevel:    "debug",
				LogFormat:   "json",
			},
		},
		{
			name: "Positional argument for source",
			args: []string{"/positional/in.xml"},
			expectedConfig: withDefaults(func(c *app.Config) {
				c.SourcePath = "/positional/in.xml"
			}),
		},
		{
			name: "Show all",
			args: []string{"--all"},
			expectedConfig: withDefaults(func(c *app.Config) {
				c.ShowAll = true
			}),
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
				require.Contains(t, output, "--priority-tag")
			},
		},
		{
			name:      "Unknown flag",
			args:      []string{"--nope"},
			expectErr: "unknown flag: --nope",
		},
		{
			name:      "Priority out of range",
			args:      []string{"-p", "9"},
			expectErr: "between 1 and 4",
		},
		{
			name:      "Invalid log level",
			args:      []string{"--log-level=loud"},
			expectErr: "invalid log-level",
		},
		{
			name:      "Too many positional arguments",
			args:      []string{"a.xml", "b.xml"},
			expectErr: "at most one SOURCE",
		},
		{
			name:      "Unsupported config file",
			args:      []string{"-c", "settings.toml"},
			expectErr: "unsupported config file",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.expectErr != "" {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
				require.Equal(t, 2, exitErr.Code)
				require.Contains(t, exitErr.Message, tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParse_ConfigFileLayering(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"app.hcl": `
source      = "from-file.xml"
separator   = "~"
field_width = 18
export      = true
log_level   = "info"

publish {
  url     = "http://localhost:3000"
  event   = "incidents"
  timeout = "3s"
}
`,
	})

	// --- Act ---
	cfg, shouldExit, err := Parse([]string{"-c", filepath.Join(dir, "app.hcl"), "--separator", "|", "cli.xml"}, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)

	expected := withDefaults(func(c *app.Config) {
		c.SourcePath = "cli.xml"
		c.Separator = "|"
		c.FieldWidth = 18
		c.Export = true
		c.LogLevel = "info"
		c.Publish = &export.PublishConfig{URL: "http://localhost:3000", Event: "incidents", Timeout: 3 * time.Second}
	})
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAMLConfigFile(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"app.yml": "priority: 3\nno_pause: true\n",
	})

	cfg, _, err := Parse([]string{"--config=" + filepath.Join(dir, "app.yml")}, &bytes.Buffer{})

	require.NoError(t, err)
	require.Equal(t, 3, cfg.Priority)
	require.True(t, cfg.NoPause)
}

func TestParse_InvalidPublishTimeout(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"app.yaml": "export: true\npublish:\n  url: http://x\n  event: e\n  timeout: soon\n",
	})

	_, _, err := Parse([]string{"-c", filepath.Join(dir, "app.yaml")}, &bytes.Buffer{})

	require.ErrorContains(t, err, "failed to parse publish timeout")
}
