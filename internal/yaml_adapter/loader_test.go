package yaml_adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/incidentfilter/internal/config"
	"github.com/specialistvlad/incidentfilter/internal/testutil"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, content string) (*config.Model, error) {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"app.yaml": content})
	return NewLoader().Load(context.Background(), filepath.Join(dir, "app.yaml"))
}

func TestLoad(t *testing.T) {
	// --- Arrange ---
	content := `
source: data/incidencies.xml
export: true
separator: "•"
field_width: 12
all: true
publish:
  url: ws://localhost:3000
  event: incidents
  namespace: /ops
`

	// --- Act ---
	m, err := load(t, content)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "data/incidencies.xml", *m.Source)
	require.True(t, *m.Export)
	require.Equal(t, "•", *m.Separator)
	require.Equal(t, 12, *m.FieldWidth)
	require.True(t, *m.ShowAll)
	require.Nil(t, m.Output)
	require.Nil(t, m.Priority)
	require.Equal(t, &config.Publish{URL: "ws://localhost:3000", Event: "incidents", Namespace: "/ops"}, m.Publish)
}

func TestLoad_EmptyFile(t *testing.T) {
	m, err := load(t, "")

	require.NoError(t, err)
	require.Equal(t, &config.Model{}, m)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown key", content: "colour: never\n", errMsg: "failed to decode YAML file"},
		{name: "wrong type", content: "field_width: wide\n", errMsg: "failed to decode YAML file"},
		{name: "incomplete publish", content: "publish:\n  url: http://x\n", errMsg: "publish requires url and event"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.content)
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorContains(t, err, "failed to open config file")
}
