package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// RecordTag and PriorityTag match the defaults of the application config.
	RecordTag   = "Incidencia"
	PriorityTag = "Prioritat_de_lincidncia"
)

// WriteFiles writes each name/content pair under a fresh temporary directory
// and returns the directory. Names may contain subdirectories.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// IncidentXML renders a document with one record per priority value. Each
// record carries an id field "INC-<n>" (1-based) before its priority field.
// An empty priority string renders the priority element with no text.
func IncidentXML(priorities ...string) string {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Incidencies>\n")
	for i, p := range priorities {
		fmt.Fprintf(&sb, "  <%s>\n", RecordTag)
		fmt.Fprintf(&sb, "    <Codi>INC-%d</Codi>\n", i+1)
		fmt.Fprintf(&sb, "    <%s>%s</%s>\n", PriorityTag, p, PriorityTag)
		fmt.Fprintf(&sb, "  </%s>\n", RecordTag)
	}
	sb.WriteString("</Incidencies>\n")
	return sb.String()
}

// RequireInOrder fails the test unless every want string appears in s, each
// one after the previous.
func RequireInOrder(t *testing.T, s string, want ...string) {
	t.Helper()

	rest := s
	for _, w := range want {
		i := strings.Index(rest, w)
		require.True(t, i >= 0, "expected %q after previous matches in:\n%s", w, s)
		rest = rest[i+len(w):]
	}
}
