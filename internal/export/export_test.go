package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/incidentfilter/internal/incident"
	"github.com/specialistvlad/incidentfilter/internal/testutil"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

const sampleDoc = `<Incidencies>
  <Incidencia>
    <Codi>INC-1</Codi>
    <Prioritat_de_lincidncia>2</Prioritat_de_lincidncia>
    <Descripcio>  Caiguda del servidor &lt;web&gt; &amp; correu  </Descripcio>
    <Contacte>
      <Nom>Júlia</Nom>
    </Contacte>
  </Incidencia>
  <Incidencia>
    <Zona>Nord</Zona>
    <Codi>INC-2</Codi>
    <Prioritat_de_lincidncia>2</Prioritat_de_lincidncia>
  </Incidencia>
</Incidencies>`

func filtered(t *testing.T) []*incident.Node {
	t.Helper()
	root, err := incident.Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	return incident.Filter(root, testutil.RecordTag, testutil.PriorityTag, 2)
}

// readObjects parses a written array and returns each object's fields in file order.
func readObjects(t *testing.T, data []byte) [][]incident.Field {
	t.Helper()
	v, err := fastjson.ParseBytes(data)
	require.NoError(t, err)
	items, err := v.Array()
	require.NoError(t, err)

	out := make([][]incident.Field, 0, len(items))
	for _, item := range items {
		obj, err := item.Object()
		require.NoError(t, err)
		var fields []incident.Field
		obj.Visit(func(key []byte, val *fastjson.Value) {
			fields = append(fields, incident.Field{Name: string(key), Value: string(val.GetStringBytes())})
		})
		out = append(out, fields)
	}
	return out
}

func TestSave_RoundTripKeepsTraversalOrder(t *testing.T) {
	// --- Arrange ---
	records := filtered(t)
	path := filepath.Join(t.TempDir(), "out.json")
	exp := NewExporter(path, nil)

	// --- Act ---
	err := exp.Save(context.Background(), Build(records, testutil.RecordTag))

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	got := readObjects(t, data)
	require.Len(t, got, len(records))
	for i, record := range records {
		if diff := cmp.Diff(incident.Fields(record, testutil.RecordTag), got[i]); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestWrite_Formatting(t *testing.T) {
	// --- Arrange ---
	records := Build(filtered(t), testutil.RecordTag)
	out := &strings.Builder{}

	// --- Act ---
	require.NoError(t, Write(out, records))

	// --- Assert ---
	text := out.String()
	require.True(t, strings.HasPrefix(text, "[\n    {\n        \"Codi\": \"INC-1\","), text)
	require.Contains(t, text, `"Nom": "Júlia"`)
	require.Contains(t, text, `"Descripcio": "Caiguda del servidor <web> & correu"`)
	require.NotContains(t, text, `\u`)
}

func TestWrite_EmptyIsArray(t *testing.T) {
	out := &strings.Builder{}
	require.NoError(t, Write(out, nil))
	require.Equal(t, "[]\n", out.String())
}

func TestSave_OverwritesPreviousContent(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0600))
	var r Record
	r.Set("Codi", "INC-1")

	// --- Act ---
	require.NoError(t, NewExporter(path, nil).Save(context.Background(), []Record{r}))

	// --- Assert ---
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "x")
	require.Equal(t, [][]incident.Field{{{Name: "Codi", Value: "INC-1"}}}, readObjects(t, data))
}

func TestSave_ReportsStorageFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	err := NewExporter(path, nil).Save(context.Background(), nil)

	var exportErr *Error
	require.True(t, errors.As(err, &exportErr))
	require.Equal(t, path, exportErr.Path)
	require.Contains(t, err.Error(), "failed to save")
}

func TestRecord_RepeatedKeyKeepsFirstPosition(t *testing.T) {
	var r Record
	r.Set("a", "1")
	r.Set("b", "2")
	r.Set("a", "3")

	data, err := r.MarshalJSON()

	require.NoError(t, err)
	require.Equal(t, `{"a":"3","b":"2"}`, string(data))
	require.Equal(t, map[string]string{"a": "3", "b": "2"}, r.Map())
}

func TestExporter_PublishWithoutPublisherIsNoop(t *testing.T) {
	exp := NewExporter("unused.json", nil)

	require.False(t, exp.Publishes())
	require.NoError(t, exp.Publish(context.Background(), nil))
}
