package csvio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggedzi/creddedupe/pkg/errors"
)

func TestReadStripsBOM(t *testing.T) {
	in := "\uFEFFname,url\nExample,https://example.com\n"

	headers, rows, err := Read(strings.NewReader(in), "test.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "url"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "Example", rows[0]["name"])
}

func TestReadShortAndLongRows(t *testing.T) {
	in := "name,url,notes\nshort,https://a.test\nlong,https://b.test,n,extra\n"

	headers, rows, err := Read(strings.NewReader(in), "test.csv")
	require.NoError(t, err)
	assert.Len(t, headers, 3)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0]["notes"])
	assert.Equal(t, "n", rows[1]["notes"])
}

func TestReadQuotedFields(t *testing.T) {
	in := "name,notes\n\"Ex, Inc\",\"line1\nline2\"\n"

	_, rows, err := Read(strings.NewReader(in), "test.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ex, Inc", rows[0]["name"])
	assert.Equal(t, "line1\nline2", rows[0]["notes"])
}

func TestReadEmptyInput(t *testing.T) {
	_, _, err := Read(strings.NewReader(""), "test.csv")
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestWriteRoundTrip(t *testing.T) {
	columns := []string{"name", "url", "notes"}
	rows := []map[string]string{
		{"name": "Example", "url": "https://example.com", "notes": "multi\nline"},
		{"name": "Partial"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, columns, rows))

	gotHeaders, gotRows, err := Read(&buf, "buf")
	require.NoError(t, err)
	assert.Equal(t, columns, gotHeaders)
	require.Len(t, gotRows, 2)
	assert.Equal(t, "multi\nline", gotRows[0]["notes"])
	assert.Equal(t, "", gotRows[1]["url"])
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
