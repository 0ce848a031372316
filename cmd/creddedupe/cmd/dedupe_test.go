package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggedzi/creddedupe"
	"github.com/taggedzi/creddedupe/pkg/changelog"
	"github.com/taggedzi/creddedupe/pkg/provider"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportInputsContinuesPastRowErrors(t *testing.T) {
	good := writeFixture(t, "good.csv",
		"url,username,password,totp,extra,name,grouping,fav\n"+
			"https://example.com,alice,s3cret,,,Example,,0\n")
	// No password column: every row of this file fails to import.
	bad := writeFixture(t, "bad.csv",
		"url,username,name\n"+
			"https://broken.test,bob,Broken\n")

	dedupeProvider = "lastpass"
	t.Cleanup(func() { dedupeProvider = "" })

	client, err := creddedupe.New()
	require.NoError(t, err)

	items, first, err := importInputs(client, changelog.New(), []string{good, bad})
	require.NoError(t, err)
	assert.Equal(t, provider.LastPass, first)
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].Username)
}

func TestImportInputsAbortsOnUnreadableFile(t *testing.T) {
	client, err := creddedupe.New()
	require.NoError(t, err)

	_, _, err = importInputs(client, changelog.New(), []string{filepath.Join(t.TempDir(), "absent.csv")})
	assert.Error(t, err)
}
