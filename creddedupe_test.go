package creddedupe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggedzi/creddedupe/pkg/dedupe"
	crederrors "github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/logging"
	"github.com/taggedzi/creddedupe/pkg/provider"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const lastPassFixture = "url,username,password,totp,extra,name,grouping,fav\n" +
	"https://example.com,alice,s3cret,,first note,Example,Work,1\n" +
	"https://other.test,bob,hunter2,,,Other,,0\n"

const bitwardenFixture = "folder,favorite,type,name,notes,fields,reprompt,login_uri,login_username,login_password,login_totp\n" +
	",,login,Example,second note,,0,https://www.example.com,alice,s3cret,\n"

func TestDetectFile(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	path := writeFixture(t, "lastpass.csv", lastPassFixture)
	res, err := c.DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, provider.LastPass, res.Provider)
	assert.False(t, res.Ambiguous)
}

func TestImportAuto(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	path := writeFixture(t, "bitwarden.csv", bitwardenFixture)
	items, id, err := c.ImportAuto(path)
	require.NoError(t, err)
	assert.Equal(t, provider.Bitwarden, id)
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].Username)
}

func TestImportAutoUnknownFormat(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	path := writeFixture(t, "odd.csv", "colA,colB\n1,2\n")
	_, _, err = c.ImportAuto(path)
	assert.Error(t, err)
}

func TestEndToEndDedupe(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	items, err := c.Import(writeFixture(t, "lastpass.csv", lastPassFixture), provider.LastPass)
	require.NoError(t, err)
	more, err := c.Import(writeFixture(t, "bitwarden.csv", bitwardenFixture), provider.Bitwarden)
	require.NoError(t, err)
	items = append(items, more...)

	res := c.Group(items)
	// The two example.com records differ in notes, so they need review.
	require.Len(t, res.Pending, 1)
	assert.Len(t, res.Resolved, 1)

	kept, err := c.Resolve(res.Pending[0], dedupe.Decision{Action: dedupe.KeepBest})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Contains(t, kept[0].Notes, "first note")
	assert.Contains(t, kept[0].Notes, "second note")

	out := filepath.Join(t.TempDir(), "cleaned.csv")
	final := append(res.Resolved, kept...)
	require.NoError(t, c.Export(out, provider.LastPass, final))

	back, err := c.Import(out, provider.LastPass)
	require.NoError(t, err)
	assert.Len(t, back, 2)
}

func TestImportReportsMissingColumns(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	fixture := "url,username\n" +
		"https://a.test,alice\n" +
		"https://b.test,bob\n"
	path := writeFixture(t, "partial.csv", fixture)

	items, err := c.Import(path, provider.LastPass)
	require.Error(t, err)
	assert.Empty(t, items)

	// Every failed row is attributed individually.
	var missing *crederrors.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 0, missing.Row)
	assert.Equal(t, []string{"password"}, missing.Columns)
}

func TestOptions(t *testing.T) {
	t.Run("invalid threshold", func(t *testing.T) {
		_, err := New(WithDetectThreshold(1.5))
		assert.Error(t, err)
	})

	t.Run("nil registry", func(t *testing.T) {
		_, err := New(WithRegistry(nil))
		assert.Error(t, err)
	})

	t.Run("custom logger", func(t *testing.T) {
		c, err := New(WithLogger(logging.NewNopLogger()))
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("custom dedupe options", func(t *testing.T) {
		opts := dedupe.DefaultOptions()
		opts.StrictPasswords = false
		c, err := New(WithDedupeOptions(opts))
		require.NoError(t, err)

		a := vault.Item{Type: vault.TypeLogin, PrimaryURL: "https://x.test", Username: "u", Password: "p1"}
		b := vault.Item{Type: vault.TypeLogin, PrimaryURL: "https://x.test", Username: "u", Password: "p2"}
		res := c.Group([]vault.Item{a, b})
		assert.Len(t, res.Pending, 1)
	})
}
