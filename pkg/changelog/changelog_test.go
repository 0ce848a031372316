package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggedzi/creddedupe/pkg/dedupe"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	sum, err := HashFile(path)
	require.NoError(t, err)
	// Well-known SHA-256 of "abc".
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLogRoundTrip(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("name,url\n"), 0o644))

	l := New()
	require.NoError(t, l.AddInput(input))
	l.RecordAutoMerge(dedupe.Key{Domain: "example.com", Login: "alice"},
		vault.Item{Title: "Example", Source: "bitwarden"}, 2)
	l.RecordDecision(&dedupe.Cluster{
		Key:     dedupe.Key{Domain: "example.com", Login: "bob"},
		Members: []vault.Item{{Title: "A", Source: "lastpass"}, {Title: "B", Source: "firefox"}},
	}, dedupe.Decision{Action: dedupe.KeepBest}, 1)

	path := filepath.Join(t.TempDir(), "changelog.json")
	require.NoError(t, l.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "creddedupe", got.Tool)
	assert.Equal(t, []string{input}, got.InputFiles)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, ActionRemoveExact, got.Entries[0].Action)
	assert.Equal(t, ActionMerge, got.Entries[1].Action)
	assert.Equal(t, 3, got.Removed())
}

func TestRecordDecisionActions(t *testing.T) {
	c := &dedupe.Cluster{Members: []vault.Item{{Title: "A"}, {Title: "B"}}}

	tests := []struct {
		decision dedupe.Decision
		want     Action
	}{
		{dedupe.Decision{Action: dedupe.KeepOne, Index: 1}, ActionDiscardManual},
		{dedupe.Decision{Action: dedupe.KeepBest}, ActionMerge},
		{dedupe.Decision{Action: dedupe.KeepAll}, ActionKeepAll},
		{dedupe.Decision{Action: dedupe.Skip}, ActionSkip},
	}
	for _, tt := range tests {
		l := New()
		l.RecordDecision(c, tt.decision, 0)
		require.Len(t, l.Entries, 1)
		assert.Equal(t, tt.want, l.Entries[0].Action)
	}
}

func TestSaveYAML(t *testing.T) {
	l := New()
	l.Append(Entry{Action: ActionSkip, Domain: "example.com"})

	path := filepath.Join(t.TempDir(), "changelog.yaml")
	require.NoError(t, l.SaveYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "action: skip")
	assert.Contains(t, string(data), "domain: example.com")
}
