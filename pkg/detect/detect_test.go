package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggedzi/creddedupe/pkg/provider"
)

func TestDetectKnownFormats(t *testing.T) {
	reg := provider.NewDefaultRegistry()

	tests := []struct {
		name    string
		headers []string
		want    provider.ID
	}{
		{
			name:    "lastpass",
			headers: []string{"url", "username", "password", "totp", "extra", "name", "grouping", "fav"},
			want:    provider.LastPass,
		},
		{
			name: "bitwarden",
			headers: []string{"folder", "favorite", "type", "name", "notes", "fields",
				"reprompt", "login_uri", "login_username", "login_password", "login_totp"},
			want: provider.Bitwarden,
		},
		{
			name: "protonpass",
			headers: []string{"type", "name", "url", "email", "username", "password",
				"note", "totp", "createTime", "modifyTime", "vault"},
			want: provider.ProtonPass,
		},
		{
			name: "firefox",
			headers: []string{"url", "username", "password", "httpRealm", "formActionOrigin",
				"guid", "timeCreated", "timeLastUsed", "timePasswordChanged"},
			want: provider.Firefox,
		},
		{
			name:    "apple",
			headers: []string{"Title", "URL", "Username", "Password", "Notes", "OTPAuth"},
			want:    provider.ApplePasswords,
		},
		{
			name:    "kaspersky",
			headers: []string{"Account", "Login", "Password", "Url"},
			want:    provider.Kaspersky,
		},
		{
			name:    "headers are matched case-insensitively",
			headers: []string{"URL", "USERNAME", "PASSWORD", "TOTP", "EXTRA", "NAME", "GROUPING", "FAV"},
			want:    provider.LastPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(tt.headers, reg)
			assert.Equal(t, tt.want, res.Provider)
			assert.False(t, res.Ambiguous)
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestDetectPrefersMoreSpecificFingerprint(t *testing.T) {
	// A Proton Pass header contains every column Chromium wants, required and
	// optional alike. Coverage must keep the richer fingerprint on top.
	reg := provider.NewDefaultRegistry()
	headers := []string{"type", "name", "url", "email", "username", "password",
		"note", "totp", "createTime", "modifyTime", "vault"}

	res := Detect(headers, reg)
	assert.Equal(t, provider.ProtonPass, res.Provider)
	require.GreaterOrEqual(t, len(res.Candidates), 2)
	assert.Greater(t, res.Candidates[0].Score, res.Candidates[1].Score)
}

func TestDetectUnknownHeaders(t *testing.T) {
	reg := provider.NewDefaultRegistry()

	res := Detect([]string{"colA", "colB", "colC"}, reg)
	assert.Equal(t, provider.Unknown, res.Provider)
	assert.False(t, res.Ambiguous)
}

func TestDetectAmbiguousTie(t *testing.T) {
	// Chromium's required set is a subset of NordPass's template, so a bare
	// name/url/username/password header ties between them.
	reg := provider.NewRegistry()
	require.NoError(t, reg.Register(provider.NewChromium()))
	require.NoError(t, reg.Register(provider.NewNordPass()))

	res := Detect([]string{"name", "url", "username", "password"}, reg)
	assert.Equal(t, provider.Unknown, res.Provider)
	assert.True(t, res.Ambiguous)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, res.Candidates[0].Score, res.Candidates[1].Score)
}

func TestDetectThreshold(t *testing.T) {
	reg := provider.NewRegistry()
	require.NoError(t, reg.Register(provider.NewKaspersky()))

	// All four required columns present, diluted by four unknown ones:
	// coverage 0.5, confidence 0.9.
	headers := []string{"Account", "Login", "Password", "Url", "x1", "x2", "x3", "x4"}

	res := Detect(headers, reg)
	assert.Equal(t, provider.Kaspersky, res.Provider)
	assert.InDelta(t, 0.9, res.Confidence, 0.001)

	res = Detect(headers, reg, WithThreshold(0.95))
	assert.Equal(t, provider.Unknown, res.Provider)
	assert.False(t, res.Ambiguous)
	assert.Contains(t, res.Reason, "below confidence threshold")
}

func TestDetectPartialRequiredStaysCandidate(t *testing.T) {
	reg := provider.NewRegistry()
	require.NoError(t, reg.Register(provider.NewKaspersky()))

	// Three of four required columns score well but must not commit.
	headers := []string{"Account", "Login", "Password"}

	res := Detect(headers, reg, WithThreshold(0.1))
	assert.Equal(t, provider.Unknown, res.Provider)
	assert.False(t, res.Ambiguous)
	assert.Contains(t, res.Reason, "missing required columns")
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, provider.Kaspersky, res.Candidates[0].Provider)
	assert.Equal(t, []string{"Url"}, res.Candidates[0].MissingRequired)
}

func TestDetectEmptyInputs(t *testing.T) {
	reg := provider.NewDefaultRegistry()
	assert.Equal(t, provider.Unknown, Detect(nil, reg).Provider)
	assert.Equal(t, provider.Unknown, Detect([]string{"a"}, provider.NewRegistry()).Provider)
}

func TestDetectDeterministic(t *testing.T) {
	reg := provider.NewDefaultRegistry()
	headers := []string{"url", "username", "password", "totp", "extra", "name", "grouping", "fav"}

	first := Detect(headers, reg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Detect(headers, reg))
	}
}
