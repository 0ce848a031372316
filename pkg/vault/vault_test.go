package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://example.com", "example.com"},
		{"https://www.example.com/login?next=/", "example.com"},
		{"http://EXAMPLE.com", "example.com"},
		{"example.com", "example.com"},
		{"www.example.com", "example.com"},
		{"https://www.www.example.com", "www.example.com"},
		{"https://sub.example.com", "sub.example.com"},
		{"https://example.com:8443/path", "example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDomain(tt.raw))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"HTTPS://Example.COM/Path/", "https://example.com/Path"},
		{"https://example.com/?q=1", "https://example.com/?q=1"},
		{"https://example.com", "https://example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.raw))
	}
}

func TestDomainOrName(t *testing.T) {
	withURL := Item{Title: "My Bank", PrimaryURL: "https://www.bank.test/login"}
	assert.Equal(t, "bank.test", DomainOrName(withURL))

	titleOnly := Item{Title: "  Wifi  Password "}
	assert.Equal(t, "wifi password", DomainOrName(titleOnly))

	assert.Equal(t, "", DomainOrName(Item{}))
}

func TestLoginID(t *testing.T) {
	tests := []struct {
		name        string
		item        Item
		equivalence bool
		want        string
	}{
		{
			name: "username verbatim",
			item: Item{Username: "  Alice "},
			want: "alice",
		},
		{
			name:        "email stands in for an empty username",
			item:        Item{Extra: map[string]string{"proton_email": "a@b.test"}},
			equivalence: true,
			want:        "a@b.test",
		},
		{
			name: "no equivalence keeps the empty username",
			item: Item{Extra: map[string]string{"proton_email": "a@b.test"}},
			want: "",
		},
		{
			name:        "username wins over email",
			item:        Item{Username: "alice", Extra: map[string]string{"email": "a@b.test"}},
			equivalence: true,
			want:        "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoginID(tt.item, tt.equivalence))
		})
	}
}

func TestEmailValue(t *testing.T) {
	assert.Equal(t, "a@b.test", EmailValue(Item{Username: "a@b.test"}))
	assert.Equal(t, "", EmailValue(Item{Username: "alice"}))
	assert.Equal(t, "x@y.test", EmailValue(Item{
		Username: "a@b.test",
		Extra:    map[string]string{"proton_email": "x@y.test"},
	}))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
		ok   bool
	}{
		{"epoch seconds", "1700000000", 1700000000000, true},
		{"epoch millis", "1700000000000", 1700000000000, true},
		{"rfc3339", "2023-11-14T22:13:20Z", 1700000000000, true},
		{"date time", "2023-11-14 22:13:20", 1700000000000, true},
		{"date only", "2023-11-14", 1699920000000, true},
		{"empty", "", 0, false},
		{"garbage", "yesterday", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTimestampPrecedence(t *testing.T) {
	assert.EqualValues(t, 5, Item{CreatedAt: 3, UpdatedAt: 5}.Timestamp())
	assert.EqualValues(t, 3, Item{CreatedAt: 3}.Timestamp())
	assert.EqualValues(t, 0, Item{}.Timestamp())
}

func TestCloneIsDeep(t *testing.T) {
	orig := Item{
		Title:         "a",
		SecondaryURLs: []string{"https://x.test"},
		Tags:          []string{"work"},
		Extra:         map[string]string{"k": "v"},
	}

	c := orig.Clone()
	c.SecondaryURLs[0] = "https://changed.test"
	c.Extra["k"] = "changed"

	assert.Equal(t, "https://x.test", orig.SecondaryURLs[0])
	assert.Equal(t, "v", orig.Extra["k"])
}

func TestAddSecondaryURL(t *testing.T) {
	var it Item
	it.AddSecondaryURL("https://a.test")
	it.AddSecondaryURL("https://a.test")
	it.AddSecondaryURL("")
	it.AddSecondaryURL("https://b.test")

	require.Equal(t, []string{"https://a.test", "https://b.test"}, it.SecondaryURLs)
}

func TestParseItemType(t *testing.T) {
	assert.Equal(t, TypeLogin, ParseItemType("login"))
	assert.Equal(t, TypeNote, ParseItemType("Secure Note"))
	assert.Equal(t, TypeOther, ParseItemType("something else"))
}
