package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggedzi/creddedupe/pkg/errors"
)

func TestNewDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	assert.Equal(t, 10, reg.Len())
	// Registration order is stable, with the baseline provider first.
	assert.Equal(t, ProtonPass, reg.List()[0])

	for _, id := range reg.List() {
		p, err := reg.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
		assert.NotEmpty(t, p.Headers().Required)
		assert.NotEmpty(t, p.Columns())
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewLastPass()))

	err := reg.Register(NewLastPass())
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get(LastPass)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Username ", "username"},
		{"\"password\"", "password"},
		{"URL:", "url"},
		{"Login", "login"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.raw))
	}
}
