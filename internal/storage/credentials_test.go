package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Complete(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"both missing", Credentials{}, false},
		{"url missing", Credentials{Key: "anon"}, false},
		{"key missing", Credentials{URL: "https://x.supabase.co"}, false},
		{"blank key", Credentials{URL: "https://x.supabase.co", Key: "  "}, false},
		{"both present", Credentials{URL: "https://x.supabase.co", Key: "anon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.Complete())
		})
	}
}

func TestLocalStore_CredentialsLifecycle(t *testing.T) {
	kv := NewMemoryKV()
	s := NewLocalStore(kv, nil)

	c, err := s.Credentials()
	require.NoError(t, err)
	assert.False(t, c.Complete())

	require.NoError(t, s.SetCredentials(Credentials{URL: " https://x.supabase.co ", Key: "anon"}))
	c, err = s.Credentials()
	require.NoError(t, err)
	assert.Equal(t, Credentials{URL: "https://x.supabase.co", Key: "anon"}, c)

	raw, ok, _ := kv.GetItem(RemoteURLKey)
	assert.True(t, ok)
	assert.Equal(t, "https://x.supabase.co", raw)

	require.NoError(t, s.ClearCredentials())
	c, err = s.Credentials()
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, c)
}
