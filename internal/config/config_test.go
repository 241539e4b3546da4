package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DICTIONARY_MODE", "DICTIONARY_RPS", "SESSION_IDLE_MINUTES", "DICTIONARY_CACHE_DSN"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, DictChain, c.DictionaryMode)
	assert.Equal(t, 5.0, c.DictionaryRPS)
	assert.Equal(t, ":memory:", c.CacheDSN)
	assert.Equal(t, 2*time.Hour, c.SessionIdle)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DICTIONARY_MODE", "list")
	t.Setenv("DICTIONARY_RPS", "0.5")
	t.Setenv("DICTIONARY_TIMEOUT_MS", "250")
	t.Setenv("SESSION_IDLE_MINUTES", "not-a-number")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, DictList, c.DictionaryMode)
	assert.Equal(t, 0.5, c.DictionaryRPS)
	assert.Equal(t, 250*time.Millisecond, c.DictionaryTimeout)
	assert.Equal(t, 2*time.Hour, c.SessionIdle, "unparsable values fall back to the default")
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	t.Setenv("DICTIONARY_MODE", "oracle")
	_, err := Load()
	assert.ErrorContains(t, err, "oracle")
}

func TestLoad_RejectsNonPositiveIdle(t *testing.T) {
	t.Setenv("DICTIONARY_MODE", "")
	t.Setenv("SESSION_IDLE_MINUTES", "0")
	_, err := Load()
	assert.Error(t, err)
}
