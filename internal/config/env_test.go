package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TOYCATCH_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("TOYCATCH_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TOYCATCH_TEST_MISSING", "fallback"))
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("TOYCATCH_TEST_INT", "42")
	t.Setenv("TOYCATCH_TEST_FLOAT", "0.45")
	t.Setenv("TOYCATCH_TEST_BOOL", "false")

	n, err := GetEnvInt("TOYCATCH_TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	f, err := GetEnvFloat("TOYCATCH_TEST_FLOAT", 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.45, f, 1e-9)

	b, err := GetEnvBool("TOYCATCH_TEST_BOOL", true)
	require.NoError(t, err)
	assert.False(t, b)

	n, err = GetEnvInt("TOYCATCH_TEST_UNSET", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestGetEnvMalformed(t *testing.T) {
	t.Setenv("TOYCATCH_TEST_INT", "sixty")
	_, err := GetEnvInt("TOYCATCH_TEST_INT", 60)
	assert.ErrorContains(t, err, "not an integer")

	t.Setenv("TOYCATCH_TEST_FLOAT", "wide")
	_, err = GetEnvFloat("TOYCATCH_TEST_FLOAT", 1)
	assert.ErrorContains(t, err, "not a number")

	t.Setenv("TOYCATCH_TEST_BOOL", "maybe")
	_, err = GetEnvBool("TOYCATCH_TEST_BOOL", true)
	assert.ErrorContains(t, err, "not a boolean")
}
