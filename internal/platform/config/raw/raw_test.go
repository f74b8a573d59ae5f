package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	c := FromMap(map[string]string{"APP_NAME": "  deploytrack ", "API_PORT": " 8080 ", "API_BLANK": "   "})
	api := c.Prefix("API_")

	assert.Equal(t, "deploytrack", c.Get("APP_NAME", "x"))
	assert.Equal(t, "8080", api.Get("PORT", "x"))
	assert.Equal(t, "def", api.Get("MISSING", "def"))
	assert.Equal(t, "def", api.Get("BLANK", "def"))
	assert.Equal(t, "API_V1_PORT", api.Prefix("V1_").Key("PORT"))
}

func TestGetBool(t *testing.T) {
	c := FromMap(map[string]string{
		"T1": "true", "T2": "1", "T3": "YES", "WS": "  true ",
		"F1": "false", "F2": "0", "F3": "nope",
	})
	for _, k := range []string{"T1", "T2", "T3", "WS"} {
		assert.True(t, c.GetBool(k, false), k)
	}
	for _, k := range []string{"F1", "F2", "F3"} {
		assert.False(t, c.GetBool(k, true), k)
	}
	assert.True(t, c.GetBool("UNSET", true))
}

func TestGetInt(t *testing.T) {
	c := FromMap(map[string]string{"N": " 42 ", "BAD": "4x", "NEG": "-3"})
	assert.Equal(t, 42, c.GetInt("N", 7))
	assert.Equal(t, 7, c.GetInt("BAD", 7))
	assert.Equal(t, 7, c.GetInt("NEG", 7))
	assert.Equal(t, 7, c.GetInt("UNSET", 7))
}

func TestNew_ReadsProcessEnv(t *testing.T) {
	t.Setenv("RAWTEST_LEVEL", "debug")
	assert.Equal(t, "debug", New().Prefix("RAWTEST_").Get("LEVEL", "info"))

	var zero Conf
	assert.Equal(t, "debug", zero.Get("RAWTEST_LEVEL", ""))
}
