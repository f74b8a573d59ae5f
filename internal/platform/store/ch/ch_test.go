package ch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "::not a dsn"})
	assert.ErrorContains(t, err, "parse dsn")
}

func TestOpen_DoesNotDial(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, err := Open(ctx, Config{
		URL:        "clickhouse://127.0.0.1:1/default?dial_timeout=200ms",
		ClientInfo: BuildClientInfo("test", "v0"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.NoError(t, c.Insert(ctx, "activity", nil), "empty insert is a no-op")
	assert.Error(t, c.Ping(ctx))
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	products := map[string]string{}
	for _, p := range BuildClientInfo(" api ", " 1.0.0 ").Products {
		products[p.Name] = p.Version
	}
	assert.Equal(t, "1.0.0", products["deploytrack"])
	assert.Equal(t, "api", products["role"])
	assert.Regexp(t, `^go`, products["go"])
	assert.NotEmpty(t, products["commit"])
	assert.Contains(t, products, "host")
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var c *CH
	assert.NoError(t, c.Close())
}
