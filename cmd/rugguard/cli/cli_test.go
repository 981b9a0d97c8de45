package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesPrintsNavigation(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"routes"})

	require.NoError(t, root.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Pools\t/", lines[0])
	assert.Equal(t, "TX Queue\t/pool-tx-queue", lines[4])
	assert.Equal(t, "About\t/about", lines[6])
}

func TestServeRejectsBadConfig(t *testing.T) {
	t.Setenv("RUGGUARD_PORT", "not-a-port")

	root := NewRootCmd()
	root.SetArgs([]string{"serve", "--config", t.TempDir() + "/missing.yaml"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config load failed")
}

func TestConfigFlagDefault(t *testing.T) {
	f := NewRootCmd().PersistentFlags().Lookup("config")
	require.NotNil(t, f)
	assert.Equal(t, defaultConfigPath, f.DefValue)
}
