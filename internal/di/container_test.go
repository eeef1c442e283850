package di

import (
	"context"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/config"
	"github.com/yamdb/yamdb-server/internal/service"
)

func TestContainer_ResolvesServices(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YAMDB_APP__DATA_DIR", dir)
	t.Setenv("YAMDB_LOGGER__LEVEL", "error")

	injector := NewContainer("")
	t.Cleanup(func() { _ = injector.Shutdown() })

	cfg, err := do.Invoke[*config.Config](injector)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.App.DataDir)

	authSvc, err := do.Invoke[*service.AuthService](injector)
	require.NoError(t, err)

	u, code, err := authSvc.CreateAdmin(context.Background(), service.CreateAdminRequest{
		Username: "root",
		Email:    "root@example.com",
	})
	require.NoError(t, err)
	assert.True(t, u.IsAdministrator())
	assert.NotEmpty(t, code)
}
