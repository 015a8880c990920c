package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/regula/internal/config"
	"github.com/aretw0/regula/internal/logging"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:   "memory",
			mutate: func(c *config.Config) {},
		},
		{
			name: "file",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.BackendFile
				c.Store.File.Path = filepath.Join(t.TempDir(), "patterns.yaml")
			},
		},
		{
			name: "redis",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.BackendRedis
				c.Store.Redis.Addr = mr.Addr()
				c.Store.Redis.TTL = time.Hour
			},
		},
		{
			name:    "unknown",
			mutate:  func(c *config.Config) { c.Store.Backend = "etcd" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			app, err := NewApp(cfg, logging.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, app.Close()) })

			ctx := t.Context()
			require.NoError(t, app.Registry.Put(ctx, domain.Pattern{Name: "ab", Expr: "a*b"}))
			res, err := app.Registry.Match(ctx, "ab", "aaab")
			require.NoError(t, err)
			assert.True(t, res.Matched)
		})
	}
}

func TestNewApp_FileOpenError(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.BackendFile
	cfg.Store.File.Path = t.TempDir() // a directory cannot be read as a file

	_, err := NewApp(cfg, logging.NewNop())
	assert.Error(t, err)
}
