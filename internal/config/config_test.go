package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSqlite, c.Database.Driver)
	assert.Contains(t, c.Database.Path, "nidsym.db")
	assert.Zero(t, c.Cache.Size)
}

func TestLoadConfig(t *testing.T) {
	tcs := []struct {
		name    string
		set     map[string]any
		wantErr bool
	}{
		{"memory", map[string]any{"database.driver": "memory", "database.path": "/tmp/x.gob"}, false},
		{"postgres", map[string]any{"database.driver": "postgres", "database.host": "db", "database.database": "nid", "database.user": "u"}, false},
		{"postgres missing host", map[string]any{"database.driver": "postgres"}, true},
		{"unknown driver", map[string]any{"database.driver": "mongo"}, true},
		{"negative batch", map[string]any{"database.path": "x.db", "database.batch_size": -1}, true},
		{"negative cache", map[string]any{"database.path": "x.db", "cache.size": -5}, true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			for k, v := range tc.set {
				viper.Set(k, v)
			}
			c, err := LoadConfig()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if c.Database.Driver == DriverPostgres {
				assert.Equal(t, "5432", c.Database.Port)
			}
		})
	}
}
