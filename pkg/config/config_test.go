package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "seraphine", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 2<<20, cfg.Import.MaxBytes)
	assert.Equal(t, "auto", cfg.Import.DefaultEncoding)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("HTTP_PORT", "no-numerico")
	v.Set("METRICS_ENABLED", "false")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg := fromViper(v)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un entero inválido cae al valor por defecto")
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}

func TestValidate_SecretObligatorio(t *testing.T) {
	cfg := fromViper(viper.New())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWT.Secret = "x"
	assert.NoError(t, cfg.Validate())

	cfg.DB.MinConns = 30
	assert.ErrorContains(t, cfg.Validate(), "DB_MAX_CONNS")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "seraphine", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/seraphine?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
