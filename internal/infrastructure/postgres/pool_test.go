package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/optica-erp/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.local", Port: 5433, User: "optica", Password: "s3cr#t",
		DBName: "optica_erp", SSLMode: "disable", MaxConns: 10,
	}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "s3cr#t", pc.ConnConfig.Password)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgresql://u:p@remote:6543/prod?sslmode=disable",
		Host:        "ignored", Port: 5432, MaxConns: 1,
	}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "remote", pc.ConnConfig.Host)
	assert.Equal(t, "prod", pc.ConnConfig.Database)
	assert.Equal(t, int32(1), pc.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://%zz", MaxConns: 1})
	assert.Error(t, err)
}
