package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("DB_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, "nhnproparts", cfg.MongoDatabase)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("MONGO_DATABASE", " ")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_DATABASE is required")
}
