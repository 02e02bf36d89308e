package main

import (
	"testing"

	"MediCore/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "seed-admin"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	seed, _, err := root.Find([]string{"seed-admin"})
	require.NoError(t, err)
	assert.NotNil(t, seed.Flags().Lookup("password"))
	assert.NotNil(t, seed.Flags().Lookup("email"))
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setupLogger(&config.AppConfig{Env: "production", LogLevel: "debug"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger(&config.AppConfig{Env: "development", LogLevel: "nonsense"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
