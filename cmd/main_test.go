package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiefbiiko/lauth/internal/config"
)

func TestNewUserStore_Redis(t *testing.T) {
	cfg := &config.Config{Store: config.StoreRedis}

	store, closeStore, err := newUserStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NotNil(t, closeStore)

	closeStore()
}

func TestNewUserStore_UnknownBackend(t *testing.T) {
	_, _, err := newUserStore(context.Background(), &config.Config{Store: "bolt"})
	assert.Error(t, err)
}

func TestNewKeypair_FromSeed(t *testing.T) {
	cfg := &config.Config{}
	cfg.Token.KeySeed = strings.Repeat("ab", 32)
	cfg.Token.KeyID = "pinned"

	kp, err := newKeypair(cfg)
	require.NoError(t, err)
	assert.Equal(t, "pinned", kp.KeyID)
	assert.NotEmpty(t, kp.Private)
	assert.NotEmpty(t, kp.Public)

	again, err := newKeypair(cfg)
	require.NoError(t, err)
	assert.Equal(t, kp.Private, again.Private)
}

func TestNewKeypair_Fresh(t *testing.T) {
	kp, err := newKeypair(&config.Config{})
	require.NoError(t, err)
	assert.NotEmpty(t, kp.KeyID)
	assert.NotEmpty(t, kp.Private)
}
