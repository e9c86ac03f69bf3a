package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetConfig(t *testing.T) {
	t.Setenv("TDK_RETRIES", "5")
	t.Setenv("TDK_REMOTE_HOST", "localhost:9000")
	t.Setenv("TDK_REMOTE_TIMEOUT", "3s")

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	conf, zapConf, err := getConfig([]string{"--config", missing, "--host", ":8081", "--maxworkers", "4"})
	require.NoError(t, err)
	require.NotNil(t, zapConf)

	assert.Equal(t, ":8081", conf.Host)
	assert.Equal(t, 5, conf.Retries)
	assert.Equal(t, 4, conf.MaxWorkers)
	assert.Equal(t, "localhost:9000", conf.Remote.Host)
	assert.Equal(t, 3*time.Second, conf.Remote.Timeout)

	client := conf.Client()
	assert.Equal(t, 5, client.Retries)
	assert.Equal(t, "localhost:9000", client.Host)
}

func TestZapConf(t *testing.T) {
	conf := Config{ZapConfig: `{"level":"warn","encoding":"json","outputPaths":["stderr"]}`}
	zapConf, err := conf.ZapConf()
	require.NoError(t, err)
	assert.Equal(t, "json", zapConf.Encoding)
	assert.Equal(t, zap.WarnLevel, zapConf.Level.Level())
	assert.True(t, zapConf.Development)

	conf.ZapConfig = "{"
	_, err = conf.ZapConf()
	assert.Error(t, err)
}
