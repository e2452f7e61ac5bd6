package container

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dlsdk-demos/config"
	"dlsdk-demos/internal/infrastructure/sdk"
	"dlsdk-demos/internal/infrastructure/storage"
)

func TestNew_WiresServices(t *testing.T) {
	client := sdk.NewClient("http://127.0.0.1:5000", "CPU", zap.NewNop())
	c := New(&config.Config{}, storage.NewMemoryUserRepository(), client, client, nil, zap.NewNop())

	require.NotNil(t, c.UserService)
	require.NotNil(t, c.InferenceService)
	require.NotNil(t, c.Benchmark)
	require.NoError(t, c.Close())
}

func TestLoad_UsesEnvironment(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("DL_DEVICE", "cpu")

	c, err := Load("test")
	require.NoError(t, err)
	require.Equal(t, "CPU", c.Config.Device)
	require.NotNil(t, c.Loader)
	require.NoError(t, c.Close())
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Setenv("DL_DEVICE", "tpu")
	_, err := Load("test")
	require.Error(t, err)
}
