//go:build smoke

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func createContainer(ctx context.Context, t *testing.T, command []string, waitFor string) (testcontainers.Container, error) {
	t.Helper()
	adcnPath, err := filepath.Abs(filepath.Join("../", "adcn"))
	require.NoError(t, err)
	r, err := os.Open(adcnPath)
	require.NoError(t, err)

	cfgPath, err := filepath.Abs(filepath.Join("fixtures", "adcn.yaml"))
	require.NoError(t, err)
	r2, err := os.Open(cfgPath)
	require.NoError(t, err)

	scnPath, err := filepath.Abs(filepath.Join("fixtures", "scenario.yaml"))
	require.NoError(t, err)
	r3, err := os.Open(scnPath)
	require.NoError(t, err)

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "busybox:1.37-glibc",
			HostConfigModifier: func(config *container.HostConfig) {
				config.NetworkMode = "none"
			},
			Files: []testcontainers.ContainerFile{
				{
					Reader:            r,
					HostFilePath:      adcnPath, // will be discarded internally
					ContainerFilePath: "/adcn",
					FileMode:          0o700,
				},
				{
					Reader:            r2,
					HostFilePath:      cfgPath, // will be discarded internally
					ContainerFilePath: "/adcn.yaml",
					FileMode:          0o600,
				},
				{
					Reader:            r3,
					HostFilePath:      scnPath, // will be discarded internally
					ContainerFilePath: "/scenario.yaml",
					FileMode:          0o600,
				},
			},
			Cmd:        command,
			WaitingFor: wait.ForLog(waitFor),
		},
		Started: true,
	})
}

func TestAdcnExecutes(t *testing.T) {
	ctx := context.Background()
	c, err := createContainer(ctx, t, []string{"/adcn"}, "Avionics Data Communication Network simulator")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)
}

func TestAdcnVerify(t *testing.T) {
	ctx := context.Background()
	c, err := createContainer(ctx, t, []string{"/adcn", "-c", "/adcn.yaml", "-s", "/scenario.yaml", "verify"}, "Configuration is valid")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)
}

func TestAdcnQuery(t *testing.T) {
	ctx := context.Background()
	c, err := createContainer(ctx, t, []string{"/adcn", "-c", "/adcn.yaml", "query", "10.0.1.10", "10.0.3.10"}, "network x: true")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)
}

func TestAdcnQueryDefaults(t *testing.T) {
	ctx := context.Background()
	// cpiom-a1 and iom-a8 of the built-in layout
	c, err := createContainer(ctx, t, []string{"/adcn", "query", "10.0.1.11", "10.0.9.18"}, "network b: true")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)
}

func TestAdcnRuns(t *testing.T) {
	ctx := context.Background()
	c, err := createContainer(ctx, t, []string{"/adcn", "-s", "/scenario.yaml", "run"}, "ADCN is running. To gracefully exit, send SIGINT or Ctrl+C.")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)
}
