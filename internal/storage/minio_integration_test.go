//go:build integration

package storage

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"rhdocs/internal/config"
)

func startMinIO(t *testing.T) config.MinIOConfig {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("terminate minio: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	require.NoError(t, err)
	return config.MinIOConfig{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "pieces-test",
	}
}

func TestMinIORoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewMinIO(ctx, startMinIO(t))
	require.NoError(t, err)

	require.NoError(t, store.Ping(ctx))

	content := []byte("%PDF-1.4 integration")
	obj, err := store.Put(ctx, "pieces/it.pdf", bytes.NewReader(content), PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		Metadata:    map[string]string{"original-filename": "contrat.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), obj.Size)
	assert.Equal(t, "contrat.pdf", obj.OriginalFilename())

	rc, info, err := store.Get(ctx, "pieces/it.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.Equal(t, "contrat.pdf", info.Metadata[OriginalFilenameMeta])
	assert.Equal(t, "contrat.pdf", info.OriginalFilename())

	require.NoError(t, store.Delete(ctx, "pieces/it.pdf"))
	_, _, err = store.Get(ctx, "pieces/it.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "pieces/it.pdf"))
}
