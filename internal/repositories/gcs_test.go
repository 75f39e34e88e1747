package repositories

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"cloud.google.com/go/storage"
	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type gcsHelper struct {
	server        *fakestorage.Server
	client        *storage.Client
	defaultConfig *config.CloudStorageConfig
}

func newGcsClientHelper(t *testing.T) *gcsHelper {
	t.Helper()
	t.Parallel()

	server, err := fakestorage.NewServerWithOptions(fakestorage.Options{
		NoListener: true,
	})
	require.NoError(t, err)
	t.Cleanup(server.Stop)

	client, err := storage.NewClient(
		context.Background(),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.HTTPClient()))
	require.NoError(t, err)

	h := &gcsHelper{
		server: server,
		client: client,
		defaultConfig: &config.CloudStorageConfig{
			BaseURL:    "http://test:1337",
			BucketName: "recon-bucket",
		},
	}
	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: h.defaultConfig.BucketName})

	return h
}

func (h *gcsHelper) repo() *cloudStorageClient {
	return &cloudStorageClient{config: h.defaultConfig, client: h.client}
}

func TestNewCloudStorageRepository(t *testing.T) {
	helper := newGcsClientHelper(t)

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{
			name: "success init cloud storage",
			cfg:  &config.Config{CloudStorageConfig: *helper.defaultConfig},
		},
		{
			name:    "failed init cloud storage (bucket name not set)",
			cfg:     &config.Config{},
			wantErr: common.ErrBucketNameEmpty,
		},
		{
			name:    "failed init cloud storage (blank bucket name)",
			cfg:     &config.Config{CloudStorageConfig: config.CloudStorageConfig{BucketName: "  "}},
			wantErr: common.ErrBucketNameEmpty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewCloudStorageRepository(tt.cfg,
				option.WithoutAuthentication(),
				option.WithHTTPClient(helper.server.HTTPClient()))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo)
				return
			}
			require.NoError(t, err)
			if repo != nil {
				assert.NoError(t, repo.Close())
			}
		})
	}
}

func Test_cloudStorageClient_GetURL(t *testing.T) {
	helper := newGcsClientHelper(t)
	payload := &models.CloudStoragePayload{Path: "reports", Filename: "a.csv"}

	assert.Equal(t, "http://test:1337/recon-bucket/reports/a.csv", helper.repo().GetURL("", payload))
	assert.Equal(t, "http://test:1337/other/reports/a.csv", helper.repo().GetURL("other", payload))

	helper.defaultConfig.BaseURL = "http://test:1337/"
	assert.Equal(t, "http://test:1337/recon-bucket/reports/a.csv", helper.repo().GetURL("", payload))
}

func Test_cloudStorageClient_WriteStream(t *testing.T) {
	helper := newGcsClientHelper(t)
	helper.server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: "exports"})

	tests := []struct {
		name       string
		bucketName string
		wantBucket string
	}{
		{name: "default bucket", wantBucket: "recon-bucket"},
		{name: "custom bucket", bucketName: "exports", wantBucket: "exports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := &models.CloudStoragePayload{Path: "reports", Filename: "conciliacao_sicoob_20250101_20250131.csv"}
			data := make(chan []byte)

			res := helper.repo().WriteStream(context.Background(), tt.bucketName, payload, data)
			data <- []byte("Status,TransactionId\n")
			data <- []byte("Conciliada,T1\n")
			close(data)

			url, err := res.Wait()
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("http://test:1337/%s/%s", tt.wantBucket, payload.GetFilePath()), url)

			obj, err := helper.server.GetObject(tt.wantBucket, payload.GetFilePath())
			require.NoError(t, err)
			assert.Equal(t, "Status,TransactionId\nConciliada,T1\n", string(obj.Content))
		})
	}
}

func Test_cloudStorageClient_NewWriter(t *testing.T) {
	helper := newGcsClientHelper(t)
	payload := &models.CloudStoragePayload{Path: "reports", Filename: "w.csv"}

	w := helper.repo().NewWriter(context.Background(), "", payload)
	_, err := io.WriteString(w, "Status\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	exist, url := helper.repo().IsObjectExist(context.Background(), payload)
	assert.True(t, exist)
	assert.Equal(t, "http://test:1337/recon-bucket/reports/w.csv", url)
}

func Test_cloudStorageClient_IsObjectExist_Missing(t *testing.T) {
	helper := newGcsClientHelper(t)

	exist, url := helper.repo().IsObjectExist(context.Background(), &models.CloudStoragePayload{Filename: "nope.csv"})
	assert.False(t, exist)
	assert.Empty(t, url)
}

func Test_cloudStorageClient_GetSignedURL_EmptyPath(t *testing.T) {
	helper := newGcsClientHelper(t)

	url, err := helper.repo().GetSignedURL("", time.Minute)
	assert.ErrorIs(t, err, common.ErrFilePathEmpty)
	assert.Empty(t, url)
}

func Test_cloudStorageClient_WriteStream_DrainsAfterClose(t *testing.T) {
	helper := newGcsClientHelper(t)
	payload := &models.CloudStoragePayload{Filename: "empty.csv"}
	data := make(chan []byte)

	res := helper.repo().WriteStream(context.Background(), "", payload, data)
	close(data)

	_, err := res.Wait()
	require.NoError(t, err)

	obj, err := helper.server.GetObject("recon-bucket", "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, obj.Content)
	assert.Equal(t, reportContentType, obj.ContentType)
}
