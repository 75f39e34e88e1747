package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

//go:generate mockgen -source=gcs.go -destination=mock/gcs.go -package=mock

const reportContentType = "text/csv; charset=utf-8"

// CloudStorageRepository archives exported reports. An empty bucketName means the
// configured bucket.
type CloudStorageRepository interface {
	NewWriter(ctx context.Context, bucketName string, payload *models.CloudStoragePayload) io.WriteCloser
	WriteStream(ctx context.Context, bucketName string, payload *models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult
	GetURL(bucketName string, payload *models.CloudStoragePayload) (url string)
	GetSignedURL(filePath string, expireDuration time.Duration) (url string, err error)
	IsObjectExist(ctx context.Context, payload *models.CloudStoragePayload) (isExist bool, url string)
	Close() error
}

type cloudStorageClient struct {
	config *config.CloudStorageConfig
	client *storage.Client
}

func NewCloudStorageRepository(cfg *config.Config, opts ...option.ClientOption) (CloudStorageRepository, error) {
	if strings.TrimSpace(cfg.CloudStorageConfig.BucketName) == "" {
		return nil, fmt.Errorf("init cloud storage: %w", common.ErrBucketNameEmpty)
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("init cloud storage: %w", err)
	}

	return &cloudStorageClient{client: client, config: &cfg.CloudStorageConfig}, nil
}

func (cs *cloudStorageClient) object(bucketName string, payload *models.CloudStoragePayload) *storage.ObjectHandle {
	if bucketName == "" {
		bucketName = cs.config.BucketName
	}
	return cs.client.Bucket(bucketName).Object(payload.GetFilePath())
}

func (cs *cloudStorageClient) GetURL(bucketName string, payload *models.CloudStoragePayload) (url string) {
	if bucketName == "" {
		bucketName = cs.config.BucketName
	}
	return strings.Join([]string{strings.TrimSuffix(cs.config.BaseURL, "/"), bucketName, payload.GetFilePath()}, "/")
}

func (cs *cloudStorageClient) NewWriter(ctx context.Context, bucketName string, payload *models.CloudStoragePayload) io.WriteCloser {
	w := cs.object(bucketName, payload).NewWriter(ctx)
	w.ContentType = reportContentType
	w.ContentDisposition = fmt.Sprintf("attachment; filename=%q", payload.Filename)
	return w
}

// WriteStream copies every chunk of data into the object until data is closed. The caller
// must close data and then Wait on the result. After the first failed write the rest of
// data is drained and discarded.
func (cs *cloudStorageClient) WriteStream(ctx context.Context, bucketName string, payload *models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult {
	errCh := make(chan error, 2)

	go func() {
		defer close(errCh)

		w := cs.NewWriter(ctx, bucketName, payload)
		var writeErr error
		for chunk := range data {
			if writeErr != nil {
				continue
			}
			_, writeErr = w.Write(chunk)
		}

		if writeErr != nil {
			errCh <- fmt.Errorf("write %s: %w", payload.GetFilePath(), writeErr)
		}
		if err := w.Close(); err != nil {
			errCh <- fmt.Errorf("close %s: %w", payload.GetFilePath(), err)
		}
	}()

	return models.NewWriteStreamResult(errCh, cs.GetURL(bucketName, payload))
}

func (cs *cloudStorageClient) Close() error {
	return cs.client.Close()
}

// IsObjectExist looks the payload up in the configured bucket.
func (cs *cloudStorageClient) IsObjectExist(ctx context.Context, payload *models.CloudStoragePayload) (isExist bool, url string) {
	_, err := cs.object("", payload).Attrs(ctx)
	switch {
	case err == nil:
		return true, cs.GetURL("", payload)
	case !errors.Is(err, storage.ErrObjectNotExist):
		xlog.Warn(ctx, "[GCS] object lookup failed",
			xlog.String("path", payload.GetFilePath()),
			xlog.Err(err))
	}

	return false, ""
}

func (cs *cloudStorageClient) GetSignedURL(filePath string, expireDuration time.Duration) (url string, err error) {
	if filePath == "" {
		return "", common.ErrFilePathEmpty
	}

	url, err = cs.client.Bucket(cs.config.BucketName).SignedURL(filePath, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(expireDuration),
	})
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", filePath, err)
	}

	return url, nil
}
