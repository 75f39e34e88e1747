package services

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/monitoring"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services/reconciler"
)

const defaultResultURLExpiry = 15 * time.Minute

type StorageService interface {
	// UploadReport streams the CSV of report to payload and returns the object path.
	UploadReport(ctx context.Context, bucketName string, payload models.CloudStoragePayload, report *models.ReconciliationReport) (filePath string, err error)
	IsReportExist(ctx context.Context, filePath string) (isExist bool, url string)
	GetDownloadURL(ctx context.Context, filePath string) (url string, err error)
}

type storage service

var _ StorageService = (*storage)(nil)

// chanWriter hands every Write to the stream consumer as its own chunk.
type chanWriter chan<- []byte

func (w chanWriter) Write(p []byte) (int, error) {
	chunk := make([]byte, len(p))
	copy(chunk, p)
	w <- chunk
	return len(p), nil
}

func (svc *storage) UploadReport(ctx context.Context, bucketName string, payload models.CloudStoragePayload, report *models.ReconciliationReport) (filePath string, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if svc.srv.cloudStorage == nil {
		return "", fmt.Errorf("%w: cloud storage is not configured", models.ErrExport)
	}

	chanData := make(chan []byte)
	errWrite := make(chan error, 1)
	go func() {
		defer close(chanData)
		errWrite <- reconciler.WriteCSV(chanWriter(chanData), report)
	}()

	r := svc.srv.cloudStorage.WriteStream(ctx, bucketName, &payload, chanData)
	_, err = r.Wait()
	if errCSV := <-errWrite; errCSV != nil {
		return "", errCSV
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed write stream: %w", models.ErrExport, err)
	}

	return payload.GetFilePath(), nil
}

// IsReportExist checks the configured bucket. If exist, will return report's url.
func (svc *storage) IsReportExist(ctx context.Context, filePath string) (isExist bool, url string) {
	if svc.srv.cloudStorage == nil || filePath == "" {
		return false, ""
	}

	payload := models.NewCloudStoragePayload(filePath)
	return svc.srv.cloudStorage.IsObjectExist(ctx, &payload)
}

func (svc *storage) GetDownloadURL(ctx context.Context, filePath string) (url string, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if filePath == "" {
		return "", common.ErrFilePathEmpty
	}

	if exist, _ := svc.IsReportExist(ctx, filePath); !exist {
		return "", models.ErrReportNotArchived
	}

	expireDuration := defaultResultURLExpiry
	if svc.srv.conf.Reconciliation.ResultURLExpiryTime > 0 {
		expireDuration = time.Duration(svc.srv.conf.Reconciliation.ResultURLExpiryTime) * time.Minute
	}

	return svc.srv.cloudStorage.GetSignedURL(filePath, expireDuration)
}
