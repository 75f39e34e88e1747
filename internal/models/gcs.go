package models

import (
	"fmt"
	"path"
	"strings"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"

	"github.com/hashicorp/go-multierror"
)

// CloudStoragePayload addresses one archived object. Path never carries a trailing slash.
type CloudStoragePayload struct {
	Filename string
	Path     string
}

func (c CloudStoragePayload) GetFilePath() string {
	return path.Join(c.Path, c.Filename)
}

// NewCloudStoragePayload splits an object path into its directory and filename.
func NewCloudStoragePayload(objectPath string) CloudStoragePayload {
	dir, file := path.Split(path.Clean(strings.TrimSpace(objectPath)))
	return CloudStoragePayload{Filename: file, Path: strings.TrimSuffix(dir, "/")}
}

type WriteStreamResult struct {
	errCh <-chan error
	url   string
}

func NewWriteStreamResult(errCh <-chan error, url string) WriteStreamResult {
	return WriteStreamResult{errCh: errCh, url: url}
}

// Wait blocks until the writer goroutine has closed the object and returns its path.
func (r WriteStreamResult) Wait() (string, error) {
	var errs *multierror.Error
	for e := range r.errCh {
		errs = multierror.Append(errs, e)
	}

	return r.url, errs.ErrorOrNil()
}

const ReconciliationReportPrefix = "conciliacao_sicoob"

// ReconciliationReportFilename is the download name of a window export.
func ReconciliationReportFilename(start, end time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", ReconciliationReportPrefix, start.Format(common.DateFormatYYYYMMDDWithoutDash), end.Format(common.DateFormatYYYYMMDDWithoutDash))
}

// ReconciliationArchivePayload is the object path of a run archived under basePath.
func ReconciliationArchivePayload(basePath, runID string, start, end time.Time) CloudStoragePayload {
	return CloudStoragePayload{
		Path:     strings.TrimSuffix(basePath, "/"),
		Filename: fmt.Sprintf("%s_%s_%s_%s.csv", ReconciliationReportPrefix, start.Format(common.DateFormatYYYYMMDDWithoutDash), end.Format(common.DateFormatYYYYMMDDWithoutDash), runID),
	}
}
