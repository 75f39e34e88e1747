package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCloudStoragePayload(t *testing.T) {
	tests := []struct {
		input    string
		want     CloudStoragePayload
		wantPath string
	}{
		{input: "report.csv", want: CloudStoragePayload{Filename: "report.csv"}, wantPath: "report.csv"},
		{input: "recon/sicoob/report.csv", want: CloudStoragePayload{Filename: "report.csv", Path: "recon/sicoob"}, wantPath: "recon/sicoob/report.csv"},
		{input: "recon//report.csv", want: CloudStoragePayload{Filename: "report.csv", Path: "recon"}, wantPath: "recon/report.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NewCloudStoragePayload(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPath, got.GetFilePath())
		})
	}
}

func TestReconciliationFilenames(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "conciliacao_sicoob_20250101_20250131.csv", ReconciliationReportFilename(start, end))

	payload := ReconciliationArchivePayload("reconciliation/", "run-1", start, end)
	assert.Equal(t, "reconciliation/conciliacao_sicoob_20250101_20250131_run-1.csv", payload.GetFilePath())
}

func TestWriteStreamResult_Wait(t *testing.T) {
	ok := make(chan error)
	close(ok)
	path, err := NewWriteStreamResult(ok, "a/b.csv").Wait()
	assert.NoError(t, err)
	assert.Equal(t, "a/b.csv", path)

	failed := make(chan error, 2)
	failed <- errors.New("write")
	failed <- errors.New("close")
	close(failed)
	_, err = NewWriteStreamResult(failed, "a/b.csv").Wait()
	assert.ErrorContains(t, err, "write")
	assert.ErrorContains(t, err, "close")
}
