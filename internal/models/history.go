package models

import (
	"encoding/base64"
	"fmt"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
)

const (
	kindReconciliationRun = "reconciliationRun"

	ReconciliationRunStatusComplete = "COMPLETE"
)

// ReconciliationRun is a persisted history row. Rows are only ever inserted.
type ReconciliationRun struct {
	ID          int64
	RunID       string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	Summary     ReportSummary
	ArchivePath string
	CreatedAt   time.Time
}

func NewReconciliationRun(report *ReconciliationReport, archivePath string) ReconciliationRun {
	return ReconciliationRun{
		RunID:       report.RunID,
		StartDate:   report.StartDate,
		EndDate:     report.EndDate,
		Status:      ReconciliationRunStatusComplete,
		Summary:     report.Summary,
		ArchivePath: archivePath,
	}
}

func (r ReconciliationRun) GetCursor() string {
	offsetBytes := []byte(r.CreatedAt.Format(time.RFC3339Nano))
	return base64.StdEncoding.EncodeToString(offsetBytes)
}

func (r ReconciliationRun) ToModelResponse() DoGetReconciliationRunResponse {
	return DoGetReconciliationRunResponse{
		Kind:                   kindReconciliationRun,
		ID:                     fmt.Sprint(r.ID),
		RunID:                  r.RunID,
		StartDate:              r.StartDate.In(common.GetLocation()).Format(common.DateFormatYYYYMMDD),
		EndDate:                r.EndDate.In(common.GetLocation()).Format(common.DateFormatYYYYMMDD),
		Status:                 r.Status,
		ReconciledCount:        r.Summary.ReconciledCount,
		DivergentCount:         r.Summary.DivergentCount,
		MissingInBankCount:     r.Summary.MissingInBankCount,
		MissingInInternalCount: r.Summary.MissingInInternalCount,
		ExcludedCount:          r.Summary.ExcludedCount,
		ReconciliationRate:     r.Summary.ReconciliationRate.String(),
		TotalVolume:            common.FormatAmount(r.Summary.TotalVolume),
		DivergentVolume:        common.FormatAmount(r.Summary.DivergentVolume),
		Archived:               r.ArchivePath != "",
		CreatedAt:              r.CreatedAt.In(common.GetLocation()).Format(common.DateFormatYYYYMMDDWithTime),
	}
}

type ReconciliationRunFilterOptions struct {
	StartDate *time.Time
	EndDate   *time.Time

	// Pagination filter
	Limit           int
	AscendingOrder  bool
	AfterCreatedAt  *time.Time
	BeforeCreatedAt *time.Time
}

type DoGetListReconciliationRunRequest struct {
	StartDate  string `query:"startDate" example:"2025-01-01"`
	EndDate    string `query:"endDate" example:"2025-01-31"`
	Limit      int    `query:"limit" example:"10"`
	NextCursor string `query:"nextCursor" example:"abc"`
	PrevCursor string `query:"prevCursor" example:"cba"`
}

type DoGetReconciliationRunResponse struct {
	Kind                   string `json:"kind" example:"reconciliationRun"`
	ID                     string `json:"id" example:"1"`
	RunID                  string `json:"runId" example:"b7a4..."`
	StartDate              string `json:"startDate" example:"2025-01-01"`
	EndDate                string `json:"endDate" example:"2025-01-31"`
	Status                 string `json:"status" example:"COMPLETE"`
	ReconciledCount        int    `json:"reconciledCount" example:"10"`
	DivergentCount         int    `json:"divergentCount" example:"1"`
	MissingInBankCount     int    `json:"missingInBankCount" example:"0"`
	MissingInInternalCount int    `json:"missingInInternalCount" example:"0"`
	ExcludedCount          int    `json:"excludedCount" example:"0"`
	ReconciliationRate     string `json:"reconciliationRate" example:"0.9091"`
	TotalVolume            string `json:"totalVolume" example:"1500.00"`
	DivergentVolume        string `json:"divergentVolume" example:"150.00"`
	Archived               bool   `json:"archived" example:"true"`
	CreatedAt              string `json:"createdAt" example:"2006-01-02 15:04:05"`
}

func (req DoGetListReconciliationRunRequest) ToFilterOpts() (*ReconciliationRunFilterOptions, error) {
	opts := &ReconciliationRunFilterOptions{
		Limit: req.Limit,
	}

	if req.Limit < 0 {
		return nil, GetErrMap(ErrKeyLimitMustBeGreaterThanZero)
	}

	if req.StartDate == "" || req.EndDate == "" {
		if req.StartDate != "" || req.EndDate != "" {
			return nil, GetErrMap(ErrKeyStartDateAndEndDateRequiredIfOneIsFilled)
		}
	} else {
		startDate, err := common.ParseStringToDatetime(common.DateFormatYYYYMMDD, req.StartDate)
		if err != nil {
			return nil, GetErrMap(ErrKeyInvalidFormatDate, fmt.Sprintf("date %s format must be YYYY-MM-DD", req.StartDate))
		}
		opts.StartDate = &startDate

		endDate, err := common.ParseStringToDatetime(common.DateFormatYYYYMMDD, req.EndDate)
		if err != nil {
			return nil, GetErrMap(ErrKeyInvalidFormatDate, fmt.Sprintf("date %s format must be YYYY-MM-DD", req.EndDate))
		}
		opts.EndDate = &endDate

		if startDate.After(endDate) {
			return nil, GetErrMap(ErrKeyStartDateIsAfterEndDate)
		}
	}

	if req.Limit == 0 {
		opts.Limit = 10
	}

	// over-fetch one row to know whether a next page exists
	opts.Limit += 1

	if req.NextCursor != "" {
		afterTime, err := decodeReconciliationRunCursor(req.NextCursor)
		if err != nil {
			return nil, err
		}
		opts.AfterCreatedAt = &afterTime
	}

	if req.NextCursor == "" && req.PrevCursor != "" {
		prevTime, err := decodeReconciliationRunCursor(req.PrevCursor)
		if err != nil {
			return nil, err
		}
		opts.BeforeCreatedAt = &prevTime
		opts.AscendingOrder = true
	}

	return opts, nil
}

func decodeReconciliationRunCursor(cursor string) (decodedTime time.Time, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return decodedTime, fmt.Errorf("failed to parse offset string: %w", err)
	}

	decodedTime, err = time.Parse(time.RFC3339Nano, string(decodedBytes))
	if err != nil {
		return decodedTime, fmt.Errorf("failed to parse offset time: %w", err)
	}

	return decodedTime, nil
}

type GetURLReconciliationRunResponse struct {
	Kind          string `json:"kind"`
	RunID         string `json:"runId"`
	ResultFileURL string `json:"resultFileUrl"`
}

func NewGetURLReconciliationRunResponse(runID, url string) *GetURLReconciliationRunResponse {
	return &GetURLReconciliationRunResponse{
		Kind:          "reconciliationResultUrl",
		RunID:         runID,
		ResultFileURL: url,
	}
}
