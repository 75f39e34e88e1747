package models

import (
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
)

type DoRunReconciliationRequest struct {
	StartDate string `json:"startDate" validate:"required,dateOrDatetime" example:"2025-01-01"`
	EndDate   string `json:"endDate" validate:"required,dateOrDatetime" example:"2025-01-31"`
}

type DoGetReconciliationWindowRequest struct {
	StartDate string `query:"startDate" json:"startDate" validate:"required,dateOrDatetime" example:"2025-01-01"`
	EndDate   string `query:"endDate" json:"endDate" validate:"required,dateOrDatetime" example:"2025-01-31"`
}

type DoGetReconciliationStatsRequest struct {
	Days int `query:"days" json:"days" validate:"gte=0" example:"30"`
}

// ToWindow parses both bounds; the caller must have validated the format already.
func (req DoRunReconciliationRequest) ToWindow() (Window, error) {
	return parseWindow(req.StartDate, req.EndDate)
}

func (req DoGetReconciliationWindowRequest) ToWindow() (Window, error) {
	return parseWindow(req.StartDate, req.EndDate)
}

func parseWindow(start, end string) (Window, error) {
	startDate, err := common.ParseDateOrDatetime(start)
	if err != nil {
		return Window{}, GetErrMap(ErrKeyInvalidFormatDate, start)
	}

	endDate, err := common.ParseDateOrDatetime(end)
	if err != nil {
		return Window{}, GetErrMap(ErrKeyInvalidFormatDate, end)
	}

	if endDate.Before(startDate) {
		return Window{}, GetErrMap(ErrKeyStartDateIsAfterEndDate)
	}

	return Window{Start: startDate, End: endDate}, nil
}

// ReconciliationCompletedEvent is published after a run is persisted.
type ReconciliationCompletedEvent struct {
	RunID       string        `json:"runId"`
	Bank        string        `json:"bank"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	ProcessedAt time.Time     `json:"processedAt"`
	ArchivePath string        `json:"archivePath,omitempty"`
	Summary     ReportSummary `json:"summary"`
}

func NewReconciliationCompletedEvent(report *ReconciliationReport, archivePath string) ReconciliationCompletedEvent {
	return ReconciliationCompletedEvent{
		RunID:       report.RunID,
		Bank:        "SICOOB",
		StartDate:   report.StartDate,
		EndDate:     report.EndDate,
		ProcessedAt: report.ProcessedAt,
		ArchivePath: archivePath,
		Summary:     report.Summary,
	}
}
