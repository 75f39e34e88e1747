package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRunReconciliationRequest_ToWindow(t *testing.T) {
	tests := []struct {
		name     string
		req      DoRunReconciliationRequest
		want     Window
		wantCode string
	}{
		{
			name: "plain dates",
			req:  DoRunReconciliationRequest{StartDate: "2025-01-01", EndDate: "2025-01-31"},
			want: Window{
				Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "rfc3339 bounds",
			req:  DoRunReconciliationRequest{StartDate: "2025-01-01T10:00:00Z", EndDate: "2025-01-01T12:00:00Z"},
			want: Window{
				Start: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "empty window is allowed",
			req:  DoRunReconciliationRequest{StartDate: "2025-01-01", EndDate: "2025-01-01"},
			want: Window{
				Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "end before start",
			req:      DoRunReconciliationRequest{StartDate: "2025-02-01", EndDate: "2025-01-01"},
			wantCode: "START_DATE_IS_AFTER_END_DATE",
		},
		{
			name:     "garbage start",
			req:      DoRunReconciliationRequest{StartDate: "01/02/2025", EndDate: "2025-01-01"},
			wantCode: "INVALID_FORMAT_DATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.ToWindow()
			if tt.wantCode != "" {
				var detail ErrorDetail
				require.ErrorAs(t, err, &detail)
				assert.Equal(t, tt.wantCode, detail.Code)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Start.Equal(got.Start))
			assert.True(t, tt.want.End.Equal(got.End))
		})
	}
}

func TestWindow(t *testing.T) {
	w := Window{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 7, w.Days())
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.Equal(t, 7, w.LastDay().Day())
}

func TestNewReconciliationCompletedEvent(t *testing.T) {
	report := &ReconciliationReport{
		RunID:     "run-1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Summary:   ReportSummary{TotalTransactions: 3, ReconciledCount: 3},
	}

	event := NewReconciliationCompletedEvent(report, "recon/a.csv")

	assert.Equal(t, "run-1", event.RunID)
	assert.Equal(t, "SICOOB", event.Bank)
	assert.Equal(t, "recon/a.csv", event.ArchivePath)
	assert.Equal(t, 3, event.Summary.ReconciledCount)
}
