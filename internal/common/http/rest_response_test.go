package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow string

func (r testRow) GetCursor() string       { return "c-" + string(r) }
func (r testRow) ToModelResponse() string { return string(r) }

func newTestContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		err         error
		wantCode    any
		wantMessage string
	}{
		{
			name:        "plain error",
			status:      http.StatusBadRequest,
			err:         errors.New("bad window"),
			wantCode:    http.StatusBadRequest,
			wantMessage: "bad window",
		},
		{
			name:        "nil error uses status text",
			status:      http.StatusNotFound,
			wantCode:    http.StatusNotFound,
			wantMessage: "Not Found",
		},
		{
			name:        "echo error",
			status:      http.StatusBadRequest,
			err:         echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported"),
			wantCode:    http.StatusUnsupportedMediaType,
			wantMessage: "unsupported",
		},
		{
			name:        "wrapped error detail",
			status:      http.StatusBadRequest,
			err:         fmt.Errorf("bind: %w", models.GetErrMap(models.ErrKeyStartDateIsAfterEndDate)),
			wantCode:    "START_DATE_IS_AFTER_END_DATE",
			wantMessage: "startDate must not be after endDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newErrorResponse(tt.status, tt.err)
			assert.Equal(t, "error", got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestRestErrorValidationResponse(t *testing.T) {
	t.Run("multierror lists every field", func(t *testing.T) {
		c, rec := newTestContext("/")
		err := multierror.Append(nil, errors.New("startDate is required"), errors.New("endDate is required"))

		require.NoError(t, RestErrorValidationResponse(c, err))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Message string            `json:"message"`
			Errors  []json.RawMessage `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, common.ErrValidation.Error(), body.Message)
		assert.Len(t, body.Errors, 2)
	})

	t.Run("single error", func(t *testing.T) {
		c, rec := newTestContext("/")

		require.NoError(t, RestErrorValidationResponse(c, errors.New("days must not be negative")))
		assert.JSONEq(t, `{"status":"error","message":"validation failed","errors":["days must not be negative"]}`, rec.Body.String())
	})
}

func TestRestSuccessResponseCursorPagination(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		rows         []testRow
		limit        int
		wantContents []string
		wantPrev     string
		wantNext     string
	}{
		{
			name:         "first page with more",
			target:       "/runs",
			rows:         []testRow{"a", "b", "c"},
			limit:        3,
			wantContents: []string{"a", "b"},
			wantNext:     "c-b",
		},
		{
			name:         "last page",
			target:       "/runs",
			rows:         []testRow{"a"},
			limit:        3,
			wantContents: []string{"a"},
		},
		{
			name:         "forward page",
			target:       "/runs?nextCursor=x",
			rows:         []testRow{"c", "d"},
			limit:        3,
			wantContents: []string{"c", "d"},
			wantPrev:     "c-c",
		},
		{
			name:         "backward page is reversed",
			target:       "/runs?prevCursor=x",
			rows:         []testRow{"b", "a", "z"},
			limit:        3,
			wantContents: []string{"a", "b"},
			wantPrev:     "c-a",
			wantNext:     "c-b",
		},
		{
			name:         "empty",
			target:       "/runs",
			limit:        3,
			wantContents: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(tt.target)

			require.NoError(t, RestSuccessResponseCursorPagination[string](c, tt.rows, tt.limit))

			var body RestPaginationResponseModel[[]string]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "collection", body.Kind)
			assert.Equal(t, tt.wantContents, body.Contents)
			assert.Equal(t, tt.wantPrev, body.Pagination.Prev)
			assert.Equal(t, tt.wantNext, body.Pagination.Next)
		})
	}
}
