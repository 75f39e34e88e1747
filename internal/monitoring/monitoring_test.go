package monitoring

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestNew(t *testing.T) {
	m := New(context.Background())
	assert.Equal(t, "monitoring.TestNew", m.segmentName)
	assert.Equal(t, LayerUnknown, m.layer)
	assert.Nil(t, m.segment)

	m = New(context.Background(), WithSegmentName("sicoob.GetStatement"), WithLayer(LayerClient))
	assert.Equal(t, "sicoob.GetStatement", m.segmentName)
	assert.Equal(t, LayerClient, m.layer)
}

func TestLayerOf(t *testing.T) {
	tests := map[string]string{
		"/app/internal/repositories/sql_ledger_transaction.go": LayerRepository,
		"/app/internal/services/reconciliation_service.go":     LayerService,
		"/app/internal/deliveries/http/router.go":              LayerDelivery,
		"/app/internal/common/sicoob/client.go":                LayerClient,
		"/app/cmd/api/main.go":                                 LayerUnknown,
	}
	for file, want := range tests {
		assert.Equal(t, want, layerOf(file), file)
	}
}

func TestMonitor_Finish(t *testing.T) {
	var err error
	func() {
		m := New(context.Background(), WithLayer(LayerService))
		defer func() { m.Finish(WithFinishCheckError(err), WithFinishXlogFields(xlog.String("bank", "756"))) }()
		err = errors.New("failed")
	}()

	New(context.Background(), WithLayer(LayerDelivery)).Finish()
}

func TestFinishStatus(t *testing.T) {
	assert.Equal(t, statusSuccess, finishStatus(nil))
	assert.Equal(t, statusCanceled, finishStatus(fmt.Errorf("fetch: %w", context.Canceled)))
	assert.Equal(t, statusError, finishStatus(context.DeadlineExceeded))
	assert.Equal(t, statusError, finishStatus(errors.New("failed")))
}
