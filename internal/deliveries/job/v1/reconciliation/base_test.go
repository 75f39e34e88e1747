package reconciliation

import (
	"os"
	"testing"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services/mock"

	"go.uber.org/mock/gomock"
)

type testReconciliationHelper struct {
	mockCtrl                  *gomock.Controller
	mockReconciliationService *mock.MockReconciliationService
	handler                   *reconciliationHandler
}

func reconciliationTestHelper(t *testing.T) testReconciliationHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockReconciliationService := mock.NewMockReconciliationService(mockCtrl)

	return testReconciliationHelper{
		mockCtrl:                  mockCtrl,
		mockReconciliationService: mockReconciliationService,
		handler: &reconciliationHandler{
			autoWindowDays:    7,
			reconciliationSrv: mockReconciliationService,
		},
	}
}

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestRoutes(t *testing.T) {
	routes := Routes(config.ReconciliationConfig{}, nil)

	if _, ok := routes["RunSicoobAutoReconciliation"]; !ok {
		t.Fatal("RunSicoobAutoReconciliation is not registered")
	}
	if _, ok := routes["ExportSicoobReconciliation"]; !ok {
		t.Fatal("ExportSicoobReconciliation is not registered")
	}
}
