package reconciler

import (
	"context"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

const logPrefix = "[RECONCILER]"

// Classifier compares matched pairs field by field.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns Reconciled when amount (at cent precision), status and type agree,
// otherwise Divergent carrying every disagreement found.
func (c *Classifier) Classify(ctx context.Context, internal, bank models.ReconcilableRecord) models.MatchOutcome {
	var reasons []models.DivergenceReason

	internalAmount := common.RoundToCents(internal.Amount)
	bankAmount := common.RoundToCents(bank.Amount)
	if !internalAmount.Equal(bankAmount) {
		reasons = append(reasons, models.DivergenceReason{
			Kind:     models.DivergenceAmountMismatch,
			Internal: common.FormatAmount(internalAmount),
			Bank:     common.FormatAmount(bankAmount),
		})
	}

	if internal.Status != bank.Status {
		reasons = append(reasons, models.DivergenceReason{
			Kind:     models.DivergenceStatusMismatch,
			Internal: string(internal.Status),
			Bank:     string(bank.Status),
		})
	}

	if internal.Type != bank.Type {
		reasons = append(reasons, models.DivergenceReason{
			Kind:     models.DivergenceTypeMismatch,
			Internal: string(internal.Type),
			Bank:     string(bank.Type),
		})
		// two different kinds of transaction share a key
		xlog.Error(ctx, logPrefix+" key collision between transaction types",
			xlog.String("transaction_id", internal.TransactionID),
			xlog.String("external_id", internal.ExternalID),
			xlog.String("bank_identifier", bank.Identifier()),
			xlog.String("internal_type", string(internal.Type)),
			xlog.String("bank_type", string(bank.Type)),
		)
	}

	if len(reasons) == 0 {
		return models.Reconciled{Internal: internal, Bank: bank}
	}

	return models.Divergent{Internal: internal, Bank: bank, Reasons: reasons}
}

// ClassifyAll turns correlations into outcomes. Internal records without a bank pair become
// MissingInBank; leftovers become MissingInInternal after all internal outcomes.
func (c *Classifier) ClassifyAll(ctx context.Context, pairs []Correlation, leftovers []models.ReconcilableRecord) []models.MatchOutcome {
	outcomes := make([]models.MatchOutcome, 0, len(pairs)+len(leftovers))

	for _, p := range pairs {
		if p.Bank == nil {
			outcomes = append(outcomes, models.MissingInBank{Internal: p.Internal})
			continue
		}
		outcomes = append(outcomes, c.Classify(ctx, p.Internal, *p.Bank))
	}

	for _, bank := range leftovers {
		outcomes = append(outcomes, models.MissingInInternal{Bank: bank})
	}

	return outcomes
}
