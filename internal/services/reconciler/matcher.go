package reconciler

import (
	"context"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

// Correlation pairs an internal record with the bank record found for it, if any.
type Correlation struct {
	Internal models.ReconcilableRecord
	Bank     *models.ReconcilableRecord
	Key      models.KeyType
}

// Correlate walks the internal records in order and consumes, for each one, the best bank
// candidate under the first key (txId, endToEndId, nossoNumero) that yields any candidate.
// Bank records left unconsumed are returned in source order.
func Correlate(internal []models.ReconcilableRecord, idx *KeyIndex) ([]Correlation, []models.ReconcilableRecord) {
	pairs := make([]Correlation, 0, len(internal))

	for _, rec := range internal {
		c := Correlation{Internal: rec}

		for _, k := range models.KeyPriority {
			slots := idx.lookupSlots(k, rec.Key(k))
			if len(slots) == 0 {
				continue
			}

			slot := pickCandidate(rec, idx, slots)
			idx.consume(slot)

			bank := idx.records[slot]
			c.Bank = &bank
			c.Key = k
			break
		}

		pairs = append(pairs, c)
	}

	return pairs, idx.Remaining()
}

// pickCandidate prefers the bank record closest in time to the internal one and falls
// back to the earliest in source order.
func pickCandidate(rec models.ReconcilableRecord, idx *KeyIndex, slots []int) int {
	best := slots[0]
	bestDist := timeDistance(rec.Timestamp, idx.records[best].Timestamp)

	for _, slot := range slots[1:] {
		d := timeDistance(rec.Timestamp, idx.records[slot].Timestamp)
		if d < bestDist || (d == bestDist && idx.records[slot].Position < idx.records[best].Position) {
			best, bestDist = slot, d
		}
	}

	return best
}

func timeDistance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// Match correlates and classifies in one pass. The result holds one outcome per internal
// record, in input order, followed by one MissingInInternal per unconsumed bank record.
func Match(ctx context.Context, internal []models.ReconcilableRecord, idx *KeyIndex, classifier *Classifier) []models.MatchOutcome {
	pairs, leftovers := Correlate(internal, idx)
	return classifier.ClassifyAll(ctx, pairs, leftovers)
}
