package reconciler

import (
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

// KeyIndex gives constant time lookup of bank records by correlation key. A bank record
// appears once per non-empty key it carries; consuming it removes it from every key set.
type KeyIndex struct {
	records  []models.ReconcilableRecord
	consumed []bool
	byKey    [len(models.KeyPriority)]map[string][]int
}

// BuildIndex indexes the normalized bank records, keeping their source order per key.
func BuildIndex(bank []models.ReconcilableRecord) *KeyIndex {
	idx := &KeyIndex{
		records:  bank,
		consumed: make([]bool, len(bank)),
	}
	for i := range idx.byKey {
		idx.byKey[i] = make(map[string][]int)
	}

	for slot, rec := range bank {
		for _, k := range models.KeyPriority {
			v := rec.Key(k)
			if v == "" {
				continue
			}
			idx.byKey[k][v] = append(idx.byKey[k][v], slot)
		}
	}

	return idx
}

// Lookup returns the unconsumed bank records sharing the value under key k.
func (idx *KeyIndex) Lookup(k models.KeyType, value string) []models.ReconcilableRecord {
	slots := idx.lookupSlots(k, value)
	if len(slots) == 0 {
		return nil
	}

	out := make([]models.ReconcilableRecord, 0, len(slots))
	for _, slot := range slots {
		out = append(out, idx.records[slot])
	}
	return out
}

func (idx *KeyIndex) lookupSlots(k models.KeyType, value string) []int {
	if value == "" || int(k) < 0 || int(k) >= len(idx.byKey) {
		return nil
	}

	var live []int
	for _, slot := range idx.byKey[k][value] {
		if !idx.consumed[slot] {
			live = append(live, slot)
		}
	}
	return live
}

// Consume removes the bank record at the given position from all key sets.
// It returns false when the record is unknown or already consumed.
func (idx *KeyIndex) Consume(rec models.ReconcilableRecord) bool {
	for _, k := range models.KeyPriority {
		for _, slot := range idx.byKey[k][rec.Key(k)] {
			if idx.records[slot].Position == rec.Position {
				return idx.consume(slot)
			}
		}
	}
	return false
}

func (idx *KeyIndex) consume(slot int) bool {
	if idx.consumed[slot] {
		return false
	}
	idx.consumed[slot] = true

	for _, k := range models.KeyPriority {
		v := idx.records[slot].Key(k)
		if v == "" {
			continue
		}
		remaining := idx.byKey[k][v][:0:0]
		for _, s := range idx.byKey[k][v] {
			if s != slot {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == 0 {
			delete(idx.byKey[k], v)
			continue
		}
		idx.byKey[k][v] = remaining
	}

	return true
}

// Remaining returns the bank records never consumed, in source order.
func (idx *KeyIndex) Remaining() []models.ReconcilableRecord {
	out := make([]models.ReconcilableRecord, 0, len(idx.records))
	for slot, rec := range idx.records {
		if !idx.consumed[slot] {
			out = append(out, rec)
		}
	}
	return out
}

// Len is the number of bank records indexed, consumed or not.
func (idx *KeyIndex) Len() int {
	return len(idx.records)
}
