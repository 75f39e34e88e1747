// Package idgenerator builds sortable unique identifiers: an optional prefix,
// the epoch millis and a raw URL base64 UUID.
package idgenerator

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=id_generator.go -destination=mock/id_generator.go -package=mock

// PrefixRun prefixes reconciliation run ids, e.g. RECON-756-1736503200000AbC...
const PrefixRun = "RECON"

type Generator interface {
	Generate(prefixes ...string) string
}

type IDGenerator struct {
	now func() time.Time
}

func New() Generator {
	return &IDGenerator{now: time.Now}
}

// Generate joins the non empty prefixes with '-' in front of the id.
func (g *IDGenerator) Generate(prefixes ...string) string {
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p != "" {
			parts = append(parts, p)
		}
	}

	id := fmt.Sprintf("%d%s", g.now().UnixMilli(), rawURLEncodedUUID(uuid.New()))
	if len(parts) == 0 {
		return id
	}

	return strings.Join(parts, "-") + "-" + id
}

func rawURLEncodedUUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}
