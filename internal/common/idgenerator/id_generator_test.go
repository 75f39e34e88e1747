package idgenerator_test

import (
	"regexp"
	"testing"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/idgenerator"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	t.Run("run id with bank prefix", func(t *testing.T) {
		id := idgenerator.New().Generate(idgenerator.PrefixRun, "756")
		assert.Regexp(t, regexp.MustCompile(`^RECON-756-\d{13}[A-Za-z0-9_-]{22}$`), id)
	})

	t.Run("empty prefixes are skipped", func(t *testing.T) {
		id := idgenerator.New().Generate("", "RECON")
		assert.Regexp(t, regexp.MustCompile(`^RECON-\d{13}`), id)
	})

	t.Run("without prefix", func(t *testing.T) {
		id := idgenerator.New().Generate()
		assert.Regexp(t, regexp.MustCompile(`^\d{13}[A-Za-z0-9_-]{22}$`), id)
	})

	t.Run("unique", func(t *testing.T) {
		g := idgenerator.New()
		assert.NotEqual(t, g.Generate(idgenerator.PrefixRun), g.Generate(idgenerator.PrefixRun))
	})
}
