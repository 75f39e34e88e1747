package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"list"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "version=v1, name=ExportSicoobReconciliation\nversion=v1, name=RunSicoobAutoReconciliation\n", out.String())
}

func TestRunCmd_RequiresNameAndVersion(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "-d=2025-01-31"})

	err := root.Execute()
	assert.ErrorContains(t, err, `required flag(s) "name", "version" not set`)
}
