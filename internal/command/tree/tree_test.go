package tree

import (
	"strings"
	"testing"

	"github.com/lukeod/oidtree/internal/command/commandtest"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/require"
)

func TestTreeCommand_noTabs(t *testing.T) {
	t.Parallel()
	if strings.ContainsRune(New(cli.NewMockUi()).Help(), '\t') {
		t.Fatal("help has tabs")
	}
}

func TestTreeCommand_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		args   []string
		output string
	}{
		"no paths": {
			[]string{},
			"at least one",
		},
		"bad log level": {
			[]string{"-log-level=loud", "x.yaml"},
			"invalid log level",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ui := cli.NewMockUi()
			c := New(ui)
			require.Equal(t, 1, c.Run(tc.args))
			require.Contains(t, ui.ErrorWriter.String(), tc.output)
		})
	}
}

func TestTreeCommand(t *testing.T) {
	t.Parallel()
	path := commandtest.WriteFile(t, t.TempDir(), "smi.yaml", commandtest.SNMP)

	ui := cli.NewMockUi()
	c := New(ui)
	require.Equal(t, 0, c.Run([]string{path}), ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	for _, label := range []string{"iso(1)", "org(3)", "mib-2(1)", "system(1)", "sysName(5)"} {
		require.Contains(t, out, label)
	}
	require.Less(t, strings.Index(out, "iso(1)"), strings.Index(out, "sysName(5)"))
}

func TestTreeCommand_Subtree(t *testing.T) {
	t.Parallel()
	path := commandtest.WriteFile(t, t.TempDir(), "smi.yaml", commandtest.SNMP)

	ui := cli.NewMockUi()
	c := New(ui)
	require.Equal(t, 0, c.Run([]string{"-oid=1.3.6.1.2.1.1", path}), ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	require.Contains(t, out, "system(1)")
	require.Contains(t, out, "sysName(5)")
	require.NotContains(t, out, "iso(1)")

	ui = cli.NewMockUi()
	c = New(ui)
	require.Equal(t, 1, c.Run([]string{"-oid=9.9", path}))
	require.Contains(t, ui.ErrorWriter.String(), `No node at OID "9.9"`)
}
