package tree

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/lukeod/oidtree"
	"github.com/lukeod/oidtree/internal/command/flags"
	"github.com/mitchellh/cli"
)

func New(ui cli.Ui) *cmd {
	c := &cmd{UI: ui}
	c.init()
	return c
}

type cmd struct {
	UI    cli.Ui
	flags *flag.FlagSet
	load  *flags.LoadFlags
	help  string

	oid string
}

func (c *cmd) init() {
	c.load = &flags.LoadFlags{}
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.oid, "oid", "",
		"Render only the subtree rooted at this dotted OID.")
	flags.Merge(c.flags, c.load.Flags())
	c.help = flags.Usage(help, c.flags)
}

func (c *cmd) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}

	logger, err := c.load.Logger(c.UI)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	t, _, err := c.load.Build(context.Background(), logger, c.flags.Args())
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error building tree: %s", err))
		return 1
	}

	node := t.Root()
	if c.oid != "" {
		node = t.NodeByOID(c.oid)
		if node == nil {
			c.UI.Error(fmt.Sprintf("No node at OID %q", c.oid))
			return 1
		}
	}

	c.UI.Output(strings.TrimRight(oidtree.Render(node), "\n"))
	return 0
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

const (
	synopsis = "Build an OID tree and draw it"
	help     = `
Usage: oidtree tree [options] PATH...

  Reads declarations from every file and directory given, builds the OID
  tree and draws it. Declarations may appear in any order; those whose
  parent never appears are left out (see "oidtree unresolved").

      $ oidtree tree -oid=1.3.6.1.2.1 SNMPv2-SMI.yaml SNMPv2-MIB.hcl
`
)
