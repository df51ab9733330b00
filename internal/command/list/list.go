package list

import (
	"context"
	"flag"
	"fmt"

	"github.com/lukeod/oidtree"
	"github.com/lukeod/oidtree/internal/command/flags"
	"github.com/mitchellh/cli"
	"github.com/ryanuber/columnize"
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

	prefix string
}

func (c *cmd) init() {
	c.load = &flags.LoadFlags{}
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.prefix, "prefix", "",
		"Only list nodes at or below this dotted OID.")
	flags.Merge(c.flags, c.load.Flags())
	c.help = flags.Usage(help, c.flags)
}

func (c *cmd) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}

	prefix, err := oidtree.ParseOID(c.prefix)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Invalid prefix %q: %s", c.prefix, err))
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

	result := []string{"OID|Name|Depth|Children"}
	for node := range t.All() {
		if !oidtree.HasPrefix(node.NumericPath(), prefix) {
			continue
		}
		result = append(result, fmt.Sprintf("%s|%s|%d|%d",
			node.OID(), node.TextualForm(), node.Depth(), node.Len()))
	}

	// Header only
	if len(result) == 1 {
		c.UI.Error("No nodes found")
		return 2
	}

	c.UI.Output(columnize.SimpleFormat(result))
	return 0
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

const (
	synopsis = "List the nodes of an OID tree"
	help     = `
Usage: oidtree list [options] PATH...

  Builds the OID tree from the given files and directories and lists its
  nodes in depth-first order, one per line. Siblings appear in the order
  their declarations were inserted.

      $ oidtree list -prefix=1.3.6.1.2.1.2 mibs/
`
)
