package unresolved

import (
	"context"
	"flag"
	"fmt"

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
}

func (c *cmd) init() {
	c.load = &flags.LoadFlags{}
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
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

	_, report, err := c.load.Build(context.Background(), logger, c.flags.Args())
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error building tree: %s", err))
		return 1
	}

	if report.Complete() {
		c.UI.Output(fmt.Sprintf("All declarations resolved (%d inserted, %d duplicates, %d passes)",
			report.Inserted, report.Duplicates, report.Passes))
		return 0
	}

	result := []string{"Declaration|Value|Parent"}
	for _, d := range report.Unresolved {
		result = append(result, fmt.Sprintf("%s::%s|%d|%s", d.Module, d.Name, d.Value, d.ParentName))
	}
	c.UI.Output(columnize.SimpleFormat(result))
	return 2
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

const (
	synopsis = "List declarations whose parent never appears"
	help     = `
Usage: oidtree unresolved [options] PATH...

  Builds the OID tree from the given files and directories and lists every
  declaration that could not be attached because no node carries the name
  of its parent. Exits with status 2 when any are found.

      $ oidtree unresolved mibs/
`
)
