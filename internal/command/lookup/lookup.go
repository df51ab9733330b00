package lookup

import (
	"context"
	"flag"
	"fmt"
	"strings"

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

	args = c.flags.Args()
	if len(args) < 2 {
		c.UI.Error("command requires a query and at least one path")
		return 1
	}
	query, paths := args[0], args[1:]

	logger, err := c.load.Logger(c.UI)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	t, _, err := c.load.Build(context.Background(), logger, paths)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error building tree: %s", err))
		return 1
	}

	var results []string
	switch {
	case isNumeric(query):
		arcs, err := oidtree.ParseOID(query)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Invalid OID %q: %s", query, err))
			return 1
		}
		node, suffix := t.NodeByPrefix(arcs)
		if node == nil {
			break
		}
		data := describe(node)
		if len(suffix) > 0 {
			data = append(data, fmt.Sprintf("Instance:\x1f%s", oidtree.FormatOID(t, arcs)))
		}
		results = append(results, format(data))

	case strings.Contains(query, "::"):
		module, name, _ := strings.Cut(query, "::")
		if node := t.NodeByQualifiedName(module, name); node != nil {
			results = append(results, format(describe(node)))
		}

	default:
		for _, node := range t.NodesByName(query) {
			results = append(results, format(describe(node)))
		}
	}

	if len(results) == 0 {
		c.UI.Error(fmt.Sprintf("No node matches %q", query))
		return 1
	}
	c.UI.Output(strings.Join(results, "\n\n"))
	return 0
}

// isNumeric reports whether query looks like a dotted OID rather than a name.
func isNumeric(query string) bool {
	query = strings.TrimPrefix(query, ".")
	if query == "" {
		return false
	}
	c := query[0]
	return c >= '0' && c <= '9'
}

func describe(node *oidtree.Node) []string {
	data := []string{
		fmt.Sprintf("OID:\x1f%s", node.OID()),
		fmt.Sprintf("Name:\x1f%s", node.TextualForm()),
	}
	if parent := node.Parent(); parent != nil && !parent.IsRoot() {
		data = append(data, fmt.Sprintf("Parent:\x1f%s", parent.TextualForm()))
	}
	data = append(data, fmt.Sprintf("Children:\x1f%d", node.Len()))
	return data
}

func format(data []string) string {
	return columnize.Format(data, &columnize.Config{Delim: string([]byte{0x1f})})
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

const (
	synopsis = "Find a node by OID or name"
	help     = `
Usage: oidtree lookup [options] QUERY PATH...

  Builds the OID tree from the given files and directories and prints the
  node matching QUERY. QUERY is a dotted OID, a qualified MODULE::name, or a
  bare name. A dotted OID that runs past a known node is reported as an
  instance of the longest matching node. A bare name may match several nodes.

      $ oidtree lookup 1.3.6.1.2.1.1.5.0 mibs/
      $ oidtree lookup SNMPv2-MIB::sysName mibs/
`
)
