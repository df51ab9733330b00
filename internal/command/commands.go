// Package command wires the oidtree subcommands into a mitchellh/cli
// command table.
package command

import (
	"github.com/lukeod/oidtree/internal/command/list"
	"github.com/lukeod/oidtree/internal/command/lookup"
	"github.com/lukeod/oidtree/internal/command/tree"
	"github.com/lukeod/oidtree/internal/command/unresolved"
	"github.com/mitchellh/cli"
)

// Commands returns the mapping of every available oidtree command.
func Commands(ui cli.Ui) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"list": func() (cli.Command, error) {
			return list.New(ui), nil
		},
		"lookup": func() (cli.Command, error) {
			return lookup.New(ui), nil
		},
		"tree": func() (cli.Command, error) {
			return tree.New(ui), nil
		},
		"unresolved": func() (cli.Command, error) {
			return unresolved.New(ui), nil
		},
	}
}
