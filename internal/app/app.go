package app

import (
	"github.com/spf13/cobra"

	"github.com/xab-mack/authsurface/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "authsurface", Short: "State variables written and msg.sender authorization, per contract function"}
	cli.AddCommands(root)
	return root
}
