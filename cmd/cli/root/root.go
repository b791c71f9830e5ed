package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:           "cyberpeers",
	Short:         "Cyberpeers CLI",
	Long:          "Command line interface for the Cyberpeers user and activity API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
