/*
Copyright © 2023 Glossopoeia
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chai",
	Short: "A managed-runtime object heap",
	Long: `Chai is the heap storage subsystem of a managed-language runtime:
offset-keyed stores for object fields, array elements, and synchronization
monitors, behind a thread-safe facade with a privileged whole-store view for
the garbage collector.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
