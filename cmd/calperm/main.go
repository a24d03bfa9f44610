// Calperm is an interactive console for managing Exchange Online calendar
// folder permissions.
//
// It connects to a tenant as an administrator and offers four workflows from
// an arrow-key menu: view, add, modify and remove calendar permissions. Every
// change is appended to a plain-text audit log.
//
// Usage:
//
//	calperm [admin] [flags]
//	calperm token set --admin admin@contoso.com
//	calperm palette
//
// See 'calperm --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calperm/calperm/internal/logging"
	"github.com/calperm/calperm/internal/urls"
	"github.com/calperm/calperm/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "calperm [admin]",
	Short: "Calendar permissions management console",
	Long: `An interactive console for Exchange Online calendar permissions.

Connects as an administrator and lets you view, add, modify and remove
permissions on any mailbox calendar through arrow-key menus.

The administrator may be given as the first argument or with --admin;
otherwise it is prompted for. The access token is read from the
CALPERM_TOKEN environment variable or from the OS keyring
(see 'calperm token set').

Documentation: ` + urls.Project,
	Example: `  # Start a session
  calperm admin@contoso.com

  # Force 16-color output and a specific tenant
  calperm --admin admin@contoso.com --color 4bit --tenant contoso.onmicrosoft.com`,
	Version:       version.Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("calperm %s\n", version.Full())
		fmt.Printf("  platform: %s\n", version.Platform())
		fmt.Printf("  home:     %s\n", urls.Project)
	},
}
