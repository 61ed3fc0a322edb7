package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/looter/internal/config"
)

// NewRootCmd creates the root command for looter.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "looter",
		Short: "Toolkit for writing web scrapers",
		Long: `looter is a toolkit for people who write web scrapers.

It generates spider skeletons built on the looter Go package and opens an
interactive shell on a page so that CSS selectors and XPath expressions can
be tried before they go into code.

Per-site headers, cookies and User-Agents can be set in a .looter file in
the current directory, the home directory or ` + config.XDGConfigDir() + `.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.Bool("log-json", false, "Write logs as JSON lines")
	flags.StringP("config", "c", "",
		"Configuration file path (default: .looter in current or home directory)")
	flags.DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each request")
	flags.StringP("user-agent", "u", "", "Fixed User-Agent (default: random per request)")
	flags.String("proxy", "", "HTTP or SOCKS5 proxy URL")
	flags.String("cookies", "", "Netscape cookies.txt file to send cookies from")

	cmd.AddCommand(NewGenspiderCmd())
	cmd.AddCommand(NewShellCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
