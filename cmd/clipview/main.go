// clipview: searchable clipboard history in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running clipview without a subcommand
// opens the picker.
func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "clipview",
		Short: "Searchable clipboard history",
		Long: `clipview records text copied to the system clipboard and lets you
search, preview and re-paste earlier entries from a terminal picker.

Run "clipview watch" in the background to record history, or pass --watch
to record while the picker is open.

Config file search order (first found wins):
  $XDG_CONFIG_HOME/clipview/clipview.toml
  $HOME/.config/clipview/clipview.toml
  path supplied via --config

All flags can be set via CLIPVIEW_<FLAG> env vars or config-file keys.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE:      func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:         func(cmd *cobra.Command, _ []string) error { return runPick(cmd.Context(), v) },
	}
	root.SetOut(out)

	addStoreFlags(root)
	addPickFlags(root)
	addLoggingFlags(root)
	addConfigFlag(root)

	root.AddCommand(
		newPickCmd(),
		newWatchCmd(),
		newListCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipview %s\n", Version)
		},
	}
}
