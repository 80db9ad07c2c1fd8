package main

import (
	"context"
	"os"

	"github.com/fwojciec/clipview/clipboard"
	"github.com/fwojciec/clipview/desktop"
	"github.com/fwojciec/clipview/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Record clipboard changes into the history",
		Long: `Polls the system clipboard and appends every new text entry to the
history file until interrupted. Entries are tagged with the focused
application where the platform allows it.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runWatch(cmd.Context(), v) },
	}

	addStoreFlags(cmd)
	addPollFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runWatch(ctx context.Context, v *viper.Viper) error {
	logger, closeLog, err := setupLogging(v, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store := newStore(v)
	svc, err := openService(v, store, clipboard.NewSystem(), logger,
		history.WithAppDetector(desktop.NewAppDetector(desktop.NewExecRunner())),
	)
	if err != nil {
		return err
	}

	logger.Info("clipview watch starting",
		"version", Version,
		"history_file", store.Path(),
	)
	return svc.Watch(ctx, v.GetDuration("poll-interval"))
}
