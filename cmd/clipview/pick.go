package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/clipview/bubbletea"
	"github.com/fwojciec/clipview/chroma"
	"github.com/fwojciec/clipview/clipboard"
	"github.com/fwojciec/clipview/desktop"
	"github.com/fwojciec/clipview/history"
	"github.com/fwojciec/clipview/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPickCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open the clipboard history picker (default)",
		Long: `Opens the picker. Type to filter, use the arrow keys to move, press
enter to put the selected item back on the clipboard and close.

With --auto-paste the platform paste shortcut is sent after the picker
closes, so the item lands in whatever application has focus.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPick(cmd.Context(), v) },
	}

	addStoreFlags(cmd)
	addPickFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

// addPickFlags adds the picker flags.
func addPickFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("theme", lipgloss.ThemeAuto, "color theme: auto|dark|light")
	f.Bool("preview", true, "show the preview pane")
	f.Bool("watch", false, "record clipboard changes while the picker is open")
	f.Bool("auto-paste", false, "send the paste shortcut after picking an item")
	addPollFlag(cmd)
}

func runPick(ctx context.Context, v *viper.Viper) error {
	// The picker owns the terminal: logs only go to --log-file.
	logger, closeLog, err := setupLogging(v, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	theme, err := lipgloss.ThemeByName(v.GetString("theme"))
	if err != nil {
		return err
	}
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return fmt.Errorf("syntax highlighting: %w", err)
	}

	runner := desktop.NewExecRunner()
	store := newStore(v)
	svc, err := openService(v, store, clipboard.NewSystem(), logger,
		history.WithAppDetector(desktop.NewAppDetector(runner)),
	)
	if err != nil {
		return err
	}

	app := &App{
		Picker: bubbletea.NewPicker(svc,
			bubbletea.WithTheme(theme),
			bubbletea.WithLanguageDetector(chroma.NewDetector()),
			bubbletea.WithTokenizer(tokenizer),
			bubbletea.WithPreview(v.GetBool("preview")),
		),
		Keystroker:   desktop.NewKeystroker(runner),
		PollInterval: v.GetDuration("poll-interval"),
		AutoPaste:    v.GetBool("auto-paste"),
		Follow: func(ctx context.Context) error {
			// Captures by a separate `clipview watch` show up while the picker is open.
			if err := store.Watch(ctx, svc.Changed); err != nil {
				logger.Warn("following history file", "path", store.Path(), "error", err)
			}
			return nil
		},
	}
	if v.GetBool("watch") {
		app.Watcher = svc
	}

	item, err := app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	if item != nil {
		logger.Info("pasted item", "id", item.ID, "type", item.Type().String())
	}
	return nil
}
