package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/clipview"
	"github.com/fwojciec/clipview/history"
	"github.com/fwojciec/clipview/jsonl"
	"github.com/fwojciec/clipview/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPVIEW_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPVIEW_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipview")
		v.SetConfigType("toml")
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "clipview"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clipview"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// defaultHistoryFile is the history location used when none is configured.
func defaultHistoryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "clipview-history.jsonl"
	}
	return filepath.Join(dir, "clipview", "history.jsonl")
}

// addStoreFlags adds the history file and retention flags.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("history-file", defaultHistoryFile(), "path to the history file")
	cmd.Flags().Int("max-items", clipview.MaxItems, "number of items kept in the history")
	cmd.Flags().Duration("max-age", clipview.MaxAge, "age after which items are purged")
}

// addPollFlag adds the clipboard polling interval flag.
func addPollFlag(cmd *cobra.Command) {
	cmd.Flags().Duration("poll-interval", history.DefaultPollInterval, "how often the clipboard is read")
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "info", "log level: debug|info|warn|error")
	cmd.Flags().String("log-file", "", "write logs to this file (the picker logs nowhere otherwise)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging configures slog from viper. With a log file configured logs
// go there; otherwise they go to fallback. It returns a function closing the
// log file.
func setupLogging(v *viper.Viper, fallback io.Writer) (*slog.Logger, func(), error) {
	format := logging.ParseFormat(v.GetString("log-format"))
	level := logging.ParseLevel(v.GetString("log-level"))

	path := v.GetString("log-file")
	if path == "" {
		if fallback == nil {
			logger := logging.Discard()
			slog.SetDefault(logger)
			return logger, func() {}, nil
		}
		return logging.Setup(fallback, format, level), func() {}, nil
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.Setup(f, format, level), func() { _ = f.Close() }, nil
}

// newStore returns the history store configured in v.
func newStore(v *viper.Viper) *jsonl.Store {
	return jsonl.NewStore(v.GetString("history-file"))
}

// openService opens the history in store with the retention configured in v.
func openService(v *viper.Viper, store clipview.ItemStore, cb clipview.Clipboard, logger *slog.Logger, opts ...history.Option) (*history.Service, error) {
	opts = append([]history.Option{
		history.WithLogger(logger),
		history.WithMaxItems(v.GetInt("max-items")),
		history.WithMaxAge(v.GetDuration("max-age")),
	}, opts...)
	return history.Open(store, cb, opts...)
}
