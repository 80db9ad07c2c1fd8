package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/clipview"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the clipboard history",
		Long: `Prints the history most recent first, one item per line, in the same
display form the picker uses. --query filters like the picker search box.
--json prints one JSON object per item.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := setupLogging(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			store := newStore(v)
			items, err := loadItems(store, v.GetInt("max-items"), v.GetDuration("max-age"), time.Now())
			if err != nil {
				return err
			}
			logger.Debug("loaded history", "path", store.Path(), "count", len(items))
			return printItems(cmd.OutOrStdout(), items, ListOptions{
				Query: v.GetString("query"),
				Limit: v.GetInt("limit"),
				JSON:  v.GetBool("json"),
				Now:   time.Now(),
			})
		},
	}

	f := cmd.Flags()
	f.String("query", "", "only print items matching this search")
	f.Int("limit", 0, "print at most this many items (0 = all)")
	f.Bool("json", false, "print JSON lines instead of a table")
	addStoreFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

// loadItems reads the history without writing to it. Items past maxAge are
// left out here and purged by the next process that opens the history.
func loadItems(store clipview.ItemStore, maxItems int, maxAge time.Duration, now time.Time) ([]clipview.Item, error) {
	items, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	h := clipview.NewHistory(items, clipview.WithLimit(maxItems))
	if maxAge > 0 {
		h.Purge(now, maxAge)
	}
	return h.Items(), nil
}

// ListOptions controls printItems.
type ListOptions struct {
	Query string
	Limit int
	JSON  bool
	Now   time.Time
}

// printItems writes the items matching opts to w.
func printItems(w io.Writer, items []clipview.Item, opts ListOptions) error {
	items = clipview.Filter(items, clipview.NormalizeQuery(opts.Query))
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, it := range items {
			if err := enc.Encode(it); err != nil {
				return fmt.Errorf("encode item %d: %w", it.ID, err)
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, it := range items {
		app := it.SourceApp
		if app == "" {
			app = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			it.Type().Label(),
			clipview.RelativeTime(opts.Now, it.Timestamp),
			clipview.Sanitize(app),
			displayLine(clipview.Format(it.Content)),
		)
	}
	return tw.Flush()
}

// displayLine flattens text to a single sanitized line.
func displayLine(s string) string {
	return clipview.Sanitize(strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s))
}
