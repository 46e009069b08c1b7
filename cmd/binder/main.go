package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/binder/internal/app"
	"github.com/five82/binder/internal/browse"
	"github.com/five82/binder/internal/report"
	"github.com/five82/binder/internal/state"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "binder: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	prefsPath  string
	collection string
	watch      bool
	verbose    bool
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		Collection: f.collection,
		Watch:      f.watch,
		Verbose:    f.verbose,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "binder",
		Short: "Browse a card collection in the terminal",
		Long: `binder loads a card collection from a JSON, YAML, TOML or SQLite file,
or from an http(s) URL, and lets you search, filter and page through it.

Run without a subcommand to start the interactive browser.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/binder/config.toml)")
	pf.StringVar(&flags.collection, "collection", "", "collection file or URL, overrides the config")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "write debug entries to the log file")
	pf.StringVar(&flags.prefsPath, "prefs", "", "prefs file (default ~/.config/binder/prefs.toml)")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload when the collection file changes")

	cmd.AddCommand(newListCmd(flags), newStatsCmd(flags))
	return cmd
}

// filterFlags select the cards the headless commands report on.
type filterFlags struct {
	search   string
	rarity   string
	colors   []string
	page     int
	pageSize int
	output   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.search, "search", "s", "", "match text in name, type, rarity or colours")
	fs.StringVarP(&f.rarity, "rarity", "r", "", "only cards of this rarity")
	fs.StringSliceVarP(&f.colors, "color", "c", nil, "only cards with any of these colours (repeatable)")
	fs.StringVarP(&f.output, "output", "o", "table", "output format: table, json or yaml")
}

// view builds the browser state the same way the UI does: by reducing the
// equivalent actions over a fresh view.
func (f *filterFlags) view(defaultPageSize int) state.View {
	size := f.pageSize
	if size <= 0 {
		size = defaultPageSize
	}
	v := state.NewView(size, state.Grid)

	actions := []state.Action{
		state.SetSearch{Text: strings.TrimSpace(f.search)},
		state.SetRarity{Value: f.rarity},
	}
	seen := make(map[string]bool)
	for _, c := range f.colors {
		tag := strings.ToLower(strings.TrimSpace(c))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		actions = append(actions, state.ToggleColor{Tag: tag})
	}
	actions = append(actions, state.SetPage{N: f.page})

	for _, a := range actions {
		v = state.Reduce(v, a)
	}
	return v
}

func openCollection(cmd *cobra.Command, flags *rootFlags) (*app.Session, error) {
	s, err := app.Open(cmd.Context(), flags.options())
	if err != nil {
		return nil, err
	}
	if err := s.Err(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func newListCmd(root *rootFlags) *cobra.Command {
	f := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the filtered collection",
		Example: `  binder list --rarity rare --color red
  binder list -s dragon --page 2 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(f.output)
			if err != nil {
				return err
			}
			s, err := openCollection(cmd, root)
			if err != nil {
				return err
			}
			defer s.Close()

			res := browse.Run(s.Cards(), f.view(s.Config.PageSize).Query())
			return report.WritePage(cmd.OutOrStdout(), format, res)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number; out-of-range pages are clamped")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "cards per page (default from config)")
	return cmd
}

func newStatsCmd(root *rootFlags) *cobra.Command {
	f := &filterFlags{}
	var by string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print totals and the rarity or type breakdown of the filtered collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(f.output)
			if err != nil {
				return err
			}
			s, err := openCollection(cmd, root)
			if err != nil {
				return err
			}
			defer s.Close()

			grouping := browse.ParseGrouping(by)
			q := f.view(s.Config.PageSize).Query()
			q.Grouping = grouping
			return report.WriteStats(cmd.OutOrStdout(), format, browse.Run(s.Cards(), q), grouping)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&by, "by", "rarity", "distribution grouping: rarity or type")
	return cmd
}
