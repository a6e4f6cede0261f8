package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingoanki/internal"
)

// Runner executes the lingoanki commands. Command options are read from
// the shared Flags.
type Runner interface {
	Ping(ctx context.Context) error
	Export(ctx context.Context) error
	SyncProgress(ctx context.Context) error
	Auto(ctx context.Context) error
	Preview() error
	Import(ctx context.Context, path string) error
	List(ctx context.Context) error
	APKG(ctx context.Context) error
	CSV(ctx context.Context) error
	Backup(ctx context.Context) error
	Defaults() error
	Tokens() error
	Close() error
}

// RunnerFactory builds a Runner after configuration has been loaded
type RunnerFactory func() (Runner, error)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingoanki",
		Short: "Vocabulary to Anki card sync",
		Long: `lingoanki turns captured vocabulary entries into Anki cards and
pulls review progress back from Anki via the AnkiConnect add-on.

Examples:
  lingoanki ping                          # Check that AnkiConnect is reachable
  lingoanki import words.txt              # Add entries from a word list
  lingoanki export --scope learning       # Send learning entries to Anki
  lingoanki sync-progress                 # Mark mastered words as known
  lingoanki auto --every 15m              # Keep exporting and syncing
  lingoanki preview --side back           # Render the back template`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	run := func(fn func(ctx context.Context, r Runner, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			defer r.Close()
			return fn(cmd.Context(), r, args)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "ping",
			Short: "Test the AnkiConnect connection",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, r Runner, _ []string) error {
				return r.Ping(ctx)
			}),
		},
		scoped(&cobra.Command{
			Use:   "export",
			Short: "Export entries of a category to Anki",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, r Runner, _ []string) error {
				return r.Export(ctx)
			}),
		}, flags),
		&cobra.Command{
			Use:   "sync-progress",
			Short: "Mark entries whose cards are mastered in Anki as known",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, r Runner, _ []string) error {
				return r.SyncProgress(ctx)
			}),
		},
		autoCommand(flags, run(func(ctx context.Context, r Runner, _ []string) error {
			return r.Auto(ctx)
		})),
		previewCommand(flags, run(func(_ context.Context, r Runner, _ []string) error {
			return r.Preview()
		})),
		importCommand(flags, run(func(ctx context.Context, r Runner, args []string) error {
			return r.Import(ctx, args[0])
		})),
		scoped(&cobra.Command{
			Use:   "list",
			Short: "List stored entries",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, r Runner, _ []string) error {
				return r.List(ctx)
			}),
		}, flags),
		withOutput(scoped(&cobra.Command{
			Use:   "apkg",
			Short: "Write entries to an Anki package file without AnkiConnect",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, r Runner, _ []string) error {
				return r.APKG(ctx)
			}),
		}, flags), flags, "Output file (default <deck>.apkg)"),
		csvCommand(flags, run(func(ctx context.Context, r Runner, _ []string) error {
			return r.CSV(ctx)
		})),
		withOutput(&cobra.Command{
			Use:   "backup",
			Short: "Back up the entry database",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, r Runner, _ []string) error {
				return r.Backup(ctx)
			}),
		}, flags, "Backup directory (default: archive/ next to the database)"),
		defaultsCommand(flags, run(func(_ context.Context, r Runner, _ []string) error {
			return r.Defaults()
		})),
		&cobra.Command{
			Use:   "tokens",
			Short: "List the placeholders usable in card templates",
			Args:  cobra.NoArgs,
			RunE: run(func(_ context.Context, r Runner, _ []string) error {
				return r.Tokens()
			}),
		},
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingoanki.yaml)")
	pf.StringVar(&flags.EnvFile, "env-file", flags.EnvFile, "dotenv file with LINGOANKI_* variables")
	pf.StringVar(&flags.StorePath, "store", "", "entry database (default is $HOME/.local/state/lingoanki/entries.db)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")
	pf.StringVar(&flags.URL, "url", "", "AnkiConnect URL (default http://127.0.0.1:8765)")
	pf.StringVar(&flags.DeckName, "deck", "", "Anki deck name")
	pf.StringVar(&flags.ModelName, "model", "", "Anki note type")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("store.path", pf.Lookup("store"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
	viper.BindPFlag("anki.url", pf.Lookup("url"))
	viper.BindPFlag("anki.deck_name", pf.Lookup("deck"))
	viper.BindPFlag("anki.model_name", pf.Lookup("model"))
}

// scoped adds the --scope flag. An empty scope means the configured
// anki.sync_scope categories.
func scoped(cmd *cobra.Command, flags *Flags) *cobra.Command {
	cmd.Flags().StringVarP(&flags.Scope, "scope", "s", "", "Category: known, want or learning (default: anki.sync_scope)")
	return cmd
}

func withOutput(cmd *cobra.Command, flags *Flags, usage string) *cobra.Command {
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", usage)
	return cmd
}

func autoCommand(flags *Flags, runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := scoped(&cobra.Command{
		Use:   "auto",
		Short: "Export and sync progress periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}, flags)
	cmd.Flags().DurationVar(&flags.Every, "every", flags.Every, "Interval between sync rounds")
	cmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

func defaultsCommand(flags *Flags, runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default settings as YAML",
		Long: `Print every settings record as YAML. With --from the given settings
file is merged over the defaults first, so keys missing from the file show
their default value.`,
		Args: cobra.NoArgs,
		RunE: runE,
	}
	cmd.Flags().StringVar(&flags.SettingsFile, "from", "", "Settings YAML file to merge over the defaults")
	return cmd
}

func previewCommand(flags *Flags, runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a card template against a sample entry",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}
	cmd.Flags().StringVar(&flags.Side, "side", flags.Side, "Template to render: front or back")
	cmd.Flags().StringVar(&flags.TemplateFile, "template-file", "", "Render this template file instead of the configured one")
	cmd.Flags().BoolVar(&flags.PlainText, "text", false, "Print the visible text instead of HTML")
	return cmd
}

func importCommand(flags *Flags, runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a JSON storage dump or a word list",
		Long: `Import entries into the database. Files ending in .json are read as
an array of entries (or {"entries": [...]}); anything else is a word list
with one "word = translation | context sentence" per line.
Entries whose text is already stored are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runE,
	}
	cmd.Flags().StringVarP(&flags.Category, "category", "c", flags.Category, "Category for entries without one")
	return cmd
}

func csvCommand(flags *Flags, runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := withOutput(scoped(&cobra.Command{
		Use:   "csv",
		Short: "Write entries to a CSV file for Anki's text import",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}, flags), flags, "Output file (default <deck>.csv)")
	cmd.Flags().BoolVar(&flags.IncludeTags, "tags", flags.IncludeTags, "Include a tags column")
	return cmd
}
