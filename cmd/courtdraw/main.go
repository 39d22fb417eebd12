package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/derekprior/courtdraw/internal/config"
	"github.com/derekprior/courtdraw/internal/excel"
	"github.com/derekprior/courtdraw/internal/roster"
	"github.com/derekprior/courtdraw/internal/schedule"
	"github.com/derekprior/courtdraw/internal/strategy"
	"github.com/derekprior/courtdraw/internal/validator"
)

const defaultConfigFile = "courtdraw.yaml"

// resolveConfigPath returns the config file to load, or "" when none exists.
// Lookup order: --config, ./courtdraw.yaml, $XDG_CONFIG_HOME/courtdraw/config.yaml.
func resolveConfigPath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	candidates := []string{
		defaultConfigFile,
		filepath.Join(xdg.ConfigHome, "courtdraw", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadConfig(configFlag string) (*config.Config, error) {
	path := resolveConfigPath(configFlag)
	if path == "" {
		logrus.Debug("no config file found, using defaults")
		return config.Default(), nil
	}
	logrus.WithField("config", path).Debug("loading config")
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "courtdraw",
		Short: "Random pairing and court allocation for club sessions",
		Long: heredoc.Doc(`
			courtdraw shuffles a list of players into singles or doubles matches
			and puts them on courts in order. Matches that don't fit on a court
			go to a waiting list.
		`),
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if trace, _ := cmd.Flags().GetBool("trace"); trace {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("trace", "t", false, "Show trace information")

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: courtdraw.yaml, then the XDG config dir)")

	rootCmd.AddCommand(newInitCmd(), newDrawCmd(&configFile), newValidateCmd(&configFile), newServeCmd(&configFile))
	return rootCmd
}

func newInitCmd() *cobra.Command {
	var outputPath string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter courtdraw.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), outputPath)
		},
	}
	initCmd.Flags().StringVarP(&outputPath, "output", "o", defaultConfigFile, "Output path for the config file")
	return initCmd
}

type drawOptions struct {
	players     string
	playersFile string
	courts      string
	courtsFile  string
	mode        string
	seed        int64
	output      string
}

func newDrawCmd(configFile *string) *cobra.Command {
	var opts drawOptions
	drawCmd := &cobra.Command{
		Use:   "draw",
		Short: "Pair players and allocate courts",
		Long: heredoc.Doc(`
			draw pairs the roster into matches and fills courts in order.

			Players and courts come from the config file unless given on the
			command line. Lists may be separated by newlines or commas.
		`),
		Example: heredoc.Doc(`
			$ courtdraw draw --players "Alice, Bob, Carol, Dan" --courts "Court 1"
			$ courtdraw draw --players-file players.txt --courts "1,2,3" --mode singles -o draw.xlsx
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if err := applyDrawFlags(cmd, cfg, &opts); err != nil {
				return err
			}
			return runDraw(cmd.OutOrStdout(), cfg, opts.output)
		},
	}
	drawCmd.Flags().StringVar(&opts.players, "players", "", "Players, separated by newlines or commas")
	drawCmd.Flags().StringVar(&opts.playersFile, "players-file", "", "File listing players")
	drawCmd.Flags().StringVar(&opts.courts, "courts", "", "Courts, separated by newlines or commas")
	drawCmd.Flags().StringVar(&opts.courtsFile, "courts-file", "", "File listing courts")
	drawCmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "singles or doubles (default: config, then doubles)")
	drawCmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed, for a reproducible draw")
	drawCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also write the draw to this Excel file")
	return drawCmd
}

// applyDrawFlags overrides config values with anything given on the
// command line. A file and a flag for the same list are combined, file first.
func applyDrawFlags(cmd *cobra.Command, cfg *config.Config, opts *drawOptions) error {
	players, err := readList(opts.playersFile, opts.players)
	if err != nil {
		return fmt.Errorf("reading players: %w", err)
	}
	if players != nil {
		cfg.Players = players
	}

	courts, err := readList(opts.courtsFile, opts.courts)
	if err != nil {
		return fmt.Errorf("reading courts: %w", err)
	}
	if courts != nil {
		cfg.Courts = courts
	}

	if opts.mode != "" {
		mode, err := strategy.ParseMode(opts.mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = &opts.seed
	}
	return nil
}

// readList returns nil when neither source is given, so the config value
// stands. Given but empty sources yield an empty, non-nil list.
func readList(path, text string) ([]string, error) {
	if path == "" && text == "" {
		return nil, nil
	}
	names := []string{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		names = append(names, roster.Parse(string(data))...)
	}
	return append(names, roster.Parse(text)...), nil
}

func newValidateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <draw.xlsx>",
		Short: "Check a saved draw against the configured roster and courts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath(*configFile)
			if path == "" {
				return fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
			}
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return runValidate(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func runInit(w io.Writer, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# courtdraw session configuration
# ===============================

# Mode is "singles" (one player per side) or "doubles" (teams of two).
# With an odd number of players in doubles, the last team has one player.
mode: doubles

# Optional seed for a reproducible draw. Leave it out for a fresh shuffle
# every time, or pass --seed on the command line.
# seed: 42

# Players may be a YAML list or a block of text with one name per line
# or comma-separated names. Blank entries are ignored; duplicates count
# as separate players.
players: |
  Alice
  Bob
  Charlie
  Dana

# Courts are filled in the order listed. Matches beyond the number of
# courts go on the waiting list.
courts:
  - Court 1
  - Court 2

# Labels control how matches are printed and written to Excel.
labels:
  team_separator: " & "
  versus: " vs "
  bye: " (BYE)"
  empty: "(empty)"
`

func runDraw(w io.Writer, cfg *config.Config, outputPath string) error {
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	logrus.WithFields(logrus.Fields{
		"mode":    cfg.Mode,
		"players": len(cfg.Players),
		"courts":  len(cfg.Courts),
		"seed":    seed,
	}).Debug("drawing")

	result, err := schedule.Generate(cfg.Players, cfg.Courts, cfg.Mode, rand.New(rand.NewSource(seed)))
	if errors.Is(err, schedule.ErrMissingInput) {
		return err
	}
	if err != nil {
		return fmt.Errorf("drawing: %w", err)
	}

	printResult(w, cfg, result)

	if outputPath == "" {
		return nil
	}
	f, err := excel.Generate(cfg.Labels, result)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Fprintf(w, "\n✓ Draw saved to %s\n", outputPath)
	return nil
}

func printResult(w io.Writer, cfg *config.Config, result *schedule.Result) {
	width := 0
	for _, a := range result.Assignments {
		width = max(width, len(a.Court)+1)
	}
	for _, a := range result.Assignments {
		fmt.Fprintf(w, "%-*s %s\n", width, a.Court+":", cfg.Labels.Match(a.Match))
	}

	if len(result.Waiting) > 0 {
		fmt.Fprintln(w, "\nWaiting:")
		for i := range result.Waiting {
			fmt.Fprintf(w, "  %s\n", cfg.Labels.Match(&result.Waiting[i]))
		}
	}

	fmt.Fprintln(w, "\nPlayers:")
	fmt.Fprintf(w, "  %-15s %-12s %-15s %-8s\n", "Player", "Court", "Partner", "Status")
	for _, p := range result.Placements {
		court := p.Court
		if court == "" {
			court = "-"
		}
		partner := p.Partner
		if partner == "" {
			partner = "-"
		}
		fmt.Fprintf(w, "  %-15s %-12s %-15s %-8s\n", p.Player, court, partner, p.Status)
	}
}

func runValidate(w io.Writer, cfg *config.Config, drawPath string) error {
	violations, err := validator.Validate(cfg, drawPath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errs := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errs++
			fmt.Fprintf(w, "✗ %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Fprintf(w, "⚠ %s\n", v.Message)
		}
	}

	fmt.Fprintf(w, "\nValidation complete: %d %s, %d %s\n",
		errs, plural(errs, "error", "errors"), warnings, plural(warnings, "warning", "warnings"))

	if errs > 0 {
		return fmt.Errorf("%d problems found in %s", errs, filepath.Base(drawPath))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
