// Package main provides the CLI entrypoint for solardash.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yoni-ui/solar-challenge-week0/internal/aggregate"
	"github.com/yoni-ui/solar-challenge-week0/internal/config"
	"github.com/yoni-ui/solar-challenge-week0/internal/dashui"
	"github.com/yoni-ui/solar-challenge-week0/internal/dataset"
	"github.com/yoni-ui/solar-challenge-week0/internal/mockgen"
	"github.com/yoni-ui/solar-challenge-week0/internal/model"
	"github.com/yoni-ui/solar-challenge-week0/internal/plot"
)

const (
	defaultGranularity = "daily"
	defaultMockDays    = 365
	defaultReportWidth = 80
)

var (
	dashDataDir     string
	dashCountries   string
	dashGranularity string

	reportDataDir     string
	reportCountries   string
	reportGranularity string
	reportWidth       int

	countriesDataDir string

	mockOut   string
	mockDays  int
	mockSeed  int64
	mockForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "solardash",
		Short:         "Interactive solar irradiance dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.Flags().StringVar(&dashDataDir, "data-dir", "", "directory with cleaned country CSVs")
	rootCmd.Flags().StringVar(&dashCountries, "countries", "", "comma-separated countries (default: all discovered)")
	rootCmd.Flags().StringVar(&dashGranularity, "granularity", defaultGranularity, "time-series granularity (daily, weekly, monthly)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newCountriesCmd())
	rootCmd.AddCommand(newMockdataCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveDashConfig(cmd, dashDataDir, dashCountries, dashGranularity)
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(cfg.DataDir, cfg.Countries)
	if _, err := loader.Readings(); err != nil {
		return datasetLoadError(cfg.DataDir, err)
	}

	m := dashui.NewModel(loader, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print ranking, summary, and chart to stdout",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportDataDir, "data-dir", "", "directory with cleaned country CSVs")
	cmd.Flags().StringVar(&reportCountries, "countries", "", "comma-separated countries (default: all discovered)")
	cmd.Flags().StringVar(&reportGranularity, "granularity", defaultGranularity, "time-series granularity (daily, weekly, monthly)")
	cmd.Flags().IntVar(&reportWidth, "width", defaultReportWidth, "output width in columns")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveDashConfig(cmd, reportDataDir, reportCountries, reportGranularity)
	if err != nil {
		return err
	}

	readings, err := dataset.Load(cfg.DataDir, cfg.Countries)
	if err != nil {
		return datasetLoadError(cfg.DataDir, err)
	}
	report := aggregate.BuildReport(readings, cfg.Countries, cfg.Granularity)

	out := cmd.OutOrStdout()
	if err := renderRankingTable(out, report); err != nil {
		return err
	}
	if err := renderDistributionBoxes(out, report); err != nil {
		return err
	}
	return renderSeriesPlot(out, report, reportWidth)
}

func renderRankingTable(w io.Writer, report aggregate.Report) error {
	if _, err := fmt.Fprintln(w, "Top Regions (By Mean GHI)"); err != nil {
		return err
	}
	headers := []string{"Rank", "Country", "Mean GHI (W/m²)"}
	rows := make([][]string, 0, len(report.Ranking))
	for i, r := range report.Ranking {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Country,
			fmt.Sprintf("%.2f", r.MeanGHI),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true}
	for _, line := range plot.FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderDistributionBoxes(w io.Writer, report aggregate.Report) error {
	boxes := make([]plot.BoxStat, 0, len(report.Distributions))
	for _, d := range report.Distributions {
		summary, ok := aggregate.Quartiles(d.Values)
		if !ok {
			continue
		}
		boxes = append(boxes, plot.BoxStat{
			Name:   d.Country,
			Min:    summary.Min,
			Q1:     summary.Q1,
			Median: summary.Median,
			Q3:     summary.Q3,
			Max:    summary.Max,
		})
	}
	return plot.RenderBoxes(w, "GHI Distribution by Country", boxes, reportWidth)
}

func renderSeriesPlot(w io.Writer, report aggregate.Report, width int) error {
	countries, buckets, values := aggregate.SeriesByCountry(report.Series)
	if len(countries) == 0 {
		_, err := fmt.Fprintln(w, "No time-series data for the selected countries.")
		return err
	}
	series := make([]plot.Series, 0, len(countries))
	for _, c := range countries {
		series = append(series, plot.Series{Name: c, Values: values[c]})
	}
	title := fmt.Sprintf("Mean GHI Over Time (%s)", report.Granularity)
	if err := plot.PlotSeries(w, title, series, plot.PlotWidthFor(width), 10); err != nil {
		return err
	}
	first := time.Unix(buckets[0], 0).UTC().Format("2006-01-02")
	last := time.Unix(buckets[len(buckets)-1], 0).UTC().Format("2006-01-02")
	_, err := fmt.Fprintf(w, "Buckets: %s .. %s (%d %s buckets)\n", first, last, len(buckets), report.Granularity)
	return err
}

func newCountriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List available country datasets",
		Args:  cobra.NoArgs,
		RunE:  runCountriesCmd,
	}
	cmd.Flags().StringVar(&countriesDataDir, "data-dir", "", "directory with cleaned country CSVs")
	return cmd
}

func runCountriesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir := countriesDataDir
	if dir == "" {
		dir = dataDirFromConfig(fileCfg)
	}

	countries, err := dataset.ListCountries(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrf("No datasets found. Generate demo data with: solardash mockdata\n")
			return fmt.Errorf("data directory does not exist: %s", dir)
		}
		return fmt.Errorf("failed to read data directory: %w", err)
	}
	if len(countries) == 0 {
		logErrf("No datasets found. Generate demo data with: solardash mockdata\n")
		return fmt.Errorf("no datasets found in %s", dir)
	}
	for _, country := range countries {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), country); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newMockdataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mockdata",
		Short: "Generate mock country datasets",
		Args:  cobra.NoArgs,
		RunE:  runMockdataCmd,
	}
	cmd.Flags().StringVar(&mockOut, "out", "", "output directory (default: data dir)")
	cmd.Flags().IntVar(&mockDays, "days", defaultMockDays, "days of hourly readings per country")
	cmd.Flags().Int64Var(&mockSeed, "seed", 0, "random seed (0: time-based)")
	cmd.Flags().BoolVar(&mockForce, "force", false, "overwrite existing files")
	return cmd
}

func runMockdataCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if mockDays <= 0 {
		return fmt.Errorf("--days must be greater than 0")
	}
	outDir := mockOut
	if outDir == "" {
		outDir = dataDirFromConfig(fileCfg)
	}

	gen := mockgen.New(mockSeed)
	start := time.Date(time.Now().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, profile := range mockgen.DefaultProfiles {
		path := dataset.FilePath(outDir, profile.Country)
		if !mockForce {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("dataset already exists: %s (use --force to overwrite)", path)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat dataset: %w", err)
			}
		}
		readings := gen.Readings(profile, start, mockDays)
		if err := mockgen.WriteCSV(path, readings); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logErrf("Wrote %s\n", path)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveDashConfig merges CLI flags over the TOML config over defaults, and
// expands an empty country list into everything discovered in the data dir.
func resolveDashConfig(cmd *cobra.Command, dataDir, countries, granularity string) (model.DashConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.DashConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &dataDir, fileCfg.Dashboard.DataDir)
	applyStringConfig(cmd, "granularity", &granularity, fileCfg.Dashboard.Granularity)
	if countries == "" && fileCfg.Dashboard.Countries != nil {
		countries = strings.Join(*fileCfg.Dashboard.Countries, ",")
	}
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}

	g, err := model.ParseGranularity(granularity)
	if err != nil {
		return model.DashConfig{}, err
	}

	selected := splitCountries(countries)
	if len(selected) == 0 {
		discovered, err := dataset.ListCountries(dataDir)
		if err != nil || len(discovered) == 0 {
			logErrf("No datasets found. Generate demo data with: solardash mockdata\n")
			return model.DashConfig{}, fmt.Errorf("no datasets found in %s", dataDir)
		}
		selected = discovered
	}

	return model.DashConfig{
		DataDir:     dataDir,
		Countries:   selected,
		Granularity: g,
	}, nil
}

func splitCountries(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func datasetLoadError(dir string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load datasets: %v", err),
		fmt.Sprintf("expected cleaned CSVs in: %s", dir),
		"List available: solardash countries",
		"Generate demo data: solardash mockdata",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func dataDirFromConfig(fileCfg config.FileConfig) string {
	if fileCfg.Dashboard.DataDir != nil && *fileCfg.Dashboard.DataDir != "" {
		return *fileCfg.Dashboard.DataDir
	}
	return config.DefaultDataDir()
}

func applyStringConfig(cmd *cobra.Command, name string, target *string, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# solardash configuration
# Uncomment a value to enable it. CLI flags override config values.

[dashboard]
# data-dir = %q
# countries = ["Benin", "Sierra_Leone", "Togo"]
# granularity = %q    # daily, weekly, or monthly
`,
		config.DefaultDataDir(),
		defaultGranularity,
	)
}

func logErrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
