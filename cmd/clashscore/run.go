package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JiriCernyJC/cctbx-project/chemjson"
	"github.com/JiriCernyJC/cctbx-project/chemplot"
	"github.com/JiriCernyJC/cctbx-project/clash"
	"github.com/spf13/cobra"
)

const defaultHistogramBins = 20

var (
	runConfig    string
	runSort      string
	runStrict    bool
	runNoHBonds  bool
	runNoClashes bool
	runJSON      string
	runPlot      string
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run SNAPSHOT",
	Short: "Find the clashes and hydrogen bonds of a model snapshot",
	Long: `Find the clashes and hydrogen bonds of a model snapshot.

The snapshot is a JSON document with the atoms, bonds, unit cell and
nonbonded pairs of the model. Files ending in .gz or .zst are decompressed.

Examples:
  clashscore run model.json.gz
  clashscore run model.json --sort model_distance --json report.json
  clashscore run model.json.zst --config clash.yaml --plot overlaps.png`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalysis,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "", "YAML configuration file")
	runCmd.Flags().StringVarP(&runSort, "sort", "s", clash.ByOverlap, "Sort clashes by model_distance, vdw_distance, overlap or symmetry")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Abort on any invariant violation")
	runCmd.Flags().BoolVar(&runNoHBonds, "no-hbonds", false, "Don't look for hydrogen bonds")
	runCmd.Flags().BoolVar(&runNoClashes, "no-clashes", false, "Don't look for clashes")
	runCmd.Flags().StringVar(&runJSON, "json", "", "Write a JSON report to this file")
	runCmd.Flags().StringVar(&runPlot, "plot", "", "Save a histogram of the overlaps to this file")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Debug logging")
}

//options merges defaults, the configuration file and the command line flags, in that order.
func options(cmd *cobra.Command) (*clash.Options, *Config, error) {
	opts := clash.DefaultOptions()
	cfg := &Config{}
	if runConfig != "" {
		var err error
		cfg, err = LoadConfig(runConfig)
		if err != nil {
			return nil, nil, err
		}
		cfg.Apply(opts)
	}
	flags := cmd.Flags()
	if flags.Changed("sort") {
		opts.SortBy = runSort
	}
	if flags.Changed("strict") {
		opts.Strict = runStrict
	}
	if flags.Changed("no-hbonds") {
		opts.FindHBonds = !runNoHBonds
	}
	if flags.Changed("no-clashes") {
		opts.FindClashes = !runNoClashes
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if runVerbose {
		level = slog.LevelDebug
	}
	opts.Logger = newLogger(cmd.ErrOrStderr(), level)
	return opts, cfg, nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	opts, cfg, err := options(cmd)
	if err != nil {
		return err
	}
	log := opts.Logger
	snap, err := chemjson.ReadSnapshot(args[0])
	if err != nil {
		return err
	}
	mol, err := snap.Model()
	if err != nil {
		return err
	}
	log.Debug("snapshot loaded", "file", args[0], "atoms", mol.Len(), "pairs", len(snap.Pairs))
	m, err := clash.NewManager(mol, opts)
	if err != nil {
		return err
	}
	clashes, hbonds, err := m.Run()
	if err != nil {
		return err
	}
	res, err := m.Results()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := m.Show(out); err != nil {
		return err
	}
	if err := printSummary(out, res); err != nil {
		return err
	}
	if runJSON != "" {
		if err := chemjson.WriteReport(runJSON, chemjson.NewReport(res, clashes, hbonds, mol)); err != nil {
			return err
		}
		log.Info("report written", "file", runJSON)
	}
	if runPlot != "" {
		data := chemplot.Overlaps(clashes, true)
		if len(data) == 0 {
			log.Warn("no clashes, histogram not written")
			return nil
		}
		bins := cfg.HistogramBins
		if bins <= 0 {
			bins = defaultHistogramBins
		}
		if err := chemplot.OverlapHistogram(data, bins, "Clash overlaps", runPlot); err != nil {
			return err
		}
		s := chemplot.OverlapStats(data)
		log.Info("histogram written", "file", runPlot, "mean_overlap", s.Mean, "max_overlap", s.Max)
	}
	return nil
}

func printSummary(w io.Writer, res clash.Results) error {
	c := res.Clashes
	_, err := fmt.Fprintf(w, "\n%-34s : %5d\n%-34s : %5.2f\n%-34s : %5d\n%-34s : %5.2f\n%-34s : %5d\n%-34s : %5.2f\n%-34s : %5d\n",
		"Clashes", c.NClashes,
		"Clashscore", c.Clashscore,
		"Clashes due to symmetry", c.NClashesSym,
		"Clashscore due to symmetry", c.ClashscoreSym,
		"Macromolecule clashes", c.NClashesMacroMol,
		"Macromolecule clashscore", c.ClashscoreMacroMol,
		"Hydrogen bonds", res.HBonds.NHBonds)
	return err
}
