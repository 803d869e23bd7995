package main

import (
	"fmt"
	"os"

	"github.com/nozzle/dcor"
	"github.com/nozzle/dcor/internal/logging"
	"github.com/nozzle/dcor/sample"
	"github.com/spf13/cobra"
)

type flags struct {
	x, y       string
	configPath string
	output     string
	noHeader   bool
	logLevel   string
	logFormat  string

	test       string
	b          int
	use        string
	algorithm  string
	metricX    []string
	metricY    []string
	groupX     []string
	groupY     []string
	adjustP    string
	calcCor    string
	pvalCor    bool
	biasCorr   bool
	affine     bool
	fcDiscrete bool
	seed       int64
	workers    int
	skipDCov   bool
	skipDCor   bool
}

func newRootCmd() *cobra.Command {
	var fl flags
	cmd := &cobra.Command{
		Use:   "dcmatrix",
		Short: "Distance covariance and correlation matrices for CSV data",
		Long: `dcmatrix reads one or two CSV files of equally many rows and writes the
group-by-group distance covariance, distance correlation and, with --test,
p-value matrices as labelled CSV blocks.

Cells that are empty, NA or NaN are missing. Columns that are not numeric
are read as categorical.

Settings can be read from a YAML file with --config; flags given on the
command line take precedence.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &fl)
		},
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		Version:           version,
	}

	def := dcor.DefaultConfig()
	f := cmd.Flags()
	f.StringVarP(&fl.x, "x", "x", "", "CSV file with the first sample (required)")
	f.StringVarP(&fl.y, "y", "y", "", "CSV file with the second sample")
	f.StringVar(&fl.configPath, "config", "", "YAML settings file")
	f.StringVarP(&fl.output, "output", "o", "-", "Output CSV file (- for stdout)")
	f.BoolVar(&fl.noHeader, "no-header", false, "Input files have no header row")
	f.StringVar(&fl.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&fl.logFormat, "log-format", "text", "Log format: text or json")

	f.StringVar(&fl.test, "test", def.Test, "Independence test: none, permutation, gamma, conservative, bb3")
	f.IntVarP(&fl.b, "permutations", "b", def.B, "Number of permutations")
	f.StringVar(&fl.use, "use", def.Use, "Missing data: everything, complete.obs, pairwise.complete.obs")
	f.StringVar(&fl.algorithm, "algorithm", def.Algorithm, "Algorithm: auto, fast, standard, memsave")
	f.StringSliceVar(&fl.metricX, "metric-x", nil, "Metric for x groups, one or one per group (name or name:param)")
	f.StringSliceVar(&fl.metricY, "metric-y", nil, "Metric for y groups")
	f.StringSliceVar(&fl.groupX, "group-x", nil, "Group label per x column")
	f.StringSliceVar(&fl.groupY, "group-y", nil, "Group label per y column")
	f.StringVar(&fl.adjustP, "adjustp", def.AdjustP, "p-value adjustment: none, holm, hochberg, hommel, bonferroni, BH, BY, fdr")
	f.StringVar(&fl.calcCor, "calc-cor", def.CalcCor, "Column correlation: none, pearson, spearman, kendall")
	f.BoolVar(&fl.pvalCor, "pval-cor", false, "Add p-values for --calc-cor")
	f.BoolVar(&fl.biasCorr, "bias-corr", false, "Use the bias-corrected estimator")
	f.BoolVar(&fl.affine, "affine", false, "Make statistics affinely invariant")
	f.BoolVar(&fl.fcDiscrete, "fc-discrete", false, "Use the discrete metric for categorical columns")
	f.Int64Var(&fl.seed, "seed", def.Seed, "Permutation seed")
	f.IntVar(&fl.workers, "workers", 0, "Worker goroutines (0 = all CPUs)")
	f.BoolVar(&fl.skipDCov, "no-dcov", false, "Do not write the dcov matrix")
	f.BoolVar(&fl.skipDCor, "no-dcor", false, "Do not write the dcor matrix")
	return cmd
}

func run(cmd *cobra.Command, fl *flags) error {
	level, err := logging.ParseLevel(fl.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, fl.logFormat, cmd.ErrOrStderr())
	log := logging.New("dcmatrix")

	cfg, paths, err := buildConfig(cmd, fl)
	if err != nil {
		return err
	}
	if paths.X == "" {
		return fmt.Errorf("an x file is required (-x or config key x)")
	}

	x, err := loadCSVFile(paths.X, !fl.noHeader)
	if err != nil {
		return fmt.Errorf("load x: %w", err)
	}
	var y *sample.Matrix
	if paths.Y != "" {
		if y, err = loadCSVFile(paths.Y, !fl.noHeader); err != nil {
			return fmt.Errorf("load y: %w", err)
		}
	}
	log.Info("loaded data", "rows", x.Rows(), "x_cols", x.Cols(), "two_sample", y != nil)

	res, err := dcor.ComputeContext(cmd.Context(), x, y, cfg)
	if err != nil {
		return err
	}

	if fl.output == "-" || fl.output == "" {
		if err := writeResult(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return nil
	}
	if err := saveResult(fl.output, res); err != nil {
		return err
	}
	log.Info("saved result", "path", fl.output)
	return nil
}

// saveResult writes res to path and reports the error from closing it.
func saveResult(path string, res *dcor.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeResult(file, res); err != nil {
		file.Close()
		return fmt.Errorf("write result: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
