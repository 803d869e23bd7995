package main

import (
	"fmt"
	"os"

	"github.com/nozzle/dcor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML settings file. Unset keys keep their defaults.
type fileConfig struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`

	Test       string   `yaml:"test"`
	B          *int     `yaml:"b"`
	Use        string   `yaml:"use"`
	Algorithm  string   `yaml:"algorithm"`
	MetricX    []string `yaml:"metric_x"`
	MetricY    []string `yaml:"metric_y"`
	GroupX     []string `yaml:"group_x"`
	GroupY     []string `yaml:"group_y"`
	AdjustP    string   `yaml:"adjustp"`
	CalcCor    string   `yaml:"calc_cor"`
	PValCor    *bool    `yaml:"pval_cor"`
	BiasCorr   *bool    `yaml:"bias_corr"`
	Affine     *bool    `yaml:"affine"`
	FCDiscrete *bool    `yaml:"fc_discrete"`
	CalcDCov   *bool    `yaml:"calc_dcov"`
	CalcDCor   *bool    `yaml:"calc_dcor"`
	Seed       *int64   `yaml:"seed"`
	Workers    *int     `yaml:"workers"`
}

type inputPaths struct {
	X, Y string
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *dcor.Config, paths *inputPaths) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&paths.X, fc.X)
	setString(&paths.Y, fc.Y)
	setString(&cfg.Test, fc.Test)
	setString(&cfg.Use, fc.Use)
	setString(&cfg.Algorithm, fc.Algorithm)
	setString(&cfg.AdjustP, fc.AdjustP)
	setString(&cfg.CalcCor, fc.CalcCor)
	setBool(&cfg.CalcPValCor, fc.PValCor)
	setBool(&cfg.BiasCorr, fc.BiasCorr)
	setBool(&cfg.Affine, fc.Affine)
	setBool(&cfg.FCDiscrete, fc.FCDiscrete)
	setBool(&cfg.CalcDCov, fc.CalcDCov)
	setBool(&cfg.CalcDCor, fc.CalcDCor)
	if fc.B != nil {
		cfg.B = *fc.B
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.Workers != nil {
		cfg.NumWorkers = *fc.Workers
	}
	if fc.MetricX != nil {
		cfg.MetricX = fc.MetricX
	}
	if fc.MetricY != nil {
		cfg.MetricY = fc.MetricY
	}
	if fc.GroupX != nil {
		cfg.GroupX = fc.GroupX
	}
	if fc.GroupY != nil {
		cfg.GroupY = fc.GroupY
	}
}

// buildConfig layers defaults, the optional YAML file and the flags the
// user set explicitly, in that order.
func buildConfig(cmd *cobra.Command, fl *flags) (dcor.Config, inputPaths, error) {
	cfg := dcor.DefaultConfig()
	var paths inputPaths
	if fl.configPath != "" {
		fc, err := loadFileConfig(fl.configPath)
		if err != nil {
			return cfg, paths, err
		}
		fc.apply(&cfg, &paths)
	}

	changed := cmd.Flags().Changed
	if changed("x") {
		paths.X = fl.x
	}
	if changed("y") {
		paths.Y = fl.y
	}
	if changed("test") {
		cfg.Test = fl.test
	}
	if changed("permutations") {
		cfg.B = fl.b
	}
	if changed("use") {
		cfg.Use = fl.use
	}
	if changed("algorithm") {
		cfg.Algorithm = fl.algorithm
	}
	if changed("metric-x") {
		cfg.MetricX = fl.metricX
	}
	if changed("metric-y") {
		cfg.MetricY = fl.metricY
	}
	if changed("group-x") {
		cfg.GroupX = fl.groupX
	}
	if changed("group-y") {
		cfg.GroupY = fl.groupY
	}
	if changed("adjustp") {
		cfg.AdjustP = fl.adjustP
	}
	if changed("calc-cor") {
		cfg.CalcCor = fl.calcCor
	}
	if changed("pval-cor") {
		cfg.CalcPValCor = fl.pvalCor
	}
	if changed("bias-corr") {
		cfg.BiasCorr = fl.biasCorr
	}
	if changed("affine") {
		cfg.Affine = fl.affine
	}
	if changed("fc-discrete") {
		cfg.FCDiscrete = fl.fcDiscrete
	}
	if changed("seed") {
		cfg.Seed = fl.seed
	}
	if changed("workers") {
		cfg.NumWorkers = fl.workers
	}
	if changed("no-dcov") {
		cfg.CalcDCov = !fl.skipDCov
	}
	if changed("no-dcor") {
		cfg.CalcDCor = !fl.skipDCor
	}
	return cfg, paths, nil
}
