package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/graphattr"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	cfg        Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "graphattr",
		Short: "Typed graph attributes, operations and histograms",
		Long: `graphattr works with typed graph attributes: it parses temporal
values, evaluates arithmetic operations, bins graph files into
histograms and saves attribute snapshots to local disk, S3 or MinIO.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newParseCmd(a),
		newEvalCmd(a),
		newOpsCmd(a),
		newHistogramCmd(a),
		newSnapshotCmd(a),
	)
	return root
}

// engine creates an engine from the loaded config.
func (a *app) engine(extra ...graphattr.Option) (*graphattr.Engine, error) {
	opts, err := a.cfg.Options()
	if err != nil {
		return nil, err
	}
	return graphattr.New(append(opts, extra...)...), nil
}
