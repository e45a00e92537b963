package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/graphattr"
	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/bin"
)

type binFlags struct {
	attribute  string
	adjacency  string
	reduction  string
	projection string
}

func (f *binFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.attribute, "attribute", "a", "", "attribute to reduce (required)")
	cmd.Flags().StringVar(&f.adjacency, "adjacency", "transactions", "transactions, neighbours or endpoints")
	cmd.Flags().StringVarP(&f.reduction, "reduction", "r", "max", "min, max, sum, mean or distinct")
	cmd.Flags().StringVarP(&f.projection, "projection", "p", "long", "long, double or string")
	_ = cmd.MarkFlagRequired("attribute")
}

// spec resolves the flags against the attributes of eng.
func (f *binFlags) spec(eng *graphattr.Engine) (graphattr.BinSpec, error) {
	adj, err := graphattr.ParseAdjacency(f.adjacency)
	if err != nil {
		return graphattr.BinSpec{}, err
	}
	r, err := bin.ParseReduction(f.reduction)
	if err != nil {
		return graphattr.BinSpec{}, err
	}
	p, err := bin.ParseProjection(f.projection)
	if err != nil {
		return graphattr.BinSpec{}, err
	}

	et := attribute.ElementVertex
	if adj == graphattr.VertexTransactions {
		et = attribute.ElementTransaction
	}
	a, err := eng.Attribute(et, f.attribute)
	if err != nil {
		return graphattr.BinSpec{}, err
	}
	return graphattr.BinSpec{Adjacency: adj, Attribute: a.ID, Reduction: r, Projection: p}, nil
}

func newHistogramCmd(a *app) *cobra.Command {
	var (
		flags binFlags
		width float64
	)
	cmd := &cobra.Command{
		Use:   "histogram GRAPH",
		Short: "Bin the elements of a YAML graph file and print the histogram",
		Example: `  graphattr histogram graph.yaml -a weight -r sum
  graphattr histogram graph.yaml -a group --adjacency neighbours -r distinct -p string`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gf, err := ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := gf.Load(ctx, eng); err != nil {
				return err
			}
			spec, err := flags.spec(eng)
			if err != nil {
				return err
			}
			buckets, err := eng.Histogram(ctx, spec, width)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BIN\tCOUNT\tELEMENTS")
			for _, b := range buckets {
				fmt.Fprintf(tw, "%s\t%d\t%v\n", b.Label, b.Count(), b.Elements.ToArray())
			}
			return tw.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&width, "width", 0, "merge keys into ranges of this width")
	return cmd
}
