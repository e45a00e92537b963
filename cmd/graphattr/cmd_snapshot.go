package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/graphattr"
	"github.com/hupe1980/graphattr/snapshot"
)

func newSnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, inspect and remove attribute snapshots",
		Long: `Manage attribute snapshots in the store named by the config file
(local disk by default, or S3 and MinIO).`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save GRAPH PREFIX",
			Short: "Save the attributes of a YAML graph file",
			Args:  cobra.ExactArgs(2),
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
				store, err := a.cfg.Store.Open(ctx)
				if err != nil {
					return err
				}
				m, err := eng.Save(ctx, store, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %d attributes, %d bytes\n", m.ID, len(m.Attributes), m.TotalSize())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show PREFIX",
			Short: "Load a snapshot and print its attributes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := a.cfg.Options()
				if err != nil {
					return err
				}
				ctx := cmd.Context()
				store, err := a.cfg.Store.Open(ctx)
				if err != nil {
					return err
				}
				eng, err := graphattr.Open(ctx, store, args[0], opts...)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "snapshot %s\n", eng.ID())
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tELEMENT\tNAME\tTYPE\tVALUES")
				for _, attr := range eng.Attributes().Attributes() {
					d := attr.Description
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", attr.ID, attr.ElementType, attr.Name, d.Name(), d.Assigned().GetCardinality())
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "list [ROOT]",
			Short: "List the snapshot prefixes in the store",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var root string
				if len(args) == 1 {
					root = args[0]
				}
				ctx := cmd.Context()
				store, err := a.cfg.Store.Open(ctx)
				if err != nil {
					return err
				}
				prefixes, err := snapshot.List(ctx, store, root)
				if err != nil {
					return err
				}
				for _, p := range prefixes {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete PREFIX",
			Short: "Delete a snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				store, err := a.cfg.Store.Open(ctx)
				if err != nil {
					return err
				}
				return snapshot.Delete(ctx, store, args[0])
			},
		},
		&cobra.Command{
			Use:   "prune PREFIX",
			Short: "Delete column blobs the snapshot manifest does not reference",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				store, err := a.cfg.Store.Open(ctx)
				if err != nil {
					return err
				}
				removed, err := snapshot.Prune(ctx, store, args[0])
				for _, name := range removed {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
				}
				return err
			},
		},
	)
	return cmd
}
