package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/graphattr/attribute/temporal"
)

func newParseCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "parse (datetime|date) TEXT...",
		Short: "Parse temporal text and print its canonical form and epoch milliseconds",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := temporal.ParseMode(a.cfg.Engine.Temporal)
			if err != nil {
				return err
			}
			if strict {
				mode = temporal.Strict
			}

			var (
				parse  func(string, temporal.Mode) (time.Time, error)
				format func(time.Time) string
			)
			switch args[0] {
			case "datetime":
				parse, format = temporal.ParseDateTime, temporal.FormatDateTime
			case "date":
				parse, format = temporal.ParseDate, temporal.FormatDate
			default:
				return fmt.Errorf("unknown temporal type %q", args[0])
			}

			out := cmd.OutOrStdout()
			for _, s := range args[1:] {
				t, err := parse(s, mode)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%d\n", format(t), t.UnixMilli())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "validate separators, ranges and zone letters")
	return cmd
}
