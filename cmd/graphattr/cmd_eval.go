package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/graphattr/operator"
	"github.com/hupe1980/graphattr/readable"
)

func newEvalCmd(a *app) *cobra.Command {
	var leftKind, rightKind string
	cmd := &cobra.Command{
		Use:   "eval OPERATION LEFT RIGHT",
		Short: "Evaluate an operation over two numbers",
		Long: `Evaluate an operation such as SUM or QUOTIENT over two numbers.

Operand kinds are int, long, float or double. Without --left-kind or
--right-kind a number with a fraction or exponent is a double and any
other number a long.`,
		Example: `  graphattr eval quotient 7 2
  graphattr eval sum 1.5 2 --right-kind int`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := parseOperand(args[1], leftKind)
			if err != nil {
				return err
			}
			right, err := parseOperand(args[2], rightKind)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}

			r, err := eng.Evaluate(args[0], left, right)
			if err != nil {
				return err
			}
			v, err := readable.ReadFloat64(r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Kind(), strconv.FormatFloat(v, 'g', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringVar(&leftKind, "left-kind", "", "kind of the left operand")
	cmd.Flags().StringVar(&rightKind, "right-kind", "", "kind of the right operand")
	return cmd
}

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the registered operations and their signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ops := eng.Operators()
			out := cmd.OutOrStdout()
			for _, name := range ops.Names() {
				reg, _ := ops.Lookup(name)
				sigs := reg.Signatures()
				kinds := make([]string, len(sigs))
				for i, s := range sigs {
					kinds[i] = s.Left.String()
				}
				fmt.Fprintf(out, "%s\t%s\n", name, strings.Join(kinds, ","))
			}
			return nil
		},
	}
}

func parseOperand(s, kind string) (readable.Any, error) {
	if kind == "" {
		kind = operator.KindLong.String()
		if strings.ContainsAny(s, ".eE") || strings.EqualFold(s, "nan") || strings.HasSuffix(strings.ToLower(s), "inf") {
			kind = operator.KindDouble.String()
		}
	}
	switch kind {
	case operator.KindInt.String():
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("operand %q: %w", s, err)
		}
		return readable.Constant(int32(v)), nil
	case operator.KindLong.String():
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("operand %q: %w", s, err)
		}
		return readable.Constant(v), nil
	case operator.KindFloat.String():
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("operand %q: %w", s, err)
		}
		return readable.Constant(float32(v)), nil
	case operator.KindDouble.String():
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("operand %q: %w", s, err)
		}
		return readable.Constant(v), nil
	}
	return nil, fmt.Errorf("unknown operand kind %q", kind)
}
