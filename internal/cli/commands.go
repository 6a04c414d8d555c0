package cli

import (
	"fmt"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gofunc "github.com/njchilds90/gofunc"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create name [payload]",
		Short: "Build a primitive and print it as a JSON tree.",
		Long: `Build one of the registered primitives and print its JSON tree, which
can be saved and passed back with --file. The payload is an integer for
const, power and exp, and a list for polynomial (1,2,5 or [7]).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := ""
			if len(args) == 2 {
				payload = args[1]
			}
			p, err := parsePayload(payload)
			if err != nil {
				return err
			}
			f, err := create(args[0], p)
			if err != nil {
				return err
			}
			return printTree(cmd, f)
		},
	}
}

func newCombineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combine op a b",
		Short: "Combine two functions with +, -, * or / and print the JSON tree.",
		Long: `Combine two functions. Each operand is a tree file or a primitive
written name:payload, for example power:4 or polynomial:1,6.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := gofunc.ParseOp(args[0])
			if err != nil {
				return err
			}
			a, err := parseOperand(args[1])
			if err != nil {
				return err
			}
			b, err := parseOperand(args[2])
			if err != nil {
				return err
			}
			f, err := gofunc.Combine(op, a, b)
			if err != nil {
				return err
			}
			return printTree(cmd, f)
		},
	}
}

func printTree(cmd *cobra.Command, f gofunc.Function) error {
	js, err := gofunc.ToJSON(f)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if labelled(cmd) {
		fmt.Fprintf(out, "# f(x) = %s\n", f)
	}
	fmt.Fprintln(out, js)
	return nil
}

func newEvalCmd() *cobra.Command {
	return newPointCmd("eval", "Evaluate f at one or more points.", "f", func(f gofunc.Function, x float64) float64 {
		return f.Eval(x)
	})
}

func newDerivCmd() *cobra.Command {
	return newPointCmd("deriv", "Evaluate f' at one or more points.", "f'", func(f gofunc.Function, x float64) float64 {
		return f.Deriv(x)
	})
}

func newPointCmd(use, short, label string, at func(gofunc.Function, float64) float64) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [flags] x...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tagged := labelled(cmd)
			for _, arg := range args {
				var x float64
				if _, err := fmt.Sscan(arg, &x); err != nil {
					return fmt.Errorf("invalid point %q: %w", arg, err)
				}
				v := formatFloat(at(f, x))
				if tagged {
					fmt.Fprintf(out, "%s(%s) = %s\n", label, arg, v)
				} else {
					fmt.Fprintln(out, v)
				}
			}
			return nil
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a function as text, LaTeX or JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(cmd)
			if err != nil {
				return err
			}
			switch {
			case GetFlag(cmd, "json"):
				return printTree(cmd, f)
			case GetFlag(cmd, "latex"):
				fmt.Fprintln(cmd.OutOrStdout(), f.LaTeX())
			default:
				fmt.Fprintln(cmd.OutOrStdout(), f.String())
			}
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().Bool("latex", false, "render as LaTeX")
	cmd.Flags().Bool("json", false, "render as a JSON tree")
	return cmd
}

func newNewtonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newton",
		Short: "Locate a root with Newton's method.",
		Long: `Run Newton's method from --x0 until |f(x)| <= --eps or --iter steps
have been taken. The estimate is printed even when the method did not
converge; the command then exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(cmd)
			if err != nil {
				return err
			}
			iter, err := cmd.Flags().GetInt("iter")
			if err != nil {
				return err
			}
			eps := getFloat(cmd, "eps")
			if iter < 1 || !(eps > 0) {
				return fmt.Errorf("--iter must be >= 1 and --eps > 0")
			}
			res := gofunc.NewtonSolve(f, getFloat(cmd, "x0"), iter, eps)
			out := cmd.OutOrStdout()
			if labelled(cmd) {
				fmt.Fprintf(out, "root       = %s\nresidual   = %s\niterations = %d\n",
					formatFloat(res.Root), formatFloat(res.Residual), res.Iterations)
			} else {
				fmt.Fprintln(out, formatFloat(res.Root))
			}
			if !res.Converged {
				log.Warnf("no convergence after %d iterations (|f(x)| = %g)", res.Iterations, res.Residual)
				return fmt.Errorf("newton: residual %g exceeds %g", res.Residual, eps)
			}
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().Float64("x0", 0, "initial guess")
	cmd.Flags().Int("iter", 100, "maximum number of iterations")
	cmd.Flags().Float64("eps", 1e-4, "tolerance on |f(x)|")
	return cmd
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Tabulate f and f' over a range.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(cmd)
			if err != nil {
				return err
			}
			samples, err := gofunc.SampleRange(f, getFloat(cmd, "from"), getFloat(cmd, "to"), getFloat(cmd, "step"))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if labelled(cmd) {
				fmt.Fprintln(tw, "x\tf(x)\tf'(x)")
			}
			for _, s := range samples {
				fmt.Fprintf(tw, "%v\t%v\t%v\n", s.X, s.Y, s.Deriv)
			}
			return tw.Flush()
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().Float64("from", -1, "first point")
	cmd.Flags().Float64("to", 1, "last point")
	cmd.Flags().Float64("step", 0.5, "distance between points")
	return cmd
}

func newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List the primitive names accepted by create and --name.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range gofunc.NewFactory().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
