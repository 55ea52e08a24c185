// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvleq/equation"
	"github.com/katalvlaran/lvleq/internal/logging"
	"github.com/katalvlaran/lvleq/linalg"
	"github.com/katalvlaran/lvleq/matrix"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	Workspace string
	Print     []string
	KeepGoing bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval [formula...]",
		Short: "Evaluate formulas and print the resulting variables",
		Long: `Evaluate assignment formulas in order against a workspace.

Formulas come from the workspace file, then from the arguments. With neither,
one formula per line is read from stdin; blank lines and lines starting with
'#' are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Workspace, "workspace", "w", "", "YAML file with vars and formulas")
	cmd.Flags().StringSliceVarP(&opts.Print, "print", "p", nil, "variables to print (default: all)")
	cmd.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "continue after a failing formula")

	return cmd
}

func runEval(rootOpts *RootOptions, opts *EvalOptions, args []string, cmd *cobra.Command) error {
	var reg *prometheus.Registry
	if rootOpts.Metrics {
		reg = prometheus.NewRegistry()
	}
	eq, matOpts, err := newEngine(rootOpts, reg, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "configure engine", err)
	}

	var formulas []string
	if opts.Workspace != "" {
		ws, err := LoadWorkspace(opts.Workspace)
		if err != nil {
			return WrapExitError(ExitCommandError, "load workspace", err)
		}
		if err = ws.Bind(eq, matOpts...); err != nil {
			return WrapExitError(ExitCommandError, "bind workspace", err)
		}
		formulas = append(formulas, ws.Formulas...)
	}
	formulas = append(formulas, args...)
	if len(formulas) == 0 {
		if formulas, err = readFormulas(cmd.InOrStdin()); err != nil {
			return WrapExitError(ExitCommandError, "read stdin", err)
		}
	}

	failed := 0
	for _, src := range formulas {
		if err = eq.Process(src); err != nil {
			if !opts.KeepGoing {
				return WrapExitError(ExitFailure, fmt.Sprintf("formula %q", src), err)
			}
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "error: formula %q: %v\n", src, err)
		}
	}

	names := opts.Print
	if len(names) == 0 {
		names = eq.Registry().Names()
	}
	f := &Formatter{Format: rootOpts.Format, Precision: rootOpts.Precision, Writer: cmd.OutOrStdout()}
	if err = f.WriteVars(eq, names); err != nil {
		return WrapExitError(ExitFailure, "print", err)
	}

	if reg != nil {
		if err = dumpMetrics(reg, cmd.ErrOrStderr()); err != nil {
			return WrapExitError(ExitFailure, "metrics", err)
		}
	}
	if failed > 0 {
		return WrapExitError(ExitFailure, fmt.Sprintf("%d of %d formulas failed", failed, len(formulas)), nil)
	}

	return nil
}

// newEngine wires logger, metrics and backend from the root options. The
// returned matrix options apply to workspace matrices.
func newEngine(rootOpts *RootOptions, reg *prometheus.Registry, logOut io.Writer) (*equation.Equation, []matrix.Option, error) {
	log, err := newLogger(rootOpts, logOut)
	if err != nil {
		return nil, nil, err
	}

	var matOpts []matrix.Option
	if cfg := rootOpts.cfg; cfg != nil {
		if cfg.Epsilon > 0 {
			matOpts = append(matOpts, matrix.WithEpsilon(cfg.Epsilon))
		}
		if cfg.AllowNaNInf {
			matOpts = append(matOpts, matrix.WithNoValidateNaNInf())
		}
	}

	eqOpts := []equation.Option{
		equation.WithLogger(log),
		equation.WithBackend(linalg.New(linalg.WithMatrixOptions(matOpts...))),
	}
	if reg != nil {
		eqOpts = append(eqOpts, equation.WithMetrics(equation.NewMetrics(reg)))
	}

	return equation.New(eqOpts...), matOpts, nil
}

// newLogger logs to --log-file when given, otherwise to the command's stderr.
func newLogger(rootOpts *RootOptions, logOut io.Writer) (*zap.Logger, error) {
	lc := logging.DefaultConfig()
	if rootOpts.LogDev {
		lc = logging.DevelopmentConfig()
	}
	if rootOpts.LogLevel != "" {
		lc.Level = rootOpts.LogLevel
	}
	if rootOpts.LogFile != "" {
		lc.OutputPaths = []string{rootOpts.LogFile}
		return logging.New(lc)
	}

	return logging.NewWriter(lc, logOut)
}

func readFormulas(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}

	return out, sc.Err()
}

func dumpMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
