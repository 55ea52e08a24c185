// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewFuncsCommand creates the funcs command, which lists every operator and
// function the engine's table accepts, with its operand classes.
func NewFuncsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "funcs",
		Short:         "List supported operations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eq, _, err := newEngine(rootOpts, nil, cmd.ErrOrStderr())
			if err != nil {
				return WrapExitError(ExitCommandError, "configure engine", err)
			}
			entries := eq.Table().Entries()
			w := cmd.OutOrStdout()

			if rootOpts.Format == FormatJSON {
				type row struct {
					Op       string `json:"op"`
					Operands string `json:"operands"`
				}
				rows := make([]row, len(entries))
				for i, e := range entries {
					rows[i] = row{Op: e.Op.String(), Operands: e.Pair.String()}
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			for _, e := range entries {
				if _, err := fmt.Fprintln(w, e); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
