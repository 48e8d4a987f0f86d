/*
Copyright © 2018-2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/blacktop/nidsym/internal/colors"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/blacktop/nidsym/pkg/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolP("export", "e", false, "Query an export symbol")
	queryCmd.Flags().Bool("json", false, "Output as JSON")
	viper.BindPFlag("query.export", queryCmd.Flags().Lookup("export"))
	viper.BindPFlag("query.json", queryCmd.Flags().Lookup("json"))
}

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:           "query <IMAGE> [SYMBOL]",
	Short:         "Query symbols saved with 'index --save'",
	Example: heredoc.Doc(`
		# List every saved symbol of an image
		❯ nidsym query eboot.bin

		# Query one export symbol; use '--' when it starts with '-'
		❯ nidsym query --export --json -- eboot.bin -----------#A#A`),
	Args:          cobra.RangeArgs(1, 2),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		if len(args) == 2 {
			dir := nid.Import
			if viper.GetBool("query.export") {
				dir = nid.Export
			}
			sym, err := d.Get(args[0], dir, args[1])
			if err != nil {
				return fmt.Errorf("%s %s symbol %s: %w", args[0], dir, args[1], err)
			}
			if viper.GetBool("query.json") {
				return writeJSON(cmd.OutOrStdout(), sym)
			}
			info, err := sym.Info()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", colors.Encoded(sym.Encoded), info)
			return nil
		}

		syms, err := d.List(args[0])
		if err != nil {
			return err
		}
		if viper.GetBool("query.json") {
			return writeJSON(cmd.OutOrStdout(), syms)
		}
		if len(syms) == 0 {
			return fmt.Errorf("no symbols saved for %s", args[0])
		}
		tbl := table.NewSymbolTable(colors.Enabled())
		for _, s := range syms {
			info, err := s.Info()
			if err != nil {
				return err
			}
			tbl.AppendSymbol(s.Encoded, info)
		}
		tbl.FitTerminal()
		fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
		return nil
	},
}
