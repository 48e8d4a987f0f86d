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

	"github.com/blacktop/nidsym/internal/colors"
	"github.com/blacktop/nidsym/pkg/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Bool("json", false, "Output as JSON")
	viper.BindPFlag("info.json", infoCmd.Flags().Lookup("json"))
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:           "info <METADATA>",
	Short:         "Display identifier table and symbol counts of a module image",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, ctx, err := loadImage(args[0])
		if err != nil {
			return err
		}
		mi := img.ModuleInfo()

		if viper.GetBool("info.json") {
			return writeJSON(cmd.OutOrStdout(), struct {
				Info    any `json:"info"`
				Indexed int `json:"indexed_imports"`
			}{mi, ctx.Imports.Len()})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", colors.Image(mi.Name))
		tbl := table.NewTable()
		tbl.SetHeaders([]string{"Table", "Count"})
		tbl.SetAlignment(lipgloss.Left, lipgloss.Right)
		tbl.AppendBulk([][]string{
			{"import modules", humanize.Comma(int64(mi.ImportModules))},
			{"import libraries", humanize.Comma(int64(mi.ImportLibraries))},
			{"export modules", humanize.Comma(int64(mi.ExportModules))},
			{"export libraries", humanize.Comma(int64(mi.ExportLibraries))},
			{"import symbols", humanize.Comma(int64(mi.ImportSymbols))},
			{"export symbols", humanize.Comma(int64(mi.ExportSymbols))},
			{"indexed imports", humanize.Comma(int64(ctx.Imports.Len()))},
		})
		fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
		return nil
	},
}
