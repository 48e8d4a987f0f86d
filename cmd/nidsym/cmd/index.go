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

	"github.com/apex/log"
	"github.com/blacktop/nidsym/internal/colors"
	"github.com/blacktop/nidsym/internal/model"
	"github.com/blacktop/nidsym/internal/symcache"
	"github.com/blacktop/nidsym/internal/utils"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/blacktop/nidsym/pkg/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().Bool("exports", false, "Also resolve the export symbols")
	indexCmd.Flags().Bool("save", false, "Persist resolved symbols to the configured database")
	indexCmd.Flags().Bool("json", false, "Output as JSON")
	viper.BindPFlag("index.exports", indexCmd.Flags().Lookup("exports"))
	viper.BindPFlag("index.save", indexCmd.Flags().Lookup("save"))
	viper.BindPFlag("index.json", indexCmd.Flags().Lookup("json"))
}

// collectSymbols returns the indexed imports of ctx and, if exports is set, the
// resolvable symbols of exportSyms as database rows.
func collectSymbols(name string, ctx *nid.Context, exportSyms []string, exports bool) ([]*model.Symbol, error) {
	var syms []*model.Symbol
	for _, enc := range ctx.Imports.Symbols() {
		info, err := ctx.ImportSymbol(enc)
		if err != nil {
			return nil, err
		}
		syms = append(syms, model.NewSymbol(name, nid.Import, enc, info))
	}
	if !exports {
		return syms, nil
	}
	r, err := symcache.New(ctx, cacheSize())
	if err != nil {
		return nil, err
	}
	for _, enc := range utils.Unique(exportSyms) {
		info, err := r.Export(enc)
		if err != nil {
			utils.Indent(log.Warn, 2)(fmt.Sprintf("skipping export %s: %v", enc, err))
			continue
		}
		syms = append(syms, model.NewSymbol(name, nid.Export, enc, info))
	}
	return syms, nil
}

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:           "index <METADATA>",
	Short:         "Build the import symbol index of a module image",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, ctx, err := loadImage(args[0])
		if err != nil {
			return err
		}

		syms, err := collectSymbols(img.Name, ctx, img.ExportSymbols, viper.GetBool("index.exports"))
		if err != nil {
			return err
		}

		if viper.GetBool("index.save") {
			d, err := openDatabase()
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.Save(syms); err != nil {
				return fmt.Errorf("failed to save symbols: %w", err)
			}
			log.WithFields(log.Fields{
				"image":   img.Name,
				"symbols": len(syms),
			}).Info(colors.Success("Saved resolved symbols"))
		}

		if viper.GetBool("index.json") {
			return writeJSON(cmd.OutOrStdout(), syms)
		}

		tbl := table.NewTable()
		if colors.Enabled() {
			tbl = table.NewStyledTable()
		}
		tbl.SetHeaders([]string{"Dir", "Encoded", "NID", "Library", "Module"})
		for _, s := range syms {
			tbl.AppendRow([]string{s.Direction, s.Encoded, "0x" + s.NID, s.Library, s.Module})
		}
		tbl.FitTerminal()
		fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
		return nil
	},
}
