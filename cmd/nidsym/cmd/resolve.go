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
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/blacktop/nidsym/internal/colors"
	"github.com/blacktop/nidsym/internal/symcache"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/blacktop/nidsym/pkg/table"
	"github.com/caarlos0/ctrlc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type resolvedSymbol struct {
	Symbol    string `json:"symbol"`
	Direction string `json:"direction"`
	*nid.SymbolInfo
	Error string `json:"error,omitempty"`
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolP("export", "e", false, "Resolve against the export tables")
	resolveCmd.Flags().BoolP("all", "a", false, "Resolve every symbol listed in the metadata file")
	resolveCmd.Flags().Bool("json", false, "Output as JSON")
	resolveCmd.Flags().IntP("workers", "w", 0, "Number of concurrent resolvers (default: number of CPUs)")
	viper.BindPFlag("resolve.export", resolveCmd.Flags().Lookup("export"))
	viper.BindPFlag("resolve.all", resolveCmd.Flags().Lookup("all"))
	viper.BindPFlag("resolve.json", resolveCmd.Flags().Lookup("json"))
	viper.BindPFlag("resolve.workers", resolveCmd.Flags().Lookup("workers"))
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:           "resolve <METADATA> [SYMBOL]...",
	Aliases:       []string{"r"},
	Short:         "Resolve encoded symbols to module, library and NID",
	Example: heredoc.Doc(`
		# Resolve every import symbol of a module image
		❯ nidsym resolve --all eboot.yaml

		# Resolve export symbols; use '--' when a symbol starts with '-'
		❯ nidsym resolve --export eboot.yaml -- PfccT7qURYE#A#A -----------#A#A`),
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := nid.Import
		if viper.GetBool("resolve.export") {
			dir = nid.Export
		}

		img, ctx, err := loadImage(args[0])
		if err != nil {
			return err
		}

		symbols := args[1:]
		if viper.GetBool("resolve.all") {
			if dir == nid.Export {
				symbols = append(symbols, img.ExportSymbols...)
			} else {
				symbols = append(symbols, img.ImportSymbols...)
			}
		}
		if len(symbols) == 0 {
			return fmt.Errorf("no symbols given; pass SYMBOL arguments or --all")
		}

		r, err := symcache.New(ctx, cacheSize())
		if err != nil {
			return err
		}

		runCtx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var results []symcache.Result
		if err := ctrlc.Default.Run(runCtx, func() error {
			var err error
			results, err = r.ResolveAll(runCtx, dir, symbols, viper.GetInt("resolve.workers"))
			return err
		}); err != nil {
			if errors.As(err, &ctrlc.ErrorCtrlC{}) {
				log.Warn("Exiting...")
				return nil
			}
			return err
		}

		var out []resolvedSymbol
		failed := 0
		for _, res := range results {
			rs := resolvedSymbol{Symbol: res.Symbol, Direction: dir.String()}
			if res.Err != nil {
				rs.Error = res.Err.Error()
				failed++
			} else {
				rs.SymbolInfo = &res.Info
			}
			out = append(out, rs)
		}

		stats := r.Stats()
		log.WithFields(log.Fields{
			"index_hits":  stats.IndexHits,
			"cache_hits":  stats.CacheHits,
			"resolutions": stats.Resolutions,
		}).Debug("Resolver stats")

		if viper.GetBool("resolve.json") {
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		} else {
			tbl := table.NewSymbolTable(colors.Enabled())
			for _, rs := range out {
				if rs.Error != "" {
					log.WithField("symbol", rs.Symbol).Warn(colors.Failure(rs.Error))
					continue
				}
				tbl.AppendSymbol(rs.Symbol, *rs.SymbolInfo)
			}
			if tbl.Len() > 0 {
				tbl.FitTerminal()
				fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			}
		}

		if failed > 0 {
			return fmt.Errorf("failed to resolve %d of %d %s symbols", failed, len(symbols), dir)
		}
		return nil
	},
}
