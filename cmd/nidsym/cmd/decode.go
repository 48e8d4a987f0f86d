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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type decodedField struct {
	Field string `json:"field"`
	Value uint64 `json:"value"`
	Error string `json:"error,omitempty"`
}

type decodedRef struct {
	Symbol string `json:"symbol"`
	*nid.Reference
	Error string `json:"error,omitempty"`
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(refCmd)
	decodeCmd.Flags().Bool("json", false, "Output as JSON")
	refCmd.Flags().Bool("json", false, "Output as JSON")
	viper.BindPFlag("decode.json", decodeCmd.Flags().Lookup("json"))
	viper.BindPFlag("ref.json", refCmd.Flags().Lookup("json"))
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:           "decode <FIELD>...",
	Short:         "Decode encoded symbol fields",
	Example: heredoc.Doc(`
		# Decode a NID field
		❯ nidsym decode bzQExy189ZI

		# Fields may start with '-', so end the flags with '--' first
		❯ nidsym decode --json -- ----------- -A`),
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []decodedField
		failed := 0
		for _, arg := range args {
			d := decodedField{Field: arg}
			v, err := nid.DecodeField(arg)
			if err != nil {
				d.Error = err.Error()
				failed++
			}
			d.Value = v
			out = append(out, d)
		}

		if viper.GetBool("decode.json") {
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		} else {
			for _, d := range out {
				if d.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", colors.Encoded(d.Field), colors.Failure(d.Error))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (%d)\n", colors.Encoded(d.Field), colors.NID("%#016x", d.Value), d.Value)
			}
		}

		if failed > 0 {
			return fmt.Errorf("failed to decode %d of %d fields", failed, len(args))
		}
		return nil
	},
}

// refCmd represents the ref command
var refCmd = &cobra.Command{
	Use:           "ref <SYMBOL>...",
	Short:         "Decode encoded symbol references into NID, library and module ids",
	Example: heredoc.Doc(`
		# Decode a reference
		❯ nidsym ref bzQExy189ZI#A#A

		# References may start with '-', so end the flags with '--' first
		❯ nidsym ref -- -----------#B#C`),
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []decodedRef
		failed := 0
		for _, arg := range args {
			d := decodedRef{Symbol: arg}
			ref, err := nid.DecodeSymbolReference(arg)
			if err != nil {
				d.Error = err.Error()
				failed++
			} else {
				d.Reference = &ref
			}
			out = append(out, d)
		}

		if viper.GetBool("ref.json") {
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		} else {
			for _, d := range out {
				if d.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", colors.Encoded(d.Symbol), colors.Failure(d.Error))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", colors.Encoded(d.Symbol), d.Reference)
			}
		}

		if failed > 0 {
			return fmt.Errorf("failed to decode %d of %d references", failed, len(args))
		}
		return nil
	},
}
