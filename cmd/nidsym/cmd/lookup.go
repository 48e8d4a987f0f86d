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
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/blacktop/nidsym/internal/colors"
	"github.com/blacktop/nidsym/internal/utils"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tableNames = []string{"import-modules", "import-libraries", "export-modules", "export-libraries"}

func selectTable(ctx *nid.Context, name string) (nid.Lookuper, error) {
	switch name {
	case "import-modules":
		return ctx.ImportModules, nil
	case "import-libraries":
		return ctx.ImportLibraries, nil
	case "export-modules":
		return ctx.ExportModules, nil
	case "export-libraries":
		return ctx.ExportLibraries, nil
	default:
		return nil, fmt.Errorf("unknown table %q (must be one of: %s)", name, strings.Join(tableNames, ", "))
	}
}

// tableColor returns the formatter matching the kind of names a table holds.
func tableColor(name string) func(a ...any) string {
	if strings.HasSuffix(name, "-modules") {
		return colors.Module
	}
	return colors.Library
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolP("encoded", "e", false, "ID is an encoded field")
	viper.BindPFlag("lookup.encoded", lookupCmd.Flags().Lookup("encoded"))
}

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <METADATA> <TABLE> <ID>",
	Short: "Lookup a module or library name by identifier",
	Example: heredoc.Doc(`
		# Lookup by numeric id (decimal or hex)
		❯ nidsym lookup eboot.yaml import-modules 0x2

		# Lookup by encoded field; use '--' when it starts with '-'
		❯ nidsym lookup --encoded -- eboot.yaml import-libraries -B`),
	Args:  cobra.ExactArgs(3),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return tableNames, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	},
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctx, err := loadImage(args[0])
		if err != nil {
			return err
		}
		t, err := selectTable(ctx, args[1])
		if err != nil {
			return err
		}

		var id uint64
		if viper.GetBool("lookup.encoded") {
			id, err = nid.DecodeField(args[2])
		} else {
			id, err = utils.ConvertStrToInt(args[2])
		}
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[2], err)
		}

		name, err := t.Lookup(id)
		if err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", colors.ID("%d", id), tableColor(args[1])(name))
		return nil
	},
}
