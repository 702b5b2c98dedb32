/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rulesAsYAML bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active rewrite rules",
	Long: `Print the word replacements, contractions and openers in the order they are
applied. With --yaml the table is printed as a rule file that can be edited and
passed back with --rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if rulesAsYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(table); err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			return enc.Close()
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

		fmt.Fprintln(w, "WORD REPLACEMENTS\t")
		for i, p := range table.WordReplacements() {
			fmt.Fprintf(w, "%d\t%s\t-> %s\n", i+1, p.From, p.To)
		}
		fmt.Fprintln(w, "\t")

		fmt.Fprintln(w, "CONTRACTIONS\t")
		for i, p := range table.Contractions() {
			fmt.Fprintf(w, "%d\t%s\t-> %s\n", i+1, p.From, p.To)
		}
		fmt.Fprintln(w, "\t")

		fmt.Fprintln(w, "OPENERS\t")
		for i, o := range table.Openers() {
			fmt.Fprintf(w, "%d\t%q\t\n", i+1, o)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().BoolVar(&rulesAsYAML, "yaml", false, "Print the rules as a YAML rule file")
}
