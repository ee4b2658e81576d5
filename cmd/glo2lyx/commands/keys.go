// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/glo2lyx/cmd/glo2lyx/opts"
	"gitlab.com/tozd/go/errors"
)

// NewKeysCmd creates the keys command
func NewKeysCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys GLOSSARY",
		Short: "List the keys defined in a glossary file",
		Long: `Keys parses the glossary the same way the conversion does and prints
every key with the line it was defined on. No LyX file is touched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ro.Config.Glossary = args[0]
			}
			if ro.Config.Glossary == "" {
				return errors.Errorf("glossary is required")
			}

			extraction, err := loadKeys(cmd.Context(), ro)
			if err != nil {
				return err
			}

			data := pterm.TableData{{"#", "Key", "Line"}}
			for i, key := range extraction.Keys {
				data = append(data, []string{strconv.Itoa(i + 1), key.Name, strconv.Itoa(key.Line)})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering keys: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)

			return nil
		},
	}

	return cmd
}
