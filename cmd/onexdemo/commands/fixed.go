/*
   Copyright 2025 The DIRPX Authors.

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

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/onex/cmd/onexdemo/demo"
)

// fixedCmd demonstrates the eagerly-held singleton: shared mutable state
// and identity across independently obtained references.
var fixedCmd = &cobra.Command{
	Use:   "fixed",
	Short: "Demonstrate the eager (fixed-instance) singleton",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := demo.ProfileInstance()
		a.SetName("profile.renamed-by-A")
		log.Info().Str("name", a.GetName()).Msg("reference A after SetName")

		b := demo.ProfileInstance()
		log.Info().Str("name", b.GetName()).Msg("reference B observes the write")
		log.Info().Bool("identical", a == b).Msg("identity check")

		if a != b {
			return fmt.Errorf("fixed: expected identical references, got distinct instances")
		}

		// The heavy report is built lazily, under the eager singleton.
		h1, err := a.Heavy()
		if err != nil {
			return err
		}
		h2, err := b.Heavy()
		if err != nil {
			return err
		}
		log.Info().Int64("rows", h1.Rows).Bool("identical", h1 == h2).Msg("heavy report")
		return nil
	},
}
