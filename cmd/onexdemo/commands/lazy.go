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

// lazyCmd demonstrates the lazily-constructed singleton: nothing exists
// before first access, and repeated accesses share one identity.
var lazyCmd = &cobra.Command{
	Use:   "lazy",
	Short: "Demonstrate the lazy singleton",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := demo.TrackerCell()
		log.Info().
			Bool("initialized", c.Initialized()).
			Uint64("constructions", c.Constructions()).
			Msg("before first access")

		s1, err := demo.TrackerInstance()
		if err != nil {
			return err
		}
		s2, err := demo.TrackerInstance()
		if err != nil {
			return err
		}
		log.Info().
			Str("label", s1.Label).
			Bool("identical", s1 == s2).
			Uint64("constructions", c.Constructions()).
			Msg("after two accesses")

		if s1 != s2 {
			return fmt.Errorf("lazy: expected identical references, got distinct instances")
		}
		if n := c.Constructions(); n != 1 {
			return fmt.Errorf("lazy: expected exactly one construction, got %d", n)
		}
		return nil
	},
}
