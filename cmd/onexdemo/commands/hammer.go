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
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/onex/cmd/onexdemo/demo"
)

// hammerCmd races many goroutines into the lazy singleton's first access
// and checks that exactly one construction wins.
var hammerCmd = &cobra.Command{
	Use:   "hammer",
	Short: "Race concurrent first accessors at the lazy singleton",
	RunE: func(cmd *cobra.Command, args []string) error {
		workers := viper.GetInt("workers")
		if workers < 2 {
			return fmt.Errorf("hammer: needs at least 2 workers, got %d", workers)
		}

		c := demo.TrackerCell()
		if c.Initialized() {
			log.Warn().Msg("cell already initialized; hammering the post-construction read path instead")
		}

		seen := make([]*demo.Tracker, workers)
		var g errgroup.Group
		for i := 0; i < workers; i++ {
			i := i
			g.Go(func() error {
				v, err := demo.TrackerInstance()
				if err != nil {
					return err
				}
				seen[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		allSame := true
		for _, v := range seen[1:] {
			if v != seen[0] {
				allSame = false
				break
			}
		}
		log.Info().
			Int("workers", workers).
			Bool("single_identity", allSame).
			Uint64("constructions", c.Constructions()).
			Msg("hammer result")

		if !allSame {
			return fmt.Errorf("hammer: observed more than one identity across %d workers", workers)
		}
		if n := c.Constructions(); n != 1 {
			return fmt.Errorf("hammer: expected exactly one construction, got %d", n)
		}
		return nil
	},
}

func init() {
	hammerCmd.Flags().Int("workers", 10, "number of concurrent first accessors")
	_ = viper.BindPFlag("workers", hammerCmd.Flags().Lookup("workers"))
}
