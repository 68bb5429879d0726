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
	"errors"

	"github.com/spf13/cobra"

	"dirpx.dev/onex"
	"dirpx.dev/onex/cell"
	"dirpx.dev/onex/cmd/onexdemo/demo"
	"dirpx.dev/onex/config"
	"dirpx.dev/onex/probe"
)

// bypassCmd attempts to invoke the lazy singleton's constructor outside the
// accessor path. All three outcomes (denied, guarded, rogue) are surfaced.
var bypassCmd = &cobra.Command{
	Use:   "bypass",
	Short: "Attempt out-of-band construction of the lazy singleton",
	RunE: func(cmd *cobra.Command, args []string) error {
		allow, _ := cmd.Flags().GetBool("allow")
		if allow {
			// Opting into the escape hatch; bindings migrate to the
			// rebuilt registry.
			onex.SetConfig(config.NewConfig(config.WithAllowBypass(true)))
		}

		c := demo.TrackerCell()
		before := c.Initialized()

		rogue, err := probe.Construct(c, onex.Config())
		switch {
		case errors.Is(err, probe.ErrBypassDenied):
			log.Info().Err(err).Msg("outcome: denied (bypass facility disabled)")
			return nil
		case errors.Is(err, cell.ErrAlreadyConstructed):
			log.Info().Err(err).Bool("initialized_before", before).
				Msg("outcome: guarded (canonical instance already exists)")
			return nil
		case err != nil:
			return err
		}

		// The probe won: a second instance exists. Prove it is distinct and
		// that the cell never adopts it.
		canonical, err := demo.TrackerInstance()
		if err != nil {
			return err
		}
		log.Warn().
			Bool("distinct", rogue != canonical).
			Uint64("constructions", c.Constructions()).
			Msg("outcome: rogue (second, non-canonical instance constructed)")
		return nil
	},
}

func init() {
	bypassCmd.Flags().Bool("allow", false, "enable the bypass escape hatch before probing")
}
