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
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/onex"
	"dirpx.dev/onex/cmd/onexdemo/demo"
	"dirpx.dev/onex/codec"
)

// roundtripCmd encodes and decodes both singleton variants and checks that
// identity, not just equality, survives. It also shows the failure mode for
// a type that never opted in.
var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Round-trip both singletons through the codec",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Eager variant: identity preserved automatically via its binding.
		p := demo.ProfileInstance()
		p.SetName("profile.for-serialization")
		data, err := onex.Encode(p)
		if err != nil {
			return err
		}
		back, err := onex.Decode(data)
		if err != nil {
			return err
		}
		log.Info().
			Int("bytes", len(data)).
			Bool("identical", back == any(p)).
			Str("name", back.(*demo.Profile).GetName()).
			Msg("eager round trip")
		if back != any(p) {
			return fmt.Errorf("roundtrip: eager decode returned a detached copy")
		}

		// Lazy variant: identity preserved through its explicit hook.
		tr, err := demo.TrackerInstance()
		if err != nil {
			return err
		}
		data, err = onex.Encode(tr)
		if err != nil {
			return err
		}
		back, err = onex.Decode(data)
		if err != nil {
			return err
		}
		log.Info().
			Int("bytes", len(data)).
			Bool("identical", back == any(tr)).
			Msg("lazy round trip")
		if back != any(tr) {
			return fmt.Errorf("roundtrip: lazy decode returned a detached copy")
		}

		// A type that never opted in is not encodable. Expected to fail;
		// reported, not swallowed.
		_, err = onex.Encode(&demo.Scratch{Note: "ephemeral"})
		switch {
		case errors.Is(err, codec.ErrNotEncodable):
			log.Info().Err(err).Msg("scratch type is not encodable, as designed")
		case err == nil:
			return fmt.Errorf("roundtrip: encoding an unbound type unexpectedly succeeded")
		default:
			return err
		}
		return nil
	},
}
