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

// Package commands implements the CLI of the onexdemo harness: a small
// external client that drives the public singleton lifecycle surface and
// reports what it observes.
package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/onex/cmd/onexdemo/demo"
)

// log is the harness logger. The core library itself never logs.
var log zerolog.Logger

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "onexdemo",
	Short: "onexdemo - harness for the onex singleton lifecycle service",
	Long: `onexdemo drives the public onex surface the way a hostile-but-curious
client would: hammering first access from many goroutines, round-tripping
singletons through the codec, and attempting to invoke constructors outside
the accessor path. Every outcome is reported, none is swallowed.

Use "onexdemo [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		return demo.Register()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	// Environment overrides: ONEXDEMO_VERBOSE, ONEXDEMO_WORKERS, ...
	viper.SetEnvPrefix("onexdemo")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(fixedCmd)
	rootCmd.AddCommand(lazyCmd)
	rootCmd.AddCommand(hammerCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(bypassCmd)
}
