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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/slidetimer/internal/config"
	"github.com/valpere/slidetimer/internal/logger"
)

var version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "slidetimer",
	Short: "Live clocks, timers and session status for slide templates",
	Long: `slidetimer replaces placeholder tokens in slide templates with live values:
the current time, countdown and countup timers, and the status of a scheduled
session, localized in English or Spanish.

Tokens:
  <<time>> <<time^>> <<time&>>   current time (^ drops seconds, & uses 24h)
  <<5:00->> <<1:30:00+>>         countdown / countup timers
  <<start>> <<end>> <<status>>   scheduled session (see "slidetimer session")
  <<elapsed>> <<remaining>> <<duration>>
  <<date>> <<shortdate>> <<longdate>> and start/end date variants

Use "slidetimer render" for a one-shot substitution and "slidetimer present"
to keep an output file updated while presenting.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// flagKeys maps config keys to the flags that override them. Flags that a
// command does not define are skipped.
var flagKeys = map[string]string{
	config.KeyDB:       "db",
	config.KeyLanguage: "language",
	config.KeyLogLevel: "log-level",
	config.KeyTimezone: "timezone",
	config.KeyInterval: "interval",
	config.KeyModeFile: "mode-file",
}

func initConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	log = logger.New(cfg.LogLevel)
	log.Debug().Str("db", cfg.DB).Str("config", v.ConfigFileUsed()).Msg("configuration loaded")
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is slidetimer.yaml in the user config dir)")
	rootCmd.PersistentFlags().String("db", "", "Settings database path")
	rootCmd.PersistentFlags().String("language", "", "Display language: auto, en or es (default: stored preference)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone for clocks and session times (default: local)")
}
