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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/slidetimer/internal/detector"
	"github.com/valpere/slidetimer/internal/document"
	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/modewatch"
	"github.com/valpere/slidetimer/internal/presenter"
)

var (
	presentInput  string
	presentOutput string
)

// watcher is a ModeWatcher that also needs its own loop.
type watcher interface {
	presenter.ModeWatcher
	Run(ctx context.Context) error
}

var presentCmd = &cobra.Command{
	Use:   "present",
	Short: "Keep an output file updated while presenting",
	Long: `Re-render the template every interval while in presentation mode.

Presentation mode is on while the --mode-file exists; without --mode-file it
is always on. Entering the mode restarts every timer. The output is replaced
atomically and only when its content changes; an .html output also reloads
itself in the browser every interval.

Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(presentInput); err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		if err := checkDistinct(presentInput, presentOutput); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		var mode watcher = modewatch.Always{}
		if cfg.ModeFile != "" {
			mode = modewatch.NewFileWatcher(cfg.ModeFile, modewatch.DefaultPoll, log)
		}
		go func() {
			if err := mode.Run(ctx); err != nil {
				log.Error().Err(err).Msg("mode watcher stopped")
			}
		}()

		var refresh time.Duration
		if document.IsHTML(presentOutput) {
			refresh = cfg.Interval
		}
		doc := document.New(presentInput, presentOutput, refresh)

		p := presenter.New(mode, doc, db, locale.NewTranslator(locale.Default.String(), log), presenter.Options{
			Interval: cfg.Interval,
			Location: location(),
			Language: cfg.LanguageOverride(),
			Resolver: detector.NewResolver(detector.New()),
		}, log)

		log.Info().
			Str("input", presentInput).
			Str("output", presentOutput).
			Str("mode_file", cfg.ModeFile).
			Dur("interval", cfg.Interval).
			Msg("presenter started")

		if err := p.Run(ctx); err != nil {
			return err
		}

		st := p.Status()
		log.Info().Int("ticks", st.Ticks).Int("failures", st.Failures).Msg("presenter stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presentCmd)

	presentCmd.Flags().StringVarP(&presentInput, "input", "i", "", "Template file (required)")
	presentCmd.Flags().StringVarP(&presentOutput, "output", "o", "", "Output file (required)")
	presentCmd.Flags().String("mode-file", "", "Presentation mode flag file (default: always presenting)")
	presentCmd.Flags().Duration("interval", time.Second, "Update interval")

	presentCmd.MarkFlagRequired("input")
	presentCmd.MarkFlagRequired("output")
}
