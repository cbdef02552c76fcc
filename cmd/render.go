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
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/slidetimer/internal/document"
	"github.com/valpere/slidetimer/internal/replacer"
	"github.com/valpere/slidetimer/internal/timer"
)

var (
	renderInput  string
	renderOutput string
	renderNow    string
	renderStart  string
	renderEnd    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Substitute placeholders in a template once",
	Long: `Render a template once with the current values.

The session window comes from --start/--end when given, otherwise from the
times saved with "slidetimer session set". Timers show their initial value.
An output file ending in .html receives the markdown rendered as HTML;
without --output the result goes to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkDistinct(renderInput, renderOutput); err != nil {
			return err
		}

		template, err := readTemplate(renderInput)
		if err != nil {
			return err
		}

		ctx := context.Background()
		loc := location()
		now := time.Now().In(loc)
		if renderNow != "" {
			if now, err = parseBoundary(renderNow, now); err != nil {
				return fmt.Errorf("invalid --now: %w", err)
			}
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		startRaw, endRaw := renderStart, renderEnd
		if startRaw == "" && endRaw == "" {
			if startRaw, endRaw, err = db.Times(ctx); err != nil {
				return fmt.Errorf("failed to load session times: %w", err)
			}
		}
		window, err := parseWindow(startRaw, endRaw, now)
		if err != nil {
			return err
		}

		tr := newTranslator(ctx, db, template)
		timers := timer.New()
		timers.StartSession(now)
		text := replacer.New(tr, timers).Substitute(template, now, window)

		log.Debug().
			Str("locale", tr.Locale().String()).
			Bool("window", window.Complete()).
			Msg("template rendered")

		if renderOutput == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		}
		return document.WriteOutput(renderOutput, renderInput, text, 0)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Template file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().StringVar(&renderNow, "now", "", "Render as of this time instead of now")
	renderCmd.Flags().StringVar(&renderStart, "start", "", "Session start, e.g. 2026-02-18T14:00 or 14:00")
	renderCmd.Flags().StringVar(&renderEnd, "end", "", "Session end")

	renderCmd.MarkFlagRequired("input")
}
