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
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/session"
	"github.com/valpere/slidetimer/internal/timefmt"
)

var (
	sessionStart string
	sessionEnd   string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the scheduled session window",
	Long:  `Set, show and clear the start and end times used by session placeholders.`,
}

var sessionSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the session start and end times",
	Long: `Save the session window. Accepted formats:
  2026-02-18T14:00[:00]   date and time (a space may replace the T)
  2026-02-18T14:00:00Z    RFC 3339 with offset
  14:00[:00]              that time on the day the template is rendered`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		tr := newTranslator(ctx, db, "")

		if sessionStart == "" || sessionEnd == "" {
			return errors.New(tr.T(locale.KeyStatusEnterBoth))
		}
		w, err := parseWindow(sessionStart, sessionEnd, time.Now().In(location()))
		if err != nil {
			return err
		}
		if w.End.Before(w.Start) {
			log.Warn().Time("start", w.Start).Time("end", w.End).Msg("session ends before it starts")
		}

		if err := db.SaveTimes(ctx, sessionStart, sessionEnd); err != nil {
			return fmt.Errorf("failed to save session times: %w", err)
		}
		fmt.Println(tr.T(locale.KeyStatusSaved))
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the session window and its current status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		tr := newTranslator(ctx, db, "")

		startRaw, endRaw, err := db.Times(ctx)
		if err != nil {
			return fmt.Errorf("failed to load session times: %w", err)
		}
		if startRaw == "" || endRaw == "" {
			fmt.Println(tr.T(locale.KeyStatusNotConfigured))
			return nil
		}

		now := time.Now().In(location())
		w, err := parseWindow(startRaw, endRaw, now)
		if err != nil {
			return err
		}
		info, _ := session.Compute(now, w)
		f := timefmt.New(tr)

		fmt.Println(tr.T(locale.KeyStatusConfigured))
		fmt.Println()
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "start\t%s\t%s\n", timefmt.DateAndTime(w.Start, ""), f.LongDate(w.Start))
		fmt.Fprintf(tw, "end\t%s\t%s\n", timefmt.DateAndTime(w.End, ""), f.LongDate(w.End))
		fmt.Fprintf(tw, "status\t%s\n", session.Label(tr, info.Status))
		fmt.Fprintf(tw, "elapsed\t%s\n", timefmt.Duration(info.Elapsed))
		fmt.Fprintf(tw, "remaining\t%s\n", timefmt.Duration(info.Remaining))
		fmt.Fprintf(tw, "duration\t%s\n", timefmt.Duration(info.Duration))
		return tw.Flush()
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved session times",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		tr := newTranslator(ctx, db, "")

		if err := db.ClearTimes(ctx); err != nil {
			return fmt.Errorf("failed to clear session times: %w", err)
		}
		fmt.Println(tr.T(locale.KeyStatusCleared))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSetCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)

	sessionSetCmd.Flags().StringVar(&sessionStart, "start", "", "Session start")
	sessionSetCmd.Flags().StringVar(&sessionEnd, "end", "", "Session end")
}
