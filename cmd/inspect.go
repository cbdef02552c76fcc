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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/slidetimer/internal/locale"
	"github.com/valpere/slidetimer/internal/placeholder"
	"github.com/valpere/slidetimer/internal/timefmt"
	"github.com/valpere/slidetimer/internal/timer"
)

var inspectInput string

// descKeys maps token types to their description keys.
var descKeys = map[placeholder.Type]string{
	placeholder.Time:           "POPUP_DESC_TIME",
	placeholder.Date:           "POPUP_DESC_DATE",
	placeholder.ShortDate:      "POPUP_DESC_DATE",
	placeholder.LongDate:       "POPUP_DESC_DATE_FULL",
	placeholder.Start:          "POPUP_DESC_START_END",
	placeholder.End:            "POPUP_DESC_START_END",
	placeholder.StartTime:      "POPUP_DESC_TIME_ONLY",
	placeholder.EndTime:        "POPUP_DESC_TIME_ONLY",
	placeholder.StartDate:      "POPUP_DESC_DATE_ONLY",
	placeholder.EndDate:        "POPUP_DESC_DATE_ONLY",
	placeholder.StartShortDate: "POPUP_DESC_DATE_ONLY",
	placeholder.EndShortDate:   "POPUP_DESC_DATE_ONLY",
	placeholder.StartLongDate:  "POPUP_DESC_DATE_FULL",
	placeholder.EndLongDate:    "POPUP_DESC_DATE_FULL",
	placeholder.Status:         "POPUP_DESC_STATUS",
	placeholder.Elapsed:        "POPUP_DESC_TRACKING",
	placeholder.Remaining:      "POPUP_DESC_TRACKING",
	placeholder.Duration:       "POPUP_DESC_TRACKING",
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the placeholders in a template",
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := readTemplate(inspectInput)
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		tr := newTranslator(context.Background(), db, template)

		analysis := placeholder.Analyze(template)
		if analysis.Total == 0 {
			fmt.Println("No placeholders found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LINE\tCOL\tTOKEN\tTYPE\tDETAIL")
		for _, p := range placeholder.Scan(template) {
			line, col := position(template, p.Pos)
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", line, col, p.Match, p.Type, describe(tr, p))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		c := analysis.Categories
		fmt.Printf("\nTotal: %d (time: %d, session: %d, timer: %d, date: %d)\n",
			analysis.Total, c.Time, c.TimeRange, c.Timer, c.Date)
		return nil
	},
}

func describe(tr *locale.Translator, p placeholder.Placeholder) string {
	if p.Type == placeholder.Timer {
		key := "POPUP_DESC_COUNTUP"
		if p.Timer.Direction == timer.Down {
			key = "POPUP_DESC_COUNTDOWN"
		}
		return fmt.Sprintf("%s (%ds)", tr.T(key), p.Timer.TotalSeconds())
	}
	desc := tr.T(descKeys[p.Type])

	var mods []string
	if strings.ContainsRune(p.Modifiers, timefmt.ModNoSeconds) {
		mods = append(mods, tr.T("POPUP_MODIFIER_NO_SECONDS"))
	}
	if strings.ContainsRune(p.Modifiers, timefmt.Mod24Hour) {
		mods = append(mods, tr.T("POPUP_MODIFIER_24H"))
	}
	if len(mods) > 0 {
		desc += " (" + strings.Join(mods, ", ") + ")"
	}
	return desc
}

// position converts a byte offset to a 1-based line and column.
func position(text string, offset int) (line, col int) {
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndex(before, "\n")
	return line, col
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "Template file (required)")
	inspectCmd.MarkFlagRequired("input")
}
