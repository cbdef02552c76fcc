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

	"github.com/valpere/slidetimer/internal/config"
	"github.com/valpere/slidetimer/internal/locale"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Manage the display language",
}

var langListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\n", config.LanguageAuto, locale.Translate(locale.Default, locale.KeyLanguageAuto))
		for _, l := range locale.Supported() {
			fmt.Fprintf(w, "%s\t%s\n", l, locale.Translate(l, locale.NameKeys[l]))
		}
		return w.Flush()
	},
}

var langShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the language preference and the language in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		stored, err := db.Language(ctx)
		if err != nil {
			return fmt.Errorf("failed to load language preference: %w", err)
		}
		if stored == "" {
			stored = config.LanguageAuto
		}
		effective := resolveLocale(preference(ctx, db), "")

		fmt.Printf("preference: %s\n", stored)
		if o := cfg.LanguageOverride(); o != "" {
			fmt.Printf("override:   %s\n", o)
		}
		fmt.Printf("effective:  %s (%s)\n", effective, locale.Translate(effective, locale.NameKeys[effective]))
		return nil
	},
}

var langSetCmd = &cobra.Command{
	Use:   "set <auto|en|es>",
	Short: "Save the language preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.ToLower(strings.TrimSpace(args[0]))
		if code != config.LanguageAuto && !locale.Has(code) {
			codes := []string{config.LanguageAuto}
			for _, l := range locale.Supported() {
				codes = append(codes, l.String())
			}
			return fmt.Errorf("unsupported language %q (supported: %s)", code, strings.Join(codes, ", "))
		}

		ctx := context.Background()
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveLanguage(ctx, code); err != nil {
			return fmt.Errorf("failed to save language preference: %w", err)
		}
		fmt.Println(locale.Translate(resolveLocale(code, ""), locale.KeyLanguageUpdated))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
	langCmd.AddCommand(langListCmd)
	langCmd.AddCommand(langShowCmd)
	langCmd.AddCommand(langSetCmd)
}
