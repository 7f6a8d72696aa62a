package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zelig/zelig-backend/internal/app"
	"github.com/zelig/zelig-backend/internal/services/translate"
)

var translateDirection string

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text between English and Moroccan Darija",
	Long: `Runs one translation through the same hybrid pipeline as the API and
prints the JSON result, verification included.

Example:
  zelig translate --direction darija_to_en "Kifach n9der nmchi l Jemaa el-Fna?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cmd.Context(), cfg, logger, app.WithoutIndexing())
		if err != nil {
			return err
		}
		defer application.Close()

		result := application.Translation.Translate(cmd.Context(), strings.Join(args, " "), translateDirection)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	},
}

func init() {
	translateCmd.Flags().StringVarP(&translateDirection, "direction", "d", string(translate.EnglishToDarija),
		"en_to_darija or darija_to_en")
}
