package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zelig/zelig-backend/internal/app"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Seed the database from the knowledge base and push embeddings",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cmd.Context(), cfg, logger, app.WithoutIndexing())
		if err != nil {
			return err
		}
		defer application.Close()

		n, err := application.IndexKnowledgeBase(cmd.Context())
		if err != nil {
			return fmt.Errorf("indexing failed after %d places: %w", n, err)
		}

		mode := "keyword only"
		if application.Chat.RetrievalActive() {
			mode = "vector retrieval via " + application.Store.Name()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d places (%s)\n", n, mode)
		return nil
	},
}
