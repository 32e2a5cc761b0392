package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// newListEntriesCmd creates a new command for listing catalog entries
func newListEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-entries",
		Short: "List all gallery entries",
		Long:  `List all gallery entries organized by category with their ids and image paths.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			listEntries()
		},
	}
}

// listEntries displays all catalog entries grouped by category
func listEntries() {
	categories := services.GetCategories()
	totalEntries := 0

	fmt.Println("Gallery Entries:")
	fmt.Println("===============")

	for _, category := range categories {
		fmt.Printf("Category: %s\n", category.Name)

		for _, entry := range category.Entries {
			fmt.Printf("  %d. %s\n", entry.ID, entry.Title)
			fmt.Printf("     Image: %s\n", entry.Image)
			fmt.Printf("     Thumbnail: %s\n", entry.Thumbnail)
			totalEntries++
		}

		fmt.Println()
	}

	fmt.Printf("Total: %d entries across %d categories\n", totalEntries, len(categories))
}
