package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// newShowEntryCmd creates a new command for showing one catalog entry
func newShowEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-entry [id]",
		Short: "Show a specific gallery entry",
		Long:  `Show the full record of a gallery entry identified by its id.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			showEntry(args[0])
		},
	}
}

// showEntry displays the full record of one catalog entry
func showEntry(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Printf("Invalid entry id: %s\n", arg)
		os.Exit(1)
	}

	entries := services.GetEntries()
	i := entries.ByID(id)
	if i < 0 {
		fmt.Printf("Error: entry not found: %d\n", id)
		os.Exit(1)
	}

	entry := entries[i]
	fmt.Printf("Entry %d: %s\n", entry.ID, entry.Title)
	fmt.Println("================")
	fmt.Printf("Description: %s\n", entry.Description)
	fmt.Printf("Category: %s\n", entry.Category)
	fmt.Printf("Image: %s\n", entry.Image)
	fmt.Printf("Thumbnail: %s\n", entry.Thumbnail)
	fmt.Printf("Location: %s\n", entry.Location)
	fmt.Printf("Date: %s\n", entry.Date)
	fmt.Printf("Camera: %s\n", entry.Camera)
	fmt.Printf("Tags: %s\n", strings.Join(entry.Tags, ", "))
}
