package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// newExportCmd creates a new command for exporting the catalog
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the gallery catalog",
		Long:  `Export the gallery catalog in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			exportData(format)
		},
	}
}

// exportData prints the catalog in the specified format
func exportData(format string) {
	if format != "json" {
		fmt.Printf("Unsupported export format: %s\n", format)
		fmt.Println("Supported formats: json")
		os.Exit(1)
	}

	entries := services.GetEntries()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
