package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brickyard.GO/config"
	stockService "brickyard.GO/service/stock"
)

var stockImportFile string

var stockImportCmd = &cobra.Command{
	Use:   "stock:import",
	Short: "Import opening stock balances from a kind,quantity CSV",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		res, err := stockService.ImportCSV(db, stockImportFile)
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}
		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}
		fmt.Printf("Imported: %d  Skipped: %d\n", res.Imported, res.Skipped)
	},
}

func init() {
	stockImportCmd.Flags().StringVarP(&stockImportFile, "file", "f", "", "CSV file path (required)")
	stockImportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(stockImportCmd)
}
