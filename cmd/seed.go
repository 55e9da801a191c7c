package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brickyard.GO/config"
	catalogRepo "brickyard.GO/model/repository/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "catalog:seed",
	Short: "Seed the material catalog and zeroed stock ledger",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		if err := catalogRepo.NewMaterialRepository(db).Seed(); err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			return
		}
		fmt.Println("Material catalog seeded.")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
