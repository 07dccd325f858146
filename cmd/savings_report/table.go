package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/angas/solarsavings-go/report"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the monthly savings breakdown to the terminal",
	RunE:  runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	dataset, err := loadDataset()
	if err != nil {
		return err
	}

	return report.RenderText(os.Stdout, report.New(dataset, currency))
}
