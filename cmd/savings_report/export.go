package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angas/solarsavings-go/report"
)

var (
	outputDir string
	formats   []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write savings report files (csv, xlsx, pdf)",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&outputDir, "out", "reports", "output directory")
	exportCmd.Flags().StringSliceVar(&formats, "format", []string{"csv", "xlsx", "pdf"}, "formats to export")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dataset, err := loadDataset()
	if err != nil {
		return err
	}

	files, err := report.Export(outputDir, report.New(dataset, currency), formats...)
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Printf("wrote %s\n", file)
	}
	return nil
}
