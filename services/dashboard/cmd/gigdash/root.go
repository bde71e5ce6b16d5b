package main

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	dataFile   string
	dataSheet  string
	dataSource string
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "gigdash",
	Short: "Freelance marketplace dynamics dashboard",
	Long: `gigdash loads a pre-processed table of freelance job postings and serves
summary metrics plus three charts: competition vs. pay by skill category,
top client countries, and job type share, filterable by client country.`,
	SilenceUsage: true,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "job postings file, .xlsx or .csv (default $DATA_FILE or freelance_dashboard_data.xlsx)")
	rootCmd.PersistentFlags().StringVar(&dataSheet, "sheet", "", "worksheet to read (default: first sheet)")
	rootCmd.PersistentFlags().StringVar(&dataSource, "source", "", "table source: file or clickhouse (default $DATA_SOURCE or file)")
}
