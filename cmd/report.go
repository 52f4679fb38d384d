// cmd/report.go
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/ingest"
	"github.com/yataco/dashboard/backend/services"
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Print the enrollment summary of one file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		sites, _ := cmd.Flags().GetStringSlice("site")
		periods, _ := cmd.Flags().GetStringSlice("period")
		allPeriods, _ := cmd.Flags().GetBool("all-periods")
		asJSON, _ := cmd.Flags().GetBool("json")

		var name string
		var data []byte
		var err error
		switch {
		case url != "" && len(args) == 1:
			return errors.New("give either a file or --url, not both")
		case url != "":
			name, data, err = ingest.FetchRemote(cmd.Context(), url)
		case len(args) == 1:
			name = filepath.Base(args[0])
			data, err = os.ReadFile(args[0])
		default:
			return errors.New("a file or --url is required")
		}
		if err != nil {
			return err
		}

		ds, _, err := services.AnalyzeFile(name, data)
		if err != nil {
			return fmt.Errorf("hubo un problema al procesar los datos: %w", err)
		}

		sel := services.DefaultSelection(ds, config.AppConfig.Report.MonthLocale)
		if len(sites) > 0 {
			sel.Sites = sites
		}
		if len(periods) > 0 {
			sel.Periods = periods
		}
		sel.FilterPeriods = !allPeriods
		view := services.ComputeView("", ds, services.RestrictSelection(sel, services.AvailableFilters(ds)))

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderView(view))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("url", "", "Download the report from this URL instead of reading a file")
	reportCmd.Flags().StringSlice("site", nil, "Only include these sites (repeatable)")
	reportCmd.Flags().StringSlice("period", nil, "Only include these periods, e.g. \"January 2026\" (repeatable)")
	reportCmd.Flags().Bool("all-periods", false, "Do not filter by period")
	reportCmd.Flags().Bool("json", false, "Print the full report view as JSON")
}
