package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quizcast/internal/app"
	"quizcast/internal/config"
)

// NewReportCmd prints the accuracy report for a day, or one participant's
// record sheet.
func NewReportCmd(configPath *string) *cobra.Command {
	var (
		date        string
		participant string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the accuracy report for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			deps, err := buildStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer deps.Close()

			if participant != "" {
				if deps.stats == nil {
					fmt.Println("participant stats unavailable in anonymous mode")
					return nil
				}
				stats, err := deps.stats.ParticipantStats(cmd.Context(), participant)
				if err != nil {
					return err
				}
				fmt.Println(app.RenderParticipantStats(participant, stats))
				return nil
			}

			day := time.Now()
			if date != "" {
				day, err = config.Date(date)
				if err != nil {
					return err
				}
			}
			reporter := app.NewReporter(deps.dlog, cfg.Report)
			report, err := reporter.Build(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Println(app.RenderReport(report))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to report on (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&participant, "participant", "", "show one participant's record instead")
	return cmd
}
