package cli

import (
	"log"

	"github.com/spf13/cobra"

	"quizcast/internal/app"
	"quizcast/internal/transport"
)

// NewTriggerCmd sends one manual batch immediately, bypassing the cadence
// gate. Manual draws are true-random: idempotence within the hour is not
// wanted here.
func NewTriggerCmd(configPath *string) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Send a manual question batch now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if count <= 0 {
				count = cfg.Cadence.WeekdayBatch
			}

			deps, err := buildStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer deps.Close()

			channel := transport.NewWSTransport(deps.tracker)
			broadcaster, err := buildBroadcaster(cfg, deps, channel)
			if err != nil {
				return err
			}

			result, err := broadcaster.SendBatch(cmd.Context(), count, app.SeedRandom, false)
			if err != nil {
				return err
			}
			if result == nil {
				log.Printf("nothing to send")
				return nil
			}
			log.Printf("batch sent: %d requested, %d failed", result.Requested, result.Failed())
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "batch size (defaults to the weekday batch)")
	return cmd
}
