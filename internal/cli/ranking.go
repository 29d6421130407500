package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizcast/internal/app"
)

// NewRankingCmd prints the top participants by cumulative points.
func NewRankingCmd(configPath *string) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the top participants",
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

			if deps.ranking == nil {
				fmt.Println("ranking unavailable in anonymous mode")
				return nil
			}
			entries, err := deps.ranking.TopN(cmd.Context(), top)
			if err != nil {
				return err
			}
			fmt.Println(app.RenderRanking(entries))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "number of entries to show")
	return cmd
}
