package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewHarvestCmd creates the harvest command: topic selection only.
func NewHarvestCmd() *cobra.Command {
	var (
		category string
		timeout  time.Duration
	)

	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Select the next topic without generating or publishing",
		Long: `Run only the topic selection stage: gather candidates, score them
against existing post titles and local history, and print the winner.

The selected topic is recorded in history, so a following run will
not pick it again. Useful for checking what the pipeline would write
about next.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if cmd.Flags().Changed("category") {
				viper.Set("harvest.category", category)
			}

			s, err := buildHarvestStack()
			if err != nil {
				return err
			}
			defer s.Close()

			topic, err := s.harvester.SelectTopic(ctx)
			if err != nil {
				return err
			}
			if topic == nil {
				fmt.Println("No sufficiently distinct topic found.")
				return nil
			}

			fmt.Printf("Selected topic: %s\n", topic.Text)
			fmt.Printf("Category:       %s\n", topic.Category)
			fmt.Printf("Source:         %s\n", topic.Source)
			return nil
		},
	}

	harvestCmd.Flags().StringVar(&category, "category", "IT", "Topic category (IT or Finance)")
	harvestCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Harvest timeout")

	return harvestCmd
}
