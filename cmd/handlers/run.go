package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunCmd creates the run command: one full publication cycle.
func NewRunCmd() *cobra.Command {
	var (
		draft      bool
		delayHours int
		labels     []string
		outputJSON bool
		timeout    time.Duration
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one harvest-assemble-publish cycle",
		Long: `Run the full pipeline once: select a topic that does not overlap
with existing posts, generate the article, resolve its images, and
publish it to Blogger.

A run that finds no sufficiently distinct topic exits cleanly with
nothing published.

Examples:
  # Publish one article as a draft
  blogpilot run --draft

  # Schedule the article 24 hours out with custom labels
  blogpilot run --delay 24 --labels Technology,Tutorials`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			// Flags override the configured publish behavior.
			if cmd.Flags().Changed("draft") {
				viper.Set("publish.draft", draft)
			}
			if cmd.Flags().Changed("delay") {
				viper.Set("publish.delay_hours", delayHours)
			}
			if cmd.Flags().Changed("labels") {
				viper.Set("publish.labels", labels)
			}

			s, err := buildStack(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.driver.Run(ctx)
			if err != nil {
				return err
			}

			if outputJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if res.Skipped {
				fmt.Println("No distinct topic found; nothing published this run.")
				return nil
			}

			fmt.Printf("Topic:    %s (%s)\n", res.Topic.Text, res.Topic.Source)
			fmt.Printf("Title:    %s\n", res.Publish.Title)
			fmt.Printf("Post ID:  %s\n", res.Publish.PostID)
			if res.Publish.URL != "" {
				fmt.Printf("URL:      %s\n", res.Publish.URL)
			}
			fmt.Printf("Quality:  %d/100 (%d words, %d images, %d sections)\n",
				res.Quality.Score, res.Quality.WordCount, res.Quality.ImageCount, res.Quality.Sections)
			if res.Publish.Draft {
				fmt.Println("Saved as draft; review it in Blogger before publishing.")
			} else if !res.Publish.PublishedAt.IsZero() {
				fmt.Printf("Scheduled for %s\n", res.Publish.PublishedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	runCmd.Flags().BoolVar(&draft, "draft", false, "Save the post as a draft instead of publishing")
	runCmd.Flags().IntVar(&delayHours, "delay", 0, "Hours to delay publication (minimum 1 when set)")
	runCmd.Flags().StringSliceVar(&labels, "labels", nil, "Labels for the post (default: derived from the topic)")
	runCmd.Flags().BoolVar(&outputJSON, "json", false, "Print the run result as JSON")
	runCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Minute, "Overall run timeout")

	return runCmd
}
