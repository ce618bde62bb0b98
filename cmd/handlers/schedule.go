package handlers

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blogpilot/internal/scheduler"
)

// NewScheduleCmd creates the schedule command: the long-running loop.
func NewScheduleCmd() *cobra.Command {
	var interval time.Duration

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline on a fixed interval until interrupted",
		Long: `Start the publication loop: one pipeline run immediately, then one
per interval, until SIGINT or SIGTERM. Runs that find no distinct
topic or fail are logged and the loop continues.

Example:
  blogpilot schedule --interval 6h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("interval") {
				viper.Set("publish.interval", interval.String())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := buildStack(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Printf("Scheduler running every %s; press Ctrl-C to stop.\n", s.cfg.ScheduleInterval())

			err = scheduler.New(s.driver, s.cfg.ScheduleInterval()).Start(ctx)
			if errors.Is(err, context.Canceled) {
				fmt.Println("Scheduler stopped.")
				return nil
			}
			return err
		},
	}

	scheduleCmd.Flags().DurationVar(&interval, "interval", 3*time.Hour, "Time between pipeline runs")

	return scheduleCmd
}
