package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/groblegark/seasonplan/internal/events"
	"github.com/groblegark/seasonplan/internal/model"
)

var watchCmd = &cobra.Command{
	Use:   "watch <season-id>",
	Short: "Watch a season's plan for changes",
	Long: `Watch a season's plan and print tasks as they change.

With SEASONPLAN_NATS_URL set (or --nats), changes are event-driven;
otherwise the plan is polled at --interval.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seasonID := args[0]
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")
		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = os.Getenv("SEASONPLAN_NATS_URL")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[string]time.Time)

		if err := queryAndPrint(ctx, seasonID, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		if natsURL != "" {
			return watchNATS(ctx, natsURL, seasonID, seen)
		}
		return watchPoll(ctx, interval, seasonID, seen)
	},
}

// watchNATS subscribes to NATS events and re-queries on changes with debounce.
func watchNATS(ctx context.Context, natsURL, seasonID string, seen map[string]time.Time) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("seasonplan.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			if err := queryAndPrint(ctx, seasonID, seen); err != nil {
				return err
			}
		}
	}
}

// watchPoll polls for changes at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, seasonID string, seen map[string]time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := queryAndPrint(ctx, seasonID, seen); err != nil {
			return err
		}
	}
}

// queryAndPrint fetches the season snapshot, diffs against the seen map, and
// prints any tasks that are new or changed.
func queryAndPrint(ctx context.Context, seasonID string, seen map[string]time.Time) error {
	snap, err := planClient.FetchSeason(ctx, seasonID)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	changed := diffTasks(snap.Tasks, seen)
	if len(changed) > 0 {
		if jsonOutput {
			printJSON(changed)
		} else {
			printTaskTable(changed)
		}
	}
	return nil
}

// diffTasks compares tasks against the seen map and returns those that are
// new or have a different updated_at timestamp. It updates seen in place.
func diffTasks(tasks []*model.Task, seen map[string]time.Time) []*model.Task {
	var changed []*model.Task
	for _, t := range tasks {
		prev, ok := seen[t.ID]
		if !ok || !t.UpdatedAt.Equal(prev) {
			changed = append(changed, t)
		}
		seen[t.ID] = t.UpdatedAt
	}
	return changed
}

func init() {
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval")
	watchCmd.Flags().Bool("once", false, "exit after first query")
	watchCmd.Flags().String("nats", "", "NATS URL for event-driven watching")

	rootCmd.AddCommand(watchCmd)
}
