package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/comalice/eventx"
	"github.com/comalice/eventx/states"
)

var (
	demoInterval time.Duration
	demoRounds   int
	demoSnapshot string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a traffic light switch on a timer",
	Long:  "Cycle a traffic light switch, announcing every transition through an event round, until the round limit is reached or SIGINT arrives.",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	sw, err := states.NewBuilder("red").
		State("red").Allow("green").
		State("green").Allow("yellow").
		State("yellow").Allow("red").
		Build()
	if err != nil {
		return err
	}
	next := map[string]string{"red": "green", "green": "yellow", "yellow": "red"}
	ctx := context.Background()

	err = sw.Changed().AddSequential(ctx, eventx.ListenerFunc(func(ctx context.Context, c states.Change[string]) error {
		fmt.Printf("  light: %s -> %s\n", c.From, c.To)
		return nil
	}))
	if err != nil {
		return err
	}

	// The announce event forwards each new color to a feed channel, the way
	// an application would publish transitions to the rest of the system.
	announce := eventx.New[string](
		eventx.WithName("announce"),
		eventx.WithLogger(newLogger()),
	)
	feed := make(chan string, 100)
	if err := announce.AddParallel(ctx, eventx.NotifyChannelDrop(feed)); err != nil {
		return err
	}

	ticker := time.NewTicker(demoInterval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	rounds := 0
	for {
		select {
		case <-ticker.C:
			rounds++
			fmt.Printf("--- Round %d ---\n", rounds)
			if err := sw.Set(ctx, next[sw.Current()]); err != nil {
				return err
			}
			if err := announce.Invoke(ctx, sw.Current()); err != nil {
				return err
			}
			select {
			case color := <-feed:
				fmt.Printf("  feed:  now %s\n", color)
			default:
			}
			if rounds >= demoRounds {
				fmt.Printf("Demo complete after %d rounds.\n", rounds)
				return saveDemoSnapshot(sw)
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return saveDemoSnapshot(sw)
		}
	}
}

func saveDemoSnapshot(sw *states.Switch[string]) error {
	if demoSnapshot == "" {
		return nil
	}
	if err := states.SaveSnapshot(demoSnapshot, sw.Snapshot("demo")); err != nil {
		return err
	}
	fmt.Printf("snapshot saved to %s\n", demoSnapshot)
	return nil
}

func init() {
	demoCmd.Flags().DurationVar(&demoInterval, "interval", 500*time.Millisecond, "Delay between rounds")
	demoCmd.Flags().IntVar(&demoRounds, "rounds", 6, "Number of rounds before exiting")
	demoCmd.Flags().StringVar(&demoSnapshot, "snapshot", "", "Write a switch snapshot to this path on exit")
	rootCmd.AddCommand(demoCmd)
}
