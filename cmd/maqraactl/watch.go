// Watch command: subscribe to the video host's event feed and keep the
// session's videos tabs in sync.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maqraa/maqraa.go/pkg/videofeed"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the video host's event feed until interrupted",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if cfg.VideoFeedURL == "" {
		return errors.New("video_feed_url is not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed := videofeed.New(cfg.VideoFeedURL, func(ev videofeed.Event) {
		fmt.Printf("%s class=%s video=%s\n", ev.Type, ev.ClassID, ev.VideoID)
		if err := session.SyncClassVideos(ctx, ev.ClassID); err != nil {
			fmt.Println("sync failed:", err)
		}
	})

	err := feed.Listen(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
