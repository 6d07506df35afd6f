package client

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/archive"
	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/feed"
	pebblestore "github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/storage/pebble"
)

// newFeedCommand constructs the `feed` command group and subcommands.
func newFeedCommand(deps Deps) *cobra.Command {
	feedCmd := &cobra.Command{Use: "feed", Short: "Live feed operations"}
	feedCmd.AddCommand(
		newFeedTailCommand(deps),
		newFeedRecordCommand(deps),
		newFeedReplayCommand(deps),
		newFeedKindsCommand(deps),
		newFeedTrimCommand(deps),
	)
	return feedCmd
}

func addFeedFlags(cmd *cobra.Command) {
	cmd.Flags().String("feed", "sales", "Feed kind: "+strings.Join(feed.KindNames(), "|"))
	cmd.Flags().String("filter", "", "CEL filter over event, json, text, size, now_ms")
	cmd.Flags().Int("buffer", 0, "Buffer capacity override")
	cmd.Flags().Int("reconnect-delay-ms", 0, "Reconnect delay override in ms")
	cmd.Flags().Int("limit", 0, "Stop after N events (0 = run until interrupted)")
}

// subscriptionFromFlags resolves the feed kind and per-feed settings,
// with flags taking precedence over configuration.
func subscriptionFromFlags(deps Deps, cmd *cobra.Command) (*feed.Subscription, string, error) {
	name, _ := cmd.Flags().GetString("feed")
	kind, ok := feed.Kinds[name]
	if !ok {
		return nil, "", fmt.Errorf("unknown feed %q; use one of %s", name, strings.Join(feed.KindNames(), ", "))
	}

	cfg := deps.Config()
	fc := cfg.Feed(name)
	buffer, _ := cmd.Flags().GetInt("buffer")
	if buffer <= 0 {
		buffer = fc.BufferSize
	}
	delay := fc.ReconnectDelay()
	if ms, _ := cmd.Flags().GetInt("reconnect-delay-ms"); ms > 0 {
		delay = time.Duration(ms) * time.Millisecond
	}
	filter, _ := cmd.Flags().GetString("filter")

	sub, err := feed.New(feed.Options{
		URL:            strings.TrimRight(cfg.APIBaseURL, "/") + kind.Path,
		Events:         kind.Events,
		BufferSize:     buffer,
		ReconnectDelay: delay,
		Filter:         filter,
		Normalize:      kind.Normalize,
		Identity:       kind.Identity,
		Dedupe:         kind.Dedupe,
		Logger:         deps.logger(),
	})
	if err != nil {
		return nil, "", err
	}
	return sub, name, nil
}

// runSubscription opens sub, forwards each accepted entry to emit, and
// blocks until the limit is reached or the command context ends.
func runSubscription(cmd *cobra.Command, sub *feed.Subscription, limit int, emit func(feed.Entry) error) error {
	done := make(chan struct{})
	var count atomic.Int64
	var closed atomic.Bool
	sub.OnEvent(func(e feed.Entry, _ bool) bool {
		// Events can keep arriving between hitting the limit and the
		// teardown below; drop them instead of over-emitting.
		if limit > 0 && count.Load() >= int64(limit) {
			return true
		}
		if err := emit(e); err != nil {
			return true
		}
		if limit > 0 && count.Add(1) >= int64(limit) && closed.CompareAndSwap(false, true) {
			close(done)
		}
		return true
	})
	if err := sub.Open(); err != nil {
		return err
	}
	defer sub.Close()

	select {
	case <-done:
	case <-cmd.Context().Done():
	}
	return nil
}

func openArchiveDB(deps Deps) (*pebblestore.DB, error) {
	return pebblestore.Open(pebblestore.Options{
		Dir: filepath.Join(deps.dataDir(), "archive"),
	})
}

// newFeedTailCommand constructs the `feed tail` subcommand.
func newFeedTailCommand(deps Deps) *cobra.Command {
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow a live feed, printing one JSON object per event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub, _, err := subscriptionFromFlags(deps, cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			enc := json.NewEncoder(cmd.OutOrStdout())
			return runSubscription(cmd, sub, limit, func(e feed.Entry) error {
				return enc.Encode(map[string]any{
					"event":    e.Event,
					"received": e.Received.Format(time.RFC3339Nano),
					"payload":  e.Payload,
				})
			})
		},
	}
	addFeedFlags(tailCmd)
	return tailCmd
}

// newFeedRecordCommand constructs the `feed record` subcommand.
func newFeedRecordCommand(deps Deps) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Archive a live feed locally for later replay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub, name, err := subscriptionFromFlags(deps, cmd)
			if err != nil {
				return err
			}
			db, err := openArchiveDB(deps)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			log, err := archive.OpenLog(db, name)
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			var stored atomic.Int64
			err = runSubscription(cmd, sub, limit, func(e feed.Entry) error {
				payload, merr := json.Marshal(e.Payload)
				if merr != nil {
					return merr
				}
				if _, aerr := log.Append(archive.Record{
					Event:      e.Event,
					ReceivedMs: e.Received.UnixMilli(),
					Payload:    payload,
				}); aerr != nil {
					deps.logger().Warn("archive append failed")
					return aerr
				}
				stored.Add(1)
				return nil
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "recorded:", stored.Load())
			return nil
		},
	}
	addFeedFlags(recordCmd)
	return recordCmd
}

// newFeedReplayCommand constructs the `feed replay` subcommand.
func newFeedReplayCommand(deps Deps) *cobra.Command {
	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Print archived feed events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("feed")
			limit, _ := cmd.Flags().GetInt("limit")
			reverse, _ := cmd.Flags().GetBool("reverse")
			start, _ := cmd.Flags().GetUint64("start")

			db, err := openArchiveDB(deps)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			log, err := archive.OpenLog(db, name)
			if err != nil {
				return err
			}

			items, next, err := log.Read(archive.ReadOptions{
				Start:   archive.Token(start),
				Limit:   limit,
				Reverse: reverse,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range items {
				if err := enc.Encode(map[string]any{
					"seq":      it.Seq,
					"event":    it.Record.Event,
					"received": time.UnixMilli(it.Record.ReceivedMs).UTC().Format(time.RFC3339Nano),
					"payload":  json.RawMessage(it.Record.Payload),
				}); err != nil {
					return err
				}
			}
			if next != 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "next:", uint64(next))
			}
			return nil
		},
	}
	replayCmd.Flags().String("feed", "sales", "Feed kind")
	replayCmd.Flags().Int("limit", 0, "Stop after N events (0 = all)")
	replayCmd.Flags().Bool("reverse", false, "Newest first")
	replayCmd.Flags().Uint64("start", 0, "Resume from this sequence")
	return replayCmd
}

// newFeedKindsCommand constructs the `feed kinds` subcommand.
func newFeedKindsCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List feed kinds with local archives",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openArchiveDB(deps)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			kinds, err := archive.ListKinds(db)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), kinds)
		},
	}
}

// newFeedTrimCommand constructs the `feed trim` subcommand.
func newFeedTrimCommand(deps Deps) *cobra.Command {
	trimCmd := &cobra.Command{
		Use:   "trim",
		Short: "Delete archived events older than a retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("feed")
			olderThan, _ := cmd.Flags().GetDuration("older-than")
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			db, err := openArchiveDB(deps)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			log, err := archive.OpenLog(db, name)
			if err != nil {
				return err
			}
			deleted, err := log.TrimOlderThan(time.Now().Add(-olderThan).UnixMilli())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted:", deleted)
			return nil
		},
	}
	trimCmd.Flags().String("feed", "sales", "Feed kind")
	trimCmd.Flags().Duration("older-than", 0, "Retention window, e.g. 72h")
	return trimCmd
}
