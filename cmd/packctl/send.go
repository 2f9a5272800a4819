package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danmuck/wirepack/internal/config"
	"github.com/danmuck/wirepack/internal/exchange"
	"github.com/danmuck/wirepack/internal/logging"
	"github.com/danmuck/wirepack/internal/objects"
)

func runSend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	path := fs.String("config", "", "config path (defaults apply when empty)")
	addr := fs.String("addr", "", "override dial_addr")
	count := fs.Int("count", 1, "number of times to send the sample set")
	useMQTT := fs.Bool("mqtt", false, "publish to the configured MQTT broker instead of dialing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.DialAddr = *addr
	}
	logger := logging.New("packctl.send")
	if *useMQTT {
		return publish(cfg, *count, logger)
	}
	return send(ctx, cfg, *count, logger)
}

func send(ctx context.Context, cfg config.Config, count int, logger zerolog.Logger) error {
	client, err := exchange.Dial(ctx, cfg.DialAddr, cfg.NodeID, cfg.Exchange, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	sess, err := client.Open()
	if err != nil {
		return err
	}
	defer sess.Close()

	objs := objects.Sample()
	for i := 0; i < count; i++ {
		if err := exchange.SendValue[[]objects.Object](sess, objects.ObjectsPacker, msgObjects, objectsVersion, objs); err != nil {
			return fmt.Errorf("send %d of %d: %w", i+1, count, err)
		}
	}
	logger.Info().Str("addr", cfg.DialAddr).Int("count", count).Msg("sample sent")
	return nil
}

func publish(cfg config.Config, count int, logger zerolog.Logger) error {
	b, err := exchange.NewMQTTBroadcaster(cfg.NodeID, cfg.MQTT, cfg.Exchange.ConnectTimeout, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	payload, err := objects.ObjectsPacker.Pack(objects.Sample())
	if err != nil {
		return fmt.Errorf("pack sample: %w", err)
	}
	for i := 0; i < count; i++ {
		if err := b.Publish(msgObjects, objectsVersion, payload); err != nil {
			return fmt.Errorf("publish %d of %d: %w", i+1, count, err)
		}
	}
	logger.Info().Str("broker", cfg.MQTT.Broker).Int("count", count).Msg("sample published")
	return nil
}
