package exchange

import (
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/wirepack/internal/observability"
)

// mqttClient is the part of mqtt.Client the broadcaster uses.
type mqttClient interface {
	Connect() mqtt.Token
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTBroadcaster publishes framed messages to an MQTT broker, one topic per
// message type and version.
type MQTTBroadcaster struct {
	node    string
	cfg     MQTTConfig
	timeout time.Duration
	client  mqttClient
	logger  zerolog.Logger
}

func NewMQTTBroadcaster(node string, cfg MQTTConfig, timeout time.Duration, logger zerolog.Logger) (*MQTTBroadcaster, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, fmt.Errorf("mqtt: broker is required")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "wirepack-" + uuid.NewString()
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(clientID)
	opts.SetConnectTimeout(timeout)
	opts.SetAutoReconnect(true)
	return newMQTTBroadcaster(node, cfg, timeout, mqtt.NewClient(opts), logger), nil
}

func newMQTTBroadcaster(node string, cfg MQTTConfig, timeout time.Duration, client mqttClient, logger zerolog.Logger) *MQTTBroadcaster {
	return &MQTTBroadcaster{
		node:    node,
		cfg:     cfg,
		timeout: timeout,
		client:  client,
		logger:  logger.With().Str("broker", cfg.Broker).Logger(),
	}
}

// Topic is <prefix>/<type>/<version>.
func Topic(prefix string, msgType, version uint32) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%d/%d", msgType, version)
	}
	return fmt.Sprintf("%s/%d/%d", prefix, msgType, version)
}

func (b *MQTTBroadcaster) Connect() error {
	if b.client.IsConnected() {
		return nil
	}
	if err := wait(b.client.Connect(), b.timeout); err != nil {
		return fmt.Errorf("mqtt connect %s: %w", b.cfg.Broker, err)
	}
	b.logger.Info().Msg("mqtt connected")
	return nil
}

// Publish sends the framed message, header included, so subscribers can
// decode it with HeaderPacker like a session peer would.
func (b *MQTTBroadcaster) Publish(msgType, version uint32, payload []byte) error {
	if err := b.Connect(); err != nil {
		return err
	}
	buf, err := frame(msgType, version, payload)
	if err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	topic := Topic(b.cfg.TopicPrefix, msgType, version)
	if err := wait(b.client.Publish(topic, b.cfg.QoS, false, buf), b.timeout); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", topic, err)
	}
	observability.RecordMessage(b.node, observability.DirectionOut, typeLabel(msgType), len(buf), len(payload))
	b.logger.Debug().Str("topic", topic).Int("bytes", len(payload)).Msg("published")
	return nil
}

func (b *MQTTBroadcaster) Close() {
	b.client.Disconnect(250)
}

func wait(token mqtt.Token, timeout time.Duration) error {
	if timeout > 0 {
		if !token.WaitTimeout(timeout) {
			return fmt.Errorf("timed out after %s", timeout)
		}
	} else {
		token.Wait()
	}
	return token.Error()
}
