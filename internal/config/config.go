package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/wirepack/internal/exchange"
	"github.com/danmuck/wirepack/internal/objects"
)

// Config holds packctl runtime settings.
type Config struct {
	NodeID      string
	ListenAddr  string
	DialAddr    string
	MetricsAddr string
	Limits      objects.Limits
	Exchange    exchange.Config
	MQTT        exchange.MQTTConfig
}

// packctl config.toml key mapping to runtime settings.
type fileConfig struct {
	NodeID         string      `toml:"node_id"`
	ListenAddr     string      `toml:"listen_addr"`
	DialAddr       string      `toml:"dial_addr"`
	MetricsAddr    string      `toml:"metrics_addr"`
	Multiplex      bool        `toml:"multiplex"`
	MaxStringLen   uint32      `toml:"max_string_len"`
	MaxSequenceLen uint32      `toml:"max_sequence_len"`
	MaxPayload     uint32      `toml:"max_payload"`
	ReadTimeout    string      `toml:"read_timeout"`
	WriteTimeout   string      `toml:"write_timeout"`
	ConnectTimeout string      `toml:"connect_timeout"`
	Backoff        fileBackoff `toml:"backoff"`
	MQTT           fileMQTT    `toml:"mqtt"`
}

type fileBackoff struct {
	InitialDelay string  `toml:"initial_delay"`
	Multiplier   float64 `toml:"multiplier"`
	MaxDelay     string  `toml:"max_delay"`
	Jitter       bool    `toml:"jitter"`
	MaxAttempts  int     `toml:"max_attempts"`
}

type fileMQTT struct {
	Broker      string `toml:"broker"`
	ClientID    string `toml:"client_id"`
	TopicPrefix string `toml:"topic_prefix"`
	QoS         int    `toml:"qos"`
}

func Default() Config {
	return Config{
		NodeID:      "packctl",
		ListenAddr:  ":7400",
		DialAddr:    "127.0.0.1:7400",
		MetricsAddr: ":9400",
		Limits: objects.Limits{
			MaxStringLen:   1 << 16,
			MaxSequenceLen: 1 << 16,
		},
		Exchange: exchange.DefaultConfig(),
		MQTT:     exchange.DefaultMQTTConfig(),
	}
}

// Load overlays the keys present in the TOML file at path onto Default and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load packctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load packctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("node_id") {
		cfg.NodeID = strings.TrimSpace(raw.NodeID)
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("dial_addr") {
		cfg.DialAddr = strings.TrimSpace(raw.DialAddr)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("multiplex") {
		cfg.Exchange.Multiplex = raw.Multiplex
	}
	if meta.IsDefined("max_string_len") {
		cfg.Limits.MaxStringLen = raw.MaxStringLen
	}
	if meta.IsDefined("max_sequence_len") {
		cfg.Limits.MaxSequenceLen = raw.MaxSequenceLen
	}
	if meta.IsDefined("max_payload") {
		cfg.Exchange.MaxPayload = raw.MaxPayload
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"read_timeout", raw.ReadTimeout, &cfg.Exchange.ReadTimeout},
		{"write_timeout", raw.WriteTimeout, &cfg.Exchange.WriteTimeout},
		{"connect_timeout", raw.ConnectTimeout, &cfg.Exchange.ConnectTimeout},
		{"backoff.initial_delay", raw.Backoff.InitialDelay, &cfg.Exchange.Backoff.InitialDelay},
		{"backoff.max_delay", raw.Backoff.MaxDelay, &cfg.Exchange.Backoff.MaxDelay},
	}
	for _, d := range durations {
		if !meta.IsDefined(strings.Split(d.key, ".")...) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("load packctl config: %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if meta.IsDefined("backoff", "multiplier") {
		cfg.Exchange.Backoff.Multiplier = raw.Backoff.Multiplier
	}
	if meta.IsDefined("backoff", "jitter") {
		cfg.Exchange.Backoff.Jitter = raw.Backoff.Jitter
	}
	if meta.IsDefined("backoff", "max_attempts") {
		cfg.Exchange.Backoff.MaxAttempts = raw.Backoff.MaxAttempts
	}
	if meta.IsDefined("mqtt", "broker") {
		cfg.MQTT.Broker = strings.TrimSpace(raw.MQTT.Broker)
	}
	if meta.IsDefined("mqtt", "client_id") {
		cfg.MQTT.ClientID = strings.TrimSpace(raw.MQTT.ClientID)
	}
	if meta.IsDefined("mqtt", "topic_prefix") {
		cfg.MQTT.TopicPrefix = strings.TrimSpace(raw.MQTT.TopicPrefix)
	}
	if meta.IsDefined("mqtt", "qos") {
		if raw.MQTT.QoS < 0 || raw.MQTT.QoS > 2 {
			return Config{}, fmt.Errorf("load packctl config: mqtt.qos must be 0, 1 or 2, got %d", raw.MQTT.QoS)
		}
		cfg.MQTT.QoS = byte(raw.MQTT.QoS)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("load packctl config: %w", err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.NodeID) == "" {
		return fmt.Errorf("node_id is required")
	}
	for _, a := range []struct{ key, addr string }{
		{"listen_addr", cfg.ListenAddr},
		{"dial_addr", cfg.DialAddr},
	} {
		if err := validateAddr(a.key, a.addr, true); err != nil {
			return err
		}
	}
	if err := validateAddr("metrics_addr", cfg.MetricsAddr, false); err != nil {
		return err
	}
	x := cfg.Exchange
	if x.ReadTimeout < 0 || x.WriteTimeout < 0 || x.ConnectTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if x.Backoff.InitialDelay < 0 || x.Backoff.MaxDelay < 0 {
		return fmt.Errorf("backoff delays must not be negative")
	}
	if x.Backoff.MaxDelay > 0 && x.Backoff.MaxDelay < x.Backoff.InitialDelay {
		return fmt.Errorf("backoff.max_delay %s is below initial_delay %s", x.Backoff.MaxDelay, x.Backoff.InitialDelay)
	}
	if x.Backoff.Multiplier != 0 && x.Backoff.Multiplier < 1 {
		return fmt.Errorf("backoff.multiplier must be at least 1, got %g", x.Backoff.Multiplier)
	}
	if x.Backoff.MaxAttempts < 0 {
		return fmt.Errorf("backoff.max_attempts must not be negative")
	}
	if cfg.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS)
	}
	return nil
}

// validateAddr accepts host:port; an empty value is allowed unless required.
func validateAddr(key, addr string, required bool) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		if required {
			return fmt.Errorf("%s is required", key)
		}
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s %q: %w", key, addr, err)
	}
	return nil
}
