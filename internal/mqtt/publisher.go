package mqtt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"uv-monitor/internal/feed"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher pushes refreshed UV readings to an MQTT broker so other
// consumers can subscribe instead of polling the HTTP API. Disabled
// publishers accept every call as a no-op.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	enabled     bool
}

type PublisherConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Enabled     bool
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return &Publisher{enabled: false}, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			slog.Warn("mqtt connection lost", "err", err)
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			slog.Info("mqtt connected")
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		enabled:     true,
	}, nil
}

// PublishSnapshot publishes each station's UV index plus a retained
// JSON copy of the whole snapshot.
func (p *Publisher) PublishSnapshot(snap *feed.Snapshot) error {
	if !p.enabled || snap == nil {
		return nil
	}

	for _, r := range snap.Readings {
		topic := fmt.Sprintf("%s/stations/%s/index", p.topicPrefix, topicSegment(r.StationID))
		payload := fmt.Sprintf("%g", r.UVIndex)
		token := p.client.Publish(topic, 0, false, payload)
		token.Wait()
		if token.Error() != nil {
			slog.Warn("failed to publish reading", "topic", topic, "err", token.Error())
		}
	}

	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	topic := fmt.Sprintf("%s/feed", p.topicPrefix)
	token := p.client.Publish(topic, 0, true, snapJSON)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish snapshot: %w", token.Error())
	}

	return nil
}

func topicSegment(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), " ", "_")
}

func (p *Publisher) IsConnected() bool {
	if !p.enabled {
		return false
	}
	return p.client.IsConnected()
}

func (p *Publisher) Close() {
	if p.enabled && p.client != nil {
		p.client.Disconnect(1000)
	}
}
