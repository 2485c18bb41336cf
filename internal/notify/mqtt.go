package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

const (
	qos             = 1
	disconnectQuiet = 250
	waitTimeout     = 5 * time.Second
)

type updatedMessage struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"`
}

// MQTTNotifier publishes content updates to a broker and subscribes to those of other instances.
type MQTTNotifier struct {
	client mqtt.Client
	prefix string
}

var _ Notifier = (*MQTTNotifier)(nil)

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("[notify] connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("[notify] MQTT connection lost")
}

func NewMQTTNotifier(brokerURL, clientName, prefix string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(waitTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	log.Info().Str("broker", brokerURL).Msg("[notify] MQTT client initialized")
	return &MQTTNotifier{client: client, prefix: prefix}, nil
}

func (n *MQTTNotifier) ContentUpdated(kind provider.Kind) error {
	body, err := json.Marshal(updatedMessage{
		Type:      "content_updated",
		Kind:      string(kind),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	topic := UpdatedTopic(n.prefix, kind)
	token := n.client.Publish(topic, qos, false, body)
	if !token.WaitTimeout(waitTimeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Msg("[notify] content update published")
	return nil
}

func (n *MQTTNotifier) OnContentUpdated(h Handler) error {
	topic := subscriptionTopic(n.prefix)
	token := n.client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		kind, ok := kindFromTopic(n.prefix, msg.Topic())
		if !ok {
			log.Warn().Str("topic", msg.Topic()).Msg("[notify] ignoring message on unknown topic")
			return
		}
		h(context.Background(), kind)
	})
	if !token.WaitTimeout(waitTimeout) {
		return fmt.Errorf("timed out subscribing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return nil
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(disconnectQuiet)
	log.Info().Msg("[notify] MQTT client disconnected")
}
