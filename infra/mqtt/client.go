// Package mqtt publishes recomputed opening lists to an MQTT topic so
// wallboard displays can refresh without polling. The notifier is optional
// and disabled unless a broker is configured.
package mqtt

import (
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/arossel/planboard/infra/logger"
)

// Config defines the broker connection and the topic openings are
// published on.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "planboard"
	}
	if c.Topic == "" {
		c.Topic = "planboard/openings"
	}
}

// Publisher sends a payload to the configured topic.
type Publisher interface {
	Publish(payload []byte) error
	Disconnect()
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoClient implements Publisher using Eclipse Paho.
type PahoClient struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	logger logger.Logger
}

// NewPahoClient connects to the MQTT broker.
func NewPahoClient(cfg Config) (*PahoClient, error) {
	log := logger.New("mqtt_client")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &PahoClient{cli: c, topic: cfg.Topic, qos: cfg.QoS, retain: cfg.Retain, logger: log}, nil
}

// Publish sends the payload to the configured topic and waits for the broker
// to accept it.
func (p *PahoClient) Publish(payload []byte) error {
	token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt publish: %w", token.Error())
	}
	return nil
}

// Disconnect closes the broker connection.
func (p *PahoClient) Disconnect() {
	p.cli.Disconnect(250)
}
