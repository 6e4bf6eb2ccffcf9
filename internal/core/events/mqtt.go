package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 500 // ms
)

var ErrPublishTimeout = errors.New("mqtt publish timeout")

type MQTTOptions struct {
	Broker      string // tcp://host:1883
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

// MQTT 主题：<prefix>/<resource>/<type>，payload 为事件 JSON
type MQTT struct {
	client pahomqtt.Client
	prefix string
	qos    byte
	log    *zap.Logger
}

func NewMQTT(o MQTTOptions, l *zap.Logger) (*MQTT, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetKeepAlive(60 * time.Second)
	if o.Username != "" {
		opts.SetUsername(o.Username)
		opts.SetPassword(o.Password)
	}
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		l.Warn("mqtt connection lost", zap.Error(err))
	})

	c := pahomqtt.NewClient(opts)
	tok := c.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect %s: timeout after %v", o.Broker, connectTimeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", o.Broker, err)
	}
	return NewMQTTWithClient(c, o.TopicPrefix, o.QoS, l), nil
}

func NewMQTTWithClient(c pahomqtt.Client, prefix string, qos byte, l *zap.Logger) *MQTT {
	if l == nil {
		l = zap.NewNop()
	}
	return &MQTT{client: c, prefix: strings.TrimSuffix(prefix, "/"), qos: qos, log: l}
}

func (m *MQTT) Topic(e Event) string {
	return m.prefix + "/" + e.Resource + "/" + e.Type
}

func (m *MQTT) Publish(ctx context.Context, evs ...Event) error {
	var errs []error
	for _, e := range evs {
		b, err := json.Marshal(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tok := m.client.Publish(m.Topic(e), m.qos, false, b)
		if err := wait(ctx, tok); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", m.Topic(e), err))
		}
	}
	return errors.Join(errs...)
}

func wait(ctx context.Context, tok pahomqtt.Token) error {
	timer := time.NewTimer(publishTimeout)
	defer timer.Stop()
	select {
	case <-tok.Done():
		return tok.Error()
	case <-timer.C:
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MQTT) Close() {
	m.client.Disconnect(disconnectQuiesce)
}
