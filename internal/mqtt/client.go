// Package mqtt bridges the line protocol onto an MQTT broker: command lines
// arrive on <prefix>/command and framed responses are published on
// <prefix>/response. Same dialect as the serial link.
package mqtt

import (
	"bytes"
	"io"
	"net/url"

	"github.com/dchest/uniuri"
	pm "github.com/eclipse/paho.mqtt.golang"

	"github.com/opengrab/go-gripper-serial/internal/logging"
)

// LineHandler processes one request line and writes any framed response.
type LineHandler interface {
	Dispatch(line []byte, w io.Writer)
}

type Bridge struct {
	client        pm.Client
	commandTopic  string
	responseTopic string
}

func NewBridge(uri *url.URL, topicPrefix string) *Bridge {
	opts := pm.NewClientOptions().
		AddBroker(uri.String()).
		SetClientID("gripper_mqtt_" + uniuri.New()).
		SetOnConnectHandler(onConnectHandler).
		SetConnectionLostHandler(onConnectionLostHandler)

	return &Bridge{
		client:        pm.NewClient(opts),
		commandTopic:  topicPrefix + "/command",
		responseTopic: topicPrefix + "/response",
	}
}

// Connect connects to the broker and subscribes the handler to the command
// topic. Commands run to completion one at a time on the paho callback
// goroutine; a line that yields no output (unrecognized task) publishes
// nothing.
func (b *Bridge) Connect(h LineHandler) error {
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	messageHandler := func(client pm.Client, msg pm.Message) {
		line := bytes.TrimSpace(msg.Payload())
		if len(line) == 0 {
			return
		}

		var buf bytes.Buffer
		h.Dispatch(line, &buf)
		if buf.Len() > 0 {
			b.Publish(buf.String())
		}
	}

	if token := b.client.Subscribe(b.commandTopic, 1, messageHandler); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	logging.Info("Subscribed to %s", b.commandTopic)
	return nil
}

// Publish publishes a framed response payload with a QoS of 1.
func (b *Bridge) Publish(payload string) {
	if token := b.client.Publish(b.responseTopic, 1, false, payload); token.Wait() && token.Error() != nil {
		logging.Error("Error publishing response: %v", token.Error())
	}
}

func (b *Bridge) Disconnect() {
	logging.Info("Disconnecting from MQTT")

	if token := b.client.Unsubscribe(b.commandTopic); token.Wait() && token.Error() != nil {
		logging.Warn("Error unsubscribing: %v", token.Error())
	}

	b.client.Disconnect(250)
}

func onConnectHandler(c pm.Client) {
	logging.Info("Connected to MQTT")
}

func onConnectionLostHandler(c pm.Client, err error) {
	logging.Error("MQTT connection lost: %v", err)
}
