// Package mqtt publishes patch reports to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Mavwarf/voxa-build/internal/pbxproj"
)

const timeout = 5 * time.Second

// Options describes the broker connection and publish parameters.
type Options struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool
	Username string
	Password string
}

// Publish connects to the broker, publishes payload on the topic, and
// disconnects. Each call uses a fresh connection.
func Publish(o Options, payload []byte) error {
	if o.Broker == "" {
		return fmt.Errorf("mqtt: no broker")
	}
	if o.Topic == "" {
		return fmt.Errorf("mqtt: no topic")
	}
	if o.QoS > 2 {
		return fmt.Errorf("mqtt: invalid qos %d", o.QoS)
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false)

	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(o.Topic, o.QoS, o.Retain, payload)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}

// Message is the JSON payload published after a patch.
type Message struct {
	Plan    string           `json:"plan"`
	Project string           `json:"project"`
	Outcome pbxproj.Outcome  `json:"outcome"`
	DryRun  bool             `json:"dry_run"`
	Steps   []pbxproj.Result `json:"steps"`
}

// Payload encodes a report for the given project.
func Payload(project string, rep pbxproj.Report, dryRun bool) ([]byte, error) {
	steps := rep.Results
	if steps == nil {
		steps = []pbxproj.Result{}
	}
	return json.Marshal(Message{
		Plan:    rep.Plan,
		Project: project,
		Outcome: rep.Outcome,
		DryRun:  dryRun,
		Steps:   steps,
	})
}

// PublishReport encodes rep and publishes it.
func PublishReport(o Options, project string, rep pbxproj.Report, dryRun bool) error {
	payload, err := Payload(project, rep, dryRun)
	if err != nil {
		return fmt.Errorf("mqtt: encode: %w", err)
	}
	return Publish(o, payload)
}
