// Package notify publishes application events over MQTT for companion
// devices: a data-change topic and a prayer-time reminder topic. The whole
// package is inert unless a broker is configured.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/hilal-labs/ramadan-companion/internal/progress"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

const (
	topicData   = "ramadan/data"
	topicPrayer = "ramadan/prayer"
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

type Notifier struct {
	client mqtt.Client
}

func New(brokerURL string) (*Notifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID("ramadan-companion")
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return &Notifier{client: client}, nil
}

// Attach publishes a message on the data topic after every document change.
func (n *Notifier) Attach(provider *state.Provider) {
	provider.Subscribe(func() {
		payload, _ := json.Marshal(map[string]any{
			"event": "updated",
			"at":    time.Now().Unix(),
		})
		n.client.Publish(topicData, 0, false, payload)
	})
}

// RunPrayerReminders sleeps until each upcoming prayer and announces it,
// honoring the notificationsEnabled setting at fire time. Returns when ctx
// is cancelled.
func (n *Notifier) RunPrayerReminders(ctx context.Context, provider *state.Provider, prayers *timesvc.PrayerTimesClient) {
	for {
		settings := provider.Data().Settings
		times, err := prayers.TimingsByCity(ctx, settings.City, settings.CalculationMethod, provider.Today())
		wait := time.Minute
		var next *progress.NextPrayer
		if err == nil {
			if next = progress.Next(times.Ordered(), provider.Now()); next != nil {
				wait = next.Remaining
			}
		} else {
			// retry on the next settings-driven fetch; a dead service should
			// not spin this loop
			wait = 15 * time.Minute
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		if next != nil && provider.Data().Settings.NotificationsEnabled {
			payload, _ := json.Marshal(map[string]any{
				"prayer": next.Name,
				"at":     next.At.Format("15:04"),
			})
			n.client.Publish(topicPrayer, 0, false, payload)
			log.Info().Str("prayer", next.Name).Msg("prayer reminder published")
		}
		// step past the prayer instant so the next loop finds the following one
		time.Sleep(time.Second)
	}
}

func (n *Notifier) Close() {
	n.client.Disconnect(250)
}
