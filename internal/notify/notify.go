// Package notify publishes deploy notifications to an AMQP queue.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/amplifier-stories/deck-tools/internal/message"
)

func Publish(ctx context.Context, amqpURL, amqpQueue string, note message.DeployNotification) (err error) {
	var data []byte
	if data, err = json.Marshal(&note); err != nil {
		err = fmt.Errorf("failed to marshal deploy notification: %w", err)
		return
	}

	var conn *amqp.Connection
	var ch *amqp.Channel
	var q amqp.Queue

	if conn, err = amqp.Dial(amqpURL); err != nil {
		err = fmt.Errorf("failed to connect to amqp broker: %w", err)
		return
	}
	defer conn.Close()

	if ch, err = conn.Channel(); err != nil {
		err = fmt.Errorf("failed to open a channel: %w", err)
		return
	}
	defer ch.Close()

	if q, err = ch.QueueDeclare(amqpQueue, false, true, false, true, nil); err != nil {
		err = fmt.Errorf("failed to declare a queue: %w", err)
		return
	}

	err = ch.Publish("", q.Name, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         data,
	})
	if err != nil {
		err = fmt.Errorf("failed publish a message: %w", err)
		return
	}

	return
}
