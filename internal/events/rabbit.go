package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// DialRabbit connects to the broker at url.
func DialRabbit(url string) (*amqp.Connection, error) {
	return amqp.Dial(url)
}
