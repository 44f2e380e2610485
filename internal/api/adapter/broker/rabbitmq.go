package broker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/logger"
)

// StatusExchange is the fanout every order status transition is published to.
const StatusExchange = "order_status_fanout"

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mylog   logger.Logger
}

func Connect(cfg *config.RabbitMQ, mylog logger.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		StatusExchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	mylog.Action("mb_connected").Info("Connected to RabbitMQ", "exchange", StatusExchange)
	return &RabbitMQ{conn: conn, channel: channel, mylog: mylog}, nil
}

func (r *RabbitMQ) PublishStatusUpdate(ctx context.Context, msg dto.StatusUpdateMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = r.channel.PublishWithContext(pubCtx,
		StatusExchange,
		"",    // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return err
	}

	r.mylog.Action("status_update_published").Debug("Status update published",
		"order_id", msg.OrderID, "new_status", msg.NewStatus)
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
