package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"tiffinbox/internal/api/adapter/broker"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/logger"
)

const queueName = "order_status_updates"

// Subscriber consumes order status updates from the fanout exchange and
// emits customer-facing notification log lines. Real push channels (SMS,
// app push) would hang off processMsg.
type Subscriber struct {
	ctx        context.Context
	cfg        *config.Config
	mylog      logger.Logger
	maxWorkers int

	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

func NewSubscriber(ctx context.Context, cfg *config.Config, maxWorkers int, mylog logger.Logger) *Subscriber {
	return &Subscriber{
		ctx:        ctx,
		cfg:        cfg,
		mylog:      mylog,
		maxWorkers: maxWorkers,
	}
}

// Run connects, binds a durable queue to the status fanout and consumes
// until the context is cancelled.
func (s *Subscriber) Run() error {
	mylog := s.mylog.Action("subscriber_started")

	if err := s.connect(); err != nil {
		mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
		return err
	}
	mylog.Action("mb_connected").Info("Successful message broker connection")

	messageBus, err := s.channel.Consume(
		queueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume from %s: %w", queueName, err)
	}

	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(s.maxWorkers)

	for {
		select {
		case <-ctx.Done():
			mylog.Action("work_shutdown").Info("Stopping message consumption due to context cancel")
			return g.Wait()

		case msg, ok := <-messageBus:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				if err := s.processMsg(msg); err != nil {
					s.mylog.Action("process_failed").Error("Failed to process status update", err)
					// requeue once; a redelivered failure is dropped
					_ = msg.Nack(false, !msg.Redelivered)
					return nil
				}
				return msg.Ack(false)
			})
		}
	}
}

func (s *Subscriber) processMsg(msg amqp.Delivery) error {
	var update dto.StatusUpdateMessage
	if err := json.Unmarshal(msg.Body, &update); err != nil {
		return fmt.Errorf("failed to parse status update: %w", err)
	}

	s.mylog.Action("notification_sent").Info(
		fmt.Sprintf("Order %s moved from %s to %s", update.OrderID, update.OldStatus, update.NewStatus),
		"customer_id", update.CustomerID,
		"changed_by", update.ChangedBy,
	)
	return nil
}

func (s *Subscriber) connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := amqp.Dial(s.cfg.RMQ.URL())
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	err = channel.ExchangeDeclare(broker.StatusExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return err
	}
	if err := channel.QueueBind(queueName, "", broker.StatusExchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	if err := channel.Qos(s.maxWorkers, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	s.conn = conn
	s.channel = channel
	return nil
}

// Stop closes the broker connection after consumption has wound down.
func (s *Subscriber) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down subscriber")

	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			return fmt.Errorf("channel close: %w", err)
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			return fmt.Errorf("connection close: %w", err)
		}
	}

	s.mylog.Action("graceful_shutdown_completed").Info("Subscriber shut down gracefully")
	return nil
}
