package eventqueue

import (
	"context"
	"fmt"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/exceptions"
	"waterhealth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// confirmation is the broker's answer to one published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// channel is the subset of *amqp.Channel the queue needs after setup.
type channel interface {
	publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error)
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
}

// amqpChannel ties every publish to its own deferred confirmation.
type amqpChannel struct {
	*amqp.Channel
}

func (c amqpChannel) publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error) {
	deferred, err := c.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return nil, err
	}
	if deferred == nil {
		return nil, nil
	}
	return deferred, nil
}

// Service publishes and consumes refresh events over RabbitMQ.
type Service struct {
	ch  channel
	log *zap.Logger
}

// NewService declares the durable event queue and its dead-letter queue and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queueName := range []string{constvars.HealthCardRefreshedQueueName, constvars.HealthCardRefreshedDLQName} {
		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newService(amqpChannel{ch}, log), nil
}

func newService(ch channel, log *zap.Logger) *Service {
	return &Service{
		ch:  ch,
		log: log,
	}
}

var _ contracts.HealthCardEventQueue = (*Service)(nil)

func (s *Service) PublishHealthCardRefreshed(ctx context.Context, event *models.HealthCardRefreshedEvent) error {
	s.log.Info("eventqueue.PublishHealthCardRefreshed called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingWaterbodyIDKey, event.WaterbodyID),
	)
	return s.publishEvent(ctx, constvars.HealthCardRefreshedQueueName, event)
}

// Reenqueue publishes the event, usually with a bumped FailedCount, to the tail of the queue.
func (s *Service) Reenqueue(ctx context.Context, event *models.HealthCardRefreshedEvent) error {
	s.log.Info("eventqueue.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.Int(constvars.LoggingFailedCountKey, event.FailedCount),
	)
	return s.publishEvent(ctx, constvars.HealthCardRefreshedQueueName, event)
}

func (s *Service) EnqueueToDeadQueue(ctx context.Context, event *models.HealthCardRefreshedEvent) error {
	s.log.Warn("eventqueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.Int(constvars.LoggingFailedCountKey, event.FailedCount),
	)
	return s.publishEvent(ctx, constvars.HealthCardRefreshedDLQName, event)
}

// FetchN retrieves up to max events using basic.get without auto-ack.
// Undecodable payloads are acked and moved to the dead-letter queue.
func (s *Service) FetchN(ctx context.Context, max int) ([]models.QueuedHealthCardEvent, error) {
	if max <= 0 {
		max = 1
	}
	items := make([]models.QueuedHealthCardEvent, 0, max)

	for i := 0; i < max; i++ {
		d, ok, err := s.ch.Get(constvars.HealthCardRefreshedQueueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQFetchMessage(err, constvars.HealthCardRefreshedQueueName)
		}
		if !ok {
			break
		}

		var event models.HealthCardRefreshedEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			s.log.Error("eventqueue.FetchN poison message moved to dead-letter queue",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
			_ = s.ch.Ack(d.DeliveryTag, false)
			_ = s.publishRaw(ctx, constvars.HealthCardRefreshedDLQName, d.Body)
			continue
		}
		items = append(items, models.QueuedHealthCardEvent{DeliveryTag: d.DeliveryTag, Event: event})
	}

	s.log.Debug("eventqueue.FetchN fetched events",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingFetchedCountKey, len(items)),
	)
	return items, nil
}

func (s *Service) AckMessage(ctx context.Context, deliveryTag uint64) error {
	if err := s.ch.Ack(deliveryTag, false); err != nil {
		return exceptions.ErrRabbitMQAckMessage(err, constvars.HealthCardRefreshedQueueName)
	}
	return nil
}

func (s *Service) publishEvent(ctx context.Context, queue string, event *models.HealthCardRefreshedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

// publishRaw publishes a persistent message and waits for the broker to
// confirm that message.
func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	confirmed, err := s.ch.publish(ctx, queue, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}
	if confirmed == nil {
		return nil
	}

	ack, err := confirmed.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}
	if !ack {
		return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
	}
	return nil
}
