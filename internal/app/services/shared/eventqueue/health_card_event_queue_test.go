package eventqueue

import (
	"context"
	"errors"
	"testing"
	"time"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	queue string
	msg   amqp.Publishing
}

type fakeConfirmation struct {
	acks chan bool
}

func (c *fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	select {
	case ack := <-c.acks:
		return ack, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// fakeChannel confirms every publish with confirmAck. When answer is set it
// decides per message number (starting at 1) whether the broker has replied yet.
type fakeChannel struct {
	confirmAck    bool
	answer        func(n int) (ack bool, answered bool)
	publishErr    error
	published     []published
	confirmations []*fakeConfirmation
	deliveries    []amqp.Delivery
	acked         []uint64
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{confirmAck: true}
}

func (f *fakeChannel) publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.published = append(f.published, published{queue: queue, msg: msg})
	confirmed := &fakeConfirmation{acks: make(chan bool, 1)}
	ack, answered := f.confirmAck, true
	if f.answer != nil {
		ack, answered = f.answer(len(f.published))
	}
	if answered {
		confirmed.acks <- ack
	}
	f.confirmations = append(f.confirmations, confirmed)
	return confirmed, nil
}

func (f *fakeChannel) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	if len(f.deliveries) == 0 {
		return amqp.Delivery{}, false, nil
	}
	d := f.deliveries[0]
	f.deliveries = f.deliveries[1:]
	return d, true, nil
}

func (f *fakeChannel) Ack(tag uint64, multiple bool) error {
	f.acked = append(f.acked, tag)
	return nil
}

func sampleEvent() *models.HealthCardRefreshedEvent {
	return &models.HealthCardRefreshedEvent{
		ID:          "evt-1",
		WaterbodyID: "lake-1",
		RiskScore:   12,
		UpdatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		HealthCard:  &models.HealthCard{ID: "hc-1", WaterbodyID: "lake-1", RiskScore: 12},
	}
}

func TestService_PublishHealthCardRefreshed(t *testing.T) {
	ch := newFakeChannel()
	svc := newService(ch, zap.NewNop())

	err := svc.PublishHealthCardRefreshed(context.Background(), sampleEvent())

	require.NoError(t, err)
	require.Len(t, ch.published, 1)
	assert.Equal(t, constvars.HealthCardRefreshedQueueName, ch.published[0].queue)
	assert.Equal(t, amqp.Persistent, ch.published[0].msg.DeliveryMode)
	assert.Equal(t, constvars.MIMEApplicationJSON, ch.published[0].msg.ContentType)

	var decoded models.HealthCardRefreshedEvent
	require.NoError(t, json.Unmarshal(ch.published[0].msg.Body, &decoded))
	assert.Equal(t, "evt-1", decoded.ID)
	assert.Equal(t, "lake-1", decoded.HealthCard.WaterbodyID)
}

func TestService_PublishNotConfirmed(t *testing.T) {
	ch := newFakeChannel()
	ch.confirmAck = false
	svc := newService(ch, zap.NewNop())

	err := svc.PublishHealthCardRefreshed(context.Background(), sampleEvent())

	assert.Error(t, err)
}

func TestService_ConfirmBelongsToItsOwnMessage(t *testing.T) {
	ch := newFakeChannel()
	ch.answer = func(n int) (bool, bool) {
		if n == 1 {
			return false, false
		}
		return false, true
	}
	svc := newService(ch, zap.NewNop())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.PublishHealthCardRefreshed(cancelled, sampleEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// the broker acks the first message only after its caller gave up
	ch.confirmations[0].acks <- true

	err = svc.PublishHealthCardRefreshed(context.Background(), sampleEvent())

	assert.Error(t, err)
	require.Len(t, ch.published, 2)
}

func TestService_PublishBrokerError(t *testing.T) {
	ch := newFakeChannel()
	ch.publishErr = errors.New("channel closed")
	svc := newService(ch, zap.NewNop())

	err := svc.PublishHealthCardRefreshed(context.Background(), sampleEvent())

	assert.Error(t, err)
	assert.Empty(t, ch.published)
}

func TestService_EnqueueToDeadQueue(t *testing.T) {
	ch := newFakeChannel()
	svc := newService(ch, zap.NewNop())

	err := svc.EnqueueToDeadQueue(context.Background(), sampleEvent())

	require.NoError(t, err)
	require.Len(t, ch.published, 1)
	assert.Equal(t, constvars.HealthCardRefreshedDLQName, ch.published[0].queue)
}

func TestService_FetchN(t *testing.T) {
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	ch := newFakeChannel()
	ch.deliveries = []amqp.Delivery{
		{DeliveryTag: 1, Body: body},
		{DeliveryTag: 2, Body: []byte("{not json")},
		{DeliveryTag: 3, Body: body},
	}
	svc := newService(ch, zap.NewNop())

	items, err := svc.FetchN(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].DeliveryTag)
	assert.Equal(t, uint64(3), items[1].DeliveryTag)
	assert.Equal(t, "evt-1", items[0].Event.ID)

	// the poison message is acked and parked on the dead-letter queue
	assert.Equal(t, []uint64{2}, ch.acked)
	require.Len(t, ch.published, 1)
	assert.Equal(t, constvars.HealthCardRefreshedDLQName, ch.published[0].queue)
}

func TestService_FetchNRespectsMax(t *testing.T) {
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	ch := newFakeChannel()
	ch.deliveries = []amqp.Delivery{{DeliveryTag: 1, Body: body}, {DeliveryTag: 2, Body: body}}
	svc := newService(ch, zap.NewNop())

	items, err := svc.FetchN(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Len(t, ch.deliveries, 1)
}

func TestNoopPublisher(t *testing.T) {
	err := NewNoopPublisher(zap.NewNop()).PublishHealthCardRefreshed(context.Background(), sampleEvent())
	assert.NoError(t, err)
}
