package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"retroboard/internal/model"
	"retroboard/internal/mq"
)

// Store is the persistence surface for job rows.
type Store interface {
	Create(ctx context.Context, input json.RawMessage) (int, error)
	FindByID(ctx context.Context, id int) (*model.PMJob, error)
	Complete(ctx context.Context, id int, result json.RawMessage) error
	Fail(ctx context.Context, id int, errMsg string) error
}

type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Queue accepts generation work and exposes its polled status record.
// Clients poll roughly once a second for up to a minute.
type Queue interface {
	Submit(ctx context.Context, input json.RawMessage) (int, error)
	Poll(ctx context.Context, id int) (*model.PMJob, error)
}

// MQQueue persists a pending row, then hands the work to the worker via
// RabbitMQ. The row is the only state the API ever reads back.
type MQQueue struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
}

func NewMQQueue(store Store, publisher Publisher, logger *zap.Logger) *MQQueue {
	return &MQQueue{store: store, publisher: publisher, logger: logger}
}

func (q *MQQueue) Submit(ctx context.Context, input json.RawMessage) (int, error) {
	id, err := q.store.Create(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to create job: %w", err)
	}

	event := mq.PMGenerateRequested{JobID: id, Input: input}
	if err := q.publisher.Publish(mq.RoutingKeyPMGenerate, event); err != nil {
		// the worker will never see this job; fail it so pollers terminate
		if ferr := q.store.Fail(ctx, id, "failed to enqueue job"); ferr != nil {
			q.logger.Error("failed to mark unpublished job as error",
				zap.Int("job_id", id), zap.Error(ferr))
		}
		return 0, fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("job submitted", zap.Int("job_id", id))
	return id, nil
}

func (q *MQQueue) Poll(ctx context.Context, id int) (*model.PMJob, error) {
	return q.store.FindByID(ctx, id)
}
