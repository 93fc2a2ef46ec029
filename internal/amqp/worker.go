package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/domain"
	applog "github.com/rgehrsitz/autosave/internal/log"
)

// Comparer runs a two track comparison
type Comparer interface {
	Compare(ctx context.Context, req domain.ReturnsRequest) (*compare.ComparisonSet, error)
}

// Publisher sends a message body to a routing key
type Publisher interface {
	Publish(ctx context.Context, routingKey, correlationID string, body []byte) error
}

// Worker answers compare requests on the result queue
type Worker struct {
	Comparer    Comparer
	Validate    func(*domain.ReturnsRequest) error
	Publisher   Publisher
	ResultQueue string
	logger      *applog.Logger
}

// NewWorker creates a worker. validate may be nil.
func NewWorker(c Comparer, validate func(*domain.ReturnsRequest) error, resultQueue string, logger *applog.Logger) *Worker {
	return &Worker{
		Comparer:    c,
		Validate:    validate,
		ResultQueue: resultQueue,
		logger:      logger.WithComponent(applog.ComponentWorker),
	}
}

// Handle compares one request and publishes the outcome. Comparison failures
// are published as error results and do not fail the delivery; only a failed
// publish does.
func (w *Worker) Handle(ctx context.Context, msg *CompareRequestMessage) error {
	start := time.Now()

	reply := w.compare(ctx, msg)
	body, err := reply.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal result %s: %w", msg.ID, err)
	}
	if err := w.Publisher.Publish(ctx, w.ResultQueue, msg.ID, body); err != nil {
		return fmt.Errorf("publish result %s: %w", msg.ID, err)
	}

	w.logger.InfoContext(ctx, "compare request answered",
		applog.FieldMessageID, msg.ID,
		applog.FieldDuration, time.Since(start).Milliseconds(),
		"failed", reply.Error != "")
	return nil
}

func (w *Worker) compare(ctx context.Context, msg *CompareRequestMessage) *CompareResultMessage {
	if w.Validate != nil {
		if err := w.Validate(&msg.Request); err != nil {
			w.logger.WarnContext(ctx, "compare request rejected", applog.FieldMessageID, msg.ID, applog.FieldError, err.Error())
			return NewCompareError(msg.ID, err)
		}
	}

	set, err := w.Comparer.Compare(ctx, msg.Request)
	if err != nil {
		w.logger.WarnContext(ctx, "compare failed", applog.FieldMessageID, msg.ID, applog.FieldError, err.Error())
		return NewCompareError(msg.ID, err)
	}
	return NewCompareResult(msg.ID, set)
}

// Options locate the broker and the queues
type Options struct {
	URL         string
	Exchange    string
	Queue       string
	ResultQueue string
}

// Run consumes until ctx is done, reconnecting with backoff after connection
// failures. Any other error stops the worker.
func (w *Worker) Run(ctx context.Context, opts Options) error {
	for attempt := 0; ; attempt++ {
		err := w.runOnce(ctx, opts)
		if ctx.Err() != nil {
			return nil
		}
		if !isConnectionError(err) {
			return err
		}

		wait := exponentialBackoff(attempt)
		w.logger.WarnContext(ctx, "broker connection lost, retrying",
			applog.FieldError, err.Error(),
			"attempt", attempt+1,
			"backoff", wait.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

func (w *Worker) runOnce(ctx context.Context, opts Options) error {
	client, err := NewClient(opts.URL, opts.Exchange, opts.Queue, w.logger)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareQueue(opts.ResultQueue); err != nil {
		return err
	}

	w.Publisher = client
	w.ResultQueue = opts.ResultQueue
	return client.Consume(ctx, w.Handle)
}
