package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/fekuna/omnipos-sales-service/internal/sales"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of broker.KafkaConsumer the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type SalesListener struct {
	consumer MessageReader
	uc       sales.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewSalesListener(consumer MessageReader, uc sales.UseCase, log logger.ZapLogger) *SalesListener {
	if log == nil {
		log = logger.NewNop()
	}
	return &SalesListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
		backoff:  time.Second,
	}
}

func (l *SalesListener) Start(ctx context.Context) {
	l.logger.Info("Starting Sales Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Sales Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *SalesListener) processMessage(ctx context.Context, value []byte) {
	var event model.SalesLoadedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != model.EventSalesLoaded {
		return
	}

	l.logger.Info("Processing SalesLoaded event",
		zap.String("event_id", event.EventID),
		zap.String("source", event.Payload.Source),
		zap.Int64("inserted", event.Payload.Inserted),
	)

	// New rows may carry facet values the cached options lack.
	l.uc.InvalidateFilterOptions(ctx)
}
