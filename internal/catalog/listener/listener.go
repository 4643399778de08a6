package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/broker"
)

// StockListener consumes stock-level events from the inventory service and
// feeds them into the reconciliation engine. Delivery retries belong to the
// transport; each event is applied at most once per read and is replay-safe.
type StockListener struct {
	consumer *broker.KafkaConsumer
	uc       catalog.UseCase
	logger   *zap.Logger
}

func NewStockListener(consumer *broker.KafkaConsumer, uc catalog.UseCase, log *zap.Logger) *StockListener {
	return &StockListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("starting stock event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping stock event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read stock event", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type stockLevelChangedEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Payload   dto.StockEventInput `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event stockLevelChangedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal stock event", zap.Error(err))
		return
	}

	if event.EventType != "StockLevelChanged" {
		return
	}

	if _, err := l.uc.ApplyStockEvent(ctx, &event.Payload); err != nil {
		l.logger.Error("failed to apply stock event",
			zap.String("event_id", event.EventID),
			zap.String("product_id", event.Payload.ProductID),
			zap.Error(err),
		)
	}
}
