package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingUseCase struct {
	mu          sync.Mutex
	invalidated int
}

func (c *countingUseCase) GetSalesPage(context.Context, *dto.SalesQuery) (*dto.SalesPage, error) {
	return nil, nil
}

func (c *countingUseCase) GetSalesSummary(context.Context, *dto.SalesQuery) (*dto.SalesSummary, error) {
	return nil, nil
}

func (c *countingUseCase) GetFilterOptions(context.Context) (*dto.FilterOptions, error) {
	return nil, nil
}

func (c *countingUseCase) InvalidateFilterOptions(context.Context) {
	c.mu.Lock()
	c.invalidated++
	c.mu.Unlock()
}

func (c *countingUseCase) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

// queueReader replays queued messages, then blocks until cancelled.
type queueReader struct {
	ch chan kafka.Message
}

func (q *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-q.ch:
		if m.Value == nil {
			return kafka.Message{}, errors.New("broker unavailable")
		}
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func encode(t *testing.T, eventType string) []byte {
	t.Helper()
	raw, err := json.Marshal(model.SalesLoadedEvent{
		EventID:   "evt-1",
		EventType: eventType,
		Payload:   model.SalesLoadedResult{Source: "sales.csv", Read: 10, Inserted: 8},
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	return raw
}

func TestProcessMessage(t *testing.T) {
	uc := &countingUseCase{}
	l := NewSalesListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), encode(t, model.EventSalesLoaded))
	assert.Equal(t, 1, uc.count())

	l.processMessage(context.Background(), encode(t, "OrderCreated"))
	l.processMessage(context.Background(), []byte("{broken"))
	assert.Equal(t, 1, uc.count())
}

func TestNewSalesListener_NilLogger(t *testing.T) {
	uc := &countingUseCase{}
	l := NewSalesListener(nil, uc, nil)

	assert.NotPanics(t, func() {
		l.processMessage(context.Background(), []byte("{broken"))
		l.processMessage(context.Background(), encode(t, model.EventSalesLoaded))
	})
	assert.Equal(t, 1, uc.count())
}

func TestStart_ConsumesUntilCancelled(t *testing.T) {
	uc := &countingUseCase{}
	reader := &queueReader{ch: make(chan kafka.Message, 3)}
	reader.ch <- kafka.Message{Value: encode(t, model.EventSalesLoaded)}
	reader.ch <- kafka.Message{} // read error, listener backs off and continues
	reader.ch <- kafka.Message{Value: encode(t, model.EventSalesLoaded)}

	l := NewSalesListener(reader, uc, logger.NewNop())
	l.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return uc.count() == 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}
