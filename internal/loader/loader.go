package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	DefaultBatchSize = 2000

	// Postgres accepts at most 65535 bind parameters per statement.
	maxParams    = 65535
	maxBatchSize = maxParams / 26
)

// Publisher announces a committed load. broker.KafkaProducer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type Loader struct {
	db        *sqlx.DB
	publisher Publisher
	logger    logger.ZapLogger
	batchSize int
}

// New returns a loader; publisher may be nil.
func New(db *sqlx.DB, publisher Publisher, log logger.ZapLogger, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{db: db, publisher: publisher, logger: log, batchSize: batchSize}
}

// Load inserts every record of src in one transaction. Rows whose
// transaction id already exists are skipped. With truncate set the table is
// emptied first, inside the same transaction.
func (l *Loader) Load(ctx context.Context, src io.Reader, source string, truncate bool) (*model.SalesLoadedResult, error) {
	rd, err := NewReader(src)
	if err != nil {
		return nil, err
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res := &model.SalesLoadedResult{Source: source, Truncated: truncate}

	if truncate {
		if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE sales CASCADE"); err != nil {
			return nil, fmt.Errorf("truncate sales: %w", err)
		}
		l.logger.Info("Cleared existing data")
	}

	batch := make([]*model.SalesLoad, 0, l.batchSize)
	batchNumber := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := insertBatch(ctx, tx, batch)
		if err != nil {
			return fmt.Errorf("insert batch %d: %w", batchNumber+1, err)
		}
		batchNumber++
		res.Inserted += n
		l.logger.Info("Inserted batch", zap.Int("batch", batchNumber), zap.Int("records", len(batch)))
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		res.Read++
		batch = append(batch, rec)
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit load: %w", err)
	}
	l.logger.Info("Load completed",
		zap.String("source", source),
		zap.Int64("read", res.Read),
		zap.Int64("inserted", res.Inserted),
	)

	l.announce(ctx, res)
	return res, nil
}

// announce is best effort: the data is already committed.
func (l *Loader) announce(ctx context.Context, res *model.SalesLoadedResult) {
	if l.publisher == nil {
		return
	}
	event := model.SalesLoadedEvent{
		EventID:   uuid.New().String(),
		EventType: model.EventSalesLoaded,
		Payload:   *res,
		Timestamp: time.Now().UTC(),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		l.logger.Error("Failed to encode event", zap.Error(err))
		return
	}
	if err := l.publisher.Publish(ctx, event.EventID, raw); err != nil {
		l.logger.Error("Failed to publish SalesLoaded event", zap.Error(err))
	}
}

func insertBatch(ctx context.Context, tx *sqlx.Tx, batch []*model.SalesLoad) (int64, error) {
	q, args := buildInsert(batch)
	result, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func buildInsert(batch []*model.SalesLoad) (string, []interface{}) {
	width := len(model.SalesColumns)
	args := make([]interface{}, 0, len(batch)*width)

	var sb strings.Builder
	sb.WriteString("INSERT INTO sales (")
	sb.WriteString(strings.Join(model.SalesColumns, ", "))
	sb.WriteString(") VALUES ")

	for i, rec := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := 0; j < width; j++ {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(i*width + j + 1))
		}
		sb.WriteByte(')')
		args = append(args, rec.Values()...)
	}
	sb.WriteString(" ON CONFLICT (transaction_id) DO NOTHING")
	return sb.String(), args
}
