package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recordsStream = "boxscores.ingested"
	runsStream    = "runs.completed"

	// recordBatchSize bounds how many records ride in one stream entry.
	recordBatchSize = 100
)

// RedisPublisher publishes pipeline events to Redis streams for downstream
// consumers.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishRunSummary publishes a completed run's summary to the runs stream.
func (rp *RedisPublisher) PublishRunSummary(ctx context.Context, summary interface{}) error {
	return rp.publish(ctx, runsStream, summary)
}

// PublishRecords publishes ingested box-score rows in bounded batches.
func (rp *RedisPublisher) PublishRecords(ctx context.Context, records interface{}) error {
	return rp.publish(ctx, recordsStream, records)
}

// PublishRecordBatches splits rows into batches and publishes each one.
func PublishRecordBatches[T any](ctx context.Context, rp *RedisPublisher, rows []T) error {
	for start := 0; start < len(rows); start += recordBatchSize {
		end := start + recordBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := rp.PublishRecords(ctx, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
