package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/queue"
)

// TestQueue wraps a disposable Redis container with the application task
// queue, a direct Redis client and an asynq Inspector for asserting on
// queued tasks.
type TestQueue struct {
	Queue     *queue.TaskQueue
	container *redis.RedisContainer
	Redis     *rdb.Client
	Inspector *asynq.Inspector
}

func NewTestQueue(t *testing.T) *TestQueue {
	ctx := context.Background()

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithReuseByName("ops-backend-test-redis"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("Ready to accept connections").
					WithStartupTimeout(30*time.Second),
				wait.ForListeningPort("6379/tcp").
					WithStartupTimeout(30*time.Second),
			),
		),
	)
	require.NoError(t, err, "Failed to start Redis container")

	endpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err, "Failed to get redis connection string")

	taskQueue, err := queue.NewQueue(&config.RedisConfig{Addr: endpoint})
	require.NoError(t, err, "Failed to create task queue")

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: endpoint})

	redisClient := rdb.NewClient(&rdb.Options{Addr: endpoint})

	return &TestQueue{
		Queue:     taskQueue,
		container: redisContainer,
		Redis:     redisClient,
		Inspector: inspector,
	}
}

func (tq *TestQueue) Enqueue(taskType string, data interface{}) (*asynq.TaskInfo, error) {
	return tq.Queue.Enqueue(taskType, data)
}

// Cleanup flushes Redis so tests do not see each other's tasks.
func (tq *TestQueue) Cleanup(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tq.Redis.FlushDB(ctx).Err(); err != nil {
		t.Logf("WARNING: failed to flush Redis between tests: %v", err)
	}
}

func (tq *TestQueue) Close() {
	if tq.Queue != nil {
		tq.Queue.Close()
	}
	if tq.Inspector != nil {
		tq.Inspector.Close()
	}
	if tq.Redis != nil {
		tq.Redis.Close()
	}
}
