package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/taskman/taskman/internal/config"
	"github.com/taskman/taskman/pkg/logger"
)

const TaskTypeNotification = "notification:deliver"

// NotificationJob is a notification delivery to be written to a
// recipient's feed.
type NotificationJob struct {
	RecipientID      uint   `json:"recipient_id"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	RelatedProjectID *uint  `json:"related_project_id,omitempty"`
	RelatedTaskID    *uint  `json:"related_task_id,omitempty"`
	RelatedUserID    *uint  `json:"related_user_id,omitempty"`
	Link             string `json:"link,omitempty"`
}

// NotificationQueue defines the interface for notification delivery.
type NotificationQueue interface {
	// Enqueue submits a delivery job
	Enqueue(job *NotificationJob) error
	// IsAsync returns true if jobs are processed asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// Global queue instance
var (
	globalNotificationQueue NotificationQueue
	notificationQueueOnce   sync.Once
)

// InitNotificationQueue initializes the global queue based on config.
func InitNotificationQueue(cfg *config.Config) NotificationQueue {
	notificationQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Infof("[NotificationQueue] Redis unavailable, falling back to sync mode: %v", err)
				globalNotificationQueue = NewSyncQueue()
			} else {
				logger.Infof("[NotificationQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
				globalNotificationQueue = queue
			}
		} else {
			logger.Infof("[NotificationQueue] Sync queue initialized (Redis disabled)")
			globalNotificationQueue = NewSyncQueue()
		}
	})
	return globalNotificationQueue
}

// GetNotificationQueue returns the global queue instance.
func GetNotificationQueue() NotificationQueue {
	return globalNotificationQueue
}

// AsyncQueue implements NotificationQueue using asynq (Redis-based).
type AsyncQueue struct {
	client *asynq.Client
}

// NewAsyncQueue creates a new Redis-based async queue.
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	_, err := inspector.Queues()
	if err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

// Enqueue submits a delivery job to the async queue.
func (q *AsyncQueue) Enqueue(job *NotificationJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeNotification, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("[AsyncQueue] Notification enqueued: id=%s, type=%s", info.ID, job.Type)
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements NotificationQueue with in-process processing (no
// Redis). Jobs run inline on the caller's goroutine; the caller isolates
// failures.
type SyncQueue struct {
	processor func(context.Context, *NotificationJob) error
}

// NewSyncQueue creates a new synchronous queue.
func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function that writes the delivery.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *NotificationJob) error) {
	q.processor = processor
}

// Enqueue processes the job immediately.
func (q *SyncQueue) Enqueue(job *NotificationJob) error {
	if q.processor == nil {
		logger.Warnf("[SyncQueue] no processor set, notification dropped")
		return nil
	}
	return q.processor(context.Background(), job)
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

func (q *SyncQueue) Close() error {
	return nil
}
