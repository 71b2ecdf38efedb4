package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"schedly/config"
	"schedly/services/scheduling"
)

const TypeConflictRefresh = "conflicts:refresh"

// ConflictRefreshPayload identifies the session and the revision the refresh
// was scheduled under.
type ConflictRefreshPayload struct {
	SessionID string `json:"sessionId"`
	Revision  int64  `json:"revision"`
}

// Enqueuer schedules conflict refreshes onto the task queue.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer creates the asynq-backed refresh enqueuer.
func NewEnqueuer() *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(redisOpts()),
	}
}

// EnqueueConflictRefresh queues a best-effort evaluator run for a session.
// Tasks are not retried: the refresh is revision-guarded and a later
// mutation will enqueue a fresh one anyway.
func (e *Enqueuer) EnqueueConflictRefresh(sessionID string, revision int64) error {
	payload, err := json.Marshal(ConflictRefreshPayload{SessionID: sessionID, Revision: revision})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeConflictRefresh, payload)
	_, err = e.client.Enqueue(task, asynq.MaxRetry(0), asynq.Timeout(time.Minute))
	return err
}

// InitConflictWorker runs the async worker in background.
func InitConflictWorker(svc scheduling.SessionService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeConflictRefresh, handleConflictRefresh(svc))

	go func() {
		log.Println("[ConflictWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ConflictWorker] failed to start worker: %v", err)
		}
	}()
}

func handleConflictRefresh(svc scheduling.SessionService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ConflictRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ConflictWorker] invalid payload: %v", err)
			return err
		}
		if err := svc.RefreshConflicts(ctx, p.SessionID, p.Revision); err != nil {
			log.Printf("[ConflictWorker] refresh failed for session %s: %v", p.SessionID, err)
			return err
		}
		return nil
	}
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}
