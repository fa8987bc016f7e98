package queue

import "github.com/hibiken/asynq"

// Enqueuer is the slice of *asynq.Client the services need.
// An interface so task dispatch can be faked in unit tests.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewClient creates the asynq client used by the API process
func NewClient(opt asynq.RedisClientOpt) *asynq.Client {
	return asynq.NewClient(opt)
}
