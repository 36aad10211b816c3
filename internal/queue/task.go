package queue

type TaskType string

const (
	TaskTypeFeedbackRun TaskType = "feedback_run"
)

// Task is a unit of work carried on the stream. Only feedback runs exist today;
// TaskType is kept on the wire so new kinds can share the stream.
type Task struct {
	TaskType TaskType
	RunID    int64
	UserID   int64
	UserName string
	TraceID  *string
	Attempt  int
}
