package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAdvisorSweep = "leads.advisor.sweep"

// AdvisorSweepPayload configures one sweep run. Zero BatchSize means the
// worker default.
type AdvisorSweepPayload struct {
	BatchSize int `json:"batchSize,omitempty"`
}

func NewAdvisorSweepTask(payload AdvisorSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAdvisorSweep, data), nil
}

func ParseAdvisorSweepPayload(task *asynq.Task) (AdvisorSweepPayload, error) {
	var payload AdvisorSweepPayload
	if len(task.Payload()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AdvisorSweepPayload{}, err
	}
	return payload, nil
}
