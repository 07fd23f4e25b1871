package surge

import (
	"fmt"
	"time"
)

// TaskResponse is a worker's recorded answer set for a task. It is a
// read-only projection of a server-recorded event and is never mutated
// after construction.
type TaskResponse struct {
	ID string
	// Data maps question label to answer.
	Data            Params
	TimeSpentInSecs int
	CompletedAt     time.Time
	WorkerID        string
}

// parseTaskResponse constructs a TaskResponse from a raw server record.
func parseTaskResponse(rec Params) (TaskResponse, error) {
	id := recordString(rec, "id")
	if id == "" {
		return TaskResponse{}, NewMissingIDError("id")
	}
	response := TaskResponse{
		ID:              id,
		TimeSpentInSecs: recordInt(rec, "time_spent_in_secs"),
		WorkerID:        recordString(rec, "worker_id"),
	}
	if data, ok := asRecord(rec["data"]); ok {
		response.Data = data
	}
	if completed, ok := parseTimestamp(rec["completed_at"]); ok {
		response.CompletedAt = completed
	}
	return response, nil
}

func (r TaskResponse) attrs() []attrPair {
	pairs := []attrPair{
		{"id", r.ID},
	}
	if r.WorkerID != "" {
		pairs = append(pairs, attrPair{"worker_id", r.WorkerID})
	}
	if r.TimeSpentInSecs != 0 {
		pairs = append(pairs, attrPair{"time_spent_in_secs", r.TimeSpentInSecs})
	}
	if !r.CompletedAt.IsZero() {
		pairs = append(pairs, attrPair{"completed_at", r.CompletedAt})
	}
	return pairs
}

// AttrsRepr renders the response's attributes as key="value" tokens in
// stable order, omitting the given names.
func (r TaskResponse) AttrsRepr(forbid ...string) string {
	return attrsRepr(r.attrs(), forbid)
}

func (r TaskResponse) String() string {
	return fmt.Sprintf("<surge.TaskResponse#%s %s>", r.ID, r.AttrsRepr("id"))
}

// ToParams exports the response as a plain mapping.
func (r TaskResponse) ToParams() Params {
	params := Params{
		"id": r.ID,
	}
	if r.Data != nil {
		params["data"] = copyParams(r.Data)
	}
	if r.TimeSpentInSecs != 0 {
		params["time_spent_in_secs"] = r.TimeSpentInSecs
	}
	if !r.CompletedAt.IsZero() {
		params["completed_at"] = isoTimestamp(r.CompletedAt)
	}
	if r.WorkerID != "" {
		params["worker_id"] = r.WorkerID
	}
	return params
}

// ToJSON exports the response as a JSON string.
func (r TaskResponse) ToJSON() (string, error) {
	return marshalParams(r.ToParams())
}
