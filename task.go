package surge

import (
	"context"
	"fmt"
	"time"
)

const tasksEndpoint = "tasks"

// Task is a typed wrapper over an API task record. A task always belongs
// to a project; both identifiers are required at construction.
type Task struct {
	ID             string
	ProjectID      string
	CreatedAt      time.Time
	Responses      []TaskResponse
	Fields         Params
	IsGoldStandard bool
	IsComplete     bool
	// Extra preserves server fields this struct has no named slot for.
	Extra Params
}

var taskNamedFields = map[string]bool{
	"id": true, "project_id": true, "created_at": true, "responses": true,
	"fields": true, "is_gold_standard": true, "is_complete": true,
}

// parseTask constructs a Task from a raw server record.
func parseTask(rec Params) (*Task, error) {
	id := recordString(rec, "id")
	if id == "" {
		return nil, NewMissingIDError("id")
	}
	projectID := recordString(rec, "project_id")
	if projectID == "" {
		return nil, NewMissingIDError("project_id")
	}
	task := &Task{
		ID:             id,
		ProjectID:      projectID,
		IsGoldStandard: recordBool(rec, "is_gold_standard", false),
		IsComplete:     recordBool(rec, "is_complete", false),
		Extra:          Params{},
	}
	if created, ok := parseTimestamp(rec["created_at"]); ok {
		task.CreatedAt = created
	}
	if fields, ok := asRecord(rec["fields"]); ok {
		task.Fields = fields
	}
	for _, respRec := range recordSlice(rec["responses"]) {
		response, err := parseTaskResponse(respRec)
		if err != nil {
			return nil, err
		}
		task.Responses = append(task.Responses, response)
	}
	for key, value := range rec {
		if !taskNamedFields[key] {
			task.Extra[key] = value
		}
	}
	return task, nil
}

func parseTaskList(response any) ([]*Task, error) {
	records := recordSlice(response)
	if records == nil {
		return nil, NewRequestError("Expected a list of task records in the response.", nil)
	}
	tasks := make([]*Task, 0, len(records))
	for _, rec := range records {
		task, err := parseTask(rec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (t *Task) attrs() []attrPair {
	pairs := []attrPair{
		{"id", t.ID},
		{"project_id", t.ProjectID},
	}
	if !t.CreatedAt.IsZero() {
		pairs = append(pairs, attrPair{"created_at", t.CreatedAt})
	}
	if t.IsGoldStandard {
		pairs = append(pairs, attrPair{"is_gold_standard", t.IsGoldStandard})
	}
	if t.IsComplete {
		pairs = append(pairs, attrPair{"is_complete", t.IsComplete})
	}
	for _, key := range sortedKeys(t.Extra) {
		pairs = append(pairs, attrPair{key, t.Extra[key]})
	}
	return pairs
}

// AttrsRepr renders the task's attributes as key="value" tokens in stable
// order, omitting the given names.
func (t *Task) AttrsRepr(forbid ...string) string {
	return attrsRepr(t.attrs(), forbid)
}

func (t *Task) String() string {
	return fmt.Sprintf("<surge.Task#%s %s>", t.ID, t.AttrsRepr("id"))
}

// ToParams exports the task as a plain mapping.
func (t *Task) ToParams() Params {
	params := Params{
		"id":         t.ID,
		"project_id": t.ProjectID,
	}
	if !t.CreatedAt.IsZero() {
		params["created_at"] = isoTimestamp(t.CreatedAt)
	}
	if t.Responses != nil {
		responses := make([]Params, len(t.Responses))
		for i, response := range t.Responses {
			responses[i] = response.ToParams()
		}
		params["responses"] = responses
	}
	if t.Fields != nil {
		params["fields"] = copyParams(t.Fields)
	}
	params["is_gold_standard"] = t.IsGoldStandard
	params["is_complete"] = t.IsComplete
	for key, value := range t.Extra {
		params[key] = value
	}
	return params
}

// ToJSON exports the task as a JSON string.
func (t *Task) ToJSON() (string, error) {
	return marshalParams(t.ToParams())
}

// CreateTask creates a single task populated from the given field mapping.
func (c *Client) CreateTask(ctx context.Context, projectID string, fields Params, opts ...CallOption) (*Task, error) {
	if projectID == "" {
		return nil, NewMissingIDError("project_id")
	}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/%s", projectsEndpoint, projectID, tasksEndpoint), Params{"fields": fields}, opts)
	if err != nil {
		return nil, err
	}
	return taskFromResponse(response)
}

// CreateTasks bulk-creates tasks from a list of field mappings. The input
// is validated client-side before any network call: it must be non-empty
// and every element must be a mapping. Exactly one POST is issued on
// success.
func (c *Client) CreateTasks(ctx context.Context, projectID string, tasksData []Params, launch bool, opts ...CallOption) ([]*Task, error) {
	if projectID == "" {
		return nil, NewMissingIDError("project_id")
	}
	if len(tasksData) == 0 {
		return nil, NewTaskDataError("tasks_data must be a non-empty list of field mappings.")
	}
	for i, data := range tasksData {
		if data == nil {
			return nil, NewTaskDataError(fmt.Sprintf("tasks_data element at index %d is not a field mapping.", i))
		}
	}
	params := Params{
		"tasks_data": tasksData,
		"launch":     launch,
	}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/%s/create_tasks", projectsEndpoint, projectID, tasksEndpoint), params, opts)
	if err != nil {
		return nil, err
	}
	return parseTaskList(response)
}

// ListTasks lists a project's tasks, one page at a time.
func (c *Client) ListTasks(ctx context.Context, projectID string, page int, opts ...CallOption) ([]*Task, error) {
	if projectID == "" {
		return nil, NewMissingIDError("project_id")
	}
	response, err := c.get(ctx, fmt.Sprintf("%s/%s/%s", projectsEndpoint, projectID, tasksEndpoint), Params{"page": page}, opts)
	if err != nil {
		return nil, err
	}
	return parseTaskList(response)
}

// RetrieveTask fetches a single task by id.
func (c *Client) RetrieveTask(ctx context.Context, taskID string, opts ...CallOption) (*Task, error) {
	if taskID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.get(ctx, fmt.Sprintf("%s/%s", tasksEndpoint, taskID), nil, opts)
	if err != nil {
		return nil, err
	}
	return taskFromResponse(response)
}

// SetTaskGoldStandard marks a task as a gold standard with known correct
// answers, keyed by question label.
func (c *Client) SetTaskGoldStandard(ctx context.Context, taskID string, answers Params, opts ...CallOption) (*Task, error) {
	if taskID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/gold-standards", tasksEndpoint, taskID), Params{"answers": answers}, opts)
	if err != nil {
		return nil, err
	}
	return taskFromResponse(response)
}

// CreateTaskResponse records a response against a task on behalf of a
// worker.
func (c *Client) CreateTaskResponse(ctx context.Context, taskID string, data Params, opts ...CallOption) (*TaskResponse, error) {
	if taskID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/create-response", tasksEndpoint, taskID), Params{"data": data}, opts)
	if err != nil {
		return nil, err
	}
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected a task response record in the response.", nil)
	}
	parsed, err := parseTaskResponse(rec)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func taskFromResponse(response any) (*Task, error) {
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected a task record in the response.", nil)
	}
	return parseTask(rec)
}
