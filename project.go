package surge

import (
	"context"
	"fmt"
	"time"
)

// Project statuses as reported by the API. The vocabulary is owned by the
// remote service.
const (
	ProjectStatusCreated   = "created"
	ProjectStatusLaunched  = "launched"
	ProjectStatusPaused    = "paused"
	ProjectStatusCancelled = "cancelled"
)

const projectsEndpoint = "projects"

// Project is a typed wrapper over an API project record. It is a value:
// mutations go through the API and replace the whole object with the
// server's response.
type Project struct {
	ID                string
	Name              string
	Status            string
	CreatedAt         time.Time
	Questions         []Question
	Instructions      string
	FieldsTemplate    string
	NumWorkersPerTask int
	PaymentPerResponse float64
	CallbackURL       string
	// Extra preserves server fields this struct has no named slot for.
	Extra Params
}

// projectNamedFields are the record keys mapped onto named Project fields.
var projectNamedFields = map[string]bool{
	"id": true, "name": true, "status": true, "created_at": true,
	"questions": true, "instructions": true, "fields_template": true,
	"num_workers_per_task": true, "payment_per_response": true,
	"callback_url": true,
}

// parseProject constructs a Project from a raw server record.
func parseProject(rec Params) (*Project, error) {
	id := recordString(rec, "id")
	if id == "" {
		return nil, NewMissingIDError("id")
	}
	project := &Project{
		ID:                id,
		Name:              recordString(rec, "name"),
		Status:            recordString(rec, "status"),
		Questions:         parseQuestions(rec["questions"]),
		Instructions:      recordString(rec, "instructions"),
		FieldsTemplate:    recordString(rec, "fields_template"),
		NumWorkersPerTask: recordInt(rec, "num_workers_per_task"),
		CallbackURL:       recordString(rec, "callback_url"),
		Extra:             Params{},
	}
	if payment, ok := rec["payment_per_response"].(float64); ok {
		project.PaymentPerResponse = payment
	}
	if created, ok := parseTimestamp(rec["created_at"]); ok {
		project.CreatedAt = created
	}
	for key, value := range rec {
		if !projectNamedFields[key] {
			project.Extra[key] = value
		}
	}
	return project, nil
}

func parseProjectList(response any) ([]*Project, error) {
	records := recordSlice(response)
	if records == nil {
		return nil, NewRequestError("Expected a list of project records in the response.", nil)
	}
	projects := make([]*Project, 0, len(records))
	for _, rec := range records {
		project, err := parseProject(rec)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (p *Project) attrs() []attrPair {
	pairs := []attrPair{
		{"id", p.ID},
		{"name", p.Name},
	}
	if p.Status != "" {
		pairs = append(pairs, attrPair{"status", p.Status})
	}
	if !p.CreatedAt.IsZero() {
		pairs = append(pairs, attrPair{"created_at", p.CreatedAt})
	}
	if p.Instructions != "" {
		pairs = append(pairs, attrPair{"instructions", p.Instructions})
	}
	if p.FieldsTemplate != "" {
		pairs = append(pairs, attrPair{"fields_template", p.FieldsTemplate})
	}
	if p.NumWorkersPerTask != 0 {
		pairs = append(pairs, attrPair{"num_workers_per_task", p.NumWorkersPerTask})
	}
	if p.PaymentPerResponse != 0 {
		pairs = append(pairs, attrPair{"payment_per_response", p.PaymentPerResponse})
	}
	if p.CallbackURL != "" {
		pairs = append(pairs, attrPair{"callback_url", p.CallbackURL})
	}
	for _, key := range sortedKeys(p.Extra) {
		pairs = append(pairs, attrPair{key, p.Extra[key]})
	}
	return pairs
}

// AttrsRepr renders the project's attributes as key="value" tokens in
// stable order, omitting the given names.
func (p *Project) AttrsRepr(forbid ...string) string {
	return attrsRepr(p.attrs(), forbid)
}

func (p *Project) String() string {
	return fmt.Sprintf("<surge.Project#%s %s>", p.ID, p.AttrsRepr("id"))
}

// ToParams exports the project as a plain mapping. Timestamps render as
// ISO-8601; the question list exports element-wise.
func (p *Project) ToParams() Params {
	params := Params{
		"id":   p.ID,
		"name": p.Name,
	}
	if p.Status != "" {
		params["status"] = p.Status
	}
	if !p.CreatedAt.IsZero() {
		params["created_at"] = isoTimestamp(p.CreatedAt)
	}
	if p.Questions != nil {
		params["questions"] = serializeQuestions(p.Questions)
	}
	if p.Instructions != "" {
		params["instructions"] = p.Instructions
	}
	if p.FieldsTemplate != "" {
		params["fields_template"] = p.FieldsTemplate
	}
	if p.NumWorkersPerTask != 0 {
		params["num_workers_per_task"] = p.NumWorkersPerTask
	}
	if p.PaymentPerResponse != 0 {
		params["payment_per_response"] = p.PaymentPerResponse
	}
	if p.CallbackURL != "" {
		params["callback_url"] = p.CallbackURL
	}
	for key, value := range p.Extra {
		params[key] = value
	}
	return params
}

// ToJSON exports the project as a JSON string.
func (p *Project) ToJSON() (string, error) {
	return marshalParams(p.ToParams())
}

// ProjectCreateParams describes a project creation request.
type ProjectCreateParams struct {
	// Name is required.
	Name               string
	PaymentPerResponse float64
	Instructions       string
	Questions          []Question
	CallbackURL        string
	FieldsTemplate     string
	NumWorkersPerTask  int
	Carousel           Carousel
	// TemplateID creates the project from an existing blueprint.
	TemplateID string
	// Extra is merged into the payload; named fields win on conflicts.
	Extra Params
}

// payload builds a fresh request mapping. A new map is returned on every
// call so payloads never share state.
func (p *ProjectCreateParams) payload() Params {
	params := copyParams(p.Extra)
	params["name"] = p.Name
	if p.PaymentPerResponse != 0 {
		params["payment_per_response"] = p.PaymentPerResponse
	}
	if p.Instructions != "" {
		params["instructions"] = p.Instructions
	}
	if p.Questions != nil {
		params["questions"] = serializeQuestions(p.Questions)
	}
	if p.CallbackURL != "" {
		params["callback_url"] = p.CallbackURL
	}
	if p.FieldsTemplate != "" {
		params["fields_template"] = p.FieldsTemplate
	}
	if p.NumWorkersPerTask != 0 {
		params["num_workers_per_task"] = p.NumWorkersPerTask
	}
	if p.Carousel != nil {
		params["carousel"] = p.Carousel.ToParams()
	}
	if p.TemplateID != "" {
		params["template_id"] = p.TemplateID
	}
	return params
}

// CreateProject creates a new project. The name and every supplied
// question are validated before any network call.
func (c *Client) CreateProject(ctx context.Context, create ProjectCreateParams, opts ...CallOption) (*Project, error) {
	if create.Name == "" {
		return nil, NewMissingAttributeError("A project name is required.")
	}
	if err := validateQuestions(create.Questions); err != nil {
		return nil, err
	}
	response, err := c.post(ctx, projectsEndpoint, create.payload(), opts)
	if err != nil {
		return nil, err
	}
	return projectFromResponse(response)
}

// ListProjects lists the caller's projects, one page at a time. Page size
// is owned by the server.
func (c *Client) ListProjects(ctx context.Context, page int, opts ...CallOption) ([]*Project, error) {
	response, err := c.get(ctx, projectsEndpoint, Params{"page": page}, opts)
	if err != nil {
		return nil, err
	}
	return parseProjectList(response)
}

// ListSharedProjects lists projects shared with the caller.
func (c *Client) ListSharedProjects(ctx context.Context, page int, opts ...CallOption) ([]*Project, error) {
	response, err := c.get(ctx, projectsEndpoint+"/shared", Params{"page": page}, opts)
	if err != nil {
		return nil, err
	}
	return parseProjectList(response)
}

// RetrieveProject fetches a single project by id.
func (c *Client) RetrieveProject(ctx context.Context, projectID string, opts ...CallOption) (*Project, error) {
	if projectID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.get(ctx, fmt.Sprintf("%s/%s", projectsEndpoint, projectID), nil, opts)
	if err != nil {
		return nil, err
	}
	return projectFromResponse(response)
}

// ProjectUpdateParams carries the sparse patch for an existing project.
// Nil pointer fields are not sent; a pointer to zero is sent, so zero
// values stay reachable through update.
type ProjectUpdateParams struct {
	Name               *string
	Instructions       *string
	PaymentPerResponse *float64
	NumWorkersPerTask  *int
	CallbackURL        *string
	FieldsTemplate     *string
}

func (p *ProjectUpdateParams) payload() Params {
	params := Params{}
	if p.Name != nil {
		params["name"] = *p.Name
	}
	if p.Instructions != nil {
		params["instructions"] = *p.Instructions
	}
	if p.PaymentPerResponse != nil {
		params["payment_per_response"] = *p.PaymentPerResponse
	}
	if p.NumWorkersPerTask != nil {
		params["num_workers_per_task"] = *p.NumWorkersPerTask
	}
	if p.CallbackURL != nil {
		params["callback_url"] = *p.CallbackURL
	}
	if p.FieldsTemplate != nil {
		params["fields_template"] = *p.FieldsTemplate
	}
	return params
}

// UpdateProject partially updates a project and returns the server's
// replacement.
func (c *Client) UpdateProject(ctx context.Context, projectID string, update ProjectUpdateParams, opts ...CallOption) (*Project, error) {
	if projectID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.put(ctx, fmt.Sprintf("%s/%s", projectsEndpoint, projectID), update.payload(), opts)
	if err != nil {
		return nil, err
	}
	return projectFromResponse(response)
}

// PauseProject pauses a launched project.
func (c *Client) PauseProject(ctx context.Context, projectID string, opts ...CallOption) (*Project, error) {
	return c.projectAction(ctx, projectID, "pause", opts)
}

// ResumeProject resumes a paused project.
func (c *Client) ResumeProject(ctx context.Context, projectID string, opts ...CallOption) (*Project, error) {
	return c.projectAction(ctx, projectID, "resume", opts)
}

// CancelProject cancels a project.
func (c *Client) CancelProject(ctx context.Context, projectID string, opts ...CallOption) (*Project, error) {
	return c.projectAction(ctx, projectID, "cancel", opts)
}

// LaunchProject launches a created project to workers.
func (c *Client) LaunchProject(ctx context.Context, projectID string, opts ...CallOption) (*Project, error) {
	return c.projectAction(ctx, projectID, "launch", opts)
}

// projectAction PUTs to a bodyless action sub-path and replaces the
// caller's view with the response.
func (c *Client) projectAction(ctx context.Context, projectID, action string, opts []CallOption) (*Project, error) {
	if projectID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.put(ctx, fmt.Sprintf("%s/%s/%s", projectsEndpoint, projectID, action), nil, opts)
	if err != nil {
		return nil, err
	}
	return projectFromResponse(response)
}

// DeleteProject deletes a project remotely. Deletion is a remote side
// effect signaled by the returned success flag.
func (c *Client) DeleteProject(ctx context.Context, projectID string, opts ...CallOption) (bool, error) {
	if projectID == "" {
		return false, NewMissingIDError("id")
	}
	response, err := c.put(ctx, fmt.Sprintf("%s/%s/delete", projectsEndpoint, projectID), nil, opts)
	if err != nil {
		return false, err
	}
	rec, ok := asRecord(response)
	if !ok {
		return false, NewRequestError("Expected a success flag in the response.", nil)
	}
	return recordBool(rec, "success", false), nil
}

// CopyProject creates a copy of an existing project.
func (c *Client) CopyProject(ctx context.Context, projectID string, opts ...CallOption) (*Project, error) {
	if projectID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/copies", projectsEndpoint, projectID), nil, opts)
	if err != nil {
		return nil, err
	}
	return projectFromResponse(response)
}

// ProjectWorkableBySurger reports whether the given worker can work on
// the project.
func (c *Client) ProjectWorkableBySurger(ctx context.Context, projectID, surgerID string, opts ...CallOption) (bool, error) {
	if projectID == "" {
		return false, NewMissingIDError("id")
	}
	response, err := c.get(ctx, fmt.Sprintf("%s/%s/workable_by_surger", projectsEndpoint, projectID), Params{"surger_id": surgerID}, opts)
	if err != nil {
		return false, err
	}
	rec, ok := asRecord(response)
	if !ok {
		return false, NewRequestError("Expected a workability flag in the response.", nil)
	}
	return recordBool(rec, "workable", false), nil
}

func projectFromResponse(response any) (*Project, error) {
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected a project record in the response.", nil)
	}
	return parseProject(rec)
}
