package surge

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// templateFieldPattern matches {{field}} placeholders in a fields
// template.
var templateFieldPattern = regexp.MustCompile(`{{(.*?)}}`)

// Blueprint is a project used as a template: new batches are created from
// it and their task data must populate its template fields.
type Blueprint struct {
	Project
}

// blueprintFromResponse wraps a project response as a Blueprint.
func blueprintFromResponse(response any) (*Blueprint, error) {
	project, err := projectFromResponse(response)
	if err != nil {
		return nil, err
	}
	return &Blueprint{Project: *project}, nil
}

// RequiredDataFields returns the field names referenced by the fields
// template, e.g. ["context", "statement"] for a template mentioning
// {{context}} and {{statement}}.
func (b *Blueprint) RequiredDataFields() []string {
	if b.FieldsTemplate == "" {
		return nil
	}
	matches := templateFieldPattern.FindAllStringSubmatch(b.FieldsTemplate, -1)
	fields := make([]string, 0, len(matches))
	for _, match := range matches {
		fields = append(fields, strings.TrimSpace(match[1]))
	}
	return fields
}

// ListBlueprints lists the caller's blueprint projects, one page at a
// time.
func (c *Client) ListBlueprints(ctx context.Context, page int, opts ...CallOption) ([]*Blueprint, error) {
	response, err := c.get(ctx, projectsEndpoint+"/blueprints", Params{"page": page}, opts)
	if err != nil {
		return nil, err
	}
	projects, err := parseProjectList(response)
	if err != nil {
		return nil, err
	}
	blueprints := make([]*Blueprint, len(projects))
	for i, project := range projects {
		blueprints[i] = &Blueprint{Project: *project}
	}
	return blueprints, nil
}

// CreateBlueprintBatch creates a new project from the blueprint. Tasks
// can then be created on the returned batch and the batch launched.
func (c *Client) CreateBlueprintBatch(ctx context.Context, blueprint *Blueprint, name string, opts ...CallOption) (*Blueprint, error) {
	if blueprint == nil || blueprint.ID == "" {
		return nil, NewMissingIDError("id")
	}
	if name == "" {
		return nil, NewMissingAttributeError("A name is required when creating a project from a blueprint.")
	}
	project, err := c.CreateProject(ctx, ProjectCreateParams{Name: name, TemplateID: blueprint.ID}, opts...)
	if err != nil {
		return nil, err
	}
	return &Blueprint{Project: *project}, nil
}

// CreateBlueprintTasks creates tasks for a blueprint batch after checking
// that every task data mapping supplies all fields the template
// references. Task data is assumed flat, without nested keys.
func (c *Client) CreateBlueprintTasks(ctx context.Context, blueprint *Blueprint, tasksData []Params, launch bool, opts ...CallOption) ([]*Task, error) {
	if blueprint == nil || blueprint.ID == "" {
		return nil, NewMissingIDError("id")
	}
	if err := validateFieldsData(blueprint.RequiredDataFields(), tasksData); err != nil {
		return nil, err
	}
	return c.CreateTasks(ctx, blueprint.ID, tasksData, launch, opts...)
}

// validateFieldsData checks that every task data mapping contains every
// required field name.
func validateFieldsData(requiredFields []string, tasksData []Params) error {
	missing := map[string]bool{}
	for _, data := range tasksData {
		for _, field := range requiredFields {
			if _, ok := data[field]; !ok {
				missing[field] = true
			}
		}
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for field := range missing {
			names = append(names, field)
		}
		sort.Strings(names)
		return NewMissingAttributeError(fmt.Sprintf("Task data is missing required keys: %s.", strings.Join(names, ", ")))
	}
	return nil
}
