package surge

import (
	"context"
	"fmt"
	"time"
)

const teamsEndpoint = "teams"

// Team is a typed wrapper over an API team record. Mutations replace the
// whole object from the server's response.
type Team struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	// Extra preserves server fields this struct has no named slot for.
	Extra Params
}

var teamNamedFields = map[string]bool{
	"id": true, "name": true, "description": true, "created_at": true,
}

// parseTeam constructs a Team from a raw server record. A missing
// description defaults to the empty string.
func parseTeam(rec Params) (*Team, error) {
	id := recordString(rec, "id")
	if id == "" {
		return nil, NewMissingIDError("id")
	}
	team := &Team{
		ID:          id,
		Name:        recordString(rec, "name"),
		Description: recordString(rec, "description"),
		Extra:       Params{},
	}
	if created, ok := parseTimestamp(rec["created_at"]); ok {
		team.CreatedAt = created
	}
	for key, value := range rec {
		if !teamNamedFields[key] {
			team.Extra[key] = value
		}
	}
	return team, nil
}

func parseTeamList(response any) ([]*Team, error) {
	records := recordSlice(response)
	if records == nil {
		return nil, NewRequestError("Expected a list of team records in the response.", nil)
	}
	teams := make([]*Team, 0, len(records))
	for _, rec := range records {
		team, err := parseTeam(rec)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (t *Team) attrs() []attrPair {
	pairs := []attrPair{
		{"id", t.ID},
		{"name", t.Name},
	}
	if t.Description != "" {
		pairs = append(pairs, attrPair{"description", t.Description})
	}
	if !t.CreatedAt.IsZero() {
		pairs = append(pairs, attrPair{"created_at", t.CreatedAt})
	}
	for _, key := range sortedKeys(t.Extra) {
		pairs = append(pairs, attrPair{key, t.Extra[key]})
	}
	return pairs
}

// AttrsRepr renders the team's attributes as key="value" tokens in stable
// order, omitting the given names.
func (t *Team) AttrsRepr(forbid ...string) string {
	return attrsRepr(t.attrs(), forbid)
}

func (t *Team) String() string {
	return fmt.Sprintf("<surge.Team#%s %s>", t.ID, t.AttrsRepr("id"))
}

// ToParams exports the team as a plain mapping.
func (t *Team) ToParams() Params {
	params := Params{
		"id":          t.ID,
		"name":        t.Name,
		"description": t.Description,
	}
	if !t.CreatedAt.IsZero() {
		params["created_at"] = isoTimestamp(t.CreatedAt)
	}
	for key, value := range t.Extra {
		params[key] = value
	}
	return params
}

// ToJSON exports the team as a JSON string.
func (t *Team) ToJSON() (string, error) {
	return marshalParams(t.ToParams())
}

// CreateTeam creates a new team with the given member worker ids. The
// description is included only when non-empty.
func (c *Client) CreateTeam(ctx context.Context, name string, members []string, description string, opts ...CallOption) (*Team, error) {
	if name == "" {
		return nil, NewMissingAttributeError("A team name is required.")
	}
	params := Params{"name": name, "members": members}
	if description != "" {
		params["description"] = description
	}
	response, err := c.post(ctx, teamsEndpoint, params, opts)
	if err != nil {
		return nil, err
	}
	return teamFromResponse(response)
}

// ListTeams lists all of the caller's teams.
func (c *Client) ListTeams(ctx context.Context, opts ...CallOption) ([]*Team, error) {
	response, err := c.get(ctx, teamsEndpoint+"/list", nil, opts)
	if err != nil {
		return nil, err
	}
	return parseTeamList(response)
}

// RetrieveTeam fetches a single team by id.
func (c *Client) RetrieveTeam(ctx context.Context, teamID string, opts ...CallOption) (*Team, error) {
	if teamID == "" {
		return nil, NewMissingIDError("id")
	}
	response, err := c.get(ctx, fmt.Sprintf("%s/%s", teamsEndpoint, teamID), nil, opts)
	if err != nil {
		return nil, err
	}
	return teamFromResponse(response)
}

// TeamUpdateParams carries the sparse patch for an existing team. A nil
// Description is not sent; a pointer to an empty string clears it.
type TeamUpdateParams struct {
	Name        string
	Description *string
}

// UpdateTeam updates a team and returns the server's replacement.
func (c *Client) UpdateTeam(ctx context.Context, teamID string, update TeamUpdateParams, opts ...CallOption) (*Team, error) {
	if teamID == "" {
		return nil, NewMissingIDError("id")
	}
	params := Params{}
	if update.Name != "" {
		params["name"] = update.Name
	}
	if update.Description != nil {
		params["description"] = *update.Description
	}
	response, err := c.put(ctx, fmt.Sprintf("%s/%s", teamsEndpoint, teamID), params, opts)
	if err != nil {
		return nil, err
	}
	return teamFromResponse(response)
}

// DeleteTeam deletes the team with the given id. This is irreversible.
func (c *Client) DeleteTeam(ctx context.Context, teamID string, opts ...CallOption) (bool, error) {
	if teamID == "" {
		return false, NewMissingIDError("id")
	}
	response, err := c.del(ctx, fmt.Sprintf("%s/%s", teamsEndpoint, teamID), opts)
	if err != nil {
		return false, err
	}
	rec, ok := asRecord(response)
	if !ok {
		return false, NewRequestError("Expected a success flag in the response.", nil)
	}
	return recordBool(rec, "success", false), nil
}

// AddSurgers adds workers to the team and returns the server's
// replacement.
func (c *Client) AddSurgers(ctx context.Context, teamID string, surgerIDs []string, opts ...CallOption) (*Team, error) {
	return c.teamMemberAction(ctx, teamID, "add_surgers", surgerIDs, opts)
}

// RemoveSurgers removes workers from the team and returns the server's
// replacement.
func (c *Client) RemoveSurgers(ctx context.Context, teamID string, surgerIDs []string, opts ...CallOption) (*Team, error) {
	return c.teamMemberAction(ctx, teamID, "remove_surgers", surgerIDs, opts)
}

func (c *Client) teamMemberAction(ctx context.Context, teamID, action string, surgerIDs []string, opts []CallOption) (*Team, error) {
	if teamID == "" {
		return nil, NewMissingIDError("id")
	}
	params := Params{"surger_ids": surgerIDs}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/%s", teamsEndpoint, teamID, action), params, opts)
	if err != nil {
		return nil, err
	}
	return teamFromResponse(response)
}

func teamFromResponse(response any) (*Team, error) {
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected a team record in the response.", nil)
	}
	return parseTeam(rec)
}
