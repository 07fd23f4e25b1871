package surge

import (
	"context"
	"testing"
)

const teamRecord = `{
	"id": "team-1",
	"name": "Labelers",
	"created_at": "2021-01-22T19:49:03.185Z"
}`

func TestCreateTeam(t *testing.T) {
	stub, client := newAPIStub(t, ok(teamRecord))

	team, err := client.CreateTeam(context.Background(), "Labelers", []string{"w-1", "w-2"}, "")
	if err != nil {
		t.Fatalf("CreateTeam() error: %v", err)
	}

	call := stub.lastCall(t)
	if call.Method != "POST" || call.Path != "/teams" {
		t.Errorf("request = %s %s", call.Method, call.Path)
	}
	members, isSlice := call.Body["members"].([]any)
	if !isSlice || len(members) != 2 {
		t.Errorf("members = %v", call.Body["members"])
	}
	if _, present := call.Body["description"]; present {
		t.Error("empty description should not be sent")
	}

	if team.ID != "team-1" || team.Name != "Labelers" {
		t.Errorf("team = %+v", team)
	}
	// A missing description stays an empty string, never an error.
	if team.Description != "" {
		t.Errorf("Description = %q", team.Description)
	}
}

func TestCreateTeamSendsDescriptionWhenSet(t *testing.T) {
	stub, client := newAPIStub(t, ok(teamRecord))

	if _, err := client.CreateTeam(context.Background(), "Labelers", nil, "English speakers"); err != nil {
		t.Fatalf("CreateTeam() error: %v", err)
	}
	if got := stub.lastCall(t).Body["description"]; got != "English speakers" {
		t.Errorf("description = %v", got)
	}
}

func TestCreateTeamRequiresName(t *testing.T) {
	stub, client := newAPIStub(t)

	if _, err := client.CreateTeam(context.Background(), "", nil, ""); !IsMissingAttributeError(err) {
		t.Errorf("error = %v, want MissingAttributeError", err)
	}
	if stub.count() != 0 {
		t.Errorf("network calls = %d, want 0", stub.count())
	}
}

func TestListTeams(t *testing.T) {
	stub, client := newAPIStub(t, ok(`[`+teamRecord+`]`))

	teams, err := client.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams() error: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "team-1" {
		t.Errorf("teams = %v", teams)
	}
	if got := stub.lastCall(t).Path; got != "/teams/list" {
		t.Errorf("path = %q", got)
	}
}

func TestRetrieveTeam(t *testing.T) {
	stub, client := newAPIStub(t, ok(teamRecord))

	if _, err := client.RetrieveTeam(context.Background(), "team-1"); err != nil {
		t.Fatalf("RetrieveTeam() error: %v", err)
	}
	if got := stub.lastCall(t).Path; got != "/teams/team-1" {
		t.Errorf("path = %q", got)
	}
}

func TestUpdateTeamSparsePatch(t *testing.T) {
	stub, client := newAPIStub(t, ok(teamRecord))

	_, err := client.UpdateTeam(context.Background(), "team-1", TeamUpdateParams{
		Description: strPtr(""),
	})
	if err != nil {
		t.Fatalf("UpdateTeam() error: %v", err)
	}

	call := stub.lastCall(t)
	if call.Method != "PUT" || call.Path != "/teams/team-1" {
		t.Errorf("request = %s %s", call.Method, call.Path)
	}
	// An explicit empty description clears the field remotely.
	if desc, present := call.Body["description"]; !present || desc != "" {
		t.Errorf("description = %v (present=%v)", desc, present)
	}
	if _, present := call.Body["name"]; present {
		t.Error("name sent despite not being supplied")
	}
}

func TestDeleteTeam(t *testing.T) {
	stub, client := newAPIStub(t, ok(`{"success": true}`))

	deleted, err := client.DeleteTeam(context.Background(), "team-1")
	if err != nil {
		t.Fatalf("DeleteTeam() error: %v", err)
	}
	if !deleted {
		t.Error("success flag not surfaced")
	}
	call := stub.lastCall(t)
	if call.Method != "DELETE" || call.Path != "/teams/team-1" {
		t.Errorf("request = %s %s", call.Method, call.Path)
	}
}

func TestTeamMembershipActions(t *testing.T) {
	tests := []struct {
		name   string
		action func(*Client, context.Context) (*Team, error)
		path   string
	}{
		{"add", func(c *Client, ctx context.Context) (*Team, error) {
			return c.AddSurgers(ctx, "team-1", []string{"w-1"})
		}, "/teams/team-1/add_surgers"},
		{"remove", func(c *Client, ctx context.Context) (*Team, error) {
			return c.RemoveSurgers(ctx, "team-1", []string{"w-1"})
		}, "/teams/team-1/remove_surgers"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stub, client := newAPIStub(t, ok(teamRecord))
			if _, err := test.action(client, context.Background()); err != nil {
				t.Fatalf("%s error: %v", test.name, err)
			}
			call := stub.lastCall(t)
			if call.Method != "POST" || call.Path != test.path {
				t.Errorf("request = %s %s, want POST %s", call.Method, call.Path, test.path)
			}
			ids, isSlice := call.Body["surger_ids"].([]any)
			if !isSlice || len(ids) != 1 || ids[0] != "w-1" {
				t.Errorf("surger_ids = %v", call.Body["surger_ids"])
			}
		})
	}
}
