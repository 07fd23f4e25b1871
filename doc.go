// Package surge provides a Go client for the Surge AI crowdsourcing API.
//
// The client models the platform's resources (projects, tasks, questions,
// teams, reports) as typed values and maps their lifecycle operations onto
// HTTP calls. Every operation is a method on Client, takes a
// context.Context first, and routes through a single request chokepoint so
// authentication and error handling behave uniformly.
//
// # Basic usage
//
//	import "github.com/surgehq/surge-go"
//
//	client := surge.NewClient(surge.WithAPIKey("YOUR_API_KEY"))
//
//	project, err := client.CreateProject(ctx, surge.ProjectCreateParams{
//		Name: "Categorize this website",
//		Questions: []surge.Question{
//			surge.NewMultipleChoiceQuestion("What category is this?", "Tech", "Sports"),
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tasksData, err := surge.LoadTasksDataFromCSV("tasks.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tasks, err := client.CreateTasks(ctx, project.ID, tasksData, false)
//
// # Configuration
//
// ClientFromEnv reads SURGE_API_KEY and SURGE_BASE_URL from the process
// environment, loading a .env file first when one is present. Both values
// can be overridden per call with WithCallAPIKey and WithCallBaseURL.
//
// # Errors
//
// All failures surface as typed errors implementing APIError; use the Is*
// and As* helpers to discriminate. The library never retries on its own.
// The only loop is report polling in SaveReport, which retries while the
// server reports CREATING and otherwise fails fast.
package surge
