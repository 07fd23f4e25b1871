// Command surge is a thin CLI over the Surge API client. Configuration
// comes from SURGE_API_KEY and SURGE_BASE_URL (a .env file is honored).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	surge "github.com/surgehq/surge-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "surge",
		Short:         "Interact with the Surge AI crowdsourcing API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProjectsCmd(), newTasksCmd(), newTeamsCmd(), newReportCmd())
	return root
}

func newProjectsCmd() *cobra.Command {
	projects := &cobra.Command{Use: "projects", Short: "Manage projects"}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := surge.ClientFromEnv().ListProjects(cmd.Context(), page)
			if err != nil {
				return err
			}
			for _, project := range items {
				fmt.Println(project)
			}
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")

	get := &cobra.Command{
		Use:   "get <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := surge.ClientFromEnv().RetrieveProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			encoded, err := project.ToJSON()
			if err != nil {
				return err
			}
			fmt.Println(encoded)
			return nil
		},
	}

	projects.AddCommand(list, get)
	return projects
}

func newTasksCmd() *cobra.Command {
	tasks := &cobra.Command{Use: "tasks", Short: "Manage tasks"}

	var page int
	list := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := surge.ClientFromEnv().ListTasks(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			for _, task := range items {
				fmt.Println(task)
			}
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")

	var launch bool
	upload := &cobra.Command{
		Use:   "upload <project-id> <tasks.csv>",
		Short: "Bulk-create tasks from a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasksData, err := surge.LoadTasksDataFromCSV(args[1])
			if err != nil {
				return err
			}
			created, err := surge.ClientFromEnv().CreateTasks(cmd.Context(), args[0], tasksData, launch)
			if err != nil {
				return err
			}
			fmt.Printf("created %d tasks\n", len(created))
			return nil
		},
	}
	upload.Flags().BoolVar(&launch, "launch", false, "launch the project after creating tasks")

	tasks.AddCommand(list, upload)
	return tasks
}

func newTeamsCmd() *cobra.Command {
	teams := &cobra.Command{Use: "teams", Short: "Manage teams"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := surge.ClientFromEnv().ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			for _, team := range items {
				fmt.Println(team)
			}
			return nil
		},
	}

	teams.AddCommand(list)
	return teams
}

func newReportCmd() *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "Download project reports"}

	var reportType, out string
	var timeout time.Duration
	save := &cobra.Command{
		Use:   "save <project-id>",
		Short: "Generate and download a project report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := surge.ClientFromEnv().SaveReport(cmd.Context(), args[0], reportType, out, timeout)
			if err != nil {
				return err
			}
			fmt.Printf("saved %d bytes\n", len(data))
			return nil
		},
	}
	save.Flags().StringVar(&reportType, "type", surge.ReportTypeExportJSON, "report type")
	save.Flags().StringVar(&out, "out", "", "destination file (default surge_report_<project>.<ext>)")
	save.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "total time budget")

	dump := &cobra.Command{
		Use:   "dump <project-id>",
		Short: "Print the parsed JSON report to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := surge.ClientFromEnv().DownloadReportJSON(cmd.Context(), args[0], 5*time.Minute)
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(parsed, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}

	report.AddCommand(save, dump)
	return report
}
