package surge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSVFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing csv fixture: %v", err)
	}
	return path
}

func TestLoadTasksDataFromCSV(t *testing.T) {
	path := writeCSVFixture(t, "company,city\nSurge AI,San Francisco\nAcme,New York\n")

	tasksData, err := LoadTasksDataFromCSV(path)
	if err != nil {
		t.Fatalf("LoadTasksDataFromCSV() error: %v", err)
	}
	if len(tasksData) != 2 {
		t.Fatalf("rows = %d, want 2", len(tasksData))
	}
	if tasksData[0]["company"] != "Surge AI" || tasksData[0]["city"] != "San Francisco" {
		t.Errorf("row 0 = %v", tasksData[0])
	}
	if tasksData[1]["company"] != "Acme" {
		t.Errorf("row 1 = %v", tasksData[1])
	}
}

func TestLoadTasksDataFromCSVHeaderOnly(t *testing.T) {
	path := writeCSVFixture(t, "company,city\n")

	tasksData, err := LoadTasksDataFromCSV(path)
	if err != nil {
		t.Fatalf("LoadTasksDataFromCSV() error: %v", err)
	}
	if len(tasksData) != 0 {
		t.Errorf("rows = %d, want 0", len(tasksData))
	}
}

func TestLoadTasksDataFromCSVEmptyFile(t *testing.T) {
	path := writeCSVFixture(t, "")

	if _, err := LoadTasksDataFromCSV(path); err == nil {
		t.Error("expected an error for a file without a header row")
	}
}

func TestLoadTasksDataFromCSVShortRow(t *testing.T) {
	path := writeCSVFixture(t, "company,city\nSurge AI\n")

	if _, err := LoadTasksDataFromCSV(path); err == nil {
		t.Error("expected an error for a row shorter than the header")
	}
}

func TestLoadTasksDataFromCSVMissingFile(t *testing.T) {
	if _, err := LoadTasksDataFromCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadTasksDataFromCSVExtraCellsTolerated(t *testing.T) {
	path := writeCSVFixture(t, "company\nSurge AI,San Francisco\n")

	tasksData, err := LoadTasksDataFromCSV(path)
	if err != nil {
		t.Fatalf("LoadTasksDataFromCSV() error: %v", err)
	}
	if len(tasksData) != 1 || tasksData[0]["company"] != "Surge AI" {
		t.Errorf("tasksData = %v", tasksData)
	}
}
