package surge

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadTasksDataFromCSV reads task field mappings from a CSV file. The
// first row is the header; every subsequent row becomes one mapping of
// header name to cell value, aligned positionally. The header must be
// non-empty and each row must supply at least as many cells as there are
// headers.
func LoadTasksDataFromCSV(filePath string) ([]Params, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open tasks csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows may legitimately carry more cells than the header names them.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tasks csv: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("tasks csv %s has no header row", filePath)
	}
	headers := rows[0]

	tasksData := make([]Params, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < len(headers) {
			return nil, fmt.Errorf("tasks csv row %d has %d cells, want at least %d", i+2, len(row), len(headers))
		}
		data := Params{}
		for j, header := range headers {
			data[header] = row[j]
		}
		tasksData = append(tasksData, data)
	}
	return tasksData, nil
}
