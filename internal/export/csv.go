package export

import (
	"encoding/csv"
	"os"

	"github.com/hied-data/deitrack/pkg/models"
)

// SaveCSV writes records to a CSV file with the canonical header row.
func SaveCSV(records []models.Record, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(models.FieldNames); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(rec.Row()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
