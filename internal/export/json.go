package export

import (
	"encoding/json"
	"os"

	"github.com/hied-data/deitrack/pkg/models"
)

// SaveJSON writes records as an indented JSON array. HTML escaping is
// disabled so URLs with query strings survive round-trips unchanged.
func SaveJSON(records []models.Record, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
