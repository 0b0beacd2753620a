package report

import (
	"encoding/json"
	"io"
)

const jsonIndentConstant = "  "

// JSONRenderer renders reports as indented JSON.
type JSONRenderer struct{}

// Render writes the report in JSON format.
func (renderer *JSONRenderer) Render(writer io.Writer, exportReport *Report) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(exportReport)
}
