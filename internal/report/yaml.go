package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

const yamlIndentWidthConstant = 2

// YAMLRenderer renders reports as YAML documents.
type YAMLRenderer struct{}

// Render writes the report in YAML format.
func (renderer *YAMLRenderer) Render(writer io.Writer, exportReport *Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentWidthConstant)
	if encodingError := encoder.Encode(exportReport); encodingError != nil {
		return encodingError
	}
	return encoder.Close()
}
