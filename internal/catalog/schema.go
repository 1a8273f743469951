package catalog

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema renders the JSON schema of the catalog file format.
func Schema() ([]byte, error) {
	s := jsonschema.Reflect(&File{})
	return json.MarshalIndent(s, "", "  ")
}
