package transport

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema is the contract for inbound messages. session_id and message
// are required; anything else is optional.
const requestSchema = `{
	"type": "object",
	"properties": {
		"session_id": {"type": "string", "minLength": 1},
		"user_id": {"type": "string"},
		"message": {"type": "string"},
		"voice": {"type": "boolean"}
	},
	"required": ["session_id", "message"],
	"additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// validateRequest checks raw JSON against the request schema before it is
// unmarshalled, so malformed requests fail with one aggregated message.
func validateRequest(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid request: %s", strings.Join(problems, "; "))
}
