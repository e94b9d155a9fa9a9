// internal/prefill/schema.go
package prefill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"benefits-wizard/internal/common/errors"
)

// recordSchema constrains any prefill payload that crosses a trust boundary:
// cache entries and scan results posted by external scanner processes. Keys
// outside the record shape are rejected rather than silently merged.
const recordSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"firstName":     {"type": "string"},
		"middleName":    {"type": "string"},
		"lastName":      {"type": "string"},
		"dateOfBirth":   {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"ssn":           {"type": "string", "pattern": "^\\d{3}-?\\d{2}-?\\d{4}$"},
		"streetAddress": {"type": "string"},
		"city":          {"type": "string"},
		"zip":           {"type": "string", "pattern": "^\\d{5}(-\\d{4})?$"},
		"email":         {"type": "string"},
		"phone":         {"type": "string"}
	}
}`

var compiledRecordSchema = gojsonschema.NewStringLoader(recordSchema)

// ParseRecord validates raw JSON against the record schema and unmarshals
// it. Invalid payloads come back as a prefill-payload error with every
// schema violation listed.
func ParseRecord(data []byte) (Record, error) {
	result, err := gojsonschema.Validate(compiledRecordSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Record{}, errors.NewPrefillPayloadInvalidError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return Record{}, errors.NewPrefillPayloadInvalidError(strings.Join(details, "; "))
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.NewPrefillPayloadInvalidError(fmt.Sprintf("malformed record: %v", err))
	}
	return rec, nil
}
