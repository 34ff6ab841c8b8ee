// Package schemas holds the JSON Schemas of the data the application accepts.
package schemas

import _ "embed"

// Resume is the JSON Schema of a resume record
//
//go:embed resume.schema.json
var Resume []byte
