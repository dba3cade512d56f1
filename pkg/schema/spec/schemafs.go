// Package spec provides the embedded API description JSON schema.
package spec

import "embed"

// APISchemaFS contains the embedded api-description JSON schema.
//
//go:embed api-schema.json
var APISchemaFS embed.FS

// APISchemaFile is the name of the embedded schema file.
const APISchemaFile = "api-schema.json"
