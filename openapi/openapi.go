// Package openapi embeds the OpenAPI document for the Coup de Tête API.
// The handler package serves it at /openapi.yaml.
package openapi

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
