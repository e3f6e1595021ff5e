// Package docs embeds the OpenAPI description served next to Swagger UI.
package docs

import _ "embed"

// OpenAPI is the API description in YAML form
//
//go:embed openapi.yaml
var OpenAPI []byte
