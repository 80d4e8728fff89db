// Package docs embeds the OpenAPI description of the HTTP API. The document
// is maintained by hand next to the route table; update both together.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
