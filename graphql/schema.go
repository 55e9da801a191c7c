package graphql

import (
	"strings"
	"sync"

	_ "embed"
)

//go:embed schema.graphqls
var baseSchema string

var (
	extMu      sync.Mutex
	extensions []string
)

// RegisterSchemaExtension appends extra SDL to the dashboard schema. Extension
// packages call this from init() alongside gqlregistry.Register.
func RegisterSchemaExtension(sdl string) {
	extMu.Lock()
	defer extMu.Unlock()
	extensions = append(extensions, strings.TrimSpace(sdl))
}

// Schema assembles the embedded base schema plus any registered extensions.
func Schema() string {
	extMu.Lock()
	ext := extensions
	extMu.Unlock()
	if len(ext) == 0 {
		return baseSchema
	}
	return baseSchema + "\n\n" + strings.Join(ext, "\n\n")
}
