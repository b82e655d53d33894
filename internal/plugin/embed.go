package plugin

import (
	_ "embed"
)

// The bootstrap travels with the binary and is written to a scratch
// directory for each invocation, so plugins never depend on files from the
// host's working tree.
//
//go:embed bootstrap/bootstrap.mjs
var bootstrapJS []byte
