// Package staticfiles carries content shipped inside the binary.
package staticfiles

import _ "embed"

// ExampleCatalog is a small playable catalog written by `greygoo init`.
//
//go:embed game.json
var ExampleCatalog []byte
