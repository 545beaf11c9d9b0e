// Package root exposes the static files shipped inside the binary.
package root

import "embed"

// Assets holds the assets directory, mail templates included.
//
//go:embed all:assets
var Assets embed.FS
