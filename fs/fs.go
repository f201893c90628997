// Package appfs exposes the repo's embedded assets (DB migrations).
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
