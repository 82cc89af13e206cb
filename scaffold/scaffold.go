// Package scaffold provides the embedded starter site written by
// `flatblog new`.
package scaffold

import "embed"

// Templates contains all scaffold template files under templates/.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
