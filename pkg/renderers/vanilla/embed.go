package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/widgets/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// DefaultAssetPrefix is the URL path stylesheets are linked under when no
// theme provides them.
const DefaultAssetPrefix = "/static/genui"

const pageTemplate = "templates/page.tmpl"

// TemplatesFS exposes the embedded template bundle: the page shell and one
// template per widget under templates/widgets/.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheets so callers can serve them over
// HTTP or copy them into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
