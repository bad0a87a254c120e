package web

import "embed"

// Resources contains the module's bundled assets: the manifest, localized string
// tables, quotes and images. The patterns are relative to this file's directory.
//
//go:embed resources
var Resources embed.FS

// ResourcesRoot is the directory inside Resources that holds manifest.yaml.
const ResourcesRoot = "resources"
