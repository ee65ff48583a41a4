package assets

import _ "embed"

// DefaultScene is the YAML scene loaded when no scene file is configured.
//
//go:embed scene.yaml
var DefaultScene []byte
