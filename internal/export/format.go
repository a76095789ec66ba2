package export

import "fmt"

// Format identifies a level export format.
type Format string

const (
	// FormatJSON is the universal JSON format for any engine.
	FormatJSON Format = "json"
	// FormatRON is Rust Object Notation, the native Bevy scene format.
	FormatRON Format = "ron"
	// FormatRustCode is generated Rust spawn code for direct integration.
	FormatRustCode Format = "rust"
	// FormatGLTF is glTF 2.0. Declared but not yet implemented; selecting it
	// produces a warning in the export result.
	FormatGLTF Format = "gltf"
	// FormatFBX is Autodesk FBX. Declared but not yet implemented.
	FormatFBX Format = "fbx"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatRON, FormatRustCode, FormatGLTF, FormatFBX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// Extension returns the output file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatRON:
		return "ron"
	case FormatRustCode:
		return "rs"
	case FormatGLTF:
		return "gltf"
	case FormatFBX:
		return "fbx"
	}
	return string(f)
}

// Description returns a one-line human-readable description.
func (f Format) Description() string {
	switch f {
	case FormatJSON:
		return "Universal JSON format for any engine"
	case FormatRON:
		return "Rust Object Notation - native Bevy format"
	case FormatRustCode:
		return "Generated Rust code for direct integration"
	case FormatGLTF:
		return "glTF 2.0 format with PBR materials"
	case FormatFBX:
		return "Autodesk FBX format for 3D software"
	}
	return string(f)
}
