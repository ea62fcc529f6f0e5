package config

import "errors"

var (
	// ErrUnsupportedFormat is returned for scene files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported scene format")
	// ErrUnknownShape is returned for elements with an unknown shape name.
	ErrUnknownShape = errors.New("config: unknown shape")
	// ErrUnknownLight is returned for lights with an unknown type.
	ErrUnknownLight = errors.New("config: unknown light type")
	// ErrInvalidElement is returned for elements missing required values.
	ErrInvalidElement = errors.New("config: invalid element")
)
