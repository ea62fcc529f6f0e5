package render

import "errors"

var (
	// ErrInvalidProjection is returned by ProjectionConfig.Validate.
	ErrInvalidProjection = errors.New("render: invalid projection")
	// ErrInvalidRenderMode is returned for unknown rendering modes.
	ErrInvalidRenderMode = errors.New("render: invalid render mode")
	// ErrInvalidRenderConfig is returned for unusable shadow settings.
	ErrInvalidRenderConfig = errors.New("render: invalid render configuration")
	// ErrInvalidCamera is returned when eye, point of interest and up do
	// not define an orientation.
	ErrInvalidCamera = errors.New("render: invalid camera")
	// ErrInvalidGeometry is returned when an element references vertices it
	// does not own.
	ErrInvalidGeometry = errors.New("render: invalid geometry")
	// ErrNoShadowFrame is returned when a light cannot frame the scene.
	ErrNoShadowFrame = errors.New("render: cannot frame shadow map")
	// ErrNilScene is returned when a render is requested without a world,
	// lighting or camera.
	ErrNilScene = errors.New("render: missing world, lighting or camera")
	// ErrNoFrame is returned when presenting before the first render.
	ErrNoFrame = errors.New("render: no frame rendered yet")
)
