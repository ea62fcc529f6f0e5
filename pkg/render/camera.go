// Package render turns a scene.World into pixels on the CPU: camera and
// projection, lighting, the model-view-projection pipeline, clipping,
// rasterization, shading and shadow maps.
package render

import (
	"fmt"

	"github.com/taigrr/umbra/pkg/math3d"
)

// Camera is a look-at camera.
type Camera struct {
	Eye    math3d.Vec3 // Position in world space
	Target math3d.Vec3 // Point of interest
	Up     math3d.Vec3 // World up hint

	view math3d.Mat4
}

// NewCamera creates a camera at eye looking at target.
func NewCamera(eye, target, up math3d.Vec3) (*Camera, error) {
	c := &Camera{}
	if err := c.Update(eye, target, up); err != nil {
		return nil, err
	}
	return c, nil
}

// Update moves the camera. On error the camera keeps its previous pose.
func (c *Camera) Update(eye, target, up math3d.Vec3) error {
	view, ok := math3d.LookAt(eye, target, up)
	if !ok {
		return fmt.Errorf("%w: eye %v, target %v, up %v", ErrInvalidCamera, eye, target, up)
	}
	c.Eye, c.Target, c.Up = eye, target, up
	c.view = view
	return nil
}

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.view
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Eye).Normalize()
}

// Distance returns the distance from the eye to the point of interest.
func (c *Camera) Distance() float64 {
	return c.Eye.Distance(c.Target)
}

// MoveForward moves the eye towards the target (or away if negative),
// stopping short of it.
func (c *Camera) MoveForward(distance float64) error {
	d := c.Distance()
	if distance >= d {
		distance = d * 0.99
	}
	return c.Update(c.Eye.Add(c.Forward().Scale(distance)), c.Target, c.Up)
}

// WorldToScreen projects a world point with the given projection.
// It returns false when the point is outside the view volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, proj ProjectionConfig) (x, y, depth float64, visible bool) {
	width, height := proj.ImageSize()
	clip := proj.Matrix().Mul(c.view).MulVec4(math3d.Point(p))
	if !clip.InsideClip() {
		return 0, 0, 0, false
	}
	ndc, ok := clip.PerspectiveDivide()
	if !ok {
		return 0, 0, 0, false
	}
	x, y = toScreen(ndc, width, height)
	return x, y, ndc.Z, true
}

// toScreen maps normalized device coordinates to pixel coordinates with y
// growing downwards.
func toScreen(ndc math3d.Vec3, width, height int) (x, y float64) {
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	return x, y
}
