// Package gfx provides the small software 2D/3D toolkit shared by every backdrop effect.
//
// It is intended for decorative animation: a perspective divide, Euler rotation,
// HSL colour helpers and a Target abstraction with a handful of canvas-style drawing
// operations. It is not a 3D pipeline: there is no depth buffer, lighting or clipping
// beyond what the rasterizer does at the surface edges.
//
// Pipeline (per effect, fixed):
//
//	Primitive → Rotate → Project → Target draw calls.
//
// Canvas renders into a caller-provided *image.RGBA, so a surface can be a sub-image
// of a larger framebuffer.
package gfx
