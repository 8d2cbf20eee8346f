// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for flat-shaded terrain chunks.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for flat-shaded terrain chunks.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// WaterVertexShader is the vertex shader for the water plane.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader is the fragment shader for the water plane.
//
//go:embed water.frag
var WaterFragmentShader string

// LinesVertexShader is the vertex shader for debug line overlays.
//
//go:embed lines.vert
var LinesVertexShader string

// LinesFragmentShader is the fragment shader for debug line overlays.
//
//go:embed lines.frag
var LinesFragmentShader string
