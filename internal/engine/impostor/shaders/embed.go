// Package shaders provides embedded GLSL shader sources for the impostor
// pipeline: the atlas bake pass, the billboard reconstruction pass, and
// the near-tier instanced mesh pass.
package shaders

import _ "embed"

// BakeVertexShader is the vertex shader for the atlas bake pass.
//
//go:embed bake.vert
var BakeVertexShader string

// BakeFragmentShader is the fragment shader for the atlas bake pass. It
// writes albedo and encoded normal to two color attachments at once.
//
//go:embed bake.frag
var BakeFragmentShader string

// ImpostorVertexShader is the vertex shader for billboard reconstruction.
//
//go:embed impostor.vert
var ImpostorVertexShader string

// ImpostorFragmentShader is the fragment shader for billboard reconstruction.
//
//go:embed impostor.frag
var ImpostorFragmentShader string

// MeshVertexShader is the vertex shader for near-tier instanced meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader is the fragment shader for near-tier instanced meshes.
//
//go:embed mesh.frag
var MeshFragmentShader string
