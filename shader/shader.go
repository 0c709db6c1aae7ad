// Package shader holds the built-in demo shader sources.
package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
in vec2 a_position;
out vec2 v_position;
void main() {
    v_position = a_position;
    gl_Position = vec4(a_position.xy, 0.0, 1.0);
}
`

const fragmentShaderSourceGL = `#version 410 core
in vec2 v_position;
out vec4 outColor;

uniform vec4 color;
uniform sampler2D tex;

void main() {
    outColor = color * texture(tex, v_position);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
in vec2 a_position;
out vec2 v_position;
void main() {
    v_position = a_position;
    gl_Position = vec4(a_position.xy, 0.0, 1.0);
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 v_position;
out vec4 outColor;

uniform vec4 color;
uniform sampler2D tex;

void main() {
    outColor = color * texture(tex, v_position);
}
`

// CheckerPixels is the 2x2 RGBA checker used by the demo texture.
var CheckerPixels = []byte{
	30, 30, 30, 255,
	200, 200, 200, 255,
	200, 200, 200, 255,
	30, 30, 30, 255,
}

// TriangleVertices is one 2D triangle covering most of clip space.
var TriangleVertices = []float32{
	0.0, 1.0,
	-1.0, -1.0,
	1.0, -1.0,
}

// VertexShader returns the demo vertex stage for the requested dialect.
func VertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

// FragmentShader returns the demo fragment stage for the requested dialect.
// The GLES sources are also valid WebGL2 input for the translator.
func FragmentShader(isGLES bool) string {
	if isGLES {
		return fragmentShaderSourceGLES
	}
	return fragmentShaderSourceGL
}
