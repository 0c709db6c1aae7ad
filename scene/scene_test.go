package scene

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/gli/gltest"
	"github.com/richinsley/gllite/program"
	"github.com/richinsley/gllite/uniforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadScene = `
clear: [0.1, 0.2, 0.3, 1]
programs:
  - name: flat
    vertex: |
      #version 410 core
      in vec2 a_position;
      in vec4 a_color;
      void main() { gl_Position = vec4(a_position, 0, 1); }
    fragment: |
      #version 410 core
      uniform vec4 tint;
      uniform float gain;
      uniform sampler2D tex;
      out vec4 c;
      void main() { c = tint * gain; }
textures:
  - name: check
    width: 2
    height: 1
    pixels: [30, 30, 30, 255, 200, 200, 200, 255]
    wrap: clamp
    filter: nearest
nodes:
  - program: flat
    attributes:
      - a_position
      - {name: a_color, normalized: true}
    vertices: [-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0]
    indices: [0, 1, 2, 0, 2, 3]
    uniforms:
      tint: [1, 0.5, 0, 1]
      gain: 2
      tex: {texture: check}
`

func recorder() *gltest.Recorder {
	rec := gltest.New()
	rec.Attributes = []gltest.Entry{
		{Name: "a_position", Size: 1, Type: gli.FLOAT_VEC2, Location: 0},
		{Name: "a_color", Size: 1, Type: gli.FLOAT_VEC4, Location: 1},
	}
	rec.Uniforms = []gltest.Entry{
		{Name: "tint", Size: 1, Type: gli.FLOAT_VEC4, Location: 0},
		{Name: "gain", Size: 1, Type: gli.FLOAT, Location: 1},
		{Name: "tex", Size: 1, Type: gli.SAMPLER_2D, Location: 2},
	}
	return rec
}

func TestParse(t *testing.T) {
	desc, err := Parse([]byte(quadScene))
	require.NoError(t, err)

	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, desc.ClearColor())
	require.Len(t, desc.Programs, 1)
	assert.True(t, strings.HasPrefix(desc.Programs[0].Vertex, "#version 410 core"))
	require.Len(t, desc.Nodes, 1)
	n := desc.Nodes[0]
	assert.Equal(t, []AttributeSpec{{Name: "a_position"}, {Name: "a_color", Normalized: true}}, n.Attributes)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, n.Indices)
	assert.Equal(t, []float32{1, 0.5, 0, 1}, n.Uniforms["tint"].Floats)
	assert.Equal(t, []float32{2}, n.Uniforms["gain"].Floats)
	assert.Equal(t, "check", n.Uniforms["tex"].Texture)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown program": `
programs: [{name: a, vertex: v, fragment: f}]
nodes: [{program: b}]`,
		"unknown texture": `
programs: [{name: a, vertex: v, fragment: f}]
nodes: [{program: a, uniforms: {tex: {texture: nope}}}]`,
		"pixel count": `
textures: [{name: t, width: 2, height: 2, pixels: [1, 2, 3, 4]}]`,
		"pixel range": `
textures: [{name: t, width: 1, height: 1, pixels: [0, 0, 0, 300]}]`,
		"too many components": `
programs: [{name: a, vertex: v, fragment: f}]
nodes: [{program: a, uniforms: {m: [1, 2, 3, 4, 5]}}]`,
		"duplicate program": `
programs: [{name: a, vertex: v, fragment: f}, {name: a, vertex: v, fragment: f}]`,
		"missing stage": `
programs: [{name: a, vertex: v}]`,
		"clear size": `
clear: [0, 0, 0]`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(quadScene), 0o644))
	desc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, desc.Textures, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildAndDraw(t *testing.T) {
	rec := recorder()
	desc, err := Parse([]byte(quadScene))
	require.NoError(t, err)

	s, err := Build(rec, desc, nil)
	require.NoError(t, err)

	require.Len(t, s.Nodes(), 1)
	n := s.Nodes()[0]
	attrs := n.Geometry().Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, gli.UNSIGNED_BYTE, attrs[1].Type)
	assert.Equal(t, int32(12), n.Geometry().Stride())

	tex, ok := s.Texture("check")
	require.True(t, ok)
	assert.Equal(t, int32(2), tex.Width())
	v, ok := n.Uniform("tex")
	require.True(t, ok)
	assert.Equal(t, uniforms.Texture2D{Handle: tex.Handle()}, v)
	v, _ = n.Uniform("gain")
	assert.Equal(t, uniforms.Float(2), v)

	assert.Equal(t, []gltest.Call{
		{Name: "ClearColor", Args: []any{float32(0.1), float32(0.2), float32(0.3), float32(1)}},
	}, rec.Calls("ClearColor"))

	rec.Reset()
	s.Draw()
	calls := rec.Calls("Clear", "UseProgram", "Uniform4f", "Uniform1f", "Uniform1i", "DrawElementsTriangles")
	require.Len(t, calls, 6)
	assert.Equal(t, "Clear", calls[0].Name)
	assert.Equal(t, "UseProgram", calls[1].Name)
	assert.Equal(t, "Uniform4f", calls[2].Name)
	assert.Equal(t, "Uniform1f", calls[3].Name)
	assert.Equal(t, []any{uint32(2), int32(0)}, calls[4].Args)
	assert.Equal(t, []any{int32(6)}, calls[5].Args)
}

func TestBuildCompileFailure(t *testing.T) {
	rec := recorder()
	rec.CompileFailures[gli.FRAGMENT_SHADER] = "syntax error"
	desc, err := Parse([]byte(quadScene))
	require.NoError(t, err)

	_, err = Build(rec, desc, nil)
	var ce *program.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), `program "flat"`)
}

func TestBuildTranslateNeedsTranslator(t *testing.T) {
	_, err := Build(recorder(), Checker(false, true), nil)
	assert.ErrorContains(t, err, "needs a shader translator")
}

// renamingTranslator mimics goshadertranslator: it prefixes user identifiers
// with "_u" and reports the source to translated name table.
type renamingTranslator struct{}

var identifier = regexp.MustCompile(`\b(a_position|color|tex)\b`)

func (renamingTranslator) Translate(source string, stage gli.ShaderStage) (string, map[string]string, error) {
	names := make(map[string]string)
	for _, name := range identifier.FindAllString(source, -1) {
		names[name] = "_u" + name
	}
	return "// translated\n" + identifier.ReplaceAllString(source, "_u$1"), names, nil
}

func TestBuildChecker(t *testing.T) {
	rec := gltest.New()
	rec.Attributes = []gltest.Entry{{Name: "_ua_position", Size: 1, Type: gli.FLOAT_VEC2, Location: 0}}
	rec.Uniforms = []gltest.Entry{
		{Name: "_ucolor", Size: 1, Type: gli.FLOAT_VEC4, Location: 0},
		{Name: "_utex", Size: 1, Type: gli.SAMPLER_2D, Location: 1},
	}

	s, err := Build(rec, Checker(false, true), renamingTranslator{})
	require.NoError(t, err)
	src := rec.Calls("ShaderSource")
	require.Len(t, src, 2)
	for _, c := range src {
		assert.True(t, strings.HasPrefix(c.Args[1].(string), "// translated\n#version 300 es"))
	}
	assert.Contains(t, src[0].Args[1], "in vec2 _ua_position;")
	assert.Contains(t, src[1].Args[1], "uniform sampler2D _utex;")

	n := s.Nodes()[0]
	require.Len(t, n.Geometry().Attributes(), 1)
	assert.Equal(t, int32(3), n.Geometry().VertexCount())

	rec.Reset()
	s.Draw()
	assert.Equal(t, []any{int32(3)}, rec.Calls("DrawArraysTriangles")[0].Args)
	assert.Equal(t, []any{uint32(0), float32(1), float32(1), float32(0), float32(1)}, rec.Calls("Uniform4f")[0].Args)
	assert.Equal(t, []any{uint32(1), int32(0)}, rec.Calls("Uniform1i")[0].Args)

	s.Destroy()
	assert.Len(t, rec.Deleted("program"), 1)
	assert.Len(t, rec.Deleted("texture"), 1)
	assert.Len(t, rec.Deleted("vertexarray"), 1)
}
