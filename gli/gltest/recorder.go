// Package gltest provides a gli.Backend that records every call instead of
// talking to a driver. Tests program its reflection tables and failure hooks,
// then assert on the captured call log.
package gltest

import (
	"fmt"
	"strings"

	"github.com/richinsley/gllite/gli"
)

// Entry is one row of a scripted reflection table. Location may be
// gli.InactiveLocation to model an entry the driver optimized out.
type Entry struct {
	Name     string
	Size     int32
	Type     gli.Enum
	Location int32
}

// Call is one captured backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder is a scripted, call-capturing gli.Backend.
type Recorder struct {
	Uniforms   []Entry
	Attributes []Entry

	// CompileFailures maps a stage to the info log returned when compiling it.
	CompileFailures map[gli.ShaderStage]string
	// LinkFailure, when non-empty, makes LinkProgram fail with this log.
	LinkFailure string

	calls   []Call
	next    uint32
	stages  map[gli.Shader]gli.ShaderStage
	sources map[gli.Shader]string
	deleted map[string][]uint32
}

var _ gli.Backend = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{
		CompileFailures: make(map[gli.ShaderStage]string),
		stages:          make(map[gli.Shader]gli.ShaderStage),
		sources:         make(map[gli.Shader]string),
		deleted:         make(map[string][]uint32),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc() uint32 {
	r.next++
	return r.next
}

// Calls returns captured calls, filtered to the given names when any are passed.
func (r *Recorder) Calls(names ...string) []Call {
	if len(names) == 0 {
		return append([]Call(nil), r.calls...)
	}
	var out []Call
	for _, c := range r.calls {
		for _, n := range names {
			if c.Name == n {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Count returns how many calls with the given name were captured.
func (r *Recorder) Count(name string) int {
	return len(r.Calls(name))
}

// Reset forgets captured calls. Reflection tables and handles are kept.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Deleted returns the handles passed to the Delete* call of the given kind
// ("shader", "program", "buffer", "vertexarray", "texture").
func (r *Recorder) Deleted(kind string) []uint32 {
	return r.deleted[kind]
}

// Source returns the text last set on a shader.
func (r *Recorder) Source(s gli.Shader) string {
	return r.sources[s]
}

func (r *Recorder) CreateShader(stage gli.ShaderStage) gli.Shader {
	s := gli.Shader(r.alloc())
	r.stages[s] = stage
	r.record("CreateShader", stage)
	return s
}

func (r *Recorder) ShaderSource(s gli.Shader, source string) {
	r.sources[s] = source
	r.record("ShaderSource", s, source)
}

func (r *Recorder) CompileShader(s gli.Shader) bool {
	r.record("CompileShader", s)
	_, failed := r.CompileFailures[r.stages[s]]
	return !failed
}

func (r *Recorder) ShaderInfoLog(s gli.Shader) string {
	r.record("ShaderInfoLog", s)
	return gli.TruncateInfoLog(r.CompileFailures[r.stages[s]])
}

func (r *Recorder) DeleteShader(s gli.Shader) {
	r.deleted["shader"] = append(r.deleted["shader"], uint32(s))
	r.record("DeleteShader", s)
}

func (r *Recorder) CreateProgram() gli.Program {
	p := gli.Program(r.alloc())
	r.record("CreateProgram")
	return p
}

func (r *Recorder) AttachShader(p gli.Program, s gli.Shader) {
	r.record("AttachShader", p, s)
}

func (r *Recorder) DetachShader(p gli.Program, s gli.Shader) {
	r.record("DetachShader", p, s)
}

func (r *Recorder) LinkProgram(p gli.Program) bool {
	r.record("LinkProgram", p)
	return r.LinkFailure == ""
}

func (r *Recorder) ProgramInfoLog(p gli.Program) string {
	r.record("ProgramInfoLog", p)
	return gli.TruncateInfoLog(r.LinkFailure)
}

func (r *Recorder) UseProgram(p gli.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) DeleteProgram(p gli.Program) {
	r.deleted["program"] = append(r.deleted["program"], uint32(p))
	r.record("DeleteProgram", p)
}

func (r *Recorder) ActiveUniformCount(p gli.Program) uint32 {
	return uint32(len(r.Uniforms))
}

func (r *Recorder) ActiveUniform(p gli.Program, index uint32) gli.ActiveInfo {
	e := r.Uniforms[index]
	return gli.ActiveInfo{Name: gli.TruncateName(e.Name), Size: e.Size, Type: e.Type}
}

func (r *Recorder) UniformLocation(p gli.Program, name string) int32 {
	return lookup(r.Uniforms, name)
}

func (r *Recorder) ActiveAttribCount(p gli.Program) uint32 {
	return uint32(len(r.Attributes))
}

func (r *Recorder) ActiveAttrib(p gli.Program, index uint32) gli.ActiveInfo {
	e := r.Attributes[index]
	return gli.ActiveInfo{Name: gli.TruncateName(e.Name), Size: e.Size, Type: e.Type}
}

func (r *Recorder) AttribLocation(p gli.Program, name string) int32 {
	return lookup(r.Attributes, name)
}

func lookup(entries []Entry, name string) int32 {
	for _, e := range entries {
		if gli.TruncateName(e.Name) == name {
			return e.Location
		}
	}
	return gli.InactiveLocation
}

func (r *Recorder) CreateBuffer() gli.Buffer {
	b := gli.Buffer(r.alloc())
	r.record("CreateBuffer")
	return b
}

func (r *Recorder) BindArrayBuffer(b gli.Buffer) {
	r.record("BindArrayBuffer", b)
}

func (r *Recorder) BindElementArrayBuffer(b gli.Buffer) {
	r.record("BindElementArrayBuffer", b)
}

func (r *Recorder) BufferArrayData(data []float32) {
	r.record("BufferArrayData", append([]float32(nil), data...))
}

func (r *Recorder) BufferElementData(data []uint16) {
	r.record("BufferElementData", append([]uint16(nil), data...))
}

func (r *Recorder) DeleteBuffer(b gli.Buffer) {
	r.deleted["buffer"] = append(r.deleted["buffer"], uint32(b))
	r.record("DeleteBuffer", b)
}

func (r *Recorder) CreateVertexArray() gli.VertexArray {
	va := gli.VertexArray(r.alloc())
	r.record("CreateVertexArray")
	return va
}

func (r *Recorder) BindVertexArray(va gli.VertexArray) {
	r.record("BindVertexArray", va)
}

func (r *Recorder) DeleteVertexArray(va gli.VertexArray) {
	r.deleted["vertexarray"] = append(r.deleted["vertexarray"], uint32(va))
	r.record("DeleteVertexArray", va)
}

func (r *Recorder) VertexAttribPointer(location uint32, size int32, typ gli.Enum, normalized bool, stride, offset int32) {
	r.record("VertexAttribPointer", location, size, typ, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(location uint32) {
	r.record("EnableVertexAttribArray", location)
}

func (r *Recorder) DrawArraysTriangles(count int32) {
	r.record("DrawArraysTriangles", count)
}

func (r *Recorder) DrawElementsTriangles(count int32) {
	r.record("DrawElementsTriangles", count)
}

func (r *Recorder) ClearColor(red, g, b, a float32) {
	r.record("ClearColor", red, g, b, a)
}

func (r *Recorder) Clear(mask gli.Enum) {
	r.record("Clear", mask)
}

func (r *Recorder) CreateTexture() gli.Texture {
	t := gli.Texture(r.alloc())
	r.record("CreateTexture")
	return t
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
}

func (r *Recorder) BindTexture2D(t gli.Texture) {
	r.record("BindTexture2D", t)
}

func (r *Recorder) TexParameter2D(param, value gli.Enum) {
	r.record("TexParameter2D", param, value)
}

func (r *Recorder) TexImage2D(internalFormat gli.Enum, width, height int32, format gli.Enum, data []byte) {
	r.record("TexImage2D", internalFormat, width, height, format, append([]byte(nil), data...))
}

func (r *Recorder) GenerateMipmap2D() {
	r.record("GenerateMipmap2D")
}

func (r *Recorder) DeleteTexture(t gli.Texture) {
	r.deleted["texture"] = append(r.deleted["texture"], uint32(t))
	r.record("DeleteTexture", t)
}

func (r *Recorder) Uniform1f(location uint32, x float32) {
	r.record("Uniform1f", location, x)
}

func (r *Recorder) Uniform2f(location uint32, x, y float32) {
	r.record("Uniform2f", location, x, y)
}

func (r *Recorder) Uniform3f(location uint32, x, y, z float32) {
	r.record("Uniform3f", location, x, y, z)
}

func (r *Recorder) Uniform4f(location uint32, x, y, z, w float32) {
	r.record("Uniform4f", location, x, y, z, w)
}

func (r *Recorder) Uniform1i(location uint32, x int32) {
	r.record("Uniform1i", location, x)
}

func (r *Recorder) Uniform2i(location uint32, x, y int32) {
	r.record("Uniform2i", location, x, y)
}

func (r *Recorder) Uniform3i(location uint32, x, y, z int32) {
	r.record("Uniform3i", location, x, y, z)
}

func (r *Recorder) Uniform4i(location uint32, x, y, z, w int32) {
	r.record("Uniform4i", location, x, y, z, w)
}

// ReadPixelsRGBA returns an opaque black frame of the requested size.
func (r *Recorder) ReadPixelsRGBA(x, y, width, height int32) []byte {
	r.record("ReadPixelsRGBA", x, y, width, height)
	px := make([]byte, int(width)*int(height)*4)
	for i := 3; i < len(px); i += 4 {
		px[i] = 255
	}
	return px
}
