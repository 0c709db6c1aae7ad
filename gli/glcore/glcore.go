//go:build !js

// Package glcore implements gli.Backend on a desktop OpenGL 4.1 core profile context.
package glcore

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gllite/gli"
)

var glInitOnce sync.Once

// Backend issues gli calls against whatever GL context is current on the calling thread.
type Backend struct{}

var (
	_ gli.Backend     = (*Backend)(nil)
	_ gli.PixelReader = (*Backend)(nil)
)

// New loads the GL function pointers. A context must be current on the calling thread.
func New() (*Backend, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return &Backend{}, nil
}

// Version returns the driver's GL_VERSION string.
func (b *Backend) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *Backend) CreateShader(stage gli.ShaderStage) gli.Shader {
	return gli.Shader(gl.CreateShader(uint32(stage)))
}

func (b *Backend) ShaderSource(s gli.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (b *Backend) CompileShader(s gli.Shader) bool {
	gl.CompileShader(uint32(s))
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (b *Backend) ShaderInfoLog(s gli.Shader) string {
	buf := make([]uint8, gli.MaxInfoLogLength)
	var n int32
	gl.GetShaderInfoLog(uint32(s), int32(len(buf)), &n, &buf[0])
	return gli.TruncateInfoLog(string(buf[:n]))
}

func (b *Backend) DeleteShader(s gli.Shader) {
	gl.DeleteShader(uint32(s))
}

func (b *Backend) CreateProgram() gli.Program {
	return gli.Program(gl.CreateProgram())
}

func (b *Backend) AttachShader(p gli.Program, s gli.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (b *Backend) DetachShader(p gli.Program, s gli.Shader) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (b *Backend) LinkProgram(p gli.Program) bool {
	gl.LinkProgram(uint32(p))
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (b *Backend) ProgramInfoLog(p gli.Program) string {
	buf := make([]uint8, gli.MaxInfoLogLength)
	var n int32
	gl.GetProgramInfoLog(uint32(p), int32(len(buf)), &n, &buf[0])
	return gli.TruncateInfoLog(string(buf[:n]))
}

func (b *Backend) UseProgram(p gli.Program) {
	gl.UseProgram(uint32(p))
}

func (b *Backend) DeleteProgram(p gli.Program) {
	gl.DeleteProgram(uint32(p))
}

func (b *Backend) ActiveUniformCount(p gli.Program) uint32 {
	var count int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_UNIFORMS, &count)
	return uint32(count)
}

func (b *Backend) ActiveUniform(p gli.Program, index uint32) gli.ActiveInfo {
	buf := make([]uint8, gli.MaxNameLength)
	var n, size int32
	var typ uint32
	gl.GetActiveUniform(uint32(p), index, int32(len(buf)), &n, &size, &typ, &buf[0])
	return gli.ActiveInfo{Name: string(buf[:n]), Size: size, Type: gli.Enum(typ)}
}

func (b *Backend) UniformLocation(p gli.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (b *Backend) ActiveAttribCount(p gli.Program) uint32 {
	var count int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTES, &count)
	return uint32(count)
}

func (b *Backend) ActiveAttrib(p gli.Program, index uint32) gli.ActiveInfo {
	buf := make([]uint8, gli.MaxNameLength)
	var n, size int32
	var typ uint32
	gl.GetActiveAttrib(uint32(p), index, int32(len(buf)), &n, &size, &typ, &buf[0])
	return gli.ActiveInfo{Name: string(buf[:n]), Size: size, Type: gli.Enum(typ)}
}

func (b *Backend) AttribLocation(p gli.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (b *Backend) CreateBuffer() gli.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return gli.Buffer(vbo)
}

func (b *Backend) BindArrayBuffer(buf gli.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
}

func (b *Backend) BindElementArrayBuffer(buf gli.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(buf))
}

func (b *Backend) BufferArrayData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (b *Backend) BufferElementData(data []uint16) {
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

func (b *Backend) DeleteBuffer(buf gli.Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (b *Backend) CreateVertexArray() gli.VertexArray {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return gli.VertexArray(vao)
}

func (b *Backend) BindVertexArray(va gli.VertexArray) {
	gl.BindVertexArray(uint32(va))
}

func (b *Backend) DeleteVertexArray(va gli.VertexArray) {
	id := uint32(va)
	gl.DeleteVertexArrays(1, &id)
}

func (b *Backend) VertexAttribPointer(location uint32, size int32, typ gli.Enum, normalized bool, stride, offset int32) {
	gl.VertexAttribPointer(location, size, uint32(typ), normalized, stride, gl.PtrOffset(int(offset)))
}

func (b *Backend) EnableVertexAttribArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

func (b *Backend) DrawArraysTriangles(count int32) {
	gl.DrawArrays(gl.TRIANGLES, 0, count)
}

func (b *Backend) DrawElementsTriangles(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *Backend) Clear(mask gli.Enum) {
	gl.Clear(uint32(mask))
}

func (b *Backend) CreateTexture() gli.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return gli.Texture(t)
}

func (b *Backend) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (b *Backend) BindTexture2D(t gli.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (b *Backend) TexParameter2D(param, value gli.Enum) {
	gl.TexParameteri(gl.TEXTURE_2D, uint32(param), int32(value))
}

func (b *Backend) TexImage2D(internalFormat gli.Enum, width, height int32, format gli.Enum, data []byte) {
	var pixels unsafe.Pointer
	if len(data) > 0 {
		pixels = gl.Ptr(data)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(internalFormat), width, height, 0, uint32(format), gl.UNSIGNED_BYTE, pixels)
}

func (b *Backend) GenerateMipmap2D() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (b *Backend) DeleteTexture(t gli.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (b *Backend) Uniform1f(location uint32, x float32) {
	gl.Uniform1f(int32(location), x)
}

func (b *Backend) Uniform2f(location uint32, x, y float32) {
	gl.Uniform2f(int32(location), x, y)
}

func (b *Backend) Uniform3f(location uint32, x, y, z float32) {
	gl.Uniform3f(int32(location), x, y, z)
}

func (b *Backend) Uniform4f(location uint32, x, y, z, w float32) {
	gl.Uniform4f(int32(location), x, y, z, w)
}

func (b *Backend) Uniform1i(location uint32, x int32) {
	gl.Uniform1i(int32(location), x)
}

func (b *Backend) Uniform2i(location uint32, x, y int32) {
	gl.Uniform2i(int32(location), x, y)
}

func (b *Backend) Uniform3i(location uint32, x, y, z int32) {
	gl.Uniform3i(int32(location), x, y, z)
}

func (b *Backend) Uniform4i(location uint32, x, y, z, w int32) {
	gl.Uniform4i(int32(location), x, y, z, w)
}

// ReadPixelsRGBA reads a rectangle of the current read framebuffer as tightly
// packed RGBA bytes, bottom row first.
func (b *Backend) ReadPixelsRGBA(x, y, width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
