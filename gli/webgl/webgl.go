//go:build js && wasm

// Package webgl implements gli.Backend on a browser WebGL2 rendering context.
//
// WebGL hands out JavaScript objects rather than integers, so the backend keeps
// a handle table: every created object is stored at a slot and the slot index is
// the gli handle. Uniform locations live in a separate table keyed by the
// program they were queried from and are dropped when that program is deleted.
package webgl

import (
	"errors"
	"syscall/js"
	"unsafe"

	"github.com/richinsley/gllite/gli"
)

type Backend struct {
	ctx        js.Value
	uint8Array js.Value

	// objects[0] is always null so the zero handle means "none".
	objects   []js.Value
	free      []uint32
	locations *locationTable[js.Value]
}

var _ gli.Backend = (*Backend)(nil)

// New acquires a WebGL2 context from the given canvas element.
func New(canvas js.Value) (*Backend, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, errors.New("webgl: canvas is not defined")
	}
	ctx := canvas.Call("getContext", "webgl2")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, errors.New("webgl: webgl2 context not supported")
	}
	return &Backend{
		ctx:        ctx,
		uint8Array: js.Global().Get("Uint8Array"),
		objects:    []js.Value{js.Null()},
		locations:  newLocationTable[js.Value](),
	}, nil
}

func (b *Backend) store(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	if n := len(b.free); n > 0 {
		h := b.free[n-1]
		b.free = b.free[:n-1]
		b.objects[h] = v
		return h
	}
	b.objects = append(b.objects, v)
	return uint32(len(b.objects) - 1)
}

func (b *Backend) get(h uint32) js.Value {
	if h == 0 || int(h) >= len(b.objects) {
		return js.Null()
	}
	return b.objects[h]
}

func (b *Backend) release(h uint32) js.Value {
	v := b.get(h)
	if h != 0 && int(h) < len(b.objects) {
		b.objects[h] = js.Null()
		b.free = append(b.free, h)
	}
	return v
}

func (b *Backend) location(loc uint32) js.Value {
	v, ok := b.locations.get(loc)
	if !ok {
		return js.Null()
	}
	return v
}

func (b *Backend) byteArrayOf(data []byte) js.Value {
	arr := b.uint8Array.New(len(data))
	js.CopyBytesToJS(arr, data)
	return arr
}

func (b *Backend) CreateShader(stage gli.ShaderStage) gli.Shader {
	return gli.Shader(b.store(b.ctx.Call("createShader", int(stage))))
}

func (b *Backend) ShaderSource(s gli.Shader, source string) {
	b.ctx.Call("shaderSource", b.get(uint32(s)), source)
}

func (b *Backend) CompileShader(s gli.Shader) bool {
	sh := b.get(uint32(s))
	b.ctx.Call("compileShader", sh)
	return b.ctx.Call("getShaderParameter", sh, b.ctx.Get("COMPILE_STATUS")).Truthy()
}

func (b *Backend) ShaderInfoLog(s gli.Shader) string {
	return gli.TruncateInfoLog(b.ctx.Call("getShaderInfoLog", b.get(uint32(s))).String())
}

func (b *Backend) DeleteShader(s gli.Shader) {
	b.ctx.Call("deleteShader", b.release(uint32(s)))
}

func (b *Backend) CreateProgram() gli.Program {
	return gli.Program(b.store(b.ctx.Call("createProgram")))
}

func (b *Backend) AttachShader(p gli.Program, s gli.Shader) {
	b.ctx.Call("attachShader", b.get(uint32(p)), b.get(uint32(s)))
}

func (b *Backend) DetachShader(p gli.Program, s gli.Shader) {
	b.ctx.Call("detachShader", b.get(uint32(p)), b.get(uint32(s)))
}

func (b *Backend) LinkProgram(p gli.Program) bool {
	prog := b.get(uint32(p))
	b.ctx.Call("linkProgram", prog)
	return b.ctx.Call("getProgramParameter", prog, b.ctx.Get("LINK_STATUS")).Truthy()
}

func (b *Backend) ProgramInfoLog(p gli.Program) string {
	return gli.TruncateInfoLog(b.ctx.Call("getProgramInfoLog", b.get(uint32(p))).String())
}

func (b *Backend) UseProgram(p gli.Program) {
	b.ctx.Call("useProgram", b.get(uint32(p)))
}

func (b *Backend) DeleteProgram(p gli.Program) {
	b.locations.drop(uint32(p))
	b.ctx.Call("deleteProgram", b.release(uint32(p)))
}

func (b *Backend) ActiveUniformCount(p gli.Program) uint32 {
	return uint32(b.ctx.Call("getProgramParameter", b.get(uint32(p)), b.ctx.Get("ACTIVE_UNIFORMS")).Int())
}

func (b *Backend) ActiveUniform(p gli.Program, index uint32) gli.ActiveInfo {
	return activeInfo(b.ctx.Call("getActiveUniform", b.get(uint32(p)), int(index)))
}

func (b *Backend) UniformLocation(p gli.Program, name string) int32 {
	loc := b.ctx.Call("getUniformLocation", b.get(uint32(p)), name)
	if loc.IsNull() {
		return gli.InactiveLocation
	}
	return int32(b.locations.add(uint32(p), loc))
}

func (b *Backend) ActiveAttribCount(p gli.Program) uint32 {
	return uint32(b.ctx.Call("getProgramParameter", b.get(uint32(p)), b.ctx.Get("ACTIVE_ATTRIBUTES")).Int())
}

func (b *Backend) ActiveAttrib(p gli.Program, index uint32) gli.ActiveInfo {
	return activeInfo(b.ctx.Call("getActiveAttrib", b.get(uint32(p)), int(index)))
}

func (b *Backend) AttribLocation(p gli.Program, name string) int32 {
	return int32(b.ctx.Call("getAttribLocation", b.get(uint32(p)), name).Int())
}

func activeInfo(v js.Value) gli.ActiveInfo {
	if v.IsNull() {
		return gli.ActiveInfo{}
	}
	return gli.ActiveInfo{
		Name: gli.TruncateName(v.Get("name").String()),
		Size: int32(v.Get("size").Int()),
		Type: gli.Enum(v.Get("type").Int()),
	}
}

func (b *Backend) CreateBuffer() gli.Buffer {
	return gli.Buffer(b.store(b.ctx.Call("createBuffer")))
}

func (b *Backend) BindArrayBuffer(buf gli.Buffer) {
	b.ctx.Call("bindBuffer", b.ctx.Get("ARRAY_BUFFER"), b.get(uint32(buf)))
}

func (b *Backend) BindElementArrayBuffer(buf gli.Buffer) {
	b.ctx.Call("bindBuffer", b.ctx.Get("ELEMENT_ARRAY_BUFFER"), b.get(uint32(buf)))
}

func (b *Backend) BufferArrayData(data []float32) {
	var raw []byte
	if len(data) > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	}
	b.ctx.Call("bufferData", b.ctx.Get("ARRAY_BUFFER"), b.byteArrayOf(raw), b.ctx.Get("STATIC_DRAW"))
}

func (b *Backend) BufferElementData(data []uint16) {
	var raw []byte
	if len(data) > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
	}
	b.ctx.Call("bufferData", b.ctx.Get("ELEMENT_ARRAY_BUFFER"), b.byteArrayOf(raw), b.ctx.Get("STATIC_DRAW"))
}

func (b *Backend) DeleteBuffer(buf gli.Buffer) {
	b.ctx.Call("deleteBuffer", b.release(uint32(buf)))
}

func (b *Backend) CreateVertexArray() gli.VertexArray {
	return gli.VertexArray(b.store(b.ctx.Call("createVertexArray")))
}

func (b *Backend) BindVertexArray(va gli.VertexArray) {
	b.ctx.Call("bindVertexArray", b.get(uint32(va)))
}

func (b *Backend) DeleteVertexArray(va gli.VertexArray) {
	b.ctx.Call("deleteVertexArray", b.release(uint32(va)))
}

func (b *Backend) VertexAttribPointer(location uint32, size int32, typ gli.Enum, normalized bool, stride, offset int32) {
	b.ctx.Call("vertexAttribPointer", int(location), int(size), int(typ), normalized, int(stride), int(offset))
}

func (b *Backend) EnableVertexAttribArray(location uint32) {
	b.ctx.Call("enableVertexAttribArray", int(location))
}

func (b *Backend) DrawArraysTriangles(count int32) {
	b.ctx.Call("drawArrays", int(gli.TRIANGLES), 0, int(count))
}

func (b *Backend) DrawElementsTriangles(count int32) {
	b.ctx.Call("drawElements", int(gli.TRIANGLES), int(count), int(gli.UNSIGNED_SHORT), 0)
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	b.ctx.Call("clearColor", r, g, bl, a)
}

func (b *Backend) Clear(mask gli.Enum) {
	b.ctx.Call("clear", int(mask))
}

func (b *Backend) CreateTexture() gli.Texture {
	return gli.Texture(b.store(b.ctx.Call("createTexture")))
}

func (b *Backend) ActiveTexture(unit uint32) {
	b.ctx.Call("activeTexture", int(gli.TEXTURE0)+int(unit))
}

func (b *Backend) BindTexture2D(t gli.Texture) {
	b.ctx.Call("bindTexture", int(gli.TEXTURE_2D), b.get(uint32(t)))
}

func (b *Backend) TexParameter2D(param, value gli.Enum) {
	b.ctx.Call("texParameteri", int(gli.TEXTURE_2D), int(param), int(value))
}

func (b *Backend) TexImage2D(internalFormat gli.Enum, width, height int32, format gli.Enum, data []byte) {
	pixels := js.Null()
	if len(data) > 0 {
		pixels = b.byteArrayOf(data)
	}
	b.ctx.Call("texImage2D", int(gli.TEXTURE_2D), 0, int(internalFormat), int(width), int(height), 0, int(format), int(gli.UNSIGNED_BYTE), pixels)
}

func (b *Backend) GenerateMipmap2D() {
	b.ctx.Call("generateMipmap", int(gli.TEXTURE_2D))
}

func (b *Backend) DeleteTexture(t gli.Texture) {
	b.ctx.Call("deleteTexture", b.release(uint32(t)))
}

func (b *Backend) Uniform1f(location uint32, x float32) {
	b.ctx.Call("uniform1f", b.location(location), x)
}

func (b *Backend) Uniform2f(location uint32, x, y float32) {
	b.ctx.Call("uniform2f", b.location(location), x, y)
}

func (b *Backend) Uniform3f(location uint32, x, y, z float32) {
	b.ctx.Call("uniform3f", b.location(location), x, y, z)
}

func (b *Backend) Uniform4f(location uint32, x, y, z, w float32) {
	b.ctx.Call("uniform4f", b.location(location), x, y, z, w)
}

func (b *Backend) Uniform1i(location uint32, x int32) {
	b.ctx.Call("uniform1i", b.location(location), x)
}

func (b *Backend) Uniform2i(location uint32, x, y int32) {
	b.ctx.Call("uniform2i", b.location(location), x, y)
}

func (b *Backend) Uniform3i(location uint32, x, y, z int32) {
	b.ctx.Call("uniform3i", b.location(location), x, y, z)
}

func (b *Backend) Uniform4i(location uint32, x, y, z, w int32) {
	b.ctx.Call("uniform4i", b.location(location), x, y, z, w)
}
