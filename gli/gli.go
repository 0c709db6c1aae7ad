// Package gli defines the primitive graphics calls the rest of gllite is built on.
//
// A Backend is implemented once per graphics-context flavor: gli/glcore drives a
// desktop OpenGL 4.1 core context through go-gl, gli/webgl drives a WebGL2
// context through syscall/js. Every driver object crosses this boundary as a
// small integer handle; the component holding a handle owns its lifetime.
package gli

type (
	Enum        uint32
	ShaderStage Enum

	Shader      uint32
	Program     uint32
	Buffer      uint32
	VertexArray uint32
	Texture     uint32
)

const (
	// InactiveLocation is returned by UniformLocation and AttribLocation for
	// names the driver does not consider active.
	InactiveLocation int32 = -1

	// MaxInfoLogLength bounds compile and link diagnostics.
	MaxInfoLogLength = 512
	// MaxNameLength bounds reflected attribute and uniform names.
	MaxNameLength = 128
)

// ActiveInfo is one row of the driver's active attribute or uniform table.
type ActiveInfo struct {
	Name string
	Size int32
	Type Enum
}

// Backend is the capability surface consumed by Program, Geometry, Texture and Node.
type Backend interface {
	CreateShader(stage ShaderStage) Shader
	ShaderSource(s Shader, source string)
	// CompileShader reports whether compilation succeeded; the diagnostic
	// text is available from ShaderInfoLog.
	CompileShader(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	ActiveUniformCount(p Program) uint32
	ActiveUniform(p Program, index uint32) ActiveInfo
	UniformLocation(p Program, name string) int32
	ActiveAttribCount(p Program) uint32
	ActiveAttrib(p Program, index uint32) ActiveInfo
	AttribLocation(p Program, name string) int32

	CreateBuffer() Buffer
	BindArrayBuffer(b Buffer)
	BindElementArrayBuffer(b Buffer)
	BufferArrayData(data []float32)
	BufferElementData(data []uint16)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)
	VertexAttribPointer(location uint32, size int32, typ Enum, normalized bool, stride, offset int32)
	EnableVertexAttribArray(location uint32)

	DrawArraysTriangles(count int32)
	DrawElementsTriangles(count int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)

	CreateTexture() Texture
	// ActiveTexture selects texture unit TEXTURE0+unit.
	ActiveTexture(unit uint32)
	BindTexture2D(t Texture)
	TexParameter2D(param, value Enum)
	TexImage2D(internalFormat Enum, width, height int32, format Enum, data []byte)
	GenerateMipmap2D()
	DeleteTexture(t Texture)

	Uniform1f(location uint32, x float32)
	Uniform2f(location uint32, x, y float32)
	Uniform3f(location uint32, x, y, z float32)
	Uniform4f(location uint32, x, y, z, w float32)
	Uniform1i(location uint32, x int32)
	Uniform2i(location uint32, x, y int32)
	Uniform3i(location uint32, x, y, z int32)
	Uniform4i(location uint32, x, y, z, w int32)
}

// PixelReader is implemented by backends that can read back the default framebuffer.
type PixelReader interface {
	ReadPixelsRGBA(x, y, width, height int32) []byte
}

// TruncateInfoLog clips a driver diagnostic to MaxInfoLogLength bytes and
// drops any trailing NUL padding.
func TruncateInfoLog(s string) string {
	return truncate(s, MaxInfoLogLength)
}

// TruncateName clips a reflected name to MaxNameLength bytes.
func TruncateName(s string) string {
	return truncate(s, MaxNameLength)
}

func truncate(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return s[:i]
		}
	}
	return s
}

// AttributeSizeAndType maps a reflected attribute type to the component count
// and storage type used when uploading it. Normalized attributes are stored as
// unsigned bytes, everything else as 32-bit floats.
func AttributeSizeAndType(attrType Enum, normalize bool) (int32, Enum) {
	t := FLOAT
	if normalize {
		t = UNSIGNED_BYTE
	}
	switch attrType {
	case FLOAT:
		return 1, t
	case FLOAT_VEC2:
		return 2, t
	case FLOAT_VEC3:
		return 3, t
	case FLOAT_VEC4, FLOAT_MAT2:
		return 4, t
	case FLOAT_MAT3:
		return 9, t
	case FLOAT_MAT4:
		return 16, t
	default:
		return 1, t
	}
}

// SizeOfType returns the byte size of one component of the given storage type.
func SizeOfType(t Enum) int32 {
	switch t {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case FLOAT, INT:
		return 4
	default:
		return 1
	}
}

// StageName returns the lowercase stage name ("vertex", "fragment").
func StageName(stage ShaderStage) string {
	switch stage {
	case VERTEX_SHADER:
		return "vertex"
	case FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}
