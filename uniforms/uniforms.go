// Package uniforms holds the values a Node can assign to shader uniforms and
// the dispatcher that turns a value into the matching upload call.
package uniforms

import "github.com/richinsley/gllite/gli"

// Value is one of Float, FloatVec2, FloatVec3, FloatVec4 or Texture2D.
type Value interface {
	isValue()
}

type (
	Float     float32
	FloatVec2 [2]float32
	FloatVec3 [3]float32
	FloatVec4 [4]float32

	// Texture2D references a texture object. It is bound to a texture unit
	// by the Node at draw time; Upload ignores it.
	Texture2D struct {
		Handle gli.Texture
	}
)

func (Float) isValue()     {}
func (FloatVec2) isValue() {}
func (FloatVec3) isValue() {}
func (FloatVec4) isValue() {}
func (Texture2D) isValue() {}

func Vec2(x, y float32) FloatVec2       { return FloatVec2{x, y} }
func Vec3(x, y, z float32) FloatVec3    { return FloatVec3{x, y, z} }
func Vec4(x, y, z, w float32) FloatVec4 { return FloatVec4{x, y, z, w} }

// FromFloats picks the variant matching the number of components (1 to 4).
// It returns false for any other length.
func FromFloats(v []float32) (Value, bool) {
	switch len(v) {
	case 1:
		return Float(v[0]), true
	case 2:
		return FloatVec2{v[0], v[1]}, true
	case 3:
		return FloatVec3{v[0], v[1], v[2]}, true
	case 4:
		return FloatVec4{v[0], v[1], v[2], v[3]}, true
	default:
		return nil, false
	}
}

// Upload sends v to the uniform at location of the currently active program.
func Upload(b gli.Backend, location uint32, v Value) {
	switch v := v.(type) {
	case Float:
		b.Uniform1f(location, float32(v))
	case FloatVec2:
		b.Uniform2f(location, v[0], v[1])
	case FloatVec3:
		b.Uniform3f(location, v[0], v[1], v[2])
	case FloatVec4:
		b.Uniform4f(location, v[0], v[1], v[2], v[3])
	case Texture2D:
		// texture units are assigned by the caller
	}
}
