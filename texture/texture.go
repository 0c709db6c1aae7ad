// Package texture wraps a single 2D texture object.
package texture

import (
	"image"
	"image/draw"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/uniforms"
)

// Texture owns one 2D texture. It is created with a 1x1 transparent placeholder
// so it can be bound before real pixel data arrives.
type Texture struct {
	backend gli.Backend
	handle  gli.Texture
	width   int32
	height  int32

	minFilter gli.Enum
}

// New allocates the texture with edge-clamped wrap and linear filtering.
// The new texture is left bound to the active unit.
func New(b gli.Backend) *Texture {
	t := &Texture{backend: b, handle: b.CreateTexture(), width: 1, height: 1, minFilter: gli.LINEAR}
	b.BindTexture2D(t.handle)
	b.TexParameter2D(gli.TEXTURE_WRAP_S, gli.CLAMP_TO_EDGE)
	b.TexParameter2D(gli.TEXTURE_WRAP_T, gli.CLAMP_TO_EDGE)
	b.TexParameter2D(gli.TEXTURE_MIN_FILTER, gli.LINEAR)
	b.TexParameter2D(gli.TEXTURE_MAG_FILTER, gli.LINEAR)
	b.TexImage2D(gli.RGBA, 1, 1, gli.RGBA, []byte{0, 0, 0, 0})
	return t
}

func (t *Texture) SetWrapMode(wrapS, wrapT gli.Enum) {
	t.backend.BindTexture2D(t.handle)
	t.backend.TexParameter2D(gli.TEXTURE_WRAP_S, wrapS)
	t.backend.TexParameter2D(gli.TEXTURE_WRAP_T, wrapT)
}

// SetFilterMode sets the minification and magnification filters. Mipmap
// minification filters also regenerate the mipmap chain.
func (t *Texture) SetFilterMode(minFilter, magFilter gli.Enum) {
	t.backend.BindTexture2D(t.handle)
	t.backend.TexParameter2D(gli.TEXTURE_MIN_FILTER, minFilter)
	t.backend.TexParameter2D(gli.TEXTURE_MAG_FILTER, magFilter)
	t.minFilter = minFilter
	if isMipmapFilter(minFilter) {
		t.backend.GenerateMipmap2D()
	}
}

func isMipmapFilter(f gli.Enum) bool {
	return f == gli.NEAREST_MIPMAP_NEAREST || f == gli.LINEAR_MIPMAP_LINEAR
}

// SetFromBytes replaces the pixel data and rebuilds the mipmap chain when a
// mipmap minification filter is in use. The caller is responsible for data
// holding width*height pixels of the given format; nothing is validated here.
func (t *Texture) SetFromBytes(internalFormat gli.Enum, width, height int32, format gli.Enum, data []byte) {
	t.backend.BindTexture2D(t.handle)
	t.backend.TexImage2D(internalFormat, width, height, format, data)
	if isMipmapFilter(t.minFilter) {
		t.backend.GenerateMipmap2D()
	}
	t.width = width
	t.height = height
}

// SetFromImage converts img to RGBA and uploads it.
func (t *Texture) SetFromImage(img image.Image) {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*rgba.Rect.Dx() || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	size := rgba.Rect.Size()
	t.SetFromBytes(gli.RGBA8, int32(size.X), int32(size.Y), gli.RGBA, rgba.Pix)
}

// BindToUnit binds the texture to texture unit TEXTURE0+unit.
func (t *Texture) BindToUnit(unit uint32) {
	t.backend.ActiveTexture(unit)
	t.backend.BindTexture2D(t.handle)
}

// AsUniformValue returns a value that samples this texture when set on a Node.
func (t *Texture) AsUniformValue() uniforms.Value {
	return uniforms.Texture2D{Handle: t.handle}
}

func (t *Texture) Width() int32        { return t.width }
func (t *Texture) Height() int32       { return t.height }
func (t *Texture) Handle() gli.Texture { return t.handle }

// Destroy deletes the texture object.
func (t *Texture) Destroy() {
	if t.handle == 0 {
		return
	}
	t.backend.DeleteTexture(t.handle)
	t.handle = 0
}

// ParseWrapMode converts a wrap name ("repeat", "clamp", "mirror") to its
// GL constant. Unknown names fall back to REPEAT.
func ParseWrapMode(wrap string) gli.Enum {
	switch wrap {
	case "repeat":
		return gli.REPEAT
	case "clamp":
		return gli.CLAMP_TO_EDGE
	case "mirror":
		return gli.MIRRORED_REPEAT
	default:
		return gli.REPEAT
	}
}

// ParseFilterMode converts a filter name ("nearest", "linear", "mipmap") to
// minification and magnification constants. Unknown names mean linear.
func ParseFilterMode(filter string) (minFilter, magFilter gli.Enum) {
	switch filter {
	case "mipmap":
		return gli.LINEAR_MIPMAP_LINEAR, gli.LINEAR
	case "linear":
		return gli.LINEAR, gli.LINEAR
	case "nearest":
		return gli.NEAREST, gli.NEAREST
	default:
		return gli.LINEAR, gli.LINEAR
	}
}
