// Package geometry owns one interleaved vertex buffer, its attribute layout and
// an optional index buffer.
package geometry

import (
	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/program"
)

// AttributeInfo is one entry of the interleaved vertex layout.
type AttributeInfo struct {
	Location  uint32
	Size      int32 // components per vertex
	Type      gli.Enum
	Normalize bool
	Offset    int32
	ByteSize  int32 // this attribute's own footprint in one vertex record
}

// Geometry holds interleaved vertex data. Attributes must be added in the
// order they appear in each vertex record, before any data is uploaded.
type Geometry struct {
	backend gli.Backend

	attributes  []AttributeInfo
	vbo         gli.Buffer
	vao         gli.VertexArray
	ebo         gli.Buffer
	hasIndices  bool
	indexCount  int32
	dataLength  int32
	totalLength int32
	bound       bool
	destroyed   bool
}

// New creates the vertex array and vertex buffer.
func New(b gli.Backend) *Geometry {
	return &Geometry{
		backend: b,
		vao:     b.CreateVertexArray(),
		vbo:     b.CreateBuffer(),
	}
}

// AddAttribute appends a float attribute to the vertex layout.
func (g *Geometry) AddAttribute(a program.Attribute) {
	g.addAttribute(a, false)
}

// AddNormalizedAttribute appends an attribute stored as unsigned bytes and
// normalized to [0, 1] by the driver.
func (g *Geometry) AddNormalizedAttribute(a program.Attribute) {
	g.addAttribute(a, true)
}

func (g *Geometry) addAttribute(a program.Attribute, normalize bool) {
	size, typ := gli.AttributeSizeAndType(a.Type, normalize)
	byteSize := size * gli.SizeOfType(typ)
	g.attributes = append(g.attributes, AttributeInfo{
		Location:  a.Location,
		Size:      size,
		Type:      typ,
		Normalize: normalize,
		Offset:    g.totalLength,
		ByteSize:  byteSize,
	})
	g.totalLength += byteSize
}

// BufferData uploads interleaved vertex values. It may be called again to
// replace the data as long as the layout stays the same.
func (g *Geometry) BufferData(values []float32) {
	g.backend.BindArrayBuffer(g.vbo)
	g.backend.BufferArrayData(values)
	g.backend.BindArrayBuffer(0)
	g.dataLength = int32(len(values) * 4)
}

// IndexData uploads triangle-list indices. Once set, Draw issues indexed draws.
func (g *Geometry) IndexData(indices []uint16) {
	g.backend.BindVertexArray(g.vao)
	if !g.hasIndices {
		g.ebo = g.backend.CreateBuffer()
		g.hasIndices = true
	}
	g.backend.BindElementArrayBuffer(g.ebo)
	g.backend.BufferElementData(indices)
	g.backend.BindVertexArray(0)
	g.indexCount = int32(len(indices))
}

// bindAttributes points every attribute at the vertex buffer. It runs once,
// with the vertex array bound, on the first Draw.
func (g *Geometry) bindAttributes() {
	g.backend.BindArrayBuffer(g.vbo)
	for _, a := range g.attributes {
		g.backend.VertexAttribPointer(a.Location, a.Size, a.Type, a.Normalize, g.totalLength, a.Offset)
		g.backend.EnableVertexAttribArray(a.Location)
	}
	g.bound = true
}

// Draw issues a triangle-list draw of the uploaded data.
func (g *Geometry) Draw() {
	g.backend.BindVertexArray(g.vao)
	if !g.bound {
		g.bindAttributes()
	}
	if g.hasIndices {
		g.backend.DrawElementsTriangles(g.indexCount)
	} else {
		g.backend.DrawArraysTriangles(g.VertexCount())
	}
	g.backend.BindVertexArray(0)
}

// Stride is the byte length of one interleaved vertex record.
func (g *Geometry) Stride() int32 { return g.totalLength }

// VertexCount is the number of whole vertex records uploaded, or zero when
// no attributes have been added.
func (g *Geometry) VertexCount() int32 {
	if g.totalLength == 0 {
		return 0
	}
	return g.dataLength / g.totalLength
}

// DataLength is the byte length of the last upload.
func (g *Geometry) DataLength() int32 { return g.dataLength }

// IndexCount is the number of indices uploaded, zero without an index buffer.
func (g *Geometry) IndexCount() int32 { return g.indexCount }

// Attributes returns a copy of the vertex layout in add order.
func (g *Geometry) Attributes() []AttributeInfo {
	return append([]AttributeInfo(nil), g.attributes...)
}

// Destroy releases the buffers and vertex array.
func (g *Geometry) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	if g.hasIndices {
		g.backend.DeleteBuffer(g.ebo)
	}
	g.backend.DeleteBuffer(g.vbo)
	g.backend.DeleteVertexArray(g.vao)
}
