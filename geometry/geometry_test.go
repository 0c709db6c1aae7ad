package geometry

import (
	"testing"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/gli/gltest"
	"github.com/richinsley/gllite/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	position = program.Attribute{Location: 0, Size: 1, Type: gli.FLOAT_VEC2}
	normal   = program.Attribute{Location: 1, Size: 1, Type: gli.FLOAT_VEC3}
	color    = program.Attribute{Location: 2, Size: 1, Type: gli.FLOAT_VEC4}
)

func TestNewCreatesObjects(t *testing.T) {
	rec := gltest.New()
	New(rec)
	assert.Equal(t, 1, rec.Count("CreateVertexArray"))
	assert.Equal(t, 1, rec.Count("CreateBuffer"))
}

func TestLayoutOffsets(t *testing.T) {
	g := New(gltest.New())
	g.AddAttribute(position)
	g.AddAttribute(normal)

	attrs := g.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, int32(0), attrs[0].Offset)
	assert.Equal(t, int32(8), attrs[0].ByteSize)
	assert.Equal(t, int32(8), attrs[1].Offset)
	assert.Equal(t, int32(12), attrs[1].ByteSize)
	assert.Equal(t, int32(20), g.Stride())
}

func TestNormalizedAttributeUsesBytes(t *testing.T) {
	g := New(gltest.New())
	g.AddAttribute(position)
	g.AddNormalizedAttribute(color)

	attrs := g.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, AttributeInfo{
		Location:  2,
		Size:      4,
		Type:      gli.UNSIGNED_BYTE,
		Normalize: true,
		Offset:    8,
		ByteSize:  4,
	}, attrs[1])
	assert.Equal(t, int32(12), g.Stride())
}

func TestBufferDataRecordsByteLength(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.AddAttribute(position)
	g.BufferData([]float32{0, 1, -1, -1, 1, -1})

	assert.Equal(t, int32(24), g.DataLength())
	assert.Equal(t, int32(3), g.VertexCount())
	up := rec.Calls("BufferArrayData")
	require.Len(t, up, 1)
	assert.Equal(t, []float32{0, 1, -1, -1, 1, -1}, up[0].Args[0])
}

func TestDrawArrays(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.AddAttribute(position)
	g.BufferData([]float32{0, 1, -1, -1, 1, -1})
	g.Draw()

	ptr := rec.Calls("VertexAttribPointer")
	require.Len(t, ptr, 1)
	assert.Equal(t, []any{uint32(0), int32(2), gli.FLOAT, false, int32(8), int32(0)}, ptr[0].Args)
	draws := rec.Calls("DrawArraysTriangles")
	require.Len(t, draws, 1)
	assert.Equal(t, int32(3), draws[0].Args[0])
	assert.Equal(t, 0, rec.Count("DrawElementsTriangles"))
}

func TestInterleavedStrideSharedByAttributes(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.AddAttribute(position)
	g.AddAttribute(normal)
	g.BufferData(make([]float32, 15))
	g.Draw()

	ptr := rec.Calls("VertexAttribPointer")
	require.Len(t, ptr, 2)
	assert.Equal(t, []any{uint32(0), int32(2), gli.FLOAT, false, int32(20), int32(0)}, ptr[0].Args)
	assert.Equal(t, []any{uint32(1), int32(3), gli.FLOAT, false, int32(20), int32(8)}, ptr[1].Args)
	assert.Equal(t, int32(3), rec.Calls("DrawArraysTriangles")[0].Args[0])
}

func TestAttributesBoundOnce(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.AddAttribute(position)
	g.AddAttribute(normal)
	g.BufferData(make([]float32, 15))

	g.Draw()
	g.Draw()
	g.Draw()

	assert.Equal(t, 2, rec.Count("VertexAttribPointer"))
	assert.Equal(t, 2, rec.Count("EnableVertexAttribArray"))
	assert.Equal(t, 3, rec.Count("DrawArraysTriangles"))
}

func TestDrawUnbindsVertexArray(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.AddAttribute(position)
	g.Draw()

	binds := rec.Calls("BindVertexArray")
	require.Len(t, binds, 2)
	assert.NotEqual(t, gli.VertexArray(0), binds[0].Args[0])
	assert.Equal(t, gli.VertexArray(0), binds[1].Args[0])
}

func TestDrawWithoutAttributesDrawsNothing(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.BufferData([]float32{1, 2, 3})
	g.Draw()

	assert.Equal(t, int32(0), g.VertexCount())
	assert.Equal(t, int32(0), rec.Calls("DrawArraysTriangles")[0].Args[0])
}

func TestIndexedDraw(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.AddAttribute(position)
	g.BufferData([]float32{-1, -1, 1, -1, 1, 1, -1, 1})
	g.IndexData([]uint16{0, 1, 2, 0, 2, 3})
	g.Draw()

	assert.Equal(t, int32(6), g.IndexCount())
	assert.Equal(t, 2, rec.Count("CreateBuffer"))
	idx := rec.Calls("BufferElementData")
	require.Len(t, idx, 1)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, idx[0].Args[0])
	draws := rec.Calls("DrawElementsTriangles")
	require.Len(t, draws, 1)
	assert.Equal(t, int32(6), draws[0].Args[0])
	assert.Equal(t, 0, rec.Count("DrawArraysTriangles"))

	// re-upload reuses the element buffer
	g.IndexData([]uint16{0, 1, 2})
	assert.Equal(t, 2, rec.Count("CreateBuffer"))
	assert.Equal(t, int32(3), g.IndexCount())
}

func TestDestroy(t *testing.T) {
	rec := gltest.New()
	g := New(rec)
	g.IndexData([]uint16{0, 1, 2})
	g.Destroy()
	g.Destroy()

	assert.Len(t, rec.Deleted("buffer"), 2)
	assert.Len(t, rec.Deleted("vertexarray"), 1)
}
