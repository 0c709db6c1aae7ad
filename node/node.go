// Package node pairs a shared program with an owned geometry and a set of
// named uniform values, and resolves those values at draw time.
package node

import (
	"github.com/richinsley/gllite/geometry"
	"github.com/richinsley/gllite/program"
	"github.com/richinsley/gllite/uniforms"
)

// Node draws its Geometry with a Program it does not own. The Program must
// outlive every Node created for it.
type Node struct {
	program  *program.Program
	geometry *geometry.Geometry
	uniforms map[string]uniforms.Value
}

// ForProgram creates a Node with an empty Geometry on p's backend.
func ForProgram(p *program.Program) *Node {
	return &Node{
		program:  p,
		geometry: geometry.New(p.Backend()),
		uniforms: make(map[string]uniforms.Value),
	}
}

// AddAttribute appends the program's attribute called name to the vertex
// layout. Names the program does not use are ignored.
func (n *Node) AddAttribute(name string) {
	if a, ok := n.program.Attribute(name); ok {
		n.geometry.AddAttribute(a)
	}
}

// AddNormalizedAttribute is AddAttribute for byte-normalized data.
func (n *Node) AddNormalizedAttribute(name string) {
	if a, ok := n.program.Attribute(name); ok {
		n.geometry.AddNormalizedAttribute(a)
	}
}

func (n *Node) BufferData(values []float32) { n.geometry.BufferData(values) }
func (n *Node) IndexData(indices []uint16)  { n.geometry.IndexData(indices) }

// SetUniform replaces the local value for name. Nothing is uploaded until Draw.
func (n *Node) SetUniform(name string, v uniforms.Value) {
	n.uniforms[name] = v
}

func (n *Node) Uniform(name string) (uniforms.Value, bool) {
	v, ok := n.uniforms[name]
	return v, ok
}

func (n *Node) lookup(reflected string) (uniforms.Value, bool) {
	if v, ok := n.uniforms[reflected]; ok {
		return v, true
	}
	if base := program.BaseName(reflected); base != reflected {
		v, ok := n.uniforms[base]
		return v, ok
	}
	return nil, false
}

// Draw uploads every local value the program declares active, in ascending
// uniform location order, then draws the geometry. Texture values are bound to
// consecutive texture units starting at 0. The active program must be this
// Node's program. Draw returns the number of texture units used.
func (n *Node) Draw() int {
	b := n.program.Backend()
	unit := uint32(0)
	for _, u := range n.program.SortedUniforms() {
		v, ok := n.lookup(u.Name)
		if !ok {
			continue
		}
		if tex, isTex := v.(uniforms.Texture2D); isTex {
			b.ActiveTexture(unit)
			b.BindTexture2D(tex.Handle)
			b.Uniform1i(u.Location, int32(unit))
			unit++
			continue
		}
		uniforms.Upload(b, u.Location, v)
	}
	n.geometry.Draw()
	return int(unit)
}

func (n *Node) Geometry() *geometry.Geometry { return n.geometry }
func (n *Node) Program() *program.Program    { return n.program }

// Destroy releases the Node's geometry. The shared program is left alone.
func (n *Node) Destroy() {
	n.geometry.Destroy()
}
