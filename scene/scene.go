package scene

import (
	"fmt"
	"log"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/node"
	"github.com/richinsley/gllite/program"
	"github.com/richinsley/gllite/shader"
	"github.com/richinsley/gllite/texture"
	"github.com/richinsley/gllite/uniforms"
)

// Scene holds the resources built from a Description.
type Scene struct {
	backend  gli.Backend
	clear    [4]float32
	programs map[string]*program.Program
	textures map[string]*texture.Texture
	nodes    []*node.Node
}

// Build compiles every program, uploads every texture and creates the nodes.
// tr is applied to programs marked translate; it may be nil when none are.
// On error everything created so far is released.
func Build(b gli.Backend, desc *Description, tr program.Translator) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		backend:  b,
		clear:    desc.ClearColor(),
		programs: make(map[string]*program.Program, len(desc.Programs)),
		textures: make(map[string]*texture.Texture, len(desc.Textures)),
	}

	for _, ps := range desc.Programs {
		p := program.New(b)
		if ps.Translate {
			if tr == nil {
				s.Destroy()
				return nil, fmt.Errorf("scene: program %q needs a shader translator", ps.Name)
			}
			p.SetTranslator(tr)
		}
		p.AddShader(ps.Vertex, gli.VERTEX_SHADER).AddShader(ps.Fragment, gli.FRAGMENT_SHADER)
		if err := p.Compile(); err != nil {
			s.Destroy()
			return nil, fmt.Errorf("scene: program %q: %w", ps.Name, err)
		}
		s.programs[ps.Name] = p
	}

	for _, ts := range desc.Textures {
		t := texture.New(b)
		pixels := make([]byte, len(ts.Pixels))
		for i, v := range ts.Pixels {
			pixels[i] = byte(v)
		}
		t.SetFromBytes(gli.RGBA8, ts.Width, ts.Height, gli.RGBA, pixels)
		if ts.Wrap != "" {
			mode := texture.ParseWrapMode(ts.Wrap)
			t.SetWrapMode(mode, mode)
		}
		if ts.Filter != "" {
			t.SetFilterMode(texture.ParseFilterMode(ts.Filter))
		}
		s.textures[ts.Name] = t
	}

	for i, ns := range desc.Nodes {
		n := node.ForProgram(s.programs[ns.Program])
		for _, a := range ns.Attributes {
			if _, ok := n.Program().Attribute(a.Name); !ok {
				log.Printf("scene: node %d: attribute %q is not active, skipping", i, a.Name)
			}
			if a.Normalized {
				n.AddNormalizedAttribute(a.Name)
			} else {
				n.AddAttribute(a.Name)
			}
		}
		n.BufferData(ns.Vertices)
		if len(ns.Indices) > 0 {
			n.IndexData(ns.Indices)
		}
		for name, us := range ns.Uniforms {
			if us.Texture != "" {
				n.SetUniform(name, s.textures[us.Texture].AsUniformValue())
				continue
			}
			v, ok := uniforms.FromFloats(us.Floats)
			if !ok {
				s.Destroy()
				return nil, fmt.Errorf("scene: node %d: uniform %q has %d components", i, name, len(us.Floats))
			}
			n.SetUniform(name, v)
		}
		s.nodes = append(s.nodes, n)
	}

	b.ClearColor(s.clear[0], s.clear[1], s.clear[2], s.clear[3])
	log.Printf("Scene built: %d programs, %d textures, %d nodes", len(s.programs), len(s.textures), len(s.nodes))
	return s, nil
}

// Draw clears the color buffer and draws every node with its own program.
func (s *Scene) Draw() {
	s.backend.Clear(gli.COLOR_BUFFER_BIT)
	for _, n := range s.nodes {
		n.Program().Activate()
		n.Draw()
	}
}

func (s *Scene) Nodes() []*node.Node { return s.nodes }

func (s *Scene) Program(name string) (*program.Program, bool) {
	p, ok := s.programs[name]
	return p, ok
}

func (s *Scene) Texture(name string) (*texture.Texture, bool) {
	t, ok := s.textures[name]
	return t, ok
}

// Destroy releases nodes first, then the textures and programs they used.
func (s *Scene) Destroy() {
	for _, n := range s.nodes {
		n.Destroy()
	}
	s.nodes = nil
	for name, t := range s.textures {
		t.Destroy()
		delete(s.textures, name)
	}
	for name, p := range s.programs {
		p.Destroy()
		delete(s.programs, name)
	}
}

// Checker describes the built-in demo: a yellow-tinted 2x2 checker on one
// triangle. With translate set, the sources are WebGL2 GLSL marked for
// translation.
func Checker(isGLES, translate bool) *Description {
	pixels := make([]int, len(shader.CheckerPixels))
	for i, v := range shader.CheckerPixels {
		pixels[i] = int(v)
	}
	glesSources := isGLES || translate
	return &Description{
		Clear: []float32{0, 0, 0, 1},
		Programs: []ProgramSpec{{
			Name:      "checker",
			Translate: translate,
			Vertex:    shader.VertexShader(glesSources),
			Fragment:  shader.FragmentShader(glesSources),
		}},
		Textures: []TextureSpec{{
			Name:   "check",
			Width:  2,
			Height: 2,
			Pixels: pixels,
			Wrap:   "repeat",
			Filter: "nearest",
		}},
		Nodes: []NodeSpec{{
			Program:    "checker",
			Attributes: []AttributeSpec{{Name: "a_position"}},
			Vertices:   append([]float32(nil), shader.TriangleVertices...),
			Uniforms: map[string]UniformSpec{
				"color": {Floats: []float32{1, 1, 0, 1}},
				"tex":   {Texture: "check"},
			},
		}},
	}
}
