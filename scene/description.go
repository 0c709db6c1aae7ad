// Package scene loads a YAML description of programs, textures and nodes and
// builds the matching GPU resources.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Description is the decoded form of a scene file.
type Description struct {
	Clear    []float32     `yaml:"clear"` // RGBA clear color (default opaque black)
	Programs []ProgramSpec `yaml:"programs"`
	Textures []TextureSpec `yaml:"textures"`
	Nodes    []NodeSpec    `yaml:"nodes"`
}

type ProgramSpec struct {
	Name      string `yaml:"name"`
	Translate bool   `yaml:"translate"` // sources are WebGL2 GLSL to be translated
	Vertex    string `yaml:"vertex"`
	Fragment  string `yaml:"fragment"`
}

type TextureSpec struct {
	Name   string `yaml:"name"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Pixels []int  `yaml:"pixels"` // RGBA, 4 bytes per pixel, bottom row first
	Wrap   string `yaml:"wrap"`   // repeat, clamp or mirror
	Filter string `yaml:"filter"` // nearest, linear or mipmap
}

type NodeSpec struct {
	Program    string                 `yaml:"program"`
	Attributes []AttributeSpec        `yaml:"attributes"`
	Vertices   []float32              `yaml:"vertices"`
	Indices    []uint16               `yaml:"indices"`
	Uniforms   map[string]UniformSpec `yaml:"uniforms"`
}

// AttributeSpec names one vertex attribute, in interleaved order. It is
// written either as a bare name or as {name: a_color, normalized: true}.
type AttributeSpec struct {
	Name       string `yaml:"name"`
	Normalized bool   `yaml:"normalized"`
}

// UnmarshalYAML implements yaml.Unmarshaler for AttributeSpec.
func (a *AttributeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&a.Name)
	}
	type plain AttributeSpec
	return value.Decode((*plain)(a))
}

// UniformSpec is a uniform value: 1 to 4 floats, or {texture: name}.
type UniformSpec struct {
	Floats  []float32
	Texture string
}

// UnmarshalYAML implements yaml.Unmarshaler for UniformSpec.
func (u *UniformSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var f float32
		if err := value.Decode(&f); err != nil {
			return err
		}
		u.Floats = []float32{f}
	case yaml.SequenceNode:
		if err := value.Decode(&u.Floats); err != nil {
			return err
		}
		if len(u.Floats) < 1 || len(u.Floats) > 4 {
			return fmt.Errorf("line %d: uniform needs 1 to 4 components, got %d", value.Line, len(u.Floats))
		}
	case yaml.MappingNode:
		var ref struct {
			Texture string `yaml:"texture"`
		}
		if err := value.Decode(&ref); err != nil {
			return err
		}
		if ref.Texture == "" {
			return fmt.Errorf("line %d: texture reference has no name", value.Line)
		}
		u.Texture = ref.Texture
	default:
		return fmt.Errorf("line %d: unsupported uniform value", value.Line)
	}
	return nil
}

// Parse decodes and validates a scene description.
func Parse(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Validate checks cross references and data sizes without touching the GPU.
func (d *Description) Validate() error {
	if n := len(d.Clear); n != 0 && n != 4 {
		return fmt.Errorf("scene: clear color needs 4 components, got %d", n)
	}

	programs := make(map[string]bool, len(d.Programs))
	for i, p := range d.Programs {
		if p.Name == "" {
			return fmt.Errorf("scene: program %d has no name", i)
		}
		if programs[p.Name] {
			return fmt.Errorf("scene: duplicate program %q", p.Name)
		}
		if p.Vertex == "" || p.Fragment == "" {
			return fmt.Errorf("scene: program %q needs vertex and fragment sources", p.Name)
		}
		programs[p.Name] = true
	}

	textures := make(map[string]bool, len(d.Textures))
	for i, t := range d.Textures {
		if t.Name == "" {
			return fmt.Errorf("scene: texture %d has no name", i)
		}
		if textures[t.Name] {
			return fmt.Errorf("scene: duplicate texture %q", t.Name)
		}
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("scene: texture %q has invalid size %dx%d", t.Name, t.Width, t.Height)
		}
		if want := int(t.Width) * int(t.Height) * 4; len(t.Pixels) != want {
			return fmt.Errorf("scene: texture %q has %d pixel bytes, want %d", t.Name, len(t.Pixels), want)
		}
		for _, v := range t.Pixels {
			if v < 0 || v > 255 {
				return fmt.Errorf("scene: texture %q has pixel value %d out of range", t.Name, v)
			}
		}
		textures[t.Name] = true
	}

	for i, n := range d.Nodes {
		if !programs[n.Program] {
			return fmt.Errorf("scene: node %d: unknown program %q", i, n.Program)
		}
		for name, u := range n.Uniforms {
			if u.Texture != "" && !textures[u.Texture] {
				return fmt.Errorf("scene: node %d: uniform %q references unknown texture %q", i, name, u.Texture)
			}
		}
	}
	return nil
}

// ClearColor returns the clear color, defaulting to opaque black.
func (d *Description) ClearColor() [4]float32 {
	if len(d.Clear) != 4 {
		return [4]float32{0, 0, 0, 1}
	}
	return [4]float32{d.Clear[0], d.Clear[1], d.Clear[2], d.Clear[3]}
}
