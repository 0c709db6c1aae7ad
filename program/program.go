// Package program compiles shader stages into a linked program and records
// the attributes and uniforms the driver reports as active.
package program

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/richinsley/gllite/gli"
)

// ErrAlreadyCompiled is the panic value (wrapped) for adding a shader to, or
// compiling, a program that has already been compiled.
var ErrAlreadyCompiled = errors.New("program has already been compiled")

// CompileError carries the driver's diagnostic for a shader stage that failed to compile.
type CompileError struct {
	Stage gli.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", gli.StageName(e.Stage), e.Log)
}

// LinkError carries the driver's diagnostic for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Attribute describes an active vertex input.
type Attribute struct {
	Location uint32
	Size     int32
	Type     gli.Enum
}

// Uniform describes an active uniform.
type Uniform struct {
	Location uint32
	Size     int32
	Type     gli.Enum
}

// NamedUniform pairs a uniform with its reflected name.
type NamedUniform struct {
	Name string
	Uniform
}

// Translator rewrites shader source before it reaches the driver. Translators
// that rename identifiers return the original to translated name table so
// reflection can report entries under the names the source was written with.
// A nil table means names are unchanged.
type Translator interface {
	Translate(source string, stage gli.ShaderStage) (string, map[string]string, error)
}

type pendingShader struct {
	stage  gli.ShaderStage
	source string
}

// Program is built once and then shared read-only by every Node drawing with it.
type Program struct {
	backend    gli.Backend
	translator Translator

	attributes map[string]Attribute
	uniforms   map[string]Uniform
	sorted     []NamedUniform
	original   map[string]string // translated name -> source name

	handle  gli.Program
	linked  bool
	used    bool // Compile has been called, successfully or not
	pending []pendingShader
}

func New(b gli.Backend) *Program {
	return &Program{
		backend:    b,
		attributes: make(map[string]Attribute),
		uniforms:   make(map[string]Uniform),
	}
}

// AddShader queues source for the given stage. Stages are compiled in the order added.
func (p *Program) AddShader(source string, stage gli.ShaderStage) *Program {
	if p.used {
		panic(fmt.Errorf("cannot add shader: %w", ErrAlreadyCompiled))
	}
	p.pending = append(p.pending, pendingShader{stage: stage, source: source})
	return p
}

// SetTranslator installs a source translator applied to every stage at compile time.
func (p *Program) SetTranslator(t Translator) *Program {
	if p.used {
		panic(fmt.Errorf("cannot set translator: %w", ErrAlreadyCompiled))
	}
	p.translator = t
	return p
}

// Compile compiles every queued stage, links them and reflects the active
// attributes and uniforms. It may be called exactly once; a second call panics.
// Driver failures come back as *CompileError or *LinkError.
func (p *Program) Compile() error {
	if p.used {
		panic(fmt.Errorf("cannot compile: %w", ErrAlreadyCompiled))
	}
	p.used = true
	pending := p.pending
	p.pending = nil

	compiled := make([]gli.Shader, 0, len(pending))
	deleteAll := func() {
		for _, s := range compiled {
			p.backend.DeleteShader(s)
		}
	}

	for _, ps := range pending {
		source := ps.source
		if p.translator != nil {
			translated, names, err := p.translator.Translate(source, ps.stage)
			if err != nil {
				deleteAll()
				return fmt.Errorf("failed to translate %s shader: %w", gli.StageName(ps.stage), err)
			}
			source = translated
			p.recordNames(names)
		}
		shader := p.backend.CreateShader(ps.stage)
		compiled = append(compiled, shader)
		p.backend.ShaderSource(shader, source)
		if !p.backend.CompileShader(shader) {
			logText := p.backend.ShaderInfoLog(shader)
			deleteAll()
			return &CompileError{Stage: ps.stage, Log: logText}
		}
	}

	handle := p.backend.CreateProgram()
	for _, s := range compiled {
		p.backend.AttachShader(handle, s)
	}
	if !p.backend.LinkProgram(handle) {
		logText := p.backend.ProgramInfoLog(handle)
		p.backend.DeleteProgram(handle)
		deleteAll()
		return &LinkError{Log: logText}
	}
	for _, s := range compiled {
		p.backend.DetachShader(handle, s)
		p.backend.DeleteShader(s)
	}

	p.handle = handle
	p.linked = true
	p.extractUniforms()
	p.extractAttributes()
	log.Printf("Program %d linked: %d active uniforms, %d active attributes", handle, len(p.sorted), len(p.attributes))
	return nil
}

// MustCompile is Compile for callers that treat driver failures as fatal.
func (p *Program) MustCompile() *Program {
	if err := p.Compile(); err != nil {
		panic(err)
	}
	return p
}

func (p *Program) recordNames(names map[string]string) {
	if len(names) == 0 {
		return
	}
	if p.original == nil {
		p.original = make(map[string]string, len(names))
	}
	for name, mapped := range names {
		p.original[mapped] = name
	}
}

// sourceName maps a reflected name back to the name used in the shader
// source, keeping any "[0]" array suffix.
func (p *Program) sourceName(reflected string) string {
	if name, ok := p.original[reflected]; ok {
		return name
	}
	base, isArray := strings.CutSuffix(reflected, "[0]")
	name, ok := p.original[base]
	if !ok {
		return reflected
	}
	if isArray {
		return name + "[0]"
	}
	return name
}

func (p *Program) extractUniforms() {
	count := p.backend.ActiveUniformCount(p.handle)
	for i := uint32(0); i < count; i++ {
		info := p.backend.ActiveUniform(p.handle, i)
		location := p.backend.UniformLocation(p.handle, info.Name)
		if location < 0 {
			continue
		}
		name := p.sourceName(info.Name)
		u := Uniform{Location: uint32(location), Size: info.Size, Type: info.Type}
		p.uniforms[name] = u
		p.sorted = append(p.sorted, NamedUniform{Name: name, Uniform: u})
	}
	sort.SliceStable(p.sorted, func(i, j int) bool {
		if p.sorted[i].Location != p.sorted[j].Location {
			return p.sorted[i].Location < p.sorted[j].Location
		}
		return p.sorted[i].Name < p.sorted[j].Name
	})
}

func (p *Program) extractAttributes() {
	count := p.backend.ActiveAttribCount(p.handle)
	for i := uint32(0); i < count; i++ {
		info := p.backend.ActiveAttrib(p.handle, i)
		location := p.backend.AttribLocation(p.handle, info.Name)
		if location < 0 {
			continue
		}
		p.attributes[p.sourceName(info.Name)] = Attribute{Location: uint32(location), Size: info.Size, Type: info.Type}
	}
}

// Activate makes this the current program. It does nothing before a successful Compile.
func (p *Program) Activate() {
	if !p.linked {
		return
	}
	p.backend.UseProgram(p.handle)
}

// Attribute looks up an active attribute by name.
func (p *Program) Attribute(name string) (Attribute, bool) {
	a, ok := p.attributes[name]
	return a, ok
}

// Uniform looks up an active uniform by name. Array uniforms, which drivers
// report as "name[0]", are also found by their bare name.
func (p *Program) Uniform(name string) (Uniform, bool) {
	if u, ok := p.uniforms[name]; ok {
		return u, true
	}
	u, ok := p.uniforms[name+"[0]"]
	return u, ok
}

// BaseName strips the "[0]" suffix drivers append to array uniform names.
func BaseName(name string) string {
	base, _ := strings.CutSuffix(name, "[0]")
	return base
}

// Attributes returns a copy of the active attribute table.
func (p *Program) Attributes() map[string]Attribute {
	out := make(map[string]Attribute, len(p.attributes))
	for k, v := range p.attributes {
		out[k] = v
	}
	return out
}

// Uniforms returns a copy of the active uniform table.
func (p *Program) Uniforms() map[string]Uniform {
	out := make(map[string]Uniform, len(p.uniforms))
	for k, v := range p.uniforms {
		out[k] = v
	}
	return out
}

// SortedUniforms returns the reflected uniforms ordered by location, then name.
// The slice is shared; callers must not modify it.
func (p *Program) SortedUniforms() []NamedUniform {
	return p.sorted
}

func (p *Program) Compiled() bool       { return p.linked }
func (p *Program) Handle() gli.Program  { return p.handle }
func (p *Program) Backend() gli.Backend { return p.backend }

// Destroy deletes the program object. Nodes still referencing the program must not draw afterwards.
func (p *Program) Destroy() {
	if !p.linked {
		return
	}
	p.backend.DeleteProgram(p.handle)
	p.handle = 0
	p.linked = false
}
