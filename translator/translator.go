// Package translator rewrites WebGL2-flavored GLSL into the dialect of the
// current backend using goshadertranslator.
package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/gllite/gli"
	gst "github.com/richinsley/goshadertranslator"
)

// Dialect selects the GLSL flavor produced by a Translator.
type Dialect int

const (
	GLSL410 Dialect = iota // desktop core profile
	GLSL330
	ESSL // GLSL ES 3.00, for WebGL2
)

var (
	shared     *gst.ShaderTranslator
	sharedErr  error
	sharedOnce sync.Once
)

// getTranslator lazily starts the shared translator instance.
func getTranslator() (*gst.ShaderTranslator, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = gst.NewShaderTranslator(context.Background())
	})
	return shared, sharedErr
}

// Translator implements program.Translator for one output dialect.
type Translator struct {
	dialect Dialect
}

func New(dialect Dialect) *Translator {
	return &Translator{dialect: dialect}
}

// Translate converts a WebGL2 shader for the given stage. The returned table
// maps each active variable's source name to the name in the translated code.
func (t *Translator) Translate(source string, stage gli.ShaderStage) (string, map[string]string, error) {
	var stageName string
	switch stage {
	case gli.VERTEX_SHADER:
		stageName = "vertex"
	case gli.FRAGMENT_SHADER:
		stageName = "fragment"
	default:
		return "", nil, fmt.Errorf("unsupported shader stage 0x%x", uint32(stage))
	}

	tr, err := getTranslator()
	if err != nil {
		return "", nil, fmt.Errorf("failed to start shader translator: %w", err)
	}

	format := gst.OutputFormatGLSL410
	switch t.dialect {
	case ESSL:
		format = gst.OutputFormatESSL
	case GLSL330:
		format = gst.OutputFormatGLSL330
	}
	out, err := tr.TranslateShader(source, stageName, gst.ShaderSpecWebGL2, format)
	if err != nil {
		return "", nil, err
	}
	return out.Code, mappedNames(out.Variables), nil
}

func mappedNames(vars map[string]gst.ShaderVariable) map[string]string {
	names := make(map[string]string, len(vars))
	for name, v := range vars {
		if v.MappedName != "" {
			names[name] = v.MappedName
		}
	}
	return names
}

// ParseDialect maps "glsl410", "glsl330" and "essl" to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch name {
	case "glsl410", "":
		return GLSL410, nil
	case "glsl330":
		return GLSL330, nil
	case "essl":
		return ESSL, nil
	default:
		return 0, fmt.Errorf("unknown shader dialect %q", name)
	}
}
