package translator

import (
	"testing"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/program"
	gst "github.com/richinsley/goshadertranslator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ program.Translator = (*Translator)(nil)

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("essl")
	require.NoError(t, err)
	assert.Equal(t, ESSL, d)

	d, err = ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, GLSL410, d)

	_, err = ParseDialect("hlsl")
	assert.Error(t, err)
}

func TestUnsupportedStage(t *testing.T) {
	_, _, err := New(GLSL410).Translate("void main() {}", gli.ShaderStage(0x91B9))
	assert.ErrorContains(t, err, "unsupported shader stage")
}

func TestMappedNames(t *testing.T) {
	names := mappedNames(map[string]gst.ShaderVariable{
		"a_position":  {Name: "a_position", MappedName: "_ua_position"},
		"color":       {Name: "color", MappedName: "_ucolor"},
		"tex":         {Name: "tex", MappedName: "_utex"},
		"gl_Position": {Name: "gl_Position"},
	})
	assert.Equal(t, map[string]string{
		"a_position": "_ua_position",
		"color":      "_ucolor",
		"tex":        "_utex",
	}, names)
}
