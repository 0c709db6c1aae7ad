package options

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, 400, *o.Width)
	assert.Equal(t, 400, *o.Height)
	assert.False(t, *o.Record)
	assert.Equal(t, "", *o.Scene)
	assert.Equal(t, 60, *o.FPS)
}

func TestParse(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse([]string{"-record", "-scene", "quad.yaml", "-fps", "30", "-output", "out.mp4"}))

	assert.True(t, *o.Record)
	assert.Equal(t, "quad.yaml", *o.Scene)
	assert.Equal(t, 30, *o.FPS)
	assert.Equal(t, "out.mp4", *o.OutputFile)
}
