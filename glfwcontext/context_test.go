//go:build !js

package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyCallbacksRunOnPress(t *testing.T) {
	c := &Context{keyCallbacks: make(map[glfw.Key]func())}
	presses := 0
	c.RegisterKeyCallback(glfw.KeyF, func() { presses++ })

	c.glfwKeyCallback(nil, glfw.KeyF, 0, glfw.Press, 0)
	c.glfwKeyCallback(nil, glfw.KeyF, 0, glfw.Release, 0)
	c.glfwKeyCallback(nil, glfw.KeyF, 0, glfw.Repeat, 0)
	c.glfwKeyCallback(nil, glfw.KeyG, 0, glfw.Press, 0)
	assert.Equal(t, 1, presses)
}
