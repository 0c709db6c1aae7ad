// Package graphics describes the window and context a host render loop draws into.
package graphics

// Context is an OpenGL-family context owned by a window or surface.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the back buffer and polls pending window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	// Time is seconds on the context clock; only differences are meaningful.
	Time() float64
	IsGLES() bool
}
