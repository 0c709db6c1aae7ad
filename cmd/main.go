//go:build !js

package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gllite/glfwcontext"
	"github.com/richinsley/gllite/gli/glcore"
	"github.com/richinsley/gllite/options"
	"github.com/richinsley/gllite/renderer"
	"github.com/richinsley/gllite/scene"
	"github.com/richinsley/gllite/translator"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("gllite demo viewer/recorder")
		flag.PrintDefaults()
		return
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window is hidden and frames are read back.
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, "gllite demo", !*opts.Record)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	ctx.MakeCurrent()
	ctx.SetVSync(true)

	backend, err := glcore.New()
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}
	log.Printf("OpenGL version: %s", backend.Version())

	desc := scene.Checker(ctx.IsGLES(), *opts.Translate)
	if *opts.Scene != "" {
		log.Printf("Loading scene from %s", *opts.Scene)
		desc, err = scene.Load(*opts.Scene)
		if err != nil {
			log.Fatalf("Error loading scene: %v", err)
		}
	}

	dialect := translator.GLSL410
	if ctx.IsGLES() {
		dialect = translator.ESSL
	}
	s, err := scene.Build(backend, desc, translator.New(dialect))
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	r := renderer.NewRenderer(ctx, backend, s)
	defer r.Shutdown()
	// F prints the average frame rate so far
	ctx.RegisterKeyCallback(glfw.KeyF, func() {
		log.Printf("Average frame rate: %.1f fps", r.FrameRate())
	})

	if *opts.Record {
		if err := r.RunRecord(opts); err != nil {
			log.Fatalf("Recording failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}
	r.Run()
}
