//go:build js && wasm

// Command web draws the checker demo into the page's <canvas id="gllite">.
package main

import (
	"log"
	"syscall/js"

	"github.com/richinsley/gllite/gli/webgl"
	"github.com/richinsley/gllite/scene"
)

func main() {
	canvas := js.Global().Get("document").Call("getElementById", "gllite")
	backend, err := webgl.New(canvas)
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}

	s, err := scene.Build(backend, scene.Checker(true, false), nil)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		s.Draw()
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)

	select {}
}
