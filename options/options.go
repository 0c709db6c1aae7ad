package options

import "flag"

// DemoOptions configures the demo executable. Fields are pointers so they can
// be bound directly to flags.
type DemoOptions struct {
	Help       *bool
	Width      *int
	Height     *int
	Scene      *string // YAML scene file; the built-in checker triangle when empty
	Translate  *bool   // run built-in shaders through the WebGL2 translator
	Record     *bool   // render hidden and encode frames instead of opening a window
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
}

// Register binds every option to a flag on fs.
func Register(fs *flag.FlagSet) *DemoOptions {
	return &DemoOptions{
		Help:       fs.Bool("help", false, "Show help message"),
		Width:      fs.Int("width", 400, "Window width"),
		Height:     fs.Int("height", 400, "Window height"),
		Scene:      fs.String("scene", "", "Path to a YAML scene file"),
		Translate:  fs.Bool("translate", false, "Translate built-in shaders from WebGL2 GLSL"),
		Record:     fs.Bool("record", false, "Enable recording mode"),
		Duration:   fs.Float64("duration", 5.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
}
