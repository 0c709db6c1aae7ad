package renderer

import (
	"log"
	"time"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/graphics"
)

// FrameTime is the minimum duration of one interactive frame.
const FrameTime = 16 * time.Millisecond

// Drawer draws one frame into the current framebuffer.
type Drawer interface {
	Draw()
}

// Renderer drives a Drawer in a graphics.Context.
type Renderer struct {
	context graphics.Context
	backend gli.Backend
	drawer  Drawer
	width   int
	height  int

	frames    int
	startTime float64

	encode EncodeFunc
	sleep  func(time.Duration)
	now    func() time.Time
}

func NewRenderer(ctx graphics.Context, b gli.Backend, d Drawer) *Renderer {
	r := &Renderer{
		context: ctx,
		backend: b,
		drawer:  d,
		encode:  encodeFFmpeg,
		sleep:   time.Sleep,
		now:     time.Now,
	}
	r.width, r.height = ctx.GetFramebufferSize()
	return r
}

// RenderFrame draws one frame without presenting it.
func (r *Renderer) RenderFrame() {
	r.drawer.Draw()
}

// Run renders until the context is asked to close. Frames shorter than
// FrameTime are padded with a sleep.
func (r *Renderer) Run() int {
	log.Println("Starting interactive render loop...")
	r.frames = 0
	r.startTime = r.context.Time()
	last := r.now()
	for !r.context.ShouldClose() {
		now := r.now()
		if delta := now.Sub(last); delta < FrameTime {
			r.sleep(FrameTime - delta)
		}
		last = now

		r.RenderFrame()
		r.context.EndFrame()
		r.frames++
	}
	log.Printf("Render loop finished after %d frames (%.1f fps)", r.frames, r.FrameRate())
	return r.frames
}

// FrameRate is the average frames per second of the current or last Run,
// measured on the context clock.
func (r *Renderer) FrameRate() float64 {
	elapsed := r.context.Time() - r.startTime
	if r.frames == 0 || elapsed <= 0 {
		return 0
	}
	return float64(r.frames) / elapsed
}

// Shutdown releases the drawer when it owns GPU resources, then the context.
func (r *Renderer) Shutdown() {
	if d, ok := r.drawer.(interface{ Destroy() }); ok {
		d.Destroy()
	}
	r.context.Shutdown()
}
