package renderer

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/richinsley/gllite/gli"
	"github.com/richinsley/gllite/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const numBuffers = 3

// Frame is one read-back RGBA frame, bottom row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// EncodeFunc consumes raw RGBA frames of the given size from in until EOF.
type EncodeFunc func(opts *options.DemoOptions, width, height int, in io.Reader) error

// ErrNoPixelReader is returned when recording on a backend that cannot read back frames.
var ErrNoPixelReader = errors.New("backend cannot read back pixels")

// SetEncoder replaces the ffmpeg encoder, mainly for tests.
func (r *Renderer) SetEncoder(e EncodeFunc) {
	r.encode = e
}

func ffmpegArgs(opts *options.DemoOptions, width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       *opts.FPS,
	}
	outputArgs = ffmpeg.KwArgs{
		// GL rows arrive bottom first
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	return
}

// encodeFFmpeg pipes raw frames into an ffmpeg process writing opts.OutputFile.
func encodeFFmpeg(opts *options.DemoOptions, width, height int, in io.Reader) error {
	inputArgs, outputArgs := ffmpegArgs(opts, width, height)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(in).ErrorToStdOut()
	if *opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(*opts.FFMPEGPath)
	}
	return cmd.Run()
}

// runEncoder is the consumer. It feeds frames from frameChan to the encoder.
func (r *Renderer) runEncoder(opts *options.DemoOptions, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		err := r.encode(opts, r.width, r.height, pipeReader)
		// unblock the writer if the encoder stopped early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	var writeErr error
	for frame := range frameChan {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to encoder: %v", frame.PTS, err)
			writeErr = err
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		doneChan <- fmt.Errorf("encoder failed: %w", err)
		return
	}
	doneChan <- writeErr
}

// RunRecord renders Duration*FPS frames, reads each one back and encodes it.
// Frame time advances by 1/FPS regardless of wall time.
func (r *Renderer) RunRecord(opts *options.DemoOptions) error {
	reader, ok := r.backend.(gli.PixelReader)
	if !ok {
		return ErrNoPixelReader
	}
	if *opts.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", *opts.FPS)
	}
	log.Println("Starting in record mode...")

	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)
	go r.runEncoder(opts, frameChan, encoderDoneChan)

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	for i := 0; i < totalFrames; i++ {
		r.RenderFrame()
		pixels := reader.ReadPixelsRGBA(0, 0, int32(r.width), int32(r.height))
		frameChan <- &Frame{Pixels: pixels, PTS: int64(i)}
		r.context.EndFrame()
	}
	close(frameChan)

	if err := <-encoderDoneChan; err != nil {
		return err
	}
	log.Printf("Recorded %d frames to %s", totalFrames, *opts.OutputFile)
	return nil
}
