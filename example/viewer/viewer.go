package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite/config"
	"github.com/swdee/go-kinectlite/internal/log"
	"github.com/swdee/go-kinectlite/pipeline"
	"github.com/swdee/go-kinectlite/render"
	"github.com/swdee/go-kinectlite/sensor"
)

// Viewer serves the rendered sensor frames to browsers as an MJPEG stream
type Viewer struct {
	canvas *render.Canvas
	proc   *pipeline.Processor
	sim    *sensor.Simulator
}

// NewViewer creates the simulated sensor, frame pipeline and canvas described
// by the configuration
func NewViewer(values config.Values) (*Viewer, error) {

	sim, err := sensor.NewSimulator(values.SimulatorParams())

	if err != nil {
		return nil, errors.Wrap(err, "error creating sensor")
	}

	cp := render.DefaultCanvasParams()
	cp.Width = values.Canvas.Width
	cp.Height = values.Canvas.Height

	canvas, err := render.NewCanvas(cp)

	if err != nil {
		sim.Close()
		return nil, errors.Wrap(err, "error creating canvas")
	}

	params, err := values.ProcessorParams()

	if err != nil {
		sim.Close()
		return nil, err
	}

	proc, err := pipeline.NewProcessor(params, pipeline.Deps{
		Mapper:   sim.Mapper(),
		Renderer: canvas,
		Control:  sim,
	})

	if err != nil {
		sim.Close()
		return nil, errors.Wrap(err, "error creating pipeline")
	}

	return &Viewer{
		canvas: canvas,
		proc:   proc,
		sim:    sim,
	}, nil
}

// Run processes sensor frames until the context is cancelled
func (v *Viewer) Run(ctx context.Context) error {
	defer v.sim.Close()
	return v.proc.Run(ctx, v.sim)
}

// Stream is the HTTP handler function used to stream frames to the browser
func (v *Viewer) Stream(w http.ResponseWriter, r *http.Request) {

	log.Info("New client connection established from %s", r.RemoteAddr)

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	for {
		select {
		case <-r.Context().Done():
			log.Info("Client %s disconnected", r.RemoteAddr)
			return

		case <-v.canvas.Updated():
			img, _ := v.canvas.Latest()

			// Write the image to the response writer
			w.Write([]byte("--frame\r\n"))
			w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))
			w.Write(img)
			w.Write([]byte("\r\n"))

			// Flush the buffer
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

// Stats is the HTTP handler function reporting the pipeline frame counts
func (v *Viewer) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v.proc.Stats()); err != nil {
		log.Error("Error writing stats: %v", err)
	}
}

func main() {
	// read in cli flags
	configFile := flag.String("c", "", "Configuration file, defaults to the user config directory")
	httpAddr := flag.String("a", "", "HTTP Address to run server on, format address:port, overrides the configuration")
	debug := flag.Bool("d", false, "Enable debug logging")

	flag.Parse()

	values, err := config.Load(*configFile)

	if err != nil {
		log.Fatal("Error loading configuration: %v", err)
	}

	if *httpAddr != "" {
		values.HTTPAddress = *httpAddr
	}

	log.SetDebug(values.Debug || *debug)

	viewer, err := NewViewer(values)

	if err != nil {
		log.Fatal("Error creating viewer: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go func() {
		if err := viewer.Run(ctx); err != nil {
			log.Error("Pipeline stopped: %v", err)
		}
		cancel()
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/stream", viewer.Stream)
	mux.HandleFunc("/stats", viewer.Stats)

	server := &http.Server{
		Addr:    values.HTTPAddress,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()

		server.Shutdown(shutdownCtx)
	}()

	// start http server
	log.Info("Open browser and view video at http://%s/stream", values.HTTPAddress)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error: %v", err)
	}

	log.Info("Shutting down")
}
