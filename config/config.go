package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/depthmap"
	"github.com/swdee/go-kinectlite/internal/log"
	"github.com/swdee/go-kinectlite/pipeline"
	"github.com/swdee/go-kinectlite/projection"
	"github.com/swdee/go-kinectlite/sensor"
	"github.com/swdee/go-kinectlite/tracker"
	"gopkg.in/dealancer/validate.v2"
)

const (
	vendorName     = "swdee"
	appName        = "kinectlite"
	configFileName = "config.json"
	configEnvVar   = "KINECTLITE_CONFIG"
)

// Dimensions of a stream or canvas in pixels
type Dimensions struct {
	Width  int `json:"width" validate:"gte=1 & lte=4096"`
	Height int `json:"height" validate:"gte=1 & lte=4096"`
}

// Frame returns the dimensions as a projection frame
func (d Dimensions) Frame() projection.Frame {
	return projection.NewFrame(d.Width, d.Height)
}

// Smoothing configures the joint smoothing filter
type Smoothing struct {
	Enabled            bool    `json:"enabled"`
	Smoothing          float64 `json:"smoothing" validate:"gte=0 & lt=1"`
	Correction         float64 `json:"correction" validate:"gte=0 & lte=1"`
	Prediction         float64 `json:"prediction" validate:"gte=0"`
	JitterRadius       float64 `json:"jitter_radius" validate:"gte=0"`
	MaxDeviationRadius float64 `json:"max_deviation_radius" validate:"gte=0"`
}

// Values holds the viewer configuration
type Values struct {
	Debug          bool       `json:"debug"`
	Color          Dimensions `json:"color"`
	Depth          Dimensions `json:"depth"`
	Canvas         Dimensions `json:"canvas"`
	SkeletonStream string     `json:"skeleton_stream" validate:"one_of=depth,color"`
	DepthMode      string     `json:"depth_mode" validate:"one_of=grayscale,player"`
	PlayerOverflow string     `json:"player_overflow" validate:"one_of=wrap,clamp,error"`
	NearRange      bool       `json:"near_range"`
	// SelectThreshold is the floor plane distance in meters a skeleton
	// must be within to become the active player
	SelectThreshold float64   `json:"select_threshold" validate:"gt=0"`
	Smoothing       Smoothing `json:"smoothing"`
	TrailSize       int       `json:"trail_size" validate:"gte=1 & lte=1000"`
	HTTPAddress     string    `json:"http_address" validate:"empty=false"`
	FPS             int       `json:"fps" validate:"gte=1 & lte=30"`
}

// Default returns the configuration used when no config file exists
func Default() Values {
	sp := tracker.DefaultSmoothParams()

	return Values{
		Color:           Dimensions{Width: 640, Height: 480},
		Depth:           Dimensions{Width: 640, Height: 480},
		Canvas:          Dimensions{Width: 640, Height: 480},
		SkeletonStream:  "depth",
		DepthMode:       "player",
		PlayerOverflow:  "wrap",
		SelectThreshold: tracker.DefaultSelectThreshold,
		Smoothing: Smoothing{
			Enabled:            true,
			Smoothing:          sp.Smoothing,
			Correction:         sp.Correction,
			Prediction:         sp.Prediction,
			JitterRadius:       sp.JitterRadius,
			MaxDeviationRadius: sp.MaxDeviationRadius,
		},
		TrailSize:   30,
		HTTPAddress: "localhost:8080",
		FPS:         30,
	}
}

var (
	depthResolutions = []Dimensions{{80, 60}, {320, 240}, {640, 480}}
	colorResolutions = []Dimensions{{640, 480}, {1280, 960}}
)

// RunValidate checks the struct tag constraints and the custom rules in
// Validate
func (v Values) RunValidate() error {
	return validate.Validate(&v)
}

// Validate implements the custom validation run by RunValidate
func (v Values) Validate() error {
	const validationErrorHeader = "validation failed"

	if !supported(depthResolutions, v.Depth) {
		return errors.Wrap(errors.Errorf("unsupported depth resolution %dx%d",
			v.Depth.Width, v.Depth.Height), validationErrorHeader)
	}

	if !supported(colorResolutions, v.Color) {
		return errors.Wrap(errors.Errorf("unsupported color resolution %dx%d",
			v.Color.Width, v.Color.Height), validationErrorHeader)
	}

	return nil
}

func supported(list []Dimensions, d Dimensions) bool {
	for _, s := range list {
		if s == d {
			return true
		}
	}
	return false
}

// Stream returns the image stream skeletons are projected through
func (v Values) Stream() kinectlite.StreamType {
	if v.SkeletonStream == "color" {
		return kinectlite.ColorStream
	}
	return kinectlite.DepthStream
}

// SourceFrame returns the native resolution of the skeleton stream
func (v Values) SourceFrame() projection.Frame {
	if v.Stream() == kinectlite.ColorStream {
		return v.Color.Frame()
	}
	return v.Depth.Frame()
}

// DepthRange returns the sentinel values for the configured range mode
func (v Values) DepthRange() kinectlite.DepthRange {
	if v.NearRange {
		return kinectlite.NearDepthRange()
	}
	return kinectlite.DefaultDepthRange()
}

// DepthParams returns the depth map conversion parameters
func (v Values) DepthParams() (depthmap.Params, error) {
	p := depthmap.DefaultParams()
	p.Range = v.DepthRange()

	mode, err := depthmap.ParseMode(v.DepthMode)
	if err != nil {
		return p, err
	}

	overflow, err := depthmap.ParseOverflow(v.PlayerOverflow)
	if err != nil {
		return p, err
	}

	p.Mode = mode
	p.PlayerOverflow = overflow

	return p, nil
}

// SmoothParams returns the joint smoothing parameters
func (v Values) SmoothParams() tracker.SmoothParams {
	return tracker.SmoothParams{
		Smoothing:          v.Smoothing.Smoothing,
		Correction:         v.Smoothing.Correction,
		Prediction:         v.Smoothing.Prediction,
		JitterRadius:       v.Smoothing.JitterRadius,
		MaxDeviationRadius: v.Smoothing.MaxDeviationRadius,
	}
}

// ProcessorParams returns the frame pipeline parameters
func (v Values) ProcessorParams() (pipeline.Params, error) {
	depth, err := v.DepthParams()
	if err != nil {
		return pipeline.Params{}, err
	}

	return pipeline.Params{
		Stream:          v.Stream(),
		Source:          v.SourceFrame(),
		Canvas:          v.Canvas.Frame(),
		Depth:           depth,
		Smooth:          v.Smoothing.Enabled,
		SmoothParams:    v.SmoothParams(),
		SelectThreshold: v.SelectThreshold,
		TrailSize:       v.TrailSize,
	}, nil
}

// SimulatorParams returns the simulated sensor parameters matching the
// configured streams
func (v Values) SimulatorParams() sensor.SimulatorParams {
	p := sensor.DefaultSimulatorParams()
	p.ColorWidth = v.Color.Width
	p.ColorHeight = v.Color.Height
	p.DepthWidth = v.Depth.Width
	p.DepthHeight = v.Depth.Height
	p.FPS = v.FPS
	p.Range = v.DepthRange()
	return p
}

var fs afero.Fs = afero.NewOsFs()

var userConfigDir = func() (string, error) {
	return os.UserConfigDir()
}

// Load reads the configuration from path.  An empty path is resolved from
// the KINECTLITE_CONFIG environment variable, then the user config
// directory.  A missing file yields the default configuration.
func Load(path string) (Values, error) {
	values := Default()

	if path == "" {
		resolved, err := resolveConfigPath()
		if err != nil {
			return Values{}, err
		}
		path = resolved
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Values{}, errors.Wrapf(err, "unable to stat %s", path)
	}

	if !exists {
		log.Info("No config file at %s, using defaults", path)
		return values, nil
	}

	log.Info("Resolved config file location: %s", path)

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return Values{}, errors.Wrapf(err, "unable to read from path %s", path)
	}

	if err := json.Unmarshal(content, &values); err != nil {
		return Values{}, errors.Errorf("parsing configuration error: %v", err)
	}

	if err := values.RunValidate(); err != nil {
		return Values{}, err
	}

	return values, nil
}

// Save writes the values as indented JSON to path
func Save(path string, values Values) error {
	if err := values.RunValidate(); err != nil {
		return err
	}

	content, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding configuration")
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}

	return afero.WriteFile(fs, path, content, 0644)
}

func resolveConfigPath() (string, error) {
	if p := os.Getenv(configEnvVar); len(p) > 0 {
		return p, nil
	}

	dir, err := userConfigDir()
	if err != nil {
		return "", errors.Errorf("unable to resolve %s config file location: %v", configFileName, err)
	}

	return filepath.Join(dir, vendorName, appName, configFileName), nil
}
