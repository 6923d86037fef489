package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/depthmap"
	"github.com/swdee/go-kinectlite/projection"
)

type LoadConfigTestSuite struct {
	suite.Suite
	is         *is.I
	fs         afero.Fs
	configPath string
}

func (suite *LoadConfigTestSuite) SetupSuite() {
	suite.is = is.New(suite.T())
	suite.fs = afero.NewMemMapFs()
	suite.configPath = "/home/test/.config/swdee/kinectlite/config.json"

	// use in memory FS in implementation for tests
	fs = suite.fs
	userConfigDir = func() (string, error) {
		return "/home/test/.config", nil
	}
}

func (suite *LoadConfigTestSuite) TearDownSuite() {
	fs = afero.NewOsFs()
	userConfigDir = func() (string, error) {
		return os.UserConfigDir()
	}
}

func (suite *LoadConfigTestSuite) TearDownTest() {
	suite.is.NoErr(suite.fs.RemoveAll("/"))
	os.Unsetenv(configEnvVar)
}

func (suite *LoadConfigTestSuite) writeConfig(path, content string) {
	require.NoError(suite.T(), suite.fs.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(suite.T(), afero.WriteFile(suite.fs, path, []byte(content), 0644))
}

func (suite *LoadConfigTestSuite) TestLoadMissingFileReturnsDefaults() {
	values, err := Load("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Default(), values)
}

func (suite *LoadConfigTestSuite) TestLoadOverridesDefaults() {
	suite.writeConfig(suite.configPath, `{
		"debug": true,
		"skeleton_stream": "color",
		"depth_mode": "grayscale",
		"canvas": {"width": 320, "height": 240},
		"trail_size": 5
	}`)

	values, err := Load("")
	require.NoError(suite.T(), err)

	assert.True(suite.T(), values.Debug)
	assert.Equal(suite.T(), kinectlite.ColorStream, values.Stream())
	assert.Equal(suite.T(), Dimensions{Width: 320, Height: 240}, values.Canvas)
	assert.Equal(suite.T(), 5, values.TrailSize)

	// untouched fields keep their defaults
	assert.Equal(suite.T(), Default().HTTPAddress, values.HTTPAddress)
	assert.Equal(suite.T(), Default().Smoothing, values.Smoothing)
}

func (suite *LoadConfigTestSuite) TestLoadFromEnvironmentPath() {
	path := "/etc/kinectlite/viewer.json"
	suite.writeConfig(path, `{"fps": 15}`)
	os.Setenv(configEnvVar, path)

	values, err := Load("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 15, values.FPS)
}

func (suite *LoadConfigTestSuite) TestLoadExplicitPath() {
	path := "/tmp/custom.json"
	suite.writeConfig(path, `{"near_range": true}`)

	values, err := Load(path)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), kinectlite.NearDepthRange(), values.DepthRange())
}

func (suite *LoadConfigTestSuite) TestLoadInvalidJSON() {
	suite.writeConfig(suite.configPath, `{"fps": `)

	_, err := Load("")
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "parsing configuration error")
}

func (suite *LoadConfigTestSuite) TestLoadFailsValidation() {
	suite.writeConfig(suite.configPath, `{"depth_mode": "rainbow"}`)

	_, err := Load("")
	assert.Error(suite.T(), err)
}

func (suite *LoadConfigTestSuite) TestSaveThenLoad() {
	values := Default()
	values.PlayerOverflow = "clamp"
	values.SelectThreshold = 1.5

	require.NoError(suite.T(), Save(suite.configPath, values))

	loaded, err := Load(suite.configPath)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), values, loaded)
}

func (suite *LoadConfigTestSuite) TestSaveRejectsInvalidValues() {
	values := Default()
	values.FPS = 0

	assert.Error(suite.T(), Save(suite.configPath, values))

	exists, err := afero.Exists(suite.fs, suite.configPath)
	suite.is.NoErr(err)
	suite.is.True(!exists)
}

func TestLoadConfigTestSuite(t *testing.T) {
	suite.Run(t, &LoadConfigTestSuite{})
}

func TestDefaultsPassValidation(t *testing.T) {
	is := is.New(t)
	is.NoErr(Default().RunValidate())
}

func TestValidateRejectsUnsupportedResolutions(t *testing.T) {
	is := is.New(t)

	values := Default()
	values.Depth = Dimensions{Width: 100, Height: 100}
	is.Equal(values.Validate().Error(), "validation failed: unsupported depth resolution 100x100")

	values = Default()
	values.Color = Dimensions{Width: 320, Height: 240}
	is.Equal(values.Validate().Error(), "validation failed: unsupported color resolution 320x240")

	is.True(values.RunValidate() != nil)
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	is := is.New(t)

	values := Default()
	values.SkeletonStream = "infrared"
	is.True(values.RunValidate() != nil)

	values = Default()
	values.TrailSize = 0
	is.True(values.RunValidate() != nil)

	values = Default()
	values.HTTPAddress = ""
	is.True(values.RunValidate() != nil)
}

func TestDepthParams(t *testing.T) {
	values := Default()
	values.DepthMode = "grayscale"
	values.PlayerOverflow = "error"
	values.NearRange = true

	p, err := values.DepthParams()
	require.NoError(t, err)
	assert.Equal(t, depthmap.Grayscale, p.Mode)
	assert.Equal(t, depthmap.OverflowError, p.PlayerOverflow)
	assert.Equal(t, kinectlite.NearDepthRange(), p.Range)

	values.PlayerOverflow = "bogus"
	_, err = values.DepthParams()
	assert.Error(t, err)
}

func TestSourceFrameFollowsStream(t *testing.T) {
	values := Default()
	values.Color = Dimensions{Width: 1280, Height: 960}
	values.Depth = Dimensions{Width: 320, Height: 240}

	assert.Equal(t, projection.Frame{Width: 320, Height: 240}, values.SourceFrame())

	values.SkeletonStream = "color"
	assert.Equal(t, projection.Frame{Width: 1280, Height: 960}, values.SourceFrame())
}

func TestSmoothParams(t *testing.T) {
	values := Default()
	values.Smoothing.Prediction = 0.9

	sp := values.SmoothParams()
	assert.Equal(t, 0.9, sp.Prediction)
	assert.Equal(t, values.Smoothing.Correction, sp.Correction)
}

func TestProcessorParams(t *testing.T) {
	values := Default()
	values.SkeletonStream = "color"
	values.Color = Dimensions{Width: 1280, Height: 960}
	values.Canvas = Dimensions{Width: 320, Height: 240}
	values.Smoothing.Enabled = false

	p, err := values.ProcessorParams()
	require.NoError(t, err)

	assert.Equal(t, kinectlite.ColorStream, p.Stream)
	assert.Equal(t, projection.Frame{Width: 1280, Height: 960}, p.Source)
	assert.Equal(t, projection.Frame{Width: 320, Height: 240}, p.Canvas)
	assert.Equal(t, depthmap.PlayerSegmented, p.Depth.Mode)
	assert.False(t, p.Smooth)
	assert.Equal(t, values.TrailSize, p.TrailSize)

	values.DepthMode = "sepia"
	_, err = values.ProcessorParams()
	assert.Error(t, err)
}

func TestSimulatorParams(t *testing.T) {
	values := Default()
	values.Depth = Dimensions{Width: 320, Height: 240}
	values.FPS = 15
	values.NearRange = true

	p := values.SimulatorParams()
	assert.Equal(t, 320, p.DepthWidth)
	assert.Equal(t, 240, p.DepthHeight)
	assert.Equal(t, 640, p.ColorWidth)
	assert.Equal(t, 15, p.FPS)
	assert.Equal(t, kinectlite.NearDepthRange(), p.Range)
	assert.NotEmpty(t, p.Bodies)
}
