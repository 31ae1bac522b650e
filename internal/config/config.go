package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ytget/yt-formats/internal/ytdlp"
)

// Environment variables
const (
	EnvConfigFile  = "YTFMT_CONFIG_FILE"
	DefaultEnvFile = ".env"
)

// Default values
const (
	DefaultLogLevel = "info"
)

// Config holds settings shared by the desktop app and the CLI.
// An empty DownloadDir means the platform downloads directory; a zero
// Timeout means yt-dlp may run for as long as it needs.
type Config struct {
	ToolPath       string        `envconfig:"YTFMT_TOOL_PATH"       yaml:"toolPath"`
	DownloadDir    string        `envconfig:"YTFMT_DOWNLOAD_DIR"    yaml:"downloadDir"`
	OutputTemplate string        `envconfig:"YTFMT_OUTPUT_TEMPLATE" yaml:"outputTemplate"`
	Timeout        time.Duration `envconfig:"YTFMT_TIMEOUT"         yaml:"timeout"`
	LogLevel       string        `envconfig:"YTFMT_LOG_LEVEL"       yaml:"logLevel"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ToolPath:       ytdlp.DefaultBinary,
		OutputTemplate: ytdlp.DefaultOutputTemplate,
		LogLevel:       DefaultLogLevel,
	}
}

// Load layers defaults, the YAML configFile, the dotenv envFile and the
// process environment, later sources winning. Empty or missing files are
// skipped; malformed ones are errors. Variables already set in the process
// environment are not overridden by envFile.
func Load(configFile, envFile string) (*Config, error) {
	c := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "reading config file")
		default:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, errors.Wrapf(err, "parsing config file %s", configFile)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "loading env file %s", envFile)
		}
	}

	if err := envconfig.Process("", c); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}

	c.normalize()
	return c, nil
}

// normalize restores defaults for values cleared by a source
func (c *Config) normalize() {
	if c.ToolPath == "" {
		c.ToolPath = ytdlp.DefaultBinary
	}
	if c.OutputTemplate == "" {
		c.OutputTemplate = ytdlp.DefaultOutputTemplate
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}
