package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ytget/yt-formats/internal/config"
	"github.com/ytget/yt-formats/internal/download"
	"github.com/ytget/yt-formats/internal/logger"
	"github.com/ytget/yt-formats/internal/model"
	"github.com/ytget/yt-formats/internal/platform"
	"github.com/ytget/yt-formats/internal/ytdlp"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	flagConfig   = "config"
	flagEnvFile  = "env-file"
	flagTool     = "tool"
	flagLogLevel = "log-level"
	flagJSON     = "json"
	flagFormat   = "format"
	flagVideo    = "video"
	flagAudio    = "audio"
	flagDir      = "dir"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ytfmt",
		Usage:   "list and download media formats with yt-dlp",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Usage:   "YAML configuration file",
				EnvVars: []string{config.EnvConfigFile},
			},
			&cli.StringFlag{
				Name:  flagEnvFile,
				Usage: "dotenv file loaded before reading the environment",
				Value: config.DefaultEnvFile,
			},
			&cli.StringFlag{
				Name:  flagTool,
				Usage: "yt-dlp executable, overrides the configuration",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "formats",
				Usage:     "list the formats available for a URL",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagJSON, Usage: "print the raw inquiry result as JSON"},
				},
				Action: formatsAction,
			},
			{
				Name:      "download",
				Usage:     "download a URL with the selected formats",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagFormat, Aliases: []string{"f"}, Usage: "explicit format selector"},
					&cli.StringFlag{Name: flagVideo, Usage: "video format id"},
					&cli.StringFlag{Name: flagAudio, Usage: "audio format id"},
					&cli.StringFlag{Name: flagDir, Usage: "target directory"},
				},
				Action: downloadAction,
			},
			{
				Name:   "version",
				Usage:  "print the yt-dlp version",
				Action: versionAction,
			},
		},
	}
}

// setup loads configuration and builds the service for a command
func setup(c *cli.Context) (*download.Service, *config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig), c.String(flagEnvFile))
	if err != nil {
		return nil, nil, err
	}
	if tool := c.String(flagTool); tool != "" {
		cfg.ToolPath = tool
	}
	if level := c.String(flagLogLevel); level != "" {
		cfg.LogLevel = level
	}

	log := logger.Init(cfg.LogLevel)

	svc := download.NewService(ytdlp.NewExecRunner(cfg.ToolPath), platform.SystemEnv())
	svc.SetTimeout(cfg.Timeout)
	svc.SetOutputTemplate(cfg.OutputTemplate)
	svc.SetLogger(log.Sugar().Named("download"))
	return svc, cfg, nil
}

func formatsAction(c *cli.Context) error {
	svc, _, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := svc.Inquire(c.Context, strings.TrimSpace(c.Args().First()))
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, result)
	}
	return writeFormats(c.App.Writer, result)
}

func downloadAction(c *cli.Context) error {
	svc, cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	targetDir := c.String(flagDir)
	if targetDir == "" {
		targetDir = cfg.DownloadDir
	}
	if targetDir != "" {
		if err := platform.CreateDirectoryIfNotExists(targetDir); err != nil {
			return err
		}
	}

	selection := model.FormatSelection{
		Format:  c.String(flagFormat),
		VideoID: c.String(flagVideo),
		AudioID: c.String(flagAudio),
	}

	zap.S().Debugw("starting download", "selection", selection, "dir", targetDir)
	outcome, err := svc.Download(c.Context, strings.TrimSpace(c.Args().First()), selection, targetDir)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, outcome)
	return err
}

func versionAction(c *cli.Context) error {
	svc, _, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	v, err := svc.ToolVersion(c.Context)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "ytfmt %s\nyt-dlp %s\n", version, v)
	return err
}
