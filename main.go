package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/yt-formats/internal/config"
	"github.com/ytget/yt-formats/internal/download"
	"github.com/ytget/yt-formats/internal/logger"
	"github.com/ytget/yt-formats/internal/platform"
	"github.com/ytget/yt-formats/internal/ui"
	"github.com/ytget/yt-formats/internal/ytdlp"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-formats"
	AppName = "YT Formats"

	versionTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load(os.Getenv(config.EnvConfigFile), config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	log := zap.S()
	log.Infof("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp, cfg)
	if dir := settings.GetDownloadDirectory(); dir != "" {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			log.Warnw("failed to ensure downloads dir", "dir", dir, "error", err)
		}
	}

	svc := download.NewService(ytdlp.NewExecRunner(settings.GetToolPath()), platform.SystemEnv())
	svc.SetLogger(log.Named("download"))
	applySettings(svc, settings)

	go logToolVersion(svc, log)

	ui.NewRootUI(myWindow, settings, svc, log.Named("ui"), func() {
		applySettings(svc, settings)
	})

	myWindow.ShowAndRun()
}

// applySettings pushes the current preferences into the service
func applySettings(svc *download.Service, settings *config.Settings) {
	svc.SetRunner(ytdlp.NewExecRunner(settings.GetToolPath()))
	svc.SetTimeout(settings.GetTimeout())
	svc.SetOutputTemplate(settings.GetOutputTemplate())
}

func logToolVersion(svc *download.Service, log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	v, err := svc.ToolVersion(ctx)
	if err != nil {
		log.Warnw("yt-dlp is not available", "error", err)
		return
	}
	log.Infow("using yt-dlp", "version", v)
}
