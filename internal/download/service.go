package download

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/yt-formats/internal/model"
	"github.com/ytget/yt-formats/internal/platform"
	"github.com/ytget/yt-formats/internal/ytdlp"
)

// Error messages
const (
	MsgEmptyURL          = "URL cannot be empty"
	MsgNoFormatSelected  = "no format selected"
	MsgNoDownloadsDir    = "could not determine downloads directory"
	MsgInquiryFailed     = "yt-dlp failed"
	MsgDownloadFailed    = "download failed"
	MsgVersionFailed     = "yt-dlp --version failed"
	MsgInterruptedPrefix = "yt-dlp was interrupted"
)

// Service runs format inquiries and downloads through yt-dlp
type Service struct {
	mu       sync.RWMutex
	runner   ytdlp.Runner
	env      platform.Env
	template string
	timeout  time.Duration
	log      *zap.SugaredLogger
}

// NewService creates a new download service.
// No timeout is applied until SetTimeout is called with a positive duration.
func NewService(runner ytdlp.Runner, env platform.Env) *Service {
	return &Service{
		runner:   runner,
		env:      env,
		template: ytdlp.DefaultOutputTemplate,
		log:      zap.NewNop().Sugar(),
	}
}

// SetRunner replaces the subprocess runner, e.g. after the tool path changed
func (s *Service) SetRunner(runner ytdlp.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runner = runner
}

// SetTimeout bounds each invocation; zero or negative disables the bound
func (s *Service) SetTimeout(timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = timeout
}

// SetOutputTemplate sets the file name template appended to the target directory
func (s *Service) SetOutputTemplate(template string) {
	if template == "" {
		template = ytdlp.DefaultOutputTemplate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = template
}

// SetLogger sets the logger used for invocation tracing
func (s *Service) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = log
}

// settings is a per-call snapshot of the service configuration
type settings struct {
	runner   ytdlp.Runner
	env      platform.Env
	template string
	timeout  time.Duration
	log      *zap.SugaredLogger
}

func (s *Service) snapshot() settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return settings{
		runner:   s.runner,
		env:      s.env,
		template: s.template,
		timeout:  s.timeout,
		log:      s.log,
	}
}

// Inquire asks yt-dlp for the metadata of url without downloading it
func (s *Service) Inquire(ctx context.Context, url string) (*model.MediaInquiryResult, error) {
	if url == "" {
		return nil, ytdlp.NewValidationError(MsgEmptyURL)
	}

	cfg := s.snapshot()
	log := cfg.log.With("request_id", uuid.NewString(), "url", url)

	res, err := cfg.run(ctx, log, ytdlp.InquiryInvocation(url))
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		log.Warnw("inquiry failed", "exit_code", res.ExitCode)
		return nil, ytdlp.NewToolError(MsgInquiryFailed, res)
	}

	result, err := ytdlp.ParseInquiry(res.Stdout)
	if err != nil {
		log.Warnw("unparseable inquiry output", "error", err)
		return nil, ytdlp.NewParseError(err)
	}

	log.Debugw("inquiry completed", "id", result.ID, "formats", len(result.Formats))
	return result, nil
}

// Download fetches url with the selected formats.
// The file name is left to yt-dlp through the output template.
func (s *Service) Download(ctx context.Context, url string, selection model.FormatSelection, targetDir string) (*model.DownloadOutcome, error) {
	if url == "" {
		return nil, ytdlp.NewValidationError(MsgEmptyURL)
	}

	selector, ok := selection.Selector()
	if !ok {
		return nil, ytdlp.NewValidationError(MsgNoFormatSelected)
	}

	cfg := s.snapshot()

	dir := targetDir
	if dir == "" {
		if dir, ok = platform.ResolveDownloadDir(cfg.env); !ok {
			return nil, ytdlp.NewConfigurationError(MsgNoDownloadsDir)
		}
	}
	outputTemplate := platform.JoinPath(cfg.env.GOOS, dir, cfg.template)

	log := cfg.log.With("request_id", uuid.NewString(), "url", url, "selector", selector)

	res, err := cfg.run(ctx, log, ytdlp.DownloadInvocation(selector, outputTemplate, url))
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		log.Warnw("download failed", "exit_code", res.ExitCode)
		return nil, ytdlp.NewToolError(MsgDownloadFailed, res)
	}

	log.Infow("download completed", "directory", dir)
	return &model.DownloadOutcome{
		Message:        model.DownloadCompletedMessage,
		URL:            url,
		Selector:       selector,
		Directory:      dir,
		OutputTemplate: outputTemplate,
	}, nil
}

// ToolVersion returns the version string printed by yt-dlp --version
func (s *Service) ToolVersion(ctx context.Context) (string, error) {
	cfg := s.snapshot()

	res, err := cfg.run(ctx, cfg.log, ytdlp.VersionInvocation())
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", ytdlp.NewToolError(MsgVersionFailed, res)
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// run spawns the tool once and maps launch failures to execution errors
func (cfg settings) run(ctx context.Context, log *zap.SugaredLogger, inv ytdlp.Invocation) (*ytdlp.Result, error) {
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	log.Debugw("running yt-dlp", "args", inv.Args)
	started := time.Now()

	res, err := cfg.runner.Run(ctx, inv)
	if err != nil {
		log.Warnw("yt-dlp did not run", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &ytdlp.Error{
				Kind:    ytdlp.ErrExecution,
				Message: MsgInterruptedPrefix + ": " + ctxErr.Error(),
				Err:     ctxErr,
			}
		}
		return nil, ytdlp.NewExecutionError(err)
	}

	log.Debugw("yt-dlp exited", "exit_code", res.ExitCode, "elapsed", time.Since(started))
	return res, nil
}
