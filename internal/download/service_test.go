package download

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/yt-formats/internal/model"
	"github.com/ytget/yt-formats/internal/platform"
	"github.com/ytget/yt-formats/internal/ytdlp"
)

const inquiryJSON = `{"id":"abc123","title":"Sample","formats":[
	{"format_id":"137","ext":"mp4","vcodec":"avc1.640028","acodec":"none","height":1080,"width":1920},
	{"format_id":"140","ext":"m4a","vcodec":"none","acodec":"mp4a.40.2","filesize":3433514}
]}`

// fakeRunner records invocations and replays a canned result
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	result   *ytdlp.Result
	err      error
	deadline bool
}

func (f *fakeRunner) Run(ctx context.Context, inv ytdlp.Invocation) (*ytdlp.Result, error) {
	var args []string
	for _, fl := range inv.Command.GetFlagConfig().ToFlags() {
		args = append(args, fl.Raw()...)
	}
	args = append(args, inv.Args...)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// flagValue returns the argument following the first of names present in args
func flagValue(args []string, names ...string) string {
	for i, a := range args {
		for _, n := range names {
			if a == n && i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}

func hasArg(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func linuxEnv() platform.Env {
	return platform.MapEnv(platform.OSLinux, map[string]string{"HOME": "/home/alice"})
}

func TestInquire(t *testing.T) {
	runner := &fakeRunner{result: &ytdlp.Result{Stdout: []byte(inquiryJSON)}}
	service := NewService(runner, linuxEnv())

	result, err := service.Inquire(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title != "Sample" || len(result.Formats) != 2 {
		t.Errorf("unexpected result: %+v", result)
	}

	if runner.callCount() != 1 {
		t.Fatalf("expected one call, got %v", runner.calls)
	}
	args := runner.calls[0]
	for _, flag := range []string{"--dump-json", "--skip-download", "--no-playlist"} {
		if !hasArg(args, flag) {
			t.Errorf("expected %s in %v", flag, args)
		}
	}
	if args[len(args)-1] != "https://example.com/v" {
		t.Errorf("expected URL last, got %v", args)
	}
	if runner.deadline {
		t.Error("no deadline should be set without a timeout")
	}
}

func TestInquireErrors(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		runner    *fakeRunner
		kind      ytdlp.Kind
		contains  string
		wantCalls int
	}{
		{
			name:      "empty URL",
			url:       "",
			runner:    &fakeRunner{result: &ytdlp.Result{Stdout: []byte(inquiryJSON)}},
			kind:      ytdlp.ErrValidation,
			contains:  "URL cannot be empty",
			wantCalls: 0,
		},
		{
			name:      "binary missing",
			url:       "https://example.com/v",
			runner:    &fakeRunner{err: exec.ErrNotFound},
			kind:      ytdlp.ErrExecution,
			contains:  "installed and available in PATH",
			wantCalls: 1,
		},
		{
			name:      "unsupported URL",
			url:       "https://example.com/v",
			runner:    &fakeRunner{result: &ytdlp.Result{ExitCode: 1, Stderr: []byte("ERROR: Unsupported URL")}},
			kind:      ytdlp.ErrTool,
			contains:  "ERROR: Unsupported URL",
			wantCalls: 1,
		},
		{
			name:      "garbage output",
			url:       "https://example.com/v",
			runner:    &fakeRunner{result: &ytdlp.Result{Stdout: []byte("not json")}},
			kind:      ytdlp.ErrParse,
			contains:  "failed to parse yt-dlp response",
			wantCalls: 1,
		},
		{
			name:      "missing title",
			url:       "https://example.com/v",
			runner:    &fakeRunner{result: &ytdlp.Result{Stdout: []byte(`{"id":"x","formats":[]}`)}},
			kind:      ytdlp.ErrParse,
			contains:  `missing field "title"`,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.runner, linuxEnv())

			result, err := service.Inquire(context.Background(), tt.url)
			if err == nil {
				t.Fatalf("expected error, got %+v", result)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to contain %q, got %q", tt.contains, err.Error())
			}
			if got := tt.runner.callCount(); got != tt.wantCalls {
				t.Errorf("expected %d runner calls, got %d", tt.wantCalls, got)
			}
		})
	}
}

func TestDownloadSelectorAndTemplate(t *testing.T) {
	tests := []struct {
		name      string
		selection model.FormatSelection
		targetDir string
		env       platform.Env
		selector  string
		template  string
	}{
		{
			name:      "explicit format wins",
			selection: model.FormatSelection{Format: "best", VideoID: "137", AudioID: "140"},
			env:       linuxEnv(),
			selector:  "best",
			template:  "/home/alice/Downloads/%(title)s.%(ext)s",
		},
		{
			name:      "video and audio merged",
			selection: model.FormatSelection{VideoID: "137", AudioID: "140"},
			env:       linuxEnv(),
			selector:  "137+140",
			template:  "/home/alice/Downloads/%(title)s.%(ext)s",
		},
		{
			name:      "video only into target dir",
			selection: model.FormatSelection{VideoID: "137"},
			targetDir: "/srv/media",
			env:       linuxEnv(),
			selector:  "137",
			template:  "/srv/media/%(title)s.%(ext)s",
		},
		{
			name:      "audio only with XDG dir",
			selection: model.FormatSelection{AudioID: "140"},
			env:       platform.MapEnv(platform.OSLinux, map[string]string{"XDG_DOWNLOAD_DIR": "/mnt/dl", "HOME": "/home/alice"}),
			selector:  "140",
			template:  "/mnt/dl/%(title)s.%(ext)s",
		},
		{
			name:      "windows profile",
			selection: model.FormatSelection{AudioID: "140"},
			env:       platform.MapEnv(platform.OSWindows, map[string]string{"USERPROFILE": `C:\Users\alice`}),
			selector:  "140",
			template:  `C:\Users\alice\Downloads\%(title)s.%(ext)s`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: &ytdlp.Result{}}
			service := NewService(runner, tt.env)

			outcome, err := service.Download(context.Background(), "https://example.com/v", tt.selection, tt.targetDir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.callCount() != 1 {
				t.Fatalf("expected one call, got %v", runner.calls)
			}
			args := runner.calls[0]
			if got := flagValue(args, "--format", "-f"); got != tt.selector {
				t.Errorf("expected selector %q, got %q in %v", tt.selector, got, args)
			}
			if got := flagValue(args, "--output", "-o"); got != tt.template {
				t.Errorf("expected template %q, got %q in %v", tt.template, got, args)
			}
			if args[len(args)-1] != "https://example.com/v" {
				t.Errorf("expected URL last, got %v", args)
			}
			if outcome.Selector != tt.selector || outcome.OutputTemplate != tt.template {
				t.Errorf("unexpected outcome: %+v", outcome)
			}
		})
	}
}

func TestDownloadErrors(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		selection model.FormatSelection
		env       platform.Env
		runner    *fakeRunner
		kind      ytdlp.Kind
		contains  string
		wantCalls int
	}{
		{
			name:      "empty URL",
			url:       "",
			selection: model.FormatSelection{VideoID: "137"},
			env:       linuxEnv(),
			runner:    &fakeRunner{result: &ytdlp.Result{}},
			kind:      ytdlp.ErrValidation,
			contains:  "URL cannot be empty",
		},
		{
			name:     "nothing selected",
			url:      "https://example.com/v",
			env:      linuxEnv(),
			runner:   &fakeRunner{result: &ytdlp.Result{}},
			kind:     ytdlp.ErrValidation,
			contains: "no format selected",
		},
		{
			name:      "no downloads directory",
			url:       "https://example.com/v",
			selection: model.FormatSelection{VideoID: "137"},
			env:       platform.MapEnv(platform.OSLinux, map[string]string{}),
			runner:    &fakeRunner{result: &ytdlp.Result{}},
			kind:      ytdlp.ErrConfiguration,
			contains:  "could not determine downloads directory",
		},
		{
			name:      "unsupported platform",
			url:       "https://example.com/v",
			selection: model.FormatSelection{VideoID: "137"},
			env:       platform.MapEnv("plan9", map[string]string{"HOME": "/usr/alice"}),
			runner:    &fakeRunner{result: &ytdlp.Result{}},
			kind:      ytdlp.ErrConfiguration,
			contains:  "could not determine downloads directory",
		},
		{
			name:      "launch failure",
			url:       "https://example.com/v",
			selection: model.FormatSelection{VideoID: "137"},
			env:       linuxEnv(),
			runner:    &fakeRunner{err: exec.ErrNotFound},
			kind:      ytdlp.ErrExecution,
			contains:  "failed to execute yt-dlp",
			wantCalls: 1,
		},
		{
			name:      "format unavailable",
			url:       "https://example.com/v",
			selection: model.FormatSelection{VideoID: "999"},
			env:       linuxEnv(),
			runner:    &fakeRunner{result: &ytdlp.Result{ExitCode: 1, Stderr: []byte("ERROR: [youtube] abc: Requested format is not available")}},
			kind:      ytdlp.ErrTool,
			contains:  "download failed: ERROR: [youtube] abc: Requested format is not available",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.runner, tt.env)

			outcome, err := service.Download(context.Background(), tt.url, tt.selection, "")
			if err == nil {
				t.Fatalf("expected error, got %+v", outcome)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to contain %q, got %q", tt.contains, err.Error())
			}
			if got := tt.runner.callCount(); got != tt.wantCalls {
				t.Errorf("expected %d runner calls, got %d", tt.wantCalls, got)
			}
		})
	}
}

func TestInquireThenDownload(t *testing.T) {
	runner := &fakeRunner{result: &ytdlp.Result{Stdout: []byte(inquiryJSON)}}
	service := NewService(runner, linuxEnv())
	ctx := context.Background()
	url := "https://example.com/v"

	result, err := service.Inquire(ctx, url)
	if err != nil {
		t.Fatalf("inquiry failed: %v", err)
	}

	video := result.VideoFormats()
	audio := result.AudioFormats()
	if len(video) != 1 || video[0].FormatID != "137" || len(audio) != 1 || audio[0].FormatID != "140" {
		t.Fatalf("unexpected formats: video=%+v audio=%+v", video, audio)
	}

	runner.result = &ytdlp.Result{}
	selection := model.FormatSelection{VideoID: video[0].FormatID, AudioID: audio[0].FormatID}

	outcome, err := service.Download(ctx, url, selection, "")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}

	if outcome.Selector != "137+140" {
		t.Errorf("expected selector 137+140, got %s", outcome.Selector)
	}
	if outcome.Message != model.DownloadCompletedMessage {
		t.Errorf("unexpected message: %s", outcome.Message)
	}
	if outcome.Directory != "/home/alice/Downloads" {
		t.Errorf("unexpected directory: %s", outcome.Directory)
	}
	if runner.callCount() != 2 {
		t.Errorf("expected 2 runner calls, got %d", runner.callCount())
	}
}

func TestServiceSettings(t *testing.T) {
	runner := &fakeRunner{result: &ytdlp.Result{}}
	service := NewService(&fakeRunner{err: exec.ErrNotFound}, linuxEnv())

	service.SetRunner(runner)
	service.SetTimeout(time.Minute)
	service.SetOutputTemplate("%(uploader)s/%(title)s.%(ext)s")
	service.SetLogger(nil)

	outcome, err := service.Download(context.Background(), "https://example.com/v", model.FormatSelection{AudioID: "140"}, "/tmp/dl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.OutputTemplate != "/tmp/dl/%(uploader)s/%(title)s.%(ext)s" {
		t.Errorf("unexpected template: %s", outcome.OutputTemplate)
	}
	if !runner.deadline {
		t.Error("expected a deadline when a timeout is set")
	}

	service.SetOutputTemplate("")
	outcome, err = service.Download(context.Background(), "https://example.com/v", model.FormatSelection{AudioID: "140"}, "/tmp/dl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.OutputTemplate != "/tmp/dl/"+ytdlp.DefaultOutputTemplate {
		t.Errorf("empty template should reset to default, got %s", outcome.OutputTemplate)
	}
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{err: context.Canceled}
	service := NewService(runner, linuxEnv())

	_, err := service.Inquire(ctx, "https://example.com/v")
	if !errors.Is(err, ytdlp.ErrExecution) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected interrupted execution error, got %v", err)
	}
}

func TestToolVersion(t *testing.T) {
	runner := &fakeRunner{result: &ytdlp.Result{Stdout: []byte("2025.09.26\n")}}
	service := NewService(runner, linuxEnv())

	version, err := service.ToolVersion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "2025.09.26" {
		t.Errorf("expected trimmed version, got %q", version)
	}

	runner.result = &ytdlp.Result{ExitCode: 2, Stderr: []byte("usage")}
	if _, err := service.ToolVersion(context.Background()); !errors.Is(err, ytdlp.ErrTool) {
		t.Errorf("expected tool error, got %v", err)
	}
}

func TestConcurrentInquiries(t *testing.T) {
	runner := &fakeRunner{result: &ytdlp.Result{Stdout: []byte(inquiryJSON)}}
	service := NewService(runner, linuxEnv())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Inquire(context.Background(), "https://example.com/v"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if runner.callCount() != 8 {
		t.Errorf("expected 8 runner calls, got %d", runner.callCount())
	}
}
