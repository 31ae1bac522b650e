package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/yt-formats/internal/config"
)

func TestSettingsDialogSave(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	window := test.NewWindow(nil)
	defer window.Close()

	settings := config.NewSettings(app, config.Default())
	saved := 0
	sd := NewSettingsDialog(settings, window, func() { saved++ })
	sd.loadCurrentSettings()

	if sd.toolPathEntry.Text != "yt-dlp" {
		t.Errorf("Expected default tool path in entry, got %q", sd.toolPathEntry.Text)
	}

	sd.downloadDirEntry.SetText(" /videos ")
	sd.toolPathEntry.SetText("/opt/yt-dlp")
	sd.templateEntry.SetText("%(id)s.%(ext)s")
	sd.timeoutEntry.SetText("90")
	if err := sd.save(); err != nil {
		t.Fatalf("save() error = %v", err)
	}

	if saved != 1 {
		t.Errorf("Expected callback once, got %d", saved)
	}
	if dir := settings.GetDownloadDirectory(); dir != "/videos" {
		t.Errorf("Expected /videos, got %q", dir)
	}
	if path := settings.GetToolPath(); path != "/opt/yt-dlp" {
		t.Errorf("Expected /opt/yt-dlp, got %q", path)
	}
	if tmpl := settings.GetOutputTemplate(); tmpl != "%(id)s.%(ext)s" {
		t.Errorf("Expected custom template, got %q", tmpl)
	}
	if timeout := settings.GetTimeout(); timeout != 90*time.Second {
		t.Errorf("Expected 90s timeout, got %v", timeout)
	}
}

func TestSettingsDialogInvalidTimeout(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	window := test.NewWindow(nil)
	defer window.Close()

	settings := config.NewSettings(app, config.Default())
	settings.SetTimeoutSeconds(30)

	saved := 0
	sd := NewSettingsDialog(settings, window, func() { saved++ })
	sd.loadCurrentSettings()
	sd.downloadDirEntry.SetText("/videos")
	sd.timeoutEntry.SetText("soon")

	if err := sd.save(); err == nil {
		t.Fatal("Expected an error for a non-numeric timeout")
	}
	if saved != 0 {
		t.Errorf("Callback should not run for invalid input, ran %d times", saved)
	}
	if timeout := settings.GetTimeout(); timeout != 30*time.Second {
		t.Errorf("Timeout should be unchanged, got %v", timeout)
	}
	if dir := settings.GetDownloadDirectory(); dir != "" {
		t.Errorf("Nothing should be written for invalid input, got directory %q", dir)
	}
}

func TestParseTimeoutSeconds(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{"empty means none", "", 0, false},
		{"whitespace means none", "  ", 0, false},
		{"seconds", "90", 90, false},
		{"padded", " 45 ", 45, false},
		{"not a number", "soon", 0, true},
		{"fraction", "1.5", 0, true},
		{"negative", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeoutSeconds(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeoutSeconds(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTimeoutSeconds(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
