package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-formats/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	downloadDirEntry *widget.Entry
	toolPathEntry    *widget.Entry
	templateEntry    *widget.Entry
	timeoutEntry     *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(DirPlaceholder)

	browseDirBtn := widget.NewButton(LabelBrowse, sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.toolPathEntry = widget.NewEntry()
	sd.toolPathEntry.SetPlaceHolder(ToolPlaceholder)

	sd.templateEntry = widget.NewEntry()
	sd.templateEntry.SetPlaceHolder("%(title)s.%(ext)s")

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(TimeoutHint)

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Filename Template:"),
		sd.templateEntry,

		widget.NewSeparator(),
		widget.NewLabel("yt-dlp"),
		widget.NewSeparator(),

		widget.NewLabel("Executable:"),
		sd.toolPathEntry,

		widget.NewLabel("Timeout (seconds):"),
		sd.timeoutEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.toolPathEntry.SetText(sd.settings.GetToolPath())
	sd.templateEntry.SetText(sd.settings.GetOutputTemplate())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetTimeout() / time.Second)))
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	if err := sd.save(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}

// save validates the entries and writes them to preferences.
// Nothing is written when an entry is invalid; empty entries restore the defaults.
func (sd *SettingsDialog) save() error {
	seconds, err := parseTimeoutSeconds(sd.timeoutEntry.Text)
	if err != nil {
		return err
	}

	sd.settings.SetDownloadDirectory(strings.TrimSpace(sd.downloadDirEntry.Text))
	sd.settings.SetToolPath(strings.TrimSpace(sd.toolPathEntry.Text))
	sd.settings.SetOutputTemplate(strings.TrimSpace(sd.templateEntry.Text))
	sd.settings.SetTimeoutSeconds(seconds)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	return nil
}

// parseTimeoutSeconds reads the timeout entry; empty means no timeout
func parseTimeoutSeconds(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	seconds, err := strconv.Atoi(text)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf(MsgInvalidTimeout, text)
	}
	return seconds, nil
}
