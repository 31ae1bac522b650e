package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-formats/internal/config"
	"github.com/ytget/yt-formats/internal/download"
	"github.com/ytget/yt-formats/internal/model"
	"github.com/ytget/yt-formats/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	svc      download.Downloader
	log      *zap.SugaredLogger

	// called after the settings dialog saved
	onSettingsChanged func()

	urlEntry    *widget.Entry
	fetchBtn    *widget.Button
	titleLabel  *widget.Label
	videoSelect *widget.Select
	audioSelect *widget.Select
	formatEntry *widget.Entry
	downloadBtn *widget.Button
	openBtn     *widget.Button
	statusLabel *widget.Label
	spinner     *widget.ProgressBarInfinite

	mu         sync.Mutex
	result     *model.MediaInquiryResult
	fetchedURL string
	busy       bool
	videoOpts formatOptions
	audioOpts formatOptions
	lastDir   string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, svc download.Downloader, log *zap.SugaredLogger, onSettingsChanged func()) *RootUI {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ui := &RootUI{
		window:            window,
		settings:          settings,
		svc:               svc,
		log:               log,
		onSettingsChanged: onSettingsChanged,
		videoOpts:         newFormatOptions(nil),
		audioOpts:         newFormatOptions(nil),
	}

	window.SetTitle(AppTitle)
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(URLPlaceholder)
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onFetchClick()
	}
	ui.urlEntry.OnChanged = func(string) {
		ui.updateDownloadButton()
	}

	ui.fetchBtn = widget.NewButton(LabelFetch, ui.onFetchClick)
	ui.fetchBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.fetchBtn, ui.urlEntry)

	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Wrapping = fyne.TextWrapWord

	ui.videoSelect = widget.NewSelect(ui.videoOpts.labels, nil)
	ui.audioSelect = widget.NewSelect(ui.audioOpts.labels, nil)
	ui.formatEntry = widget.NewEntry()
	ui.formatEntry.SetPlaceHolder(FormatHint)

	form := widget.NewForm(
		widget.NewFormItem("Video", ui.videoSelect),
		widget.NewFormItem("Audio", ui.audioSelect),
		widget.NewFormItem("Format", ui.formatEntry),
	)

	ui.downloadBtn = widget.NewButton(LabelDownload, ui.onDownloadClick)
	ui.downloadBtn.Disable()
	ui.openBtn = widget.NewButton(LabelOpenFolder, ui.onOpenFolder)

	ui.spinner = widget.NewProgressBarInfinite()
	ui.spinner.Stop()
	ui.spinner.Hide()

	ui.statusLabel = widget.NewLabel(StatusIdle)
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	actions := container.NewHBox(ui.downloadBtn, ui.openBtn)
	bottom := container.NewVBox(ui.spinner, ui.statusLabel)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.titleLabel),
		bottom,
		nil,
		nil,
		container.NewVBox(form, actions),
	)
	ui.window.SetContent(content)
}

// onFetchClick starts a format inquiry for the entered URL
func (ui *RootUI) onFetchClick() {
	url := strings.TrimSpace(ui.urlEntry.Text)
	ui.setBusy(true, StatusFetching)
	go ui.fetch(url)
}

// fetch runs the inquiry off the UI goroutine
func (ui *RootUI) fetch(url string) {
	result, err := ui.svc.Inquire(context.Background(), url)
	fyne.Do(func() {
		ui.setBusy(false, "")
		if err != nil {
			ui.showError(err)
			return
		}
		ui.showResult(url, result)
	})
}

// showResult fills the pickers with the formats of result, in tool order.
// Picked format ids the new result still offers stay selected.
func (ui *RootUI) showResult(url string, result *model.MediaInquiryResult) {
	ui.mu.Lock()
	prevVideo := ui.videoOpts.id(ui.videoSelect.Selected)
	prevAudio := ui.audioOpts.id(ui.audioSelect.Selected)
	ui.result = result
	ui.fetchedURL = url
	ui.videoOpts = newFormatOptions(result.VideoFormats())
	ui.audioOpts = newFormatOptions(result.AudioFormats())
	videoOpts, audioOpts := ui.videoOpts, ui.audioOpts
	ui.mu.Unlock()

	ui.titleLabel.SetText(result.Title)

	ui.videoSelect.Options = videoOpts.labels
	ui.videoSelect.SetSelected(selectedLabel(videoOpts, prevVideo))
	ui.audioSelect.Options = audioOpts.labels
	ui.audioSelect.SetSelected(selectedLabel(audioOpts, prevAudio))

	ui.updateDownloadButton()
	ui.statusLabel.SetText(fmt.Sprintf(StatusFetched, len(result.Formats)))
}

// selectedLabel returns the label for id, or NoneOption when opts lacks it
func selectedLabel(opts formatOptions, id string) string {
	if id == "" {
		return NoneOption
	}
	if label, ok := opts.label(id); ok {
		return label
	}
	return NoneOption
}

// canDownload reports whether the entered URL is the one whose formats are shown
func (ui *RootUI) canDownload() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return !ui.busy && ui.result != nil && strings.TrimSpace(ui.urlEntry.Text) == ui.fetchedURL
}

// updateDownloadButton enables Download only for the fetched URL
func (ui *RootUI) updateDownloadButton() {
	if ui.downloadBtn == nil {
		return
	}
	if ui.canDownload() {
		ui.downloadBtn.Enable()
	} else {
		ui.downloadBtn.Disable()
	}
}

// currentSelection reads the pickers and the explicit format entry
func (ui *RootUI) currentSelection() model.FormatSelection {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return model.FormatSelection{
		Format:  strings.TrimSpace(ui.formatEntry.Text),
		VideoID: ui.videoOpts.id(ui.videoSelect.Selected),
		AudioID: ui.audioOpts.id(ui.audioSelect.Selected),
	}
}

// onDownloadClick downloads the fetched URL with the current selection
func (ui *RootUI) onDownloadClick() {
	if !ui.canDownload() {
		return
	}
	ui.mu.Lock()
	url := ui.fetchedURL
	ui.mu.Unlock()
	selection := ui.currentSelection()
	targetDir := ui.settings.GetDownloadDirectory()

	selector, _ := selection.Selector()
	ui.setBusy(true, fmt.Sprintf(StatusDownloading, selector))
	go ui.download(url, selection, targetDir)
}

// download runs the download off the UI goroutine
func (ui *RootUI) download(url string, selection model.FormatSelection, targetDir string) {
	outcome, err := ui.svc.Download(context.Background(), url, selection, targetDir)
	fyne.Do(func() {
		ui.setBusy(false, "")
		if err != nil {
			ui.showError(err)
			return
		}
		ui.showOutcome(outcome)
	})
}

// showOutcome reports a finished download
func (ui *RootUI) showOutcome(outcome *model.DownloadOutcome) {
	ui.mu.Lock()
	ui.lastDir = outcome.Directory
	ui.mu.Unlock()

	ui.statusLabel.SetText(outcome.Message)
	ui.log.Infow("download finished", "url", outcome.URL, "selector", outcome.Selector)
}

// showError reports a failed operation in the status line and a dialog
func (ui *RootUI) showError(err error) {
	ui.log.Warnw("operation failed", "error", err)
	ui.statusLabel.SetText(fmt.Sprintf(StatusFailed, err))
	dialog.ShowError(err, ui.window)
}

// setBusy toggles the spinner and the action buttons
func (ui *RootUI) setBusy(busy bool, status string) {
	ui.mu.Lock()
	ui.busy = busy
	ui.mu.Unlock()

	if busy {
		ui.fetchBtn.Disable()
		ui.downloadBtn.Disable()
		ui.spinner.Show()
		ui.spinner.Start()
	} else {
		ui.fetchBtn.Enable()
		ui.spinner.Stop()
		ui.spinner.Hide()
		ui.updateDownloadButton()
	}
	if status != "" {
		ui.statusLabel.SetText(status)
	}
}

// targetDirectory returns the folder the next or last download goes to
func (ui *RootUI) targetDirectory() (string, bool) {
	ui.mu.Lock()
	last := ui.lastDir
	ui.mu.Unlock()

	if last != "" {
		return last, true
	}
	if dir := ui.settings.GetDownloadDirectory(); dir != "" {
		return dir, true
	}
	return platform.ResolveDownloadDir(platform.SystemEnv())
}

// onOpenFolder reveals the download folder
func (ui *RootUI) onOpenFolder() {
	dir, ok := ui.targetDirectory()
	if !ok {
		dialog.ShowError(errors.New(download.MsgNoDownloadsDir), ui.window)
		return
	}
	if err := platform.OpenDirectory(dir); err != nil {
		ui.showError(err)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.onSettingsChanged).Show()
}
