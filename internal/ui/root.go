package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/music-manager/internal/job"
	"github.com/ytget/music-manager/internal/log"
)

// RootUI represents the main UI structure
type RootUI struct {
	ctx         context.Context
	window      fyne.Window
	supervisor  *job.Supervisor
	logger      *logrus.Entry
	urlEntry    *widget.Entry
	downloadBtn *widget.Button
	spinner     *widget.ProgressBarInfinite
	busyLabel   *widget.Label
}

// NewRootUI creates the main window content. Jobs started from the window
// live as long as ctx.
func NewRootUI(ctx context.Context, window fyne.Window, supervisor *job.Supervisor) *RootUI {
	ui := &RootUI{
		ctx:        ctx,
		window:     window,
		supervisor: supervisor,
		logger:     log.NewLogger("ui"),
	}

	window.SetTitle(AppTitle)
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder(TextURLPlaceholder)
	ui.urlEntry.SetMinRowsVisible(URLBoxVisibleRows)
	ui.urlEntry.Wrapping = fyne.TextWrapOff

	ui.downloadBtn = widget.NewButton(TextDownload, ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	// Hidden until a job runs
	ui.spinner = widget.NewProgressBarInfinite()
	ui.spinner.Hide()
	ui.busyLabel = widget.NewLabel(TextBusy)
	ui.busyLabel.Hide()

	bottom := container.NewBorder(nil, nil, ui.downloadBtn, ui.busyLabel, ui.spinner)
	content := container.NewBorder(nil, bottom, nil, nil, ui.urlEntry)

	ui.window.SetContent(content)
}

// onDownloadClick asks the supervisor for a job fed with the URL box text.
// Clicks while a job runs are ignored by the supervisor.
func (ui *RootUI) onDownloadClick() {
	started := ui.supervisor.RequestStart(ui.ctx, []byte(ui.urlEntry.Text), job.Callbacks{
		ShowBusy:    ui.showBusy,
		HideBusy:    ui.hideBusy,
		ReportError: ui.showError,
	})
	ui.logger.WithField("started", started).Debug("download clicked")
}

func (ui *RootUI) showBusy() {
	ui.spinner.Show()
	ui.busyLabel.Show()
}

func (ui *RootUI) hideBusy() {
	ui.spinner.Hide()
	ui.busyLabel.Hide()
}

func (ui *RootUI) showError(err error) {
	dialog.ShowInformation(TextErrorTitle, err.Error(), ui.window)
}
