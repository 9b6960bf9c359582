package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ytget/aprit/internal/download"
	"github.com/ytget/aprit/internal/logging"
	"github.com/ytget/aprit/internal/model"
	"github.com/ytget/aprit/internal/platform"
)

// DownloadTab is the form and controls of one session
type DownloadTab struct {
	session *download.Session
	window  fyne.Window
	l10n    *Localization
	fs      afero.Fs
	log     zerolog.Logger

	item        *container.TabItem
	urlLabel    *widget.Label
	urlEntry    *widget.Entry
	pathLabel   *widget.Label
	pathEntry   *widget.Entry
	connLabel   *widget.Label
	connSelect  *widget.Select
	browseBtn   *widget.Button
	openBtn     *widget.Button
	startBtn    *widget.Button
	stopBtn     *widget.Button
	stateText   *canvas.Text
	detailLabel *widget.Label

	// usageStop is only touched on the UI goroutine
	usageStop chan struct{}
}

// connectionOptions returns "1".."16" for the connection selector
func connectionOptions() []string {
	options := make([]string, 0, model.MaxConnections-model.MinConnections+1)
	for n := model.MinConnections; n <= model.MaxConnections; n++ {
		options = append(options, strconv.Itoa(n))
	}
	return options
}

func newDownloadTab(session *download.Session, window fyne.Window, l10n *Localization, fs afero.Fs) *DownloadTab {
	t := &DownloadTab{
		session: session,
		window:  window,
		l10n:    l10n,
		fs:      fs,
		log:     logging.Get("ui").With().Str("session", session.ID()).Logger(),
	}
	t.createUI()
	return t
}

func (t *DownloadTab) createUI() {
	cfg := t.session.Config()

	t.urlLabel = widget.NewLabel("")
	t.urlEntry = widget.NewEntry()
	t.urlEntry.SetText(cfg.URL)
	// Start when the user presses Enter in the URL field
	t.urlEntry.OnSubmitted = func(string) {
		t.onStart()
	}

	t.pathLabel = widget.NewLabel("")
	t.pathEntry = widget.NewEntry()
	t.pathEntry.SetText(cfg.DestinationDir)
	t.browseBtn = widget.NewButton("", t.onBrowse)
	t.openBtn = widget.NewButton("", t.onOpenFolder)

	t.connLabel = widget.NewLabel("")
	t.connSelect = widget.NewSelect(connectionOptions(), nil)
	t.connSelect.SetSelected(strconv.Itoa(cfg.Connections))

	t.startBtn = widget.NewButton("", t.onStart)
	t.startBtn.Importance = widget.HighImportance
	t.stopBtn = widget.NewButton("", t.onStop)

	t.stateText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	t.stateText.TextStyle = fyne.TextStyle{Bold: true}
	t.detailLabel = widget.NewLabel("")
	t.detailLabel.Truncation = fyne.TextTruncateEllipsis

	pathRow := container.NewBorder(nil, nil, nil, container.NewHBox(t.browseBtn, t.openBtn), t.pathEntry)
	connRow := container.NewHBox(container.NewGridWrap(fyne.NewSize(ConnectionSelectWidth, t.connSelect.MinSize().Height), t.connSelect))
	form := container.New(layout.NewFormLayout(),
		t.urlLabel, t.urlEntry,
		t.pathLabel, pathRow,
		t.connLabel, connRow,
	)

	statusRow := container.NewBorder(nil, nil, container.NewCenter(t.stateText), nil, t.detailLabel)
	buttons := container.NewHBox(layout.NewSpacer(), t.startBtn, t.stopBtn)

	content := container.NewVBox(form, widget.NewSeparator(), statusRow, buttons)
	t.item = container.NewTabItem(t.session.Label(), container.NewPadded(content))

	t.refreshTexts()
}

// refreshTexts applies the current language to every label
func (t *DownloadTab) refreshTexts() {
	t.urlLabel.SetText(t.l10n.GetText(KeyURL))
	t.urlEntry.SetPlaceHolder(t.l10n.GetText(KeyEnterURL))
	t.pathLabel.SetText(t.l10n.GetText(KeySaveTo))
	t.browseBtn.SetText(t.l10n.GetText(KeyBrowse))
	t.openBtn.SetText(t.l10n.GetText(KeyOpenFolder))
	t.connLabel.SetText(t.l10n.GetText(KeyConnections))
	t.startBtn.SetText(t.l10n.GetText(KeyStart))
	t.stopBtn.SetText(t.l10n.GetText(KeyStop))
	t.refresh()
}

// refresh redraws controls from the session snapshot. Must run on the UI goroutine.
func (t *DownloadTab) refresh() {
	snap := t.session.Snapshot()

	switch snap.State {
	case model.SessionRunning:
		t.startBtn.Disable()
		t.stopBtn.Enable()
		t.stateText.Text = t.l10n.GetText(KeyStatusRunning)
		t.stateText.Color = theme.Color(theme.ColorNameSuccess)
		t.detailLabel.SetText(t.detail(snap, false))
		t.startUsageUpdates()
	case model.SessionStopping:
		t.startBtn.Disable()
		t.stopBtn.Disable()
		t.stateText.Text = t.l10n.GetText(KeyStatusStopping)
		t.stateText.Color = theme.Color(theme.ColorNameWarning)
		t.detailLabel.SetText(t.detail(snap, false))
		t.stopUsageUpdates()
	default:
		t.startBtn.Enable()
		t.stopBtn.Disable()
		t.stateText.Text = t.l10n.GetText(KeyStatusIdle)
		t.stateText.Color = theme.Color(theme.ColorNameForeground)
		t.detailLabel.SetText(t.session.LastOutput())
		t.stopUsageUpdates()
	}
	t.stateText.Refresh()
}

// detail describes a live worker. Sampling usage may block briefly, so it is
// only requested off the UI goroutine.
func (t *DownloadTab) detail(snap model.SessionSnapshot, withUsage bool) string {
	parts := []string{fmt.Sprintf(PIDLabelFormat, snap.PID)}
	if withUsage {
		if usage, err := t.session.Usage(); err == nil {
			parts = append(parts, usage.String())
		}
	}
	if out := t.session.LastOutput(); out != "" {
		parts = append(parts, out)
	}
	return strings.Join(parts, MiddleDotSeparator)
}

func (t *DownloadTab) startUsageUpdates() {
	if t.usageStop != nil {
		return
	}
	stop := make(chan struct{})
	t.usageStop = stop

	go func() {
		ticker := time.NewTicker(UsageRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				snap := t.session.Snapshot()
				if snap.State != model.SessionRunning {
					continue
				}
				text := t.detail(snap, true)
				fyne.Do(func() {
					if t.usageStop == stop {
						t.detailLabel.SetText(text)
					}
				})
			}
		}
	}()
}

func (t *DownloadTab) stopUsageUpdates() {
	if t.usageStop != nil {
		close(t.usageStop)
		t.usageStop = nil
	}
}

// dispose releases background work when the tab goes away
func (t *DownloadTab) dispose() {
	t.stopUsageUpdates()
}

func (t *DownloadTab) onStart() {
	connections, err := strconv.Atoi(t.connSelect.Selected)
	if err != nil {
		connections = model.DefaultConnections
	}
	t.session.Configure(t.urlEntry.Text, t.pathEntry.Text, connections)

	dir := strings.TrimSpace(t.pathEntry.Text)
	if dir != "" && download.ValidateURL(strings.TrimSpace(t.urlEntry.Text)) == nil {
		if err := t.prepareDestination(dir); err != nil {
			t.log.Error().Err(err).Str("dir", dir).Msg("cannot prepare destination")
			dialog.ShowError(err, t.window)
			return
		}
	}

	if err := t.session.Start(); err != nil {
		t.showStartError(err)
	}
}

// prepareDestination creates dir if needed and checks the helper can write there
func (t *DownloadTab) prepareDestination(dir string) error {
	if err := platform.CreateDirectoryIfNotExists(t.fs, dir); err != nil {
		return err
	}
	return platform.CheckWritableDir(t.fs, dir)
}

func (t *DownloadTab) showStartError(err error) {
	var key string
	switch {
	case errors.Is(err, download.ErrAlreadyRunning):
		return
	case errors.Is(err, download.ErrEmptyURL):
		key = KeyPleaseEnterURL
	case errors.Is(err, download.ErrInvalidURL):
		key = KeyInvalidURL
	case errors.Is(err, download.ErrEmptyDestination):
		key = KeyChooseDestination
	case errors.Is(err, download.ErrSpawnFailed):
		t.log.Error().Err(err).Msg("helper failed to start")
		key = KeyHelperFailed
	default:
		t.log.Error().Err(err).Msg("start failed")
		dialog.ShowError(err, t.window)
		return
	}
	dialog.ShowInformation(t.l10n.GetText(KeyNotice), t.l10n.GetText(key), t.window)
}

// onStop kills the helper off the UI goroutine; the Stopping and Idle
// events redraw the tab.
func (t *DownloadTab) onStop() {
	t.stopBtn.Disable()
	go t.session.Stop()
}

func (t *DownloadTab) onBrowse() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		if path := uri.Path(); path != "" {
			t.pathEntry.SetText(path)
		}
	}, t.window)

	if dir := strings.TrimSpace(t.pathEntry.Text); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (t *DownloadTab) onOpenFolder() {
	dir := strings.TrimSpace(t.pathEntry.Text)
	if dir == "" {
		dialog.ShowInformation(t.l10n.GetText(KeyNotice), t.l10n.GetText(KeyChooseDestination), t.window)
		return
	}
	if err := platform.OpenFolder(dir); err != nil {
		t.log.Error().Err(err).Str("dir", dir).Msg("cannot open folder")
		dialog.ShowError(fmt.Errorf("%s: %w", t.l10n.GetText(KeyErrorOpeningFolder), err), t.window)
	}
}
