package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/aprit/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	l10n     *Localization
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	downloadDirEntry   *widget.Entry
	connectionsSelect  *widget.Select
	languageSelect     *widget.Select
	askBeforeExitCheck *widget.Check

	// language display name -> code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// settings are written.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, l10n *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		l10n:     l10n,
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
	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.l10n.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.connectionsSelect = widget.NewSelect(connectionOptions(), nil)

	// Language selection by display name
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.askBeforeExitCheck = widget.NewCheck(sd.l10n.GetText(KeyAskBeforeExit), nil)

	form := container.NewVBox(
		widget.NewLabel(sd.l10n.GetText(KeyDownloadDirectory)),
		downloadDirRow,

		widget.NewLabel(sd.l10n.GetText(KeyDefaultConnections)),
		sd.connectionsSelect,

		widget.NewSeparator(),

		widget.NewLabel(sd.l10n.GetText(KeyLanguage)),
		sd.languageSelect,

		sd.askBeforeExitCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.l10n.GetText(KeySettings),
		sd.l10n.GetText(KeySave),
		sd.l10n.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(SettingsDialogSize)
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.connectionsSelect.SetSelected(strconv.Itoa(sd.settings.GetDefaultConnections()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.askBeforeExitCheck.SetChecked(!sd.settings.SkipExitPrompt())
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

	// Empty directory keeps the previous one
	sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)

	if connections, err := strconv.Atoi(sd.connectionsSelect.Selected); err == nil {
		sd.settings.SetDefaultConnections(connections)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetSkipExitPrompt(!sd.askBeforeExitCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.l10n.GetText(KeySettings), sd.l10n.GetText(KeySettingsSaved), sd.window)
}
