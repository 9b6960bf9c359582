package ui

import (
	"errors"
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ytget/aprit/internal/config"
	"github.com/ytget/aprit/internal/download"
	"github.com/ytget/aprit/internal/logging"
	"github.com/ytget/aprit/internal/model"
	"github.com/ytget/aprit/internal/platform"
	"github.com/ytget/aprit/internal/shutdown"
)

// Options configures the main window
type Options struct {
	Version string
	// Launcher starts helper processes for every session
	Launcher download.Launcher
	// ExtraArgs are passed to the helper before the URL
	ExtraArgs []string
	// FS defaults to the OS filesystem
	FS afero.Fs
}

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	version     string
	fs          afero.Fs
	log         zerolog.Logger
	settings    *config.Settings
	l10n        *Localization
	registry    download.Supervisor
	coordinator *shutdown.Coordinator

	tabs    *container.DocTabs
	byItem  map[*container.TabItem]*DownloadTab
	byID    map[string]*DownloadTab
	toolbar *widget.Toolbar

	// quit ends the application once exit is allowed
	quit func()
}

// NewRootUI creates and initializes the main UI with one empty tab
func NewRootUI(app fyne.App, window fyne.Window, opts Options) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	fs := opts.FS
	if fs == nil {
		fs = platform.NewFS()
	}

	ui := &RootUI{
		window:   window,
		version:  opts.Version,
		fs:       fs,
		log:      logging.Get("ui"),
		settings: settings,
		l10n:     localization,
		byItem:   make(map[*container.TabItem]*DownloadTab),
		byID:     make(map[string]*DownloadTab),
		quit:     app.Quit,
	}

	// Ensure the default directory exists
	if err := platform.CreateDirectoryIfNotExists(fs, settings.GetDownloadDirectory()); err != nil {
		ui.log.Warn().Err(err).Msg("cannot create download directory")
	}

	ui.registry = download.NewRegistry(download.RegistryOptions{
		Launcher:  opts.Launcher,
		Defaults:  settings.SessionDefaults(),
		ExtraArgs: opts.ExtraArgs,
	})
	ui.registry.SetUpdateCallback(func(ev model.Event) {
		fyne.Do(func() {
			ui.onSessionEvent(ev)
		})
	})
	ui.coordinator = shutdown.NewCoordinator(settings, ui.registry)

	ui.setupUI()
	ui.addTab()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.tabs = container.NewDocTabs()
	ui.tabs.CloseIntercept = ui.onCloseTab

	ui.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), ui.addTab),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), ui.onShowSettings),
	)

	ui.window.SetContent(container.NewBorder(ui.toolbar, nil, nil, nil, ui.tabs))
	ui.window.SetCloseIntercept(ui.requestExit)
	ui.window.SetTitle(fmt.Sprintf(ui.l10n.GetText(KeyAppTitle), ui.version))
	ui.window.Resize(WindowSize)

	ui.log.Debug().Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	newTabItem := fyne.NewMenuItem(ui.l10n.GetText(KeyNewTab), ui.addTab)
	settingsItem := fyne.NewMenuItem(ui.l10n.GetText(KeySettings), ui.onShowSettings)
	exitItem := fyne.NewMenuItem(ui.l10n.GetText(KeyExit), ui.requestExit)
	// Replaces the driver's own Quit item so exit always goes through requestExit
	exitItem.IsQuit = true

	// Language submenu
	languageMenu := fyne.NewMenu(ui.l10n.GetText(KeyLanguage))

	availableLanguages := ui.l10n.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(code)
		})

		// Mark current language
		if ui.l10n.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	aboutItem := fyne.NewMenuItem(ui.l10n.GetText(KeyAbout), func() {
		showAbout(ui.window, ui.l10n, ui.version)
	})

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.l10n.GetText(KeyFile), newTabItem, settingsItem, fyne.NewMenuItemSeparator(), exitItem),
		languageMenu,
		fyne.NewMenu(ui.l10n.GetText(KeyHelp), aboutItem),
	)

	ui.window.SetMainMenu(mainMenu)
}

// addTab creates a session and shows it as the current tab
func (ui *RootUI) addTab() {
	ui.registry.SetDefaults(ui.settings.SessionDefaults())

	session, err := ui.registry.Add()
	if err != nil {
		if errors.Is(err, download.ErrCapacityExceeded) {
			showNotice(ui.window, ui.l10n, KeyMaxTabs, ui.registry.Capacity())
			return
		}
		ui.log.Error().Err(err).Msg("cannot add session")
		return
	}

	tab := newDownloadTab(session, ui.window, ui.l10n, ui.fs)
	ui.byItem[tab.item] = tab
	ui.byID[session.ID()] = tab

	ui.tabs.Append(tab.item)
	ui.tabs.Select(tab.item)
}

// onCloseTab removes an idle session; a busy one keeps its tab
func (ui *RootUI) onCloseTab(item *container.TabItem) {
	tab, ok := ui.byItem[item]
	if !ok {
		ui.tabs.Remove(item)
		return
	}

	if err := ui.registry.Remove(tab.session.ID()); err != nil {
		if errors.Is(err, download.ErrSessionBusy) {
			showNotice(ui.window, ui.l10n, KeyTabBusy)
			return
		}
		ui.log.Warn().Err(err).Str("session", tab.session.ID()).Msg("cannot remove session")
	}

	tab.dispose()
	delete(ui.byItem, item)
	delete(ui.byID, tab.session.ID())
	ui.tabs.Remove(item)
}

// onSessionEvent redraws the tab of the session that changed state
func (ui *RootUI) onSessionEvent(ev model.Event) {
	ui.log.Debug().Str("session", ev.SessionID).Uint64("seq", ev.Seq).
		Str("from", ev.From.String()).Str("to", ev.To.String()).Msg("session event")

	if tab, ok := ui.byID[ev.SessionID]; ok {
		tab.refresh()
	}
}

// requestExit runs the shutdown policy for a window close or the Exit item
func (ui *RootUI) requestExit() {
	switch ui.coordinator.Evaluate() {
	case shutdown.VerdictExitNow:
		ui.exit()
	case shutdown.VerdictNeedsDecision:
		showExitDialog(ui.window, ui.l10n, func(decision shutdown.Decision) {
			// Close stops and waits for every helper
			if ui.coordinator.Resolve(decision) {
				ui.exit()
			}
		})
	}
}

func (ui *RootUI) exit() {
	for _, tab := range ui.byID {
		tab.dispose()
	}
	ui.log.Info().Int("sessions", ui.registry.Count()).Bool("busy", ui.registry.AnyBusy()).Msg("exiting")
	ui.quit()
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.l10n.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(fmt.Sprintf(ui.l10n.GetText(KeyAppTitle), ui.version))
	for _, tab := range ui.byID {
		tab.refreshTexts()
	}

	// Recreate menu to update labels and checkmarks
	ui.createMenu()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.l10n, func() {
		ui.registry.SetDefaults(ui.settings.SessionDefaults())
		ui.l10n.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
	}).Show()
}
