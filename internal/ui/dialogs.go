package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/aprit/internal/shutdown"
)

// showExitDialog asks how to handle running downloads on exit.
// onDecision runs once, after the dialog is hidden.
func showExitDialog(window fyne.Window, l10n *Localization, onDecision func(shutdown.Decision)) {
	var d *dialog.CustomDialog
	decide := func(decision shutdown.Decision) func() {
		return func() {
			d.Hide()
			onDecision(decision)
		}
	}

	dontAsk := widget.NewButton(l10n.GetText(KeyDontAskAgain), decide(shutdown.DecisionDontAskAgain))
	closeBtn := widget.NewButton(l10n.GetText(KeyClose), decide(shutdown.DecisionClose))
	closeBtn.Importance = widget.DangerImportance
	cancel := widget.NewButton(l10n.GetText(KeyCancel), decide(shutdown.DecisionCancel))

	prompt := widget.NewLabel(l10n.GetText(KeyExitPrompt))
	prompt.Wrapping = fyne.TextWrapWord

	d = dialog.NewCustomWithoutButtons(l10n.GetText(KeyNotice), prompt, window)
	d.SetButtons([]fyne.CanvasObject{dontAsk, closeBtn, cancel})
	d.Resize(ExitDialogSize)
	d.Show()
}

// showNotice shows a localized message with an OK button
func showNotice(window fyne.Window, l10n *Localization, key string, args ...any) {
	message := l10n.GetText(key)
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	dialog.ShowInformation(l10n.GetText(KeyNotice), message, window)
}

// showAbout shows the application name, version and purpose
func showAbout(window fyne.Window, l10n *Localization, version string) {
	dialog.ShowInformation(l10n.GetText(KeyAboutTitle), fmt.Sprintf(l10n.GetText(KeyAboutText), version), window)
}
