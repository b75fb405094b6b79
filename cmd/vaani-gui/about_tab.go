package main

import (
	"fmt"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/vaani/internal/licenses"
	"github.com/oukeidos/vaani/internal/version"
)

const githubURL = "https://github.com/oukeidos/vaani"

func buildAboutTab(w fyne.Window) fyne.CanvasObject {
	aboutSection := container.NewVBox(
		widget.NewLabelWithStyle("About", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("App", widget.NewLabel("vaani")),
			widget.NewFormItem("Version", widget.NewLabel(version.Version)),
			widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
			widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
			widget.NewFormItem("Links", container.NewHBox(newHyperlink("GitHub", githubURL))),
		),
	)

	viewNoticesBtn := widget.NewButton("View Third-Party Notices", func() {
		text := licenses.NoticesText()
		if strings.TrimSpace(text) == "" {
			dialog.ShowError(fmt.Errorf("no third-party notices registered"), w)
			return
		}
		showTextDialog(w, "Third-Party Notices", text)
	})

	viewDisclaimerBtn := widget.NewButton("View Disclaimer", func() {
		showTextDialog(w, "Disclaimer", licenses.DisclaimerText())
	})

	return container.NewPadded(container.NewVScroll(container.NewVBox(
		aboutSection,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Licenses", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		viewNoticesBtn,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Disclaimer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		viewDisclaimerBtn,
	)))
}

func newHyperlink(label, raw string) *widget.Hyperlink {
	u, _ := url.Parse(raw)
	return widget.NewHyperlink(label, u)
}

func showTextDialog(w fyne.Window, title, text string) {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	label.Selectable = true
	scroll := container.NewScroll(label)
	scroll.SetMinSize(fyne.NewSize(560, 360))
	d := dialog.NewCustom(title, "Close", scroll, w)
	d.Resize(fyne.NewSize(600, 420))
	d.Show()
}
