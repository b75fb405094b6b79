package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/vaani/internal/auth"
	"github.com/oukeidos/vaani/internal/cleanup"
	"github.com/oukeidos/vaani/internal/config"
	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/pipeline"
	"github.com/oukeidos/vaani/internal/providers"
	"github.com/oukeidos/vaani/internal/services"
)

type vaaniApp struct {
	window fyne.Window
	prefs  preferences
	cfg    config.Config
	state  AppState

	questionEntry    *widget.Entry
	langSelect       *widget.Select
	providerSelect   *widget.Select
	modelSelect      *widget.Select
	askBtn           *widget.Button
	cancelBtn        *widget.Button
	progress         *widget.ProgressBarInfinite
	statusLabel      *widget.Label
	summaryLabel     *widget.Label
	translationTitle *widget.Label
	translationLabel *widget.Label
	messagesLabel    *widget.Label

	sessionKeys map[string]string
	keyEntries  map[string]*widget.Entry
	keyStatus   map[string]*widget.Label

	cancelMu        sync.Mutex
	activeCancel    context.CancelFunc
	activeCancelID  uint64
	panicNoticeOnce sync.Once
}

func newVaaniApp(w fyne.Window, prefs preferences) *vaaniApp {
	a := &vaaniApp{
		window:      w,
		prefs:       prefs,
		cfg:         loadPrefs(prefs, baseConfig()),
		sessionKeys: map[string]string{},
		keyEntries:  map[string]*widget.Entry{},
		keyStatus:   map[string]*widget.Label{},
	}
	return a
}

func (a *vaaniApp) setActiveCancel(cancel context.CancelFunc) uint64 {
	a.cancelMu.Lock()
	if a.activeCancel != nil {
		a.activeCancel()
	}
	a.activeCancel = cancel
	a.activeCancelID++
	id := a.activeCancelID
	a.cancelMu.Unlock()
	return id
}

func (a *vaaniApp) clearActiveCancel(id uint64) {
	a.cancelMu.Lock()
	if a.activeCancelID == id {
		a.activeCancel = nil
	}
	a.cancelMu.Unlock()
}

func (a *vaaniApp) cancelActive(reason string) {
	a.cancelMu.Lock()
	cancel := a.activeCancel
	a.activeCancel = nil
	a.cancelMu.Unlock()
	if cancel != nil {
		logger.Warn("Cancellation requested", "reason", reason)
		cancel()
	}
}

func (a *vaaniApp) buildUI() fyne.CanvasObject {
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Ask", theme.SearchIcon(), a.buildAskTab()),
		container.NewTabItemWithIcon("Keys", theme.SettingsIcon(), a.buildKeysTab()),
		container.NewTabItemWithIcon("About", theme.InfoIcon(), buildAboutTab(a.window)),
	)
	a.setState(StateIdle)
	return tabs
}

func (a *vaaniApp) buildAskTab() fyne.CanvasObject {
	a.questionEntry = widget.NewEntry()
	a.questionEntry.SetPlaceHolder("Ask a question in English, e.g. What is the capital of France?")
	a.questionEntry.OnSubmitted = func(string) { a.startRun() }

	a.langSelect = widget.NewSelect(languageOptions(), func(label string) {
		if lang, ok := language.FromLabel(label); ok {
			a.cfg.Language = lang.Code
			savePrefs(a.prefs, a.cfg)
		}
	})
	if lang, ok := language.GetLanguage(a.cfg.Language); ok {
		a.langSelect.SetSelected(lang.Label())
	}

	a.modelSelect = widget.NewSelect(providers.ModelIDs(a.cfg.Summarizer.Provider), func(model string) {
		a.cfg.Summarizer.Model = model
		savePrefs(a.prefs, a.cfg)
	})
	a.modelSelect.SetSelected(a.cfg.Summarizer.Model)

	a.providerSelect = widget.NewSelect(providers.Names(), func(name string) {
		if name == a.cfg.Summarizer.Provider {
			return
		}
		a.cfg.Summarizer.Provider = name
		a.modelSelect.Options = providers.ModelIDs(name)
		a.modelSelect.SetSelected(providers.DefaultModel(name))
	})
	a.providerSelect.SetSelected(a.cfg.Summarizer.Provider)

	a.askBtn = widget.NewButtonWithIcon("Ask", theme.MailSendIcon(), a.startRun)
	a.askBtn.Importance = widget.HighImportance
	a.cancelBtn = widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), func() {
		a.cancelActive("user canceled")
	})
	a.progress = widget.NewProgressBarInfinite()
	a.progress.Stop()
	a.progress.Hide()

	a.statusLabel = widget.NewLabel("")
	a.summaryLabel = newResultLabel()
	a.translationTitle = widget.NewLabelWithStyle("Translation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.translationLabel = newResultLabel()
	a.messagesLabel = newResultLabel()

	form := widget.NewForm(
		widget.NewFormItem("Question", a.questionEntry),
		widget.NewFormItem("Language", a.langSelect),
		widget.NewFormItem("Summarizer", container.NewGridWithColumns(2, a.providerSelect, a.modelSelect)),
	)
	controls := container.NewBorder(nil, nil, container.NewHBox(a.askBtn, a.cancelBtn), nil, a.progress)

	results := container.NewVBox(
		a.messagesLabel,
		widget.NewLabelWithStyle("Summary", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.summaryLabel,
		widget.NewSeparator(),
		a.translationTitle,
		a.translationLabel,
	)

	top := container.NewVBox(form, controls, a.statusLabel, widget.NewSeparator())
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(results))
}

func newResultLabel() *widget.Label {
	l := widget.NewLabel("")
	l.Wrapping = fyne.TextWrapWord
	l.Selectable = true
	return l
}

func (a *vaaniApp) buildKeysTab() fyne.CanvasObject {
	form := widget.NewForm()
	for _, name := range auth.Services() {
		svc, _ := auth.Lookup(name)
		entry := widget.NewPasswordEntry()
		entry.SetPlaceHolder("Enter new key")
		status := widget.NewLabel("")
		a.keyEntries[name] = entry
		a.keyStatus[name] = status
		form.Append(svc.Label, container.NewBorder(nil, nil, nil, status, entry))
	}
	a.refreshKeyStatus()

	saveBtn := widget.NewButtonWithIcon("Save to Keychain", theme.DocumentSaveIcon(), func() {
		result, err := saveKeysToKeychain(a.keyEntryValues(), auth.SaveKey)
		for _, svc := range result.Saved {
			delete(a.sessionKeys, svc)
		}
		a.clearKeyEntries()
		a.refreshKeyStatus()
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if len(result.Saved) > 0 {
			dialog.ShowInformation("Keys Saved", "Saved: "+strings.Join(result.Saved, ", "), a.window)
		}
	})

	sessionBtn := widget.NewButtonWithIcon("Use for This Session", theme.ConfirmIcon(), func() {
		for svc, key := range a.keyEntryValues() {
			if strings.TrimSpace(key) != "" {
				a.sessionKeys[svc] = strings.TrimSpace(key)
			}
		}
		a.clearKeyEntries()
		a.refreshKeyStatus()
	})

	resetBtn := widget.NewButtonWithIcon("Reset Keychain", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Reset Keys", "Delete all vaani API keys from the OS keychain?", func(ok bool) {
			if !ok {
				return
			}
			if err := resetKeysInKeychain(auth.DeleteKey); err != nil {
				logger.Warn("Key reset incomplete", "error", err)
			}
			a.refreshKeyStatus()
		}, a.window)
	})

	note := widget.NewLabel("Environment variables take precedence over the keychain. Session keys are forgotten when the window closes.")
	note.Wrapping = fyne.TextWrapWord

	return container.NewPadded(container.NewVBox(
		form,
		container.NewHBox(saveBtn, sessionBtn, resetBtn),
		note,
	))
}

func (a *vaaniApp) keyEntryValues() map[string]string {
	out := make(map[string]string, len(a.keyEntries))
	for svc, e := range a.keyEntries {
		out[svc] = e.Text
	}
	return out
}

func (a *vaaniApp) clearKeyEntries() {
	for _, e := range a.keyEntries {
		e.SetText("")
	}
}

func (a *vaaniApp) refreshKeyStatus() {
	keys := sessionKeySource(a.sessionKeys, auth.GetKey)
	for svc, label := range a.keyStatus {
		if _, source := keys(svc); source != "" {
			label.SetText("✔ " + source)
		} else {
			label.SetText("✖ Not set")
		}
	}
}

func (a *vaaniApp) startRun() {
	if a.state == StateProcessing {
		return
	}
	question := strings.TrimSpace(a.questionEntry.Text)
	if question == "" {
		a.statusLabel.SetText("Please enter a question.")
		return
	}

	cfg := a.cfg
	keys := sessionKeySource(maps.Clone(a.sessionKeys), auth.GetKey)
	if missing := missingKeys(cfg.Summarizer.Provider, keys); len(missing) > 0 {
		labels := make([]string, 0, len(missing))
		for _, svc := range missing {
			labels = append(labels, serviceLabel(svc))
		}
		dialog.ShowInformation("API Keys Needed",
			fmt.Sprintf("Set these keys in the Keys tab first: %s.", strings.Join(labels, ", ")), a.window)
		return
	}

	a.clearResults()
	a.setState(StateProcessing)

	ctx, cancel := context.WithCancel(context.Background())
	cancelID := a.setActiveCancel(cancel)
	a.safeGo("ask.pipeline", func() {
		defer a.clearActiveCancel(cancelID)

		set := services.Build(ctx, cfg, keys)
		defer func() {
			if err := set.Close(); err != nil {
				logger.Warn("Failed to release clients", "error", err)
			}
		}()

		p := set.Pipeline(cfg, pipeline.WithObserver(func(_ pipeline.State, text string) {
			if text == "" {
				return
			}
			a.safeDo("ask.status", func() { a.statusLabel.SetText(text) })
		}))
		rep := p.Run(ctx, question, cfg.Language)
		state := stateForReport(rep, ctx.Err())

		a.safeDo("ask.report", func() {
			a.showReport(rep)
		})
		a.setState(state)
	})
}

func (a *vaaniApp) clearResults() {
	a.summaryLabel.SetText("")
	a.translationLabel.SetText("")
	a.messagesLabel.SetText("")
	a.translationTitle.SetText(translationHeading(a.cfg.Language))
}

func (a *vaaniApp) showReport(rep pipeline.Report) {
	a.messagesLabel.SetText(formatMessages(rep))
	a.summaryLabel.SetText(rep.Summary)
	a.translationTitle.SetText(translationHeading(rep.TargetLanguage))
	a.translationLabel.SetText(rep.Final())
}

func (a *vaaniApp) setState(s AppState) {
	a.safeDo("ui.state", func() {
		a.state = s
		if s == StateProcessing {
			a.askBtn.Disable()
			a.cancelBtn.Enable()
			a.progress.Show()
			a.progress.Start()
			a.statusLabel.SetText(s.String())
			return
		}
		a.askBtn.Enable()
		a.cancelBtn.Disable()
		a.progress.Stop()
		a.progress.Hide()
		a.statusLabel.SetText(s.String())
	})
}

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()
	if err := config.LoadDotEnv(""); err != nil {
		logger.Warn("Failed to load .env", "error", err)
	}

	myApp := app.NewWithID("io.github.oukeidos.vaani")

	w := myApp.NewWindow("vaani")
	w.SetMaster()
	w.Resize(fyne.NewSize(760, 640))
	w.CenterOnScreen()

	va := newVaaniApp(w, myApp.Preferences())
	w.SetContent(va.buildUI())
	cleanup.Register("session keys", func() error {
		va.sessionKeys = map[string]string{}
		return nil
	})
	w.SetCloseIntercept(func() {
		va.cancelActive("window closed")
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
	if err := cleanup.RunAll(); err != nil {
		logger.Warn("Cleanup failed", "error", err)
	}
}
