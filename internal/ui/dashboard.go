package ui

import (
	"image"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/config"
	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
	"github.com/metaminer/metaminer/internal/platform"
	"github.com/metaminer/metaminer/internal/render"
	"github.com/metaminer/metaminer/internal/session"
)

// LoadFunc reads a metadata table from path
type LoadFunc func(path string) (*model.Table, error)

// Options wires the dashboard to the rest of the application
type Options struct {
	Session *session.Session
	Logger  logr.Logger
	// Load reloads the table when the data file setting changes. Nil
	// disables reloading from the settings dialog.
	Load LoadFunc
}

// Dashboard is the main window: controls on the left, summary and charts
// on the right
type Dashboard struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	session      *session.Session
	logger       logr.Logger
	load         LoadFunc

	// snapshot actions, platform.OpenFileInManager and OpenFileWithDefaultApp
	reveal   func(string) error
	openFile func(string) error

	controls    *ControlPanel
	charts      *ChartGrid
	statusLabel *widget.Label
	countLabel  *widget.Label
	saveBtn     *widget.Button

	// submitted is the sequence number of the latest state the panel sent
	submitted atomic.Uint64

	// last delivered figures, kept for re-rasterizing on resize
	figuresMu   sync.Mutex
	lastFigures render.Figures

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationOpenBtn   *widget.Button
	notificationFileBtn   *widget.Button
	notificationLocation  string
	notificationTimer     *time.Timer
}

// NewDashboard builds the dashboard into window and submits the default
// controls for the session's table
func NewDashboard(window fyne.Window, app fyne.App, opts Options) *Dashboard {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	d := &Dashboard{
		window:       window,
		settings:     settings,
		localization: localization,
		session:      opts.Session,
		logger:       opts.Logger.WithName("ui"),
		load:         opts.Load,
		reveal:       platform.OpenFileInManager,
		openFile:     platform.OpenFileWithDefaultApp,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	base := d.session.Base()
	d.setupUI(filter.DefaultControls(base), filter.StaticOptions(base))
	d.session.SetUpdateCallback(d.onSessionUpdate)
	d.submit(d.controls.State())

	return d
}

// setupUI (re)builds the window content around state
func (d *Dashboard) setupUI(state filter.ControlState, options filter.Options) {
	t := d.localization.GetText

	d.createMenu()

	logo := canvas.NewImageFromResource(LoadLogoResource())
	logo.FillMode = canvas.ImageFillContain
	logo.SetMinSize(fyne.NewSize(32, 32))

	settingsBtn := widget.NewButton(IconSettings, d.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	resetBtn := widget.NewButton(IconReset+" "+t(KeyResetFilters), d.onReset)
	d.saveBtn = widget.NewButton(IconSave+" "+t(KeySaveFiltered), d.onSaveClick)
	d.saveBtn.Importance = widget.HighImportance

	d.countLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	topPanel := container.NewBorder(nil, nil,
		container.NewHBox(logo, d.countLabel),
		container.NewHBox(resetBtn, d.saveBtn, settingsBtn),
	)

	d.notificationLabel = widget.NewLabel("")
	d.notificationLabel.Wrapping = fyne.TextWrapWord
	d.notificationSpinner = widget.NewProgressBarInfinite()
	d.notificationSpinner.Hide()
	d.notificationOpenBtn = widget.NewButton(IconFolder+" "+t(KeyOpenFolder), d.onShowInFolder)
	d.notificationOpenBtn.Hide()
	d.notificationFileBtn = widget.NewButton(IconFile+" "+t(KeyOpenFile), d.onOpenSnapshot)
	d.notificationFileBtn.Hide()
	d.notificationContainer = container.NewBorder(nil, d.notificationSpinner, nil,
		container.NewHBox(d.notificationOpenBtn, d.notificationFileBtn), d.notificationLabel)
	d.notificationContainer.Hide()

	d.statusLabel = widget.NewLabel("")
	d.statusLabel.Wrapping = fyne.TextWrapWord
	statusScroll := container.NewVScroll(d.statusLabel)
	statusScroll.SetMinSize(fyne.NewSize(0, StatusPanelHeight))

	d.controls = NewControlPanel(d.localization, state, options, d.submit)
	d.charts = NewChartGrid(d.settings.GetChartWidth(), d.settings.GetChartHeight())

	right := container.NewBorder(
		widget.NewCard("", t(KeySummary), statusScroll),
		nil, nil, nil,
		container.NewVScroll(d.charts.Content()),
	)
	split := container.NewHSplit(
		widget.NewCard("", t(KeyFilters), d.controls.Content()),
		right,
	)
	split.SetOffset(0.25)

	d.window.SetContent(container.NewBorder(
		container.NewVBox(topPanel, d.notificationContainer),
		nil, nil, nil,
		split,
	))

	d.logger.V(1).Info("UI setup completed", "language", d.localization.GetCurrentLanguage())
}

// createMenu creates the application menu
func (d *Dashboard) createMenu() {
	settingsItem := fyne.NewMenuItem(d.localization.GetText(KeySettings), d.onShowSettings)
	saveItem := fyne.NewMenuItem(d.localization.GetText(KeySaveFiltered), d.onSaveClick)

	languageMenu := fyne.NewMenu(d.localization.GetText(KeyLanguage))
	available := d.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		item := fyne.NewMenuItem(available[code], func() {
			d.onLanguageChange(code)
		})
		item.Checked = d.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	d.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(d.localization.GetText(KeyFile), saveItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange rebuilds the window in the new language, keeping the
// current control state
func (d *Dashboard) onLanguageChange(langCode string) {
	d.localization.SetLanguage(langCode)
	d.settings.SetLanguage(langCode)
	d.window.SetTitle(d.localization.GetText(KeyAppTitle))
	d.rebuild()
}

func (d *Dashboard) rebuild() {
	state := d.controls.State()
	d.setupUI(state, filter.StaticOptions(d.session.Base()))
	d.submit(state)
}

// submit hands a state to the session
func (d *Dashboard) submit(state filter.ControlState) {
	d.submitted.Store(d.session.Submit(state))
}

// onSessionUpdate runs on the session worker. Charts are rasterized here
// and the widgets are touched only inside fyne.Do.
func (d *Dashboard) onSessionUpdate(u session.Update) {
	if u.Seq < d.submitted.Load() && u.Save == nil {
		return
	}
	images := rasterizeAll(u.Figures, d.settings.GetChartWidth(), d.settings.GetChartHeight())
	d.figuresMu.Lock()
	d.lastFigures = u.Figures
	d.figuresMu.Unlock()
	fyne.Do(func() {
		d.applyUpdate(u, images)
	})
}

// applyUpdate shows a delivered update. An update older than the latest
// submission only reports its save result.
func (d *Dashboard) applyUpdate(u session.Update, images map[render.ChartID]image.Image) {
	if u.Save != nil {
		d.showSaveResult(*u.Save)
	}
	if u.Seq < d.submitted.Load() || u.Result == nil {
		return
	}

	d.controls.Apply(u.State, u.Result.Options)
	d.countLabel.SetText(u.Result.Status.GenomeCount)
	d.statusLabel.SetText(strings.Join(u.Result.Status.Lines(), "\n"))
	d.charts.Update(u.Figures, images)
}

func (d *Dashboard) onReset() {
	base := d.session.Base()
	d.setupUI(filter.DefaultControls(base), filter.StaticOptions(base))
	d.submit(d.controls.State())
}

func (d *Dashboard) onSaveClick() {
	d.showNotification(d.localization.GetText(KeySaving), true, "")
	d.session.RequestSave()
}

func (d *Dashboard) showSaveResult(task model.ExportTask) {
	location := ""
	if task.Succeeded() && platform.IsLocalPath(task.Location) {
		location = task.Location
	}
	d.showNotification(task.Message, false, location)
	if task.Succeeded() {
		d.logger.Info("snapshot saved", "location", task.Location, "rows", task.Rows)
	} else {
		d.logger.Info("snapshot failed", "error", task.LastError)
	}
}

// showNotification displays a message under the toolbar. location, when
// set, enables the show-in-folder and open buttons.
func (d *Dashboard) showNotification(message string, spinning bool, location string) {
	if d.notificationContainer == nil {
		return
	}
	d.notificationLabel.SetText(message)
	if spinning {
		d.notificationSpinner.Show()
	} else {
		d.notificationSpinner.Hide()
	}
	d.notificationLocation = location
	if location != "" {
		d.notificationOpenBtn.Show()
		d.notificationFileBtn.Show()
	} else {
		d.notificationOpenBtn.Hide()
		d.notificationFileBtn.Hide()
	}
	d.notificationContainer.Show()
	d.notificationContainer.Refresh()

	if d.notificationTimer != nil {
		d.notificationTimer.Stop()
	}
	if !spinning {
		d.notificationTimer = time.AfterFunc(NotificationAutoHide, d.hideNotification)
	}
}

// hideNotification hides the notification panel. Safe from any goroutine.
func (d *Dashboard) hideNotification() {
	fyne.Do(func() {
		d.notificationSpinner.Hide()
		d.notificationContainer.Hide()
	})
}

func (d *Dashboard) onShowInFolder() {
	if d.notificationLocation == "" {
		return
	}
	if err := d.reveal(d.notificationLocation); err != nil {
		d.logger.Error(err, "could not reveal snapshot", "path", d.notificationLocation)
	}
}

func (d *Dashboard) onOpenSnapshot() {
	if d.notificationLocation == "" {
		return
	}
	if err := d.openFile(d.notificationLocation); err != nil {
		d.logger.Error(err, "could not open snapshot", "path", d.notificationLocation)
	}
}

func (d *Dashboard) onShowSettings() {
	ShowSettingsDialog(d.window, d.settings, d.localization, d.onSettingsSaved)
}

func (d *Dashboard) onSettingsSaved(change SettingsChange) {
	if change.Language {
		d.localization.SetLanguage(d.settings.GetLanguage())
		d.window.SetTitle(d.localization.GetText(KeyAppTitle))
		d.rebuild()
	}
	if change.ChartSize {
		d.charts.SetSize(d.settings.GetChartWidth(), d.settings.GetChartHeight())
		go d.redrawCharts()
	}
	if change.DataFile && d.load != nil {
		go d.reload(d.settings.GetDataFile())
	}
}

// redrawCharts re-rasterizes the last figures at the configured size
func (d *Dashboard) redrawCharts() {
	d.figuresMu.Lock()
	figs := d.lastFigures
	d.figuresMu.Unlock()
	images := rasterizeAll(figs, d.settings.GetChartWidth(), d.settings.GetChartHeight())
	fyne.Do(func() {
		d.charts.Update(figs, images)
	})
}

// reload reads path and swaps it in as the session's table
func (d *Dashboard) reload(path string) {
	table, err := d.load(path)
	if err != nil {
		d.logger.Error(err, "could not reload metadata", "path", path)
		fyne.Do(func() {
			d.showNotification(IconError+" "+d.localization.GetText(KeyErrorLoading)+": "+err.Error(), false, "")
		})
		return
	}
	d.session.ReplaceBase(table)
	fyne.Do(func() {
		d.showNotification(d.localization.GetText(KeyDataReloaded), false, "")
	})
}
