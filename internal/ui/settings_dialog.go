package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/metaminer/metaminer/internal/config"
)

// SettingsChange reports which groups of settings were modified
type SettingsChange struct {
	DataFile     bool // metadata table must be reloaded
	ChartSize    bool // charts must be re-rasterized
	Language     bool
	NeedsRestart bool // logging, geometry or snapshot store changed
}

// Any reports whether anything changed
func (c SettingsChange) Any() bool {
	return c.DataFile || c.ChartSize || c.Language || c.NeedsRestart
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(SettingsChange)

	dataFileEntry    *widget.Entry
	geometryDirEntry *widget.Entry
	saveDirEntry     *widget.Entry
	logLevelSelect   *widget.Select
	logFileEntry     *widget.Entry
	driverSelect     *widget.Select
	bucketEntry      *widget.Entry
	regionEntry      *widget.Entry
	endpointEntry    *widget.Entry
	widthEntry       *widget.Entry
	heightEntry      *widget.Entry
	languageSelect   *widget.Select
}

// ShowSettingsDialog builds and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func(SettingsChange)) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func(SettingsChange)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.dataFileEntry = widget.NewEntry()
	dataFileRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), sd.onBrowseFile), sd.dataFileEntry)

	sd.geometryDirEntry = widget.NewEntry()
	geometryRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), func() { sd.browseFolder(sd.geometryDirEntry) }), sd.geometryDirEntry)

	sd.saveDirEntry = widget.NewEntry()
	saveDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), func() { sd.browseFolder(sd.saveDirEntry) }), sd.saveDirEntry)

	sd.logLevelSelect = widget.NewSelect(config.GetLogLevelOptions(), nil)
	sd.logFileEntry = widget.NewEntry()

	sd.driverSelect = widget.NewSelect(config.GetExportDriverOptions(), sd.onDriverChanged)
	sd.bucketEntry = widget.NewEntry()
	sd.regionEntry = widget.NewEntry()
	sd.regionEntry.SetPlaceHolder("us-east-1")
	sd.endpointEntry = widget.NewEntry()
	sd.endpointEntry.SetPlaceHolder("https://s3.example.com")

	sd.widthEntry = widget.NewEntry()
	sd.widthEntry.Validator = chartSizeValidator
	sd.heightEntry = widget.NewEntry()
	sd.heightEntry.Validator = chartSizeValidator

	languageOptions := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle(t(KeyDataSettings), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem(t(KeyDataFile), dataFileRow),
			widget.NewFormItem(t(KeyGeometryDir), geometryRow),
			widget.NewFormItem(t(KeyLogLevel), sd.logLevelSelect),
			widget.NewFormItem(t(KeyLogFile), sd.logFileEntry),
		),

		widget.NewLabelWithStyle(t(KeyExportSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem(t(KeyExportDriver), sd.driverSelect),
			widget.NewFormItem(t(KeySaveDirectory), saveDirRow),
			widget.NewFormItem(t(KeyS3Bucket), sd.bucketEntry),
			widget.NewFormItem(t(KeyS3Region), sd.regionEntry),
			widget.NewFormItem(t(KeyS3Endpoint), sd.endpointEntry),
		),

		widget.NewLabelWithStyle(t(KeyUISection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem(t(KeyChartWidth), sd.widthEntry),
			widget.NewFormItem(t(KeyChartHeight), sd.heightEntry),
			widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		),
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(560, 620))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.dataFileEntry.SetText(sd.settings.GetDataFile())
	sd.geometryDirEntry.SetText(sd.settings.GetGeometryDir())
	sd.saveDirEntry.SetText(sd.settings.GetSaveDirectory())
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())
	sd.logFileEntry.SetText(sd.settings.GetLogFile())
	sd.driverSelect.SetSelected(sd.settings.GetExportDriver())
	sd.bucketEntry.SetText(sd.settings.GetS3Bucket())
	sd.regionEntry.SetText(sd.settings.GetS3Region())
	sd.endpointEntry.SetText(sd.settings.GetS3Endpoint())
	sd.widthEntry.SetText(strconv.Itoa(sd.settings.GetChartWidth()))
	sd.heightEntry.SetText(strconv.Itoa(sd.settings.GetChartHeight()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onDriverChanged enables the S3 fields only for the s3 driver
func (sd *SettingsDialog) onDriverChanged(driver string) {
	for _, e := range []*widget.Entry{sd.bucketEntry, sd.regionEntry, sd.endpointEntry} {
		if driver == "s3" {
			e.Enable()
		} else {
			e.Disable()
		}
	}
	if driver == "fs" {
		sd.saveDirEntry.Enable()
	} else {
		sd.saveDirEntry.Disable()
	}
}

func (sd *SettingsDialog) onBrowseFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		sd.dataFileEntry.SetText(reader.URI().Path())
	}, sd.window)
}

func (sd *SettingsDialog) browseFolder(target *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		target.SetText(uri.Path())
	}, sd.window)
}

// apply writes the form into settings and reports what changed
func (sd *SettingsDialog) apply() SettingsChange {
	s := sd.settings
	var change SettingsChange

	setString := func(text string, get func() string, set func(string), flag *bool) {
		if text == "" || text == get() {
			return
		}
		set(text)
		*flag = true
	}

	setString(sd.dataFileEntry.Text, s.GetDataFile, s.SetDataFile, &change.DataFile)
	setString(sd.geometryDirEntry.Text, s.GetGeometryDir, s.SetGeometryDir, &change.NeedsRestart)
	setString(sd.saveDirEntry.Text, s.GetSaveDirectory, s.SetSaveDirectory, &change.NeedsRestart)
	setString(sd.logLevelSelect.Selected, s.GetLogLevel, s.SetLogLevel, &change.NeedsRestart)
	setString(sd.logFileEntry.Text, s.GetLogFile, s.SetLogFile, &change.NeedsRestart)
	setString(sd.driverSelect.Selected, s.GetExportDriver, s.SetExportDriver, &change.NeedsRestart)
	setString(sd.bucketEntry.Text, s.GetS3Bucket, s.SetS3Bucket, &change.NeedsRestart)
	setString(sd.regionEntry.Text, s.GetS3Region, s.SetS3Region, &change.NeedsRestart)
	setString(sd.endpointEntry.Text, s.GetS3Endpoint, s.SetS3Endpoint, &change.NeedsRestart)
	setString(sd.languageSelect.Selected, s.GetLanguage, s.SetLanguage, &change.Language)

	if w, err := strconv.Atoi(sd.widthEntry.Text); err == nil && w != s.GetChartWidth() {
		s.SetChartWidth(w)
		change.ChartSize = true
	}
	if h, err := strconv.Atoi(sd.heightEntry.Text); err == nil && h != s.GetChartHeight() {
		s.SetChartHeight(h)
		change.ChartSize = true
	}
	return change
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	change := sd.apply()
	message := sd.localization.GetText(KeySettingsSaved)
	if change.NeedsRestart {
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)

	if sd.onSaved != nil && change.Any() {
		sd.onSaved(change)
	}
}

func chartSizeValidator(text string) error {
	_, err := strconv.Atoi(text)
	return err
}
