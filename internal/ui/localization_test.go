package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/metaminer/metaminer/internal/config"
)

func TestLocalizationFallbacks(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("system resolved to %q, want en", l.GetCurrentLanguage())
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("unknown language switched to %q", l.GetCurrentLanguage())
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q", got)
	}

	l.SetLanguage("pt")
	if got := l.GetText(KeySaveFiltered); got != "Salvar dados filtrados" {
		t.Errorf("pt save = %q", got)
	}
}

func TestLocalizationComplete(t *testing.T) {
	l := NewLocalization()
	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("no texts for %s", code)
			continue
		}
		for key := range l.texts["en"] {
			if texts[key] == "" {
				t.Errorf("%s: missing %s", code, key)
			}
		}
	}
}

func TestSettingsDialogApply(t *testing.T) {
	app := test.NewApp()
	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization(), test.NewWindow(nil), nil)
	sd.loadCurrentSettings()

	if change := sd.apply(); change.Any() {
		t.Fatalf("unchanged form reported %+v", change)
	}

	sd.widthEntry.SetText("900")
	sd.dataFileEntry.SetText("other.tsv")
	sd.driverSelect.SetSelected("memory")

	change := sd.apply()
	if !change.ChartSize || !change.DataFile || !change.NeedsRestart || change.Language {
		t.Errorf("change = %+v", change)
	}
	if settings.GetChartWidth() != 900 {
		t.Errorf("chart width = %d, want 900", settings.GetChartWidth())
	}
	if settings.GetDataFile() != "other.tsv" {
		t.Errorf("data file = %q", settings.GetDataFile())
	}
	if settings.GetExportDriver() != "memory" {
		t.Errorf("export driver = %q", settings.GetExportDriver())
	}
}
