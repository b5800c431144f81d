package ui

import (
	"fmt"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/export"
	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
	"github.com/metaminer/metaminer/internal/render"
	"github.com/metaminer/metaminer/internal/session"
)

func genomes(n int) *model.Table {
	b := model.NewTableBuilder(model.FieldNames(model.AllFields)...)
	for i := 0; i < n; i++ {
		country, code := "Germany", "DEU"
		if i%3 == 0 {
			country, code = "France", "FRA"
		}
		b.Add(map[model.Field]string{
			model.FieldCountry:        country,
			model.FieldCountryCode:    code,
			model.FieldAssemblyLevel:  model.AssemblyContig,
			model.FieldAnnotation:     model.AnnotationGenBank,
			model.FieldSubmissionYear: "2020",
			model.FieldAtypical:       model.AtypicalNo,
			model.FieldAssemblyStatus: model.StatusCurrent,
			model.FieldSequencingTech: "Illumina",
			model.FieldHost:           "Animal-associated",
			model.FieldBioproject:     fmt.Sprintf("Study %d", i%4),
		})
	}
	return b.Build()
}

func newTestDashboard(t *testing.T) (*Dashboard, *session.Session) {
	t.Helper()
	sess := session.New(genomes(12), session.Config{
		Dispatcher: render.NewDispatcher(nil, logr.Discard()),
		Saver:      export.NewService(blob.NewMemory(), logr.Discard()),
	}, logr.Discard())
	app := test.NewApp()
	d := NewDashboard(test.NewWindow(nil), app, Options{Session: sess, Logger: logr.Discard()})
	return d, sess
}

func newTestPanel(base *model.Table) (*ControlPanel, *[]filter.ControlState) {
	var got []filter.ControlState
	p := NewControlPanel(NewLocalization(), filter.DefaultControls(base), filter.StaticOptions(base), func(s filter.ControlState) {
		got = append(got, s)
	})
	return p, &got
}

func TestControlPanelReportsEdits(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(p *ControlPanel)
		calls int
		check func(t *testing.T, s filter.ControlState)
	}{
		{
			name:  "country",
			edit:  func(p *ControlPanel) { p.country.OnChanged("France") },
			calls: 1,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Country != "France" {
					t.Errorf("Country = %q, want France", s.Country)
				}
			},
		},
		{
			name: "year lower bound",
			edit: func(p *ControlPanel) {
				p.years.lo.Text = "2019"
				p.years.lo.OnChanged("2019")
			},
			calls: 1,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Years.Lo != 2019 {
					t.Errorf("Years.Lo = %v, want 2019", s.Years.Lo)
				}
			},
		},
		{
			name: "unparsable bound is not reported",
			edit: func(p *ControlPanel) {
				p.years.lo.Text = "abc"
				p.years.lo.OnChanged("abc")
			},
			calls: 0,
		},
		{
			name: "inverted range is not reported",
			edit: func(p *ControlPanel) {
				p.years.lo.Text = "2030"
				p.years.lo.OnChanged("2030")
			},
			calls: 0,
		},
		{
			name: "coverage null toggle",
			edit: func(p *ControlPanel) {
				p.coverage.includeNull.Checked = false
				p.coverage.includeNull.OnChanged(false)
			},
			calls: 1,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Coverage.IncludeNull {
					t.Error("Coverage.IncludeNull = true, want false")
				}
			},
		},
		{
			name: "keyword text",
			edit: func(p *ControlPanel) {
				p.bioproject.entry.Text = "study 1"
				p.bioproject.entry.OnChanged("study 1")
				p.bioproject.entry.OnSubmitted("study 1")
			},
			calls: 1,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Bioproject.Text != "study 1" || s.Bioproject.Edit != filter.EditText {
					t.Errorf("Bioproject = %+v, want text edit", s.Bioproject)
				}
			},
		},
		{
			name: "uncommitted keyword text is not reported",
			edit: func(p *ControlPanel) {
				p.bioproject.entry.Text = "study"
				p.bioproject.entry.OnChanged("study")
			},
			calls: 0,
		},
		{
			name: "keyword text committed on focus lost",
			edit: func(p *ControlPanel) {
				p.biosample.entry.Text = "sample"
				p.biosample.entry.OnChanged("sample")
				p.biosample.entry.FocusLost()
				p.biosample.entry.FocusLost()
			},
			calls: 1,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Biosample.Text != "sample" || s.Biosample.Edit != filter.EditText {
					t.Errorf("Biosample = %+v, want text edit", s.Biosample)
				}
			},
		},
		{
			name:  "keyword dropdown",
			edit:  func(p *ControlPanel) { p.bioproject.list.OnChanged([]string{"Study 2"}) },
			calls: 1,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Bioproject.Edit != filter.EditDropdown || len(s.Bioproject.Selected) != 1 {
					t.Errorf("Bioproject = %+v, want dropdown edit of one value", s.Bioproject)
				}
			},
		},
		{
			name: "other control resets keyword edit",
			edit: func(p *ControlPanel) {
				p.bioproject.entry.Text = "study"
				p.bioproject.entry.OnChanged("study")
				p.bioproject.entry.OnSubmitted("study")
				p.suppressed.OnChanged(p.localization.GetText(KeyModeExclude))
			},
			calls: 2,
			check: func(t *testing.T, s filter.ControlState) {
				if s.Bioproject.Edit != filter.EditExternal {
					t.Errorf("Bioproject.Edit = %v, want external", s.Bioproject.Edit)
				}
				if s.Suppressed != filter.SuppressedExclude {
					t.Errorf("Suppressed = %q, want %q", s.Suppressed, filter.SuppressedExclude)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.NewApp()
			p, got := newTestPanel(genomes(12))
			tt.edit(p)
			if len(*got) != tt.calls {
				t.Fatalf("onChange called %d times, want %d", len(*got), tt.calls)
			}
			if tt.check != nil {
				tt.check(t, (*got)[len(*got)-1])
			}
		})
	}
}

func TestKeywordTypingSelectsFinalMatches(t *testing.T) {
	test.NewApp()
	b := model.NewTableBuilder(model.FieldNames(model.AllFields)...)
	for _, project := range []string{"Study A", "Study B", "Other", "Sample X"} {
		b.Add(map[model.Field]string{
			model.FieldCountry:        "Germany",
			model.FieldCountryCode:    "DEU",
			model.FieldAssemblyLevel:  model.AssemblyContig,
			model.FieldAnnotation:     model.AnnotationGenBank,
			model.FieldSubmissionYear: "2020",
			model.FieldAtypical:       model.AtypicalNo,
			model.FieldAssemblyStatus: model.StatusCurrent,
			model.FieldSequencingTech: "Illumina",
			model.FieldHost:           "Animal-associated",
			model.FieldBioproject:     project,
		})
	}
	base := b.Build()
	driver := filter.NewDriver(logr.Discard())

	var p *ControlPanel
	submits := 0
	p = NewControlPanel(NewLocalization(), filter.DefaultControls(base), filter.StaticOptions(base), func(s filter.ControlState) {
		submits++
		res := driver.Compose(base, s)
		p.Apply(s.Settle(res.Selections), res.Options)
	})

	word := "study"
	for i := 1; i <= len(word); i++ {
		p.bioproject.entry.Text = word[:i]
		p.bioproject.entry.OnChanged(word[:i])
	}
	p.bioproject.entry.OnSubmitted(word)
	p.bioproject.entry.FocusLost()

	if submits != 1 {
		t.Fatalf("typing submitted %d times, want 1", submits)
	}
	got := p.State().Bioproject.Selected
	if len(got) != 2 || got[0] != "Study A" || got[1] != "Study B" {
		t.Errorf("selection after typing %q = %v, want [Study A Study B]", word, got)
	}
	if p.State().Bioproject.Text != word {
		t.Errorf("Text = %q, want %q", p.State().Bioproject.Text, word)
	}
}

func TestControlPanelApplyIsSilent(t *testing.T) {
	test.NewApp()
	base := genomes(12)
	p, got := newTestPanel(base)

	state := filter.DefaultControls(base)
	state.Country = "France"
	options := filter.StaticOptions(base)
	options.Bioprojects = []string{"Study 0", "Study 3"}
	state.Bioproject.Selected = []string{"Study 3"}

	p.Apply(state, options)

	if len(*got) != 0 {
		t.Fatalf("Apply reported %d edits", len(*got))
	}
	if p.country.Selected != "France" {
		t.Errorf("country = %q, want France", p.country.Selected)
	}
	if len(p.bioproject.list.Options) != 2 {
		t.Errorf("bioproject options = %v", p.bioproject.list.Options)
	}
	if s := p.State(); s.Country != "France" || len(s.Bioproject.Selected) != 1 {
		t.Errorf("State() = %+v", s)
	}
}

func TestDashboardAppliesCurrentUpdate(t *testing.T) {
	d, sess := newTestDashboard(t)

	state := d.controls.State()
	state.Country = "France"
	d.submit(state)

	u := sess.Evaluate(state)
	u.Seq = d.submitted.Load()
	d.applyUpdate(u, rasterizeAll(u.Figures, 200, 120))

	if d.countLabel.Text != "4" {
		t.Errorf("count = %q, want 4", d.countLabel.Text)
	}
	if !strings.Contains(d.statusLabel.Text, "4") {
		t.Errorf("status = %q", d.statusLabel.Text)
	}
	if img := d.charts.images[render.ChartAssemblyLevel].Image; img == nil || img.Bounds().Dx() != 200 {
		t.Errorf("assembly chart not updated: %v", img)
	}
	if d.controls.State().Country != "France" {
		t.Errorf("controls not synced")
	}
}

func TestDashboardIgnoresStaleUpdate(t *testing.T) {
	d, sess := newTestDashboard(t)

	state := d.controls.State()
	state.Country = "France"
	stale := sess.Evaluate(state)
	stale.Seq = d.submitted.Load()

	d.submit(d.controls.State())
	d.applyUpdate(stale, nil)

	if d.countLabel.Text != "" {
		t.Errorf("stale update applied: count = %q", d.countLabel.Text)
	}
}

func TestDashboardShowsSaveResult(t *testing.T) {
	tests := []struct {
		name     string
		task     model.ExportTask
		openable bool
	}{
		{
			name: "local file",
			task: model.ExportTask{
				Status:   model.TaskStatusCompleted,
				Location: "/tmp/filtered_data_x.tsv",
				Message:  "File saved successfully at /tmp/filtered_data_x.tsv",
			},
			openable: true,
		},
		{
			name: "remote object",
			task: model.ExportTask{
				Status:   model.TaskStatusCompleted,
				Location: "s3://bucket/filtered_data_x.tsv",
				Message:  "File saved successfully at s3://bucket/filtered_data_x.tsv",
			},
		},
		{
			name: "failure",
			task: model.ExportTask{
				Status:  model.TaskStatusError,
				Message: "Error saving file: disk full",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDashboard(t)
			task := tt.task
			d.applyUpdate(session.Update{Save: &task}, nil)

			if d.notificationLabel.Text != tt.task.Message {
				t.Errorf("notification = %q, want %q", d.notificationLabel.Text, tt.task.Message)
			}
			if !d.notificationContainer.Visible() {
				t.Error("notification hidden")
			}
			if d.notificationOpenBtn.Visible() != tt.openable || d.notificationFileBtn.Visible() != tt.openable {
				t.Errorf("snapshot buttons visible = %v/%v, want %v",
					d.notificationOpenBtn.Visible(), d.notificationFileBtn.Visible(), tt.openable)
			}

			var revealed, opened []string
			d.reveal = func(path string) error { revealed = append(revealed, path); return nil }
			d.openFile = func(path string) error { opened = append(opened, path); return nil }
			test.Tap(d.notificationOpenBtn)
			test.Tap(d.notificationFileBtn)
			if tt.openable {
				if len(revealed) != 1 || revealed[0] != tt.task.Location {
					t.Errorf("revealed = %v, want %s", revealed, tt.task.Location)
				}
				if len(opened) != 1 || opened[0] != tt.task.Location {
					t.Errorf("opened = %v, want %s", opened, tt.task.Location)
				}
			} else if len(revealed)+len(opened) != 0 {
				t.Errorf("actions ran without a local snapshot: %v %v", revealed, opened)
			}
		})
	}
}

func TestDashboardLanguageChangeKeepsState(t *testing.T) {
	d, _ := newTestDashboard(t)
	d.controls.country.OnChanged("France")

	d.onLanguageChange("ru")

	if got := d.controls.State().Country; got != "France" {
		t.Errorf("Country = %q after rebuild, want France", got)
	}
	if !strings.Contains(d.saveBtn.Text, "Сохранить") {
		t.Errorf("save button = %q, want Russian text", d.saveBtn.Text)
	}
	if d.settings.GetLanguage() != "ru" {
		t.Errorf("language not persisted")
	}
}
