package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/export"
	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
	"github.com/metaminer/metaminer/internal/render"
)

// genomes builds n records; every third one is from France
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

type recorder struct {
	updates []Update
}

func (r *recorder) record(u Update) { r.updates = append(r.updates, u) }

func newTestSession(base *model.Table, reg prometheus.Registerer) (*Session, *blob.Memory) {
	store := blob.NewMemory()
	s := New(base, Config{
		Saver:   export.NewService(store, logr.Discard()),
		Metrics: NewMetrics(reg),
	}, logr.Discard())
	return s, store
}

func withCountry(state filter.ControlState, country string) filter.ControlState {
	state.Country = country
	return state
}

func TestStep_CoalescesPendingSubmissions(t *testing.T) {
	base := genomes(30)
	s, _ := newTestSession(base, nil)
	rec := &recorder{}
	s.SetUpdateCallback(rec.record)

	defaults := filter.DefaultControls(base)
	s.Submit(defaults)
	seq := s.Submit(withCountry(defaults, "France"))

	if !s.step(context.Background()) {
		t.Fatal("step() found nothing to evaluate")
	}
	if s.step(context.Background()) {
		t.Error("step() evaluated a coalesced submission")
	}
	if len(rec.updates) != 1 {
		t.Fatalf("delivered %d updates, expected 1", len(rec.updates))
	}
	if rec.updates[0].Seq != seq || rec.updates[0].Result.GenomeCount != 10 {
		t.Errorf("update = seq %d count %d, expected seq %d count 10", rec.updates[0].Seq, rec.updates[0].Result.GenomeCount, seq)
	}
}

func TestStep_DiscardsStaleUpdate(t *testing.T) {
	base := genomes(9)
	reg := prometheus.NewRegistry()
	s, _ := newTestSession(base, reg)
	rec := &recorder{}
	s.SetUpdateCallback(rec.record)

	s.Submit(filter.DefaultControls(base))
	// a newer submission arrives while the pending one is evaluated
	s.mu.Lock()
	s.seq++
	s.mu.Unlock()

	s.step(context.Background())
	if len(rec.updates) != 0 {
		t.Errorf("stale update was delivered")
	}
	if got := testutil.ToFloat64(s.metrics.staleUpdates); got != 1 {
		t.Errorf("stale_updates_total = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.updates); got != 1 {
		t.Errorf("updates_total = %v, expected 1", got)
	}
}

func TestRequestSave_ConsumedOnce(t *testing.T) {
	base := genomes(6)
	reg := prometheus.NewRegistry()
	s, store := newTestSession(base, reg)
	rec := &recorder{}
	s.SetUpdateCallback(rec.record)
	ctx := context.Background()

	s.Submit(filter.DefaultControls(base))
	s.step(ctx)
	s.RequestSave()
	s.step(ctx)
	s.Submit(withCountry(filter.DefaultControls(base), "France"))
	s.step(ctx)

	if len(rec.updates) != 3 {
		t.Fatalf("delivered %d updates, expected 3", len(rec.updates))
	}
	if rec.updates[0].Save != nil || rec.updates[2].Save != nil {
		t.Error("save ran on an update that did not request it")
	}
	ack := rec.updates[1].Save
	if ack == nil || !ack.Succeeded() || ack.Rows != 6 {
		t.Fatalf("save acknowledgment = %+v, expected 6 rows saved", ack)
	}

	infos, _ := store.List(ctx, export.SnapshotPrefix)
	if len(infos) != 1 {
		t.Errorf("store holds %d snapshots, expected 1", len(infos))
	}
	if got := testutil.ToFloat64(s.metrics.saves.WithLabelValues("success")); got != 1 {
		t.Errorf("saves_total{result=success} = %v, expected 1", got)
	}
}

func TestRequestSave_SurvivesStaleUpdate(t *testing.T) {
	base := genomes(6)
	s, _ := newTestSession(base, nil)
	rec := &recorder{}
	s.SetUpdateCallback(rec.record)
	ctx := context.Background()

	s.Submit(filter.DefaultControls(base))
	s.RequestSave()
	s.mu.Lock()
	s.seq++
	s.mu.Unlock()
	s.step(ctx)

	s.Submit(withCountry(filter.DefaultControls(base), "France"))
	s.step(ctx)

	if len(rec.updates) != 1 || rec.updates[0].Save == nil {
		t.Fatalf("updates = %+v, expected one update carrying the save", rec.updates)
	}
	if rec.updates[0].Save.Rows != 2 {
		t.Errorf("saved %d rows, expected the newer France view of 2", rec.updates[0].Save.Rows)
	}
}

func TestReplaceBase_ReevaluatesLastState(t *testing.T) {
	s, _ := newTestSession(genomes(3), nil)
	rec := &recorder{}
	s.SetUpdateCallback(rec.record)
	ctx := context.Background()

	s.Submit(filter.DefaultControls(s.Base()))
	s.step(ctx)
	s.ReplaceBase(genomes(12))
	s.step(ctx)

	if len(rec.updates) != 2 {
		t.Fatalf("delivered %d updates, expected 2", len(rec.updates))
	}
	if got := rec.updates[1].Result.GenomeCount; got != 12 {
		t.Errorf("GenomeCount after reload = %d, expected 12", got)
	}
}

func TestUpdate_SettlesState(t *testing.T) {
	base := genomes(8)
	s, _ := newTestSession(base, nil)

	state := filter.DefaultControls(base)
	state.Bioproject = filter.KeywordControl{Text: "study 1", Edit: filter.EditText}
	update := s.Evaluate(state)

	if update.State.Bioproject.Edit != filter.EditExternal {
		t.Errorf("Edit = %v, expected external after settling", update.State.Bioproject.Edit)
	}
	if len(update.State.Bioproject.Selected) != 1 || update.State.Bioproject.Selected[0] != "Study 1" {
		t.Errorf("Selected = %v, expected [Study 1]", update.State.Bioproject.Selected)
	}
	if update.Result.GenomeCount != 2 {
		t.Errorf("GenomeCount = %d, expected 2", update.Result.GenomeCount)
	}
}

func TestSession_RendersFigures(t *testing.T) {
	base := genomes(5)
	s := New(base, Config{Dispatcher: render.NewDispatcher(nil, logr.Discard())}, logr.Discard())

	update := s.Evaluate(filter.DefaultControls(base))
	if len(update.Figures) != len(render.ChartIDs()) {
		t.Errorf("Figures = %d, expected %d", len(update.Figures), len(render.ChartIDs()))
	}
}

func TestSave_WithoutSaver(t *testing.T) {
	base := genomes(2)
	s := New(base, Config{}, logr.Discard())

	task, err := s.Save(context.Background(), filter.DefaultControls(base))
	if err == nil {
		t.Fatal("Save() expected an error without a store")
	}
	if task.Message != "Error saving file: no snapshot store configured" {
		t.Errorf("Message = %q", task.Message)
	}
}

func TestSession_Worker(t *testing.T) {
	base := genomes(30)
	s, _ := newTestSession(base, nil)

	delivered := make(chan Update, 16)
	s.SetUpdateCallback(func(u Update) { delivered <- u })
	s.Start(context.Background())
	defer s.Close()

	defaults := filter.DefaultControls(base)
	s.Submit(defaults)
	s.Submit(withCountry(defaults, "Germany"))
	last := s.Submit(withCountry(defaults, "France"))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case u := <-delivered:
			if u.Seq > last {
				t.Fatalf("unexpected seq %d", u.Seq)
			}
			if u.Seq == last {
				if u.Result.GenomeCount != 10 {
					t.Errorf("GenomeCount = %d, expected 10", u.Result.GenomeCount)
				}
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for the latest update")
		}
	}
}

func TestClose_BeforeStart(t *testing.T) {
	s, _ := newTestSession(genomes(1), nil)
	s.Close()
	s.Close()
	s.Start(context.Background())
}
