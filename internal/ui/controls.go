package ui

import (
	"errors"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/metaminer/metaminer/internal/filter"
)

var errNotANumber = errors.New("not a number")

// ControlPanel holds one widget per dashboard control and keeps a
// filter.ControlState in step with them. Every user edit produces a full
// copy of the state for onChange.
type ControlPanel struct {
	localization *Localization
	state        filter.ControlState
	onChange     func(filter.ControlState)

	// syncing suppresses onChange while widgets are set from code
	syncing bool

	country      *widget.Select
	assembly     *widget.CheckGroup
	annotation   *widget.CheckGroup
	years        *rangeInput
	atypical     *widget.RadioGroup
	suppressed   *widget.RadioGroup
	technology   *widget.CheckGroup
	coverage     *rangeInput
	includeAbove *widget.Check
	numeric      []*rangeInput
	bioproject   *keywordInput
	biosample    *keywordInput
	hosts        *widget.CheckGroup
	categories   *widget.CheckGroup
	sources      *widget.CheckGroup
	samples      *widget.CheckGroup

	content fyne.CanvasObject
}

// numericControls lists the plain range controls in panel order
var numericControls = []struct {
	key string
	get func(*filter.ControlState) *filter.NumericControl
}{
	{KeyANIIdentity, func(s *filter.ControlState) *filter.NumericControl { return &s.ANIIdentity }},
	{KeyANICoverage, func(s *filter.ControlState) *filter.NumericControl { return &s.ANICoverage }},
	{KeyContigN50, func(s *filter.ControlState) *filter.NumericControl { return &s.ContigN50 }},
	{KeyContigL50, func(s *filter.ControlState) *filter.NumericControl { return &s.ContigL50 }},
	{KeyTotalGenes, func(s *filter.ControlState) *filter.NumericControl { return &s.TotalGenes }},
	{KeyProteinCoding, func(s *filter.ControlState) *filter.NumericControl { return &s.ProteinCoding }},
	{KeyNonCoding, func(s *filter.ControlState) *filter.NumericControl { return &s.NonCoding }},
	{KeyPseudogenes, func(s *filter.ControlState) *filter.NumericControl { return &s.Pseudogenes }},
}

// NewControlPanel builds the panel showing state with the given options
func NewControlPanel(localization *Localization, state filter.ControlState, options filter.Options, onChange func(filter.ControlState)) *ControlPanel {
	p := &ControlPanel{
		localization: localization,
		state:        state.Clone(),
		onChange:     onChange,
	}
	p.syncing = true
	p.build(options)
	p.syncing = false
	return p
}

// Content returns the scrollable panel
func (p *ControlPanel) Content() fyne.CanvasObject {
	return p.content
}

// State returns a copy of the state the panel shows
func (p *ControlPanel) State() filter.ControlState {
	return p.state.Clone()
}

func (p *ControlPanel) build(options filter.Options) {
	t := p.localization.GetText

	p.country = widget.NewSelect(options.Countries, func(v string) {
		p.edit(func(s *filter.ControlState) { s.Country = v })
	})
	p.country.SetSelected(p.state.Country)

	p.assembly = p.checkGroup(options.AssemblyLevels, p.state.AssemblyLevels, func(s *filter.ControlState, v []string) {
		s.AssemblyLevels = v
	})
	p.annotation = p.checkGroup(options.Annotations, p.state.Annotations, func(s *filter.ControlState, v []string) {
		s.Annotations = v
	})

	p.years = newRangeInput(t, p.state.Years, nil, func(r filter.Range, _ bool) {
		p.edit(func(s *filter.ControlState) { s.Years = r })
	})

	p.atypical = p.modeRadio(string(p.state.Atypical),
		[]string{string(filter.AtypicalAll), string(filter.AtypicalExclude), string(filter.AtypicalOnly)},
		func(s *filter.ControlState, mode string) { s.Atypical = filter.AtypicalMode(mode) })
	p.suppressed = p.modeRadio(string(p.state.Suppressed),
		[]string{string(filter.SuppressedAll), string(filter.SuppressedExclude), string(filter.SuppressedOnly)},
		func(s *filter.ControlState, mode string) { s.Suppressed = filter.SuppressedMode(mode) })

	p.technology = p.checkGroup(options.Technologies, p.state.Technologies, func(s *filter.ControlState, v []string) {
		s.Technologies = v
	})

	includeNull := p.state.Coverage.IncludeNull
	p.coverage = newRangeInput(t, p.state.Coverage.Range, &includeNull, func(r filter.Range, null bool) {
		p.edit(func(s *filter.ControlState) {
			s.Coverage.Range = r
			s.Coverage.IncludeNull = null
		})
	})
	p.includeAbove = widget.NewCheck(t(KeyIncludeAbove), func(on bool) {
		p.edit(func(s *filter.ControlState) { s.Coverage.IncludeAbove = on })
	})
	p.includeAbove.SetChecked(p.state.Coverage.IncludeAbove)

	items := []fyne.CanvasObject{
		section(t(KeyCountry), p.country),
		section(t(KeyAssemblyLevel), p.assembly),
		section(t(KeyAnnotation), p.annotation),
		section(t(KeySubmissionYear), p.years.Content()),
		section(t(KeyAtypical), p.atypical),
		section(t(KeySuppressed), p.suppressed),
		section(t(KeyTechnology), scrollList(p.technology)),
		section(t(KeyCoverage), container.NewVBox(p.coverage.Content(), p.includeAbove)),
	}

	p.numeric = make([]*rangeInput, len(numericControls))
	for i, nc := range numericControls {
		get := nc.get
		ctl := *get(&p.state)
		null := ctl.IncludeNull
		p.numeric[i] = newRangeInput(t, ctl.Range, &null, func(r filter.Range, null bool) {
			p.edit(func(s *filter.ControlState) {
				get(s).Range = r
				get(s).IncludeNull = null
			})
		})
		items = append(items, section(t(nc.key), p.numeric[i].Content()))
	}

	p.bioproject = p.keyword(p.state.Bioproject, options.Bioprojects, func(s *filter.ControlState) *filter.KeywordControl {
		return &s.Bioproject
	})
	p.biosample = p.keyword(p.state.Biosample, options.Biosamples, func(s *filter.ControlState) *filter.KeywordControl {
		return &s.Biosample
	})

	p.hosts = p.checkGroup(options.Hosts, p.state.Hierarchy.Hosts, func(s *filter.ControlState, v []string) {
		s.Hierarchy.Hosts = v
	})
	p.categories = p.checkGroup(options.Categories, p.state.Hierarchy.Categories, func(s *filter.ControlState, v []string) {
		s.Hierarchy.Categories = v
	})
	p.sources = p.checkGroup(options.Sources, p.state.Hierarchy.Sources, func(s *filter.ControlState, v []string) {
		s.Hierarchy.Sources = v
	})
	p.samples = p.checkGroup(options.Samples, p.state.Hierarchy.Samples, func(s *filter.ControlState, v []string) {
		s.Hierarchy.Samples = v
	})

	items = append(items,
		section(t(KeyBioproject), p.bioproject.Content()),
		section(t(KeyBiosample), p.biosample.Content()),
		section(t(KeyHost), scrollList(p.hosts)),
		section(t(KeyCategory), scrollList(p.categories)),
		section(t(KeySource), scrollList(p.sources)),
		section(t(KeySample), scrollList(p.samples)),
	)

	scroll := container.NewVScroll(container.NewVBox(items...))
	scroll.SetMinSize(fyne.NewSize(ControlPanelWidth, 0))
	p.content = scroll
}

// Apply shows a delivered state and the options it was computed with.
// Range entries and keyword text are left alone so typing is not disturbed.
func (p *ControlPanel) Apply(state filter.ControlState, options filter.Options) {
	p.syncing = true
	defer func() { p.syncing = false }()

	p.state = state.Clone()
	p.state.Bioproject.Text = p.bioproject.entry.Text
	p.state.Biosample.Text = p.biosample.entry.Text

	p.country.Options = options.Countries
	p.country.SetSelected(state.Country)
	setCheckGroup(p.assembly, options.AssemblyLevels, state.AssemblyLevels)
	setCheckGroup(p.annotation, options.Annotations, state.Annotations)
	setCheckGroup(p.technology, options.Technologies, state.Technologies)
	setCheckGroup(p.hosts, options.Hosts, state.Hierarchy.Hosts)
	setCheckGroup(p.categories, options.Categories, state.Hierarchy.Categories)
	setCheckGroup(p.sources, options.Sources, state.Hierarchy.Sources)
	setCheckGroup(p.samples, options.Samples, state.Hierarchy.Samples)
	setCheckGroup(p.bioproject.list, options.Bioprojects, state.Bioproject.Selected)
	setCheckGroup(p.biosample.list, options.Biosamples, state.Biosample.Selected)
}

// edit applies fn to the state and reports the new state. Keyword edits
// from earlier updates are cleared so only the current gesture counts.
func (p *ControlPanel) edit(fn func(*filter.ControlState)) {
	if p.syncing {
		return
	}
	p.state.Bioproject.Edit = filter.EditExternal
	p.state.Biosample.Edit = filter.EditExternal
	fn(&p.state)
	if p.onChange != nil {
		p.onChange(p.state.Clone())
	}
}

func (p *ControlPanel) checkGroup(options, selected []string, set func(*filter.ControlState, []string)) *widget.CheckGroup {
	group := widget.NewCheckGroup(options, func(v []string) {
		p.edit(func(s *filter.ControlState) { set(s, append([]string(nil), v...)) })
	})
	group.SetSelected(selected)
	return group
}

// modeRadio shows the three-way choices with localized labels
func (p *ControlPanel) modeRadio(current string, modes []string, set func(*filter.ControlState, string)) *widget.RadioGroup {
	t := p.localization.GetText
	labels := []string{t(KeyModeAll), t(KeyModeExclude), t(KeyModeOnly)}
	radio := widget.NewRadioGroup(labels, func(label string) {
		for i, l := range labels {
			if l == label {
				p.edit(func(s *filter.ControlState) { set(s, modes[i]) })
				return
			}
		}
	})
	radio.Horizontal = true
	radio.Required = true
	for i, m := range modes {
		if m == current {
			radio.SetSelected(labels[i])
		}
	}
	return radio
}

// keyword builds a free-text box whose matches are added to the selection
// once the text is committed with Enter or by leaving the box.
func (p *ControlPanel) keyword(ctl filter.KeywordControl, options []string, get func(*filter.ControlState) *filter.KeywordControl) *keywordInput {
	k := &keywordInput{entry: newKeywordEntry(), committed: ctl.Text}
	k.entry.SetPlaceHolder(p.localization.GetText(KeyKeywordHint))
	k.entry.SetText(ctl.Text)
	k.entry.OnChanged = func(text string) {
		if !p.syncing {
			get(&p.state).Text = text
		}
	}
	commit := func() {
		text := k.entry.Text
		if text == k.committed {
			return
		}
		k.committed = text
		p.edit(func(s *filter.ControlState) {
			get(s).Text = text
			get(s).Edit = filter.EditText
		})
	}
	k.entry.OnSubmitted = func(string) { commit() }
	k.entry.onFocusLost = commit
	k.list = widget.NewCheckGroup(options, func(v []string) {
		p.edit(func(s *filter.ControlState) {
			get(s).Selected = append([]string(nil), v...)
			get(s).Edit = filter.EditDropdown
		})
	})
	k.list.SetSelected(ctl.Selected)
	return k
}

// keywordInput is a free-text box above the multi-select it feeds
type keywordInput struct {
	entry *keywordEntry
	list  *widget.CheckGroup

	// committed is the text last reported as a keyword edit
	committed string
}

// keywordEntry is an Entry that also reports losing focus
type keywordEntry struct {
	widget.Entry
	onFocusLost func()
}

func newKeywordEntry() *keywordEntry {
	e := &keywordEntry{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *keywordEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.onFocusLost != nil {
		e.onFocusLost()
	}
}

func (k *keywordInput) Content() fyne.CanvasObject {
	return container.NewBorder(k.entry, nil, nil, nil, scrollList(k.list))
}

// rangeInput edits an inclusive range with two entries and an optional
// include-null check. Incomplete or inverted ranges are not reported.
type rangeInput struct {
	lo, hi      *widget.Entry
	includeNull *widget.Check
	onChange    func(filter.Range, bool)
}

func newRangeInput(t func(string) string, r filter.Range, includeNull *bool, onChange func(filter.Range, bool)) *rangeInput {
	in := &rangeInput{
		lo:       widget.NewEntry(),
		hi:       widget.NewEntry(),
		onChange: onChange,
	}
	in.lo.SetPlaceHolder(t(KeyFrom))
	in.hi.SetPlaceHolder(t(KeyTo))
	in.lo.SetText(formatBound(r.Lo))
	in.hi.SetText(formatBound(r.Hi))
	in.lo.Validator = numberValidator
	in.hi.Validator = numberValidator
	in.lo.OnChanged = func(string) { in.changed() }
	in.hi.OnChanged = func(string) { in.changed() }
	if includeNull != nil {
		in.includeNull = widget.NewCheck(t(KeyIncludeNull), func(bool) { in.changed() })
		in.includeNull.SetChecked(*includeNull)
	}
	return in
}

// Range parses the entries
func (in *rangeInput) Range() (filter.Range, error) {
	lo, err := parseBound(in.lo.Text)
	if err != nil {
		return filter.Range{}, err
	}
	hi, err := parseBound(in.hi.Text)
	if err != nil {
		return filter.Range{}, err
	}
	r := filter.Range{Lo: lo, Hi: hi}
	return r, r.Validate()
}

func (in *rangeInput) changed() {
	r, err := in.Range()
	if err != nil {
		return
	}
	null := in.includeNull != nil && in.includeNull.Checked
	in.onChange(r, null)
}

func (in *rangeInput) Content() fyne.CanvasObject {
	row := container.NewGridWithColumns(2, in.lo, in.hi)
	if in.includeNull == nil {
		return row
	}
	return container.NewVBox(row, in.includeNull)
}

func parseBound(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, errNotANumber
	}
	return v, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numberValidator(text string) error {
	_, err := parseBound(text)
	return err
}

func setCheckGroup(group *widget.CheckGroup, options, selected []string) {
	group.Options = options
	group.SetSelected(selected)
	group.Refresh()
}

func section(title string, body fyne.CanvasObject) fyne.CanvasObject {
	return widget.NewCard("", title, body)
}

// scrollList bounds tall check lists
func scrollList(list *widget.CheckGroup) fyne.CanvasObject {
	scroll := container.NewVScroll(list)
	scroll.SetMinSize(fyne.NewSize(0, CheckListHeight))
	return scroll
}
