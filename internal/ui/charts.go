package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/metaminer/metaminer/internal/render"
)

// ChartGrid shows one card per chart in dashboard order
type ChartGrid struct {
	cards   map[render.ChartID]*widget.Card
	images  map[render.ChartID]*canvas.Image
	content *fyne.Container
}

// NewChartGrid creates placeholder cards of the given pixel size
func NewChartGrid(width, height int) *ChartGrid {
	g := &ChartGrid{
		cards:  make(map[render.ChartID]*widget.Card),
		images: make(map[render.ChartID]*canvas.Image),
	}
	objects := make([]fyne.CanvasObject, 0, len(render.ChartIDs()))
	for _, id := range render.ChartIDs() {
		img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
		img.FillMode = canvas.ImageFillContain
		card := widget.NewCard(string(id), "", img)
		g.images[id] = img
		g.cards[id] = card
		objects = append(objects, card)
	}
	g.content = container.NewGridWithColumns(ChartColumns, objects...)
	g.SetSize(width, height)
	return g
}

// Content returns the grid
func (g *ChartGrid) Content() fyne.CanvasObject {
	return g.content
}

// SetSize changes the minimum size of every chart image
func (g *ChartGrid) SetSize(width, height int) {
	for _, img := range g.images {
		img.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	}
}

// Update swaps in rasterized figures. Charts missing from images keep
// their previous picture.
func (g *ChartGrid) Update(figs render.Figures, images map[render.ChartID]image.Image) {
	for id, img := range images {
		target, ok := g.images[id]
		if !ok {
			continue
		}
		target.Image = img
		target.Refresh()
		if fig := figs[id]; fig != nil {
			g.cards[id].SetTitle(fig.Title)
		}
	}
}

// rasterizeAll draws every figure at the given size. It is called off the
// UI goroutine.
func rasterizeAll(figs render.Figures, width, height int) map[render.ChartID]image.Image {
	out := make(map[render.ChartID]image.Image, len(figs))
	for id, fig := range figs {
		out[id] = render.Rasterize(fig, width, height)
	}
	return out
}
