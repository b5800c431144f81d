package render

// Package render turns a filtered view into chart figures. Builders are pure
// functions of the view and the relevant controls; none of them share state
// and all of them return an empty figure for an empty view. Figures are plain
// data so the desktop shell and the HTTP API can both display them; Rasterize
// draws one into an image with go-chart.
