package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "metaminer.png"
)

// LoadLogoResource loads the logo from the working directory, falling back
// to the theme's generic document icon when the file is missing
func LoadLogoResource() fyne.Resource {
	res, err := fyne.LoadResourceFromPath(AppIcon)
	if err != nil {
		return theme.DocumentIcon()
	}
	return res
}
