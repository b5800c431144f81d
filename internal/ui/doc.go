// Package ui contains the Fyne desktop dashboard. The control panel edits a
// filter.ControlState and submits it to the session; session updates come
// back on the worker goroutine and are applied to the widgets via fyne.Do.
// All UI strings are localized via Localization.
package ui
