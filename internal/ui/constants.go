package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconSave     = "💾"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconReset    = "↺"
	IconError    = "❌"
)

// Layout sizing
const (
	ControlPanelWidth float32 = 340
	StatusPanelHeight float32 = 120
	CheckListHeight   float32 = 120
	RangeEntryWidth   float32 = 90

	WindowWidth  float32 = 1400
	WindowHeight float32 = 900

	ChartColumns = 2
)

// Notification behavior
const (
	NotificationAutoHide = 8 * time.Second
)
