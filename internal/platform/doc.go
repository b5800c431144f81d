package platform

// Package platform contains OS integration for the desktop shell: default
// directories and revealing saved snapshots in the system file manager.
