// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Desktop window (ebiten), native info dialogs, headless watch mode
// 0.1.0 - Initial release: terminal orbital map, info panel, headless snapshot/summary/mini
