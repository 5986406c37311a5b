// Package wizard provides an interactive configuration wizard for aiostack.
//
// It uses charmbracelet/huh forms to collect the deployment name, key pair,
// instance type, network placement and an optional domain. BuildConfig turns
// the answers into a config.Config ready for config.WriteFile.
package wizard
