// Package conf contains the constants that are used across packages for configuring
// versions and default file locations.
package conf

import (
	"fmt"
	"time"
)

const (
	// PHANVERSION is the version of the phan type engine.
	PHANVERSION = "phan 0.1.0"
	// PHANVERSIONMAJORN is the major version.
	PHANVERSIONMAJORN = 0
	// PHANVERSIONMINORN is the minor version.
	PHANVERSIONMINORN = 1
	// PHANVERSIONPATCHN is the patch version.
	PHANVERSIONPATCHN = 0
	// DEFAULTSTUBFILE is the stub table file the CLI looks for when no -stubs
	// flag is passed.
	DEFAULTSTUBFILE = ".phan-stubs.yaml"
	// UNIONSEP is the separator between alternatives in a union type string.
	UNIONSEP = "|"
)

// FullVersion returns the version and copyright.
func FullVersion() string {
	return fmt.Sprintf("%v Copyright (C) %v", PHANVERSION, time.Now().Year())
}

// Copyright is the copyright to be written out in the CLI.
func Copyright() string {
	return fmt.Sprintf("Copyright (C) %v", time.Now().Year())
}
