package esdveg

var (
	// Version of the esdveg application.
	Version = "v0.1.0"
	// Build is a timestamp of the build, set by the linker flags.
	Build = "n/a"
)
