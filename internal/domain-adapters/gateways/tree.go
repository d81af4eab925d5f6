// Package gateways provides adapters for the external tools and the
// filesystem layout the build pipeline drives.
package gateways

// Fixed layout of the firmware source tree. The pipeline never discovers
// these locations dynamically; the port and its dependencies live at known
// relative paths under the source root.
const (
	// crossCompilerDir holds the host-side bytecode cross-compiler built in
	// stage 1 and required by the firmware build.
	crossCompilerDir = "mpy-cross"

	// portDir is the primary build port for the rp2 family of boards.
	portDir = "ports/rp2"

	// ulabDir is where the ulab numerical extension is expected. The tree
	// may already carry it (vendored or pre-seeded CI checkout).
	ulabDir = "lib/ulab"

	// ulabCMakeFile is the build-integration file handed to stage 2 as
	// USER_C_MODULES.
	ulabCMakeFile = "lib/ulab/code/micropython.cmake"
)

// ulabRepoURL is the upstream of the ulab extension, cloned shallowly when
// the directory is missing.
const ulabRepoURL = "https://github.com/v923z/micropython-ulab.git"

// artifactExt is the file extension of the firmware image on rp2 boards.
const artifactExt = ".uf2"
