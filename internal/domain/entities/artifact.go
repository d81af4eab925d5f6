package entities

// Artifact represents the firmware image the native build system produced
type Artifact struct {
	Board Board
	Path  string // resolved path of the located image file
}

// PublishedArtifact is the final, deterministically named copy in the
// output directory
type PublishedArtifact struct {
	Path          string
	Checksum      string // hex SHA-256 of the published file, empty when disabled
	ChecksumPath  string // sidecar file path, empty when disabled
	SignaturePath string // armored detached signature path, empty when unsigned
}
