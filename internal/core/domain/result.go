package domain

// Outcome describes what happened to a single matching asset during a run
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// AssetResult is the per-asset record of an unpack run
type AssetResult struct {
	Name    string
	Outcome Outcome
	Path    string // Destination path
	Bytes   int64
	Err     error // Set only when Outcome is failed
}

// AssetStatus describes a store entry relative to the destination
type AssetStatus string

const (
	StatusPending  AssetStatus = "pending"  // Matches but not unpacked yet
	StatusUnpacked AssetStatus = "unpacked" // Destination copy matches the manifest
	StatusModified AssetStatus = "modified" // Destination copy differs or is missing
	StatusIgnored  AssetStatus = "ignored"  // Does not match the extension
)
