package ir

const (
	// FormatVersion is the version of the canonical encoding. It is part of
	// every hash domain.
	FormatVersion = "1"

	// Version is the quantix release version.
	Version = "0.1.0"
)
