// Package version carries the SDK version compiled into both execution
// contexts. The worker reports Number over the message channel; the lifecycle
// manager compares it against its own copy to decide whether an update is due.
package version

// Number is the monotonically increasing SDK version.
const Number = 10302

// Semver is the human-readable form of Number.
const Semver = "1.3.2"
