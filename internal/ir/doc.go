// Package ir defines the canonical interchange form shared by the journal,
// the document compiler and the CLI.
//
// Values are a sealed set: String, Int, Bool, Array and Object. There is no
// float and no null, so the canonical encoding of a value is unique and its
// hash is stable across runs. Complex amplitudes and float constants cross
// this boundary as decimal strings.
//
// ir imports nothing internal.
package ir
