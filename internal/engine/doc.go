// Package engine runs measurement jobs.
//
// A job names a register, the qubits to measure and a shot count. Each shot
// measures a fresh copy of the register, so shots are independent samples of
// the same distribution. Shots run sequentially on the caller's goroutine and
// draw from a single random source, which makes a run with a deterministic
// source reproducible.
//
// When the engine has a store, a run is journaled only after every shot has
// succeeded, and the run and its measurements are written in one
// transaction: a failed run leaves no record.
package engine
