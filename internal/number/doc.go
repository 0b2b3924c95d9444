// Package number implements the structured number: a fixed-shape value made of
// twelve bounded signed ordinals (a..l), twelve independent sign flags and a
// 4-bit checksum.
//
// The twelve fields jointly denote the nested division expression
//
//	(±a ± g) / (±b ± g) / (±c ± h) / ((±d(±b ± h)) / (±e·b(±i)) / (±f·b(±j)))
//
// Fields k and l are reserved and carried unchanged by the arithmetic.
//
// Key constraints:
//   - Every raw ordinal stays inside [OrdinalMin, OrdinalMax], so a signed field
//     spans [-2^19, +2^19]; arithmetic saturates at those ends instead of
//     wrapping (see saturate).
//   - Arithmetic never mutates an operand. Number is a value type and every
//     operation returns a fresh, checksummed result.
//   - The checksum is (sum of ordinal magnitudes + count of negative signs) mod 16.
//     VerifyChecksum recomputes it without touching the stored value.
package number
