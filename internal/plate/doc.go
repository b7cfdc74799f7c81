// Package plate converts raw OCR text fragments into a canonical license
// plate number.
//
// Three domestic plate grammars are recognised, tried in a fixed priority
// order:
//
//  1. Standard: 2-3 digits, one Hangul syllable, 4 digits ("12가1234").
//  2. Regional: 2 Hangul characters, 2 digits, one Hangul syllable, 4 digits
//     ("서울12가1234").
//  3. Commercial: 2 digits, 2 Hangul characters, 4 digits ("12서울1234").
//
// Fragments are joined with single spaces and each grammar is tried against
// that text first, allowing whitespace between its parts. If that fails the
// grammar is tried against the fragments with all whitespace removed. The
// first grammar to match wins, even when a later grammar would also match,
// unless the later grammar's match on the same text strictly contains it:
// "서울 12 가 1234" is a regional plate, not the standard plate inside it.
// The canonical form is the captured parts concatenated without separators.
package plate
