// Package sanitizer normalizes user-supplied profile and booking input
// before validation and storage.
//
// All functions are idempotent and never return errors; invalid input
// degrades to an empty value rather than failing the caller.
//
// Normalization includes:
//   - Strings: collapse internal whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Phone numbers: strip separators, keep E.164 form (+[country][number])
//   - Fees: clamp to the valid non-negative range
package sanitizer
