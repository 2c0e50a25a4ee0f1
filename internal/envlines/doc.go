// Package envlines turns an environment file into the list of lines handed to
// docker compose.
//
// The file is split on "\n" only and every line whose first character is '#'
// is dropped. Nothing else is interpreted:
//
//   - no trimming, so " #x" is kept as is
//   - no key=value parsing, quoting or interpolation
//   - a trailing "\r" from CRLF files stays part of the line
//   - empty lines are kept (use FilterBlank to drop them)
//
// A zero-length file yields an empty list.
package envlines
