// Package sexpr implements a round-trip-safe parser for the parenthesized
// s-expression grammar used by KiCad board files.
//
// Every token keeps its verbatim source text and the whitespace that
// preceded it, so serializing an unmodified tree reproduces the input
// byte-for-byte. Nodes live in an arena and reference each other by index,
// which keeps the tree valid across structural mutations.
package sexpr
