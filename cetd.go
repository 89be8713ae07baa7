// Package cetd extracts the main content of HTML pages using text density.
// Every element of a page body is scored by how text-rich it is relative to
// its markup and links, and everything scoring below a threshold derived from
// the densest region is pruned away.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/). The
// scoring algorithm itself lives in density/.
package cetd
