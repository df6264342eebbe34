// Package scrape extracts readable text from web pages for a downstream
// language pipeline. It fetches each link, strips navigation and other
// boilerplate, assembles the remaining text in document order, reads the
// title and splits the result into size-bounded chunks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, tavily/).
package scrape
