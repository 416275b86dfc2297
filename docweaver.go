// Package docweaver captures web documentation into a locally persisted,
// hierarchically organized corpus and reassembles the captured fragments
// into a single navigable document. Work is grouped into projects, each
// subdivided into categories; a category holds one crawl's worth of
// markdown fragments, its activity log, and the combined document built
// from them.
//
// This package contains domain types and narrow interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., fs/, rod/, gemini/, sqlite/).
package docweaver
