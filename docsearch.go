// Package docsearch provides local full-text search for static documentation
// sites. A build step walks the content tree and writes a static index of
// page-level and section-level entries; at runtime the index is loaded once
// and scanned with case-insensitive substring matching on every query.
//
// This package contains domain types, interfaces and the pure search logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/, fs/,
// goquery/, glamour/).
package docsearch
