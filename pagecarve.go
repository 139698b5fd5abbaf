// Package pagecarve carves web pages into ordered content blocks.
// It fetches a page, locates the content region, and splits it into
// content blocks (paragraphs, lists, headings, quotes) and widget
// blocks (embedded iframe/script pairs), resolving widget titles from
// the embedded documents.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package pagecarve
