// Package diaclass classifies the documents of a documentation site into the
// Diátaxis quadrants (explanation, tutorial, how-to, reference). It reads the
// site's navigation tree, locates every referenced document, sends each one
// to a classification provider and aggregates the results into a report.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., yaml/, git/, openai/, ollama/).
package diaclass
