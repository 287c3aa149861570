// Package diag defines the diagnostic model shared by the loader, the table
// builders and the report.
//
// Diagnostic is the central record: Severity, Code, Message, the primary
// Site inside the grammar model, and optional Notes. Producers emit through
// a Reporter (usually BagReporter wrapping a *Bag) and never format or print
// anything themselves; rendering lives in internal/diagfmt.
//
// Conflicts and useless rules are warnings: tables are still written. Model
// validation failures and internal consistency failures are errors and stop
// emission.
package diag
