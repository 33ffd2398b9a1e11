// Package domain models statewise case-count reports and converts them into
// structured records.
//
// # Data Source
//
// Reports are plain-text tables extracted from bulletins published by health
// authorities (PDF-to-text dumps, copy/paste from HTML tables). The layout is
// fixed-width or whitespace-delimited:
//
//	1
//	Name of State / UT      Confirmed   Recovered   Deaths   Active
//	Total                        1834         144       41     1649
//	Andhra Pradesh                 87           1        1       85
//	Jammu & Kashmir                62           2        2       58
//	2
//
// # Report Conventions
//
// Noise lines:
//
//	Lines made only of digits are page numbers or footers and are dropped
//	before anything else. They may appear anywhere, including above the header.
//
// Header line:
//
//	The first line left after noise removal is the column header. It is
//	dropped without inspection, so a blank first line also counts as header.
//
// Data rows:
//
//	"<label> <confirmed> <recovered> <deaths> [<active>] [anything]"
//	The label is one or more tokens without digits ("Andaman and Nicobar
//	Islands"). The counts are whitespace-separated digit groups. A missing
//	active column is read as 0, and a marker glued to active ("258*") is
//	dropped from the count. Trailing tokens (footnote markers, notes)
//	are ignored. Rows of any other shape are skipped; see [ParseLine].
//
// Aggregate row:
//
//	The first data row carries the overall totals ("Total", "India", ...).
//	Its label is discarded and its counts become [StatewiseReport.Total].
//
// # Output
//
// A [StatewiseReport] serializes to a single JSON object with keys in the
// order day, total, statewise. Field order inside each object is fixed by
// the struct definitions.
package domain
