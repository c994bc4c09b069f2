// Package domain models NHTSA Fatality Analysis Reporting System (FARS)
// state-level statistics for a single reporting year.
//
// # Data Sources
//
// Three tab-delimited exports from the FARS state query pages
// (https://www-fars.nhtsa.dot.gov) feed the dashboard:
//
//	dataset0: Fatal crashes by state and first harmful event
//	dataset1: Persons killed by state and age group
//	dataset2: Persons killed by state and highest driver BAC in the crash
//
// Each export starts with a free-form preamble (titles, query parameters,
// column headers spread over several lines) followed by one row per state in
// FIPS order, then a national "USA" total row, then optional footnotes.
//
// # Locating the Table
//
// The preamble has no fixed length. The first data row is found by its first
// cell, the sentinel "Alabama". The table ends at the first line after it
// that carries no tab character. See [Normalize].
//
// # Column Layout
//
// Crash export (16 columns): state, then value/percent pairs for Motor
// Vehicle, Nonmotorist, Fixed Object, Object Not Fixed, Overturn, Other and
// Unknown, then the total at column 15. Percent columns are ignored.
//
// Age export (14 columns): state, twelve age groups (<5 through >74 plus
// Unknown) at columns 1-12, total at 13.
//
// BAC export (10 columns): state, value/percent pairs for 0.00%, 0.01-0.07%,
// 0.08%+ and 0.01%+, total at column 9. The 0.01%+ group overlaps the two
// groups before it; it is reported, not summed.
//
// # Numbers
//
// Counts may carry thousands separators ("1,234"). Empty cells, non-numeric
// text and negative values are invalid; what happens to them is decided by a
// [NumberPolicy].
//
// # Joining
//
// The three exports are joined on the state name, not on row position, and
// must describe exactly the same set of states. Both the age and the BAC
// exports carry a fatality total; the BAC value is kept and disagreements are
// reported by [FatalityMismatches].
package domain
