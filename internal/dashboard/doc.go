// Package dashboard derives the project dashboard from a snapshot of records.
//
// Every view is computed by the same pipeline:
//
//	records -> Filter -> Sort -> { Aggregate, Paginate }
//
// Aggregate and Paginate always consume the same filtered and sorted slice, so
// the KPIs and charts describe exactly the rows a user can page through and
// never change when only the page index changes. All stage functions are pure
// and never mutate their input.
package dashboard
