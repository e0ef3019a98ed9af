// Package search holds the two binary-search engines under comparison.
//
// Binary is the textbook three-way bisection and reports misses with -1.
// Branchless is a lower-bound routine without a data-dependent branch; it
// does not report misses at all, so the two are not interchangeable outside
// of exact hits.
package search
