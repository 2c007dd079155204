// Package report cross-checks the requirement catalogue against
// machine-produced test-result text and renders a per-topic pass/fail
// report.
//
// Only two textual markers are recognized in result text: "<id>: failed"
// and "<id>: passed". Topic subtrees with no requirement matching any
// allowed pattern are pruned from the report entirely; the pruning is
// structural and never consults the result texts.
//
// Status aggregation across multiple texts is deliberately asymmetric: a
// failure recorded by a later text overwrites anything recorded before
// it, messages included, while a pass never displaces an existing status.
package report
