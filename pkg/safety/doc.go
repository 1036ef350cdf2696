// Package safety decides whether canonical SQL text is a read-only retrieval
// that may be sent to a live data source.
//
// The policy is an allow-list: a statement must be a single query whose first
// keyword is one of the dialect's read statements, and it must not contain any
// of the dialect's blocked keywords or calls to its blocked functions. Each
// check is a rule with a stable ID, reported in the Verdict:
//
//	SF01 empty             no statement
//	SF02 multi-statement   more than one statement
//	SF03 leading-keyword   statement does not start with a read keyword
//	SF04 blocked-keyword   data-definition, data-modification or session keyword
//	SF05 locking-read      FOR UPDATE / FOR SHARE
//	SF06 blocked-function  call to a function with side effects
//	SF07 ambiguous-quoting literals that end differently with and without backslash escapes
//
// The policy never returns an error and never panics: rejection is reported
// only through the Verdict.
package safety
