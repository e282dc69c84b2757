// Package batch runs the case-file workflow: a case count followed by that
// many resource targets, answered one line per case in input order.
package batch
