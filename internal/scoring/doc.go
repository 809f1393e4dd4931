// Package scoring turns a framework catalog plus one assessment's answers into
// per-domain scores, an overall weighted score, a maturity level and a report.
//
// Everything here is pure: callers load the catalog tree and answers, call
// into the engine, and persist what comes back.
package scoring
