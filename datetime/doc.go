// Package datetime derives a format string from a textual date/time
// sample (Detect) and validates further samples against a cached
// format (Parse), without delegating to a general-purpose date
// library. Format strings use the same token vocabulary a caller
// would recognize from java.time / ICU: y, M, d, H, m, s, a literal
// '?' placeholder for an unresolved day/month digit, x/xxxxx for an
// ISO-8601 numeric offset and z for a named zone, with literal
// characters (including a quoted 'T') passed through verbatim.
package datetime
