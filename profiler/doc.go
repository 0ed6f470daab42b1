// Package profiler infers the semantic type of a stream of textual
// samples: a boolean/integer/float/date-time/string classification, a
// regular-expression shape, numeric or lexicographic extremes,
// cardinality and outliers, a confidence score, and optional logical
// type qualifiers such as ZIP, US_STATE, EMAIL or URL.
//
// An Analyzer is fed samples one at a time through Train. It locks in
// a type once its sample window fills, then validates every later
// sample against that type, periodically reflecting on its own
// conclusion as more evidence accumulates. Call Result at any point to
// read a snapshot without disturbing further training.
package profiler
