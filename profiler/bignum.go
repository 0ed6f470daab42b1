package profiler

import "math/big"

// bigSum accumulates the numeric sum of every sample that has matched
// as Long or Double (§3 Profiler State: "numeric sums as
// arbitrary-precision integer and decimal"). A stream of 64-bit
// values can overflow a plain int64/float64 accumulator long before
// sampleCount does, so both running totals are kept in math/big.
type bigSum struct {
	intTotal   *big.Int
	floatTotal *big.Float
	sawFloat   bool
}

func newBigSum() *bigSum {
	return &bigSum{intTotal: new(big.Int), floatTotal: new(big.Float)}
}

func (s *bigSum) addLong(v int64) {
	s.intTotal.Add(s.intTotal, big.NewInt(v))
	s.floatTotal.Add(s.floatTotal, new(big.Float).SetInt64(v))
}

func (s *bigSum) addDouble(v float64) {
	s.sawFloat = true
	s.floatTotal.Add(s.floatTotal, big.NewFloat(v))
}

// text renders the sum the way ProfileResult.Sum exposes it: an
// integer literal for an all-Long stream, otherwise a decimal
// rendering of the float accumulator.
func (s *bigSum) text() string {
	if s == nil {
		return ""
	}
	if !s.sawFloat {
		return s.intTotal.String()
	}
	return s.floatTotal.Text('f', -1)
}
