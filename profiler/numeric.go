package profiler

// numericKind enumerates the nodes of the numeric promotion lattice
// (§2, §4.4 step 2, §9 "embed as a compile-time table"). It is a
// narrower axis than SemanticType: it also distinguishes
// double-with-exponent, which collapses to Double once a type is
// locked in.
type numericKind uint8

const (
	numNone numericKind = iota
	numLong
	numSignedLong
	numDouble
	numSignedDouble
	numDoubleExp
	numSignedDoubleExp
)

// promotionTable is the fixed join table over the lattice, embedded
// as a compile-time [kind][kind] array rather than built from string
// concatenation at runtime (§9).
var promotionTable = [7][7]numericKind{}

func init() {
	set := func(a, b, result numericKind) {
		promotionTable[a][b] = result
		promotionTable[b][a] = result
	}
	kinds := []numericKind{numLong, numSignedLong, numDouble, numSignedDouble, numDoubleExp, numSignedDoubleExp}
	for _, k := range kinds {
		set(k, k, k)
	}
	set(numLong, numSignedLong, numSignedLong)
	set(numLong, numDouble, numDouble)
	set(numLong, numSignedDouble, numSignedDouble)
	set(numLong, numDoubleExp, numDoubleExp)
	set(numLong, numSignedDoubleExp, numSignedDoubleExp)

	set(numSignedLong, numDouble, numSignedDouble)
	set(numSignedLong, numSignedDouble, numSignedDouble)
	set(numSignedLong, numDoubleExp, numSignedDoubleExp)
	set(numSignedLong, numSignedDoubleExp, numSignedDoubleExp)

	set(numDouble, numSignedDouble, numSignedDouble)
	set(numDouble, numDoubleExp, numDoubleExp)
	set(numDouble, numSignedDoubleExp, numSignedDoubleExp)

	set(numSignedDouble, numDoubleExp, numSignedDoubleExp)
	set(numSignedDouble, numSignedDoubleExp, numSignedDoubleExp)

	set(numDoubleExp, numSignedDoubleExp, numSignedDoubleExp)
}

// promote returns the join of a and b in the numeric lattice.
// Promotion is idempotent (promote(a,a)==a, verified by init's
// diagonal) and commutative by construction (set writes both cells).
func promote(a, b numericKind) numericKind {
	if a == numNone {
		return b
	}
	if b == numNone {
		return a
	}
	return promotionTable[a][b]
}

// isSigned reports whether kind carries a sign.
func (k numericKind) isSigned() bool {
	switch k {
	case numSignedLong, numSignedDouble, numSignedDoubleExp:
		return true
	}
	return false
}

// semanticType collapses a lattice node to its externally visible
// SemanticType + Qualifier pair; double-with-exponent is not a
// distinct SemanticType (§3 lists only Long/Double among numerics).
func (k numericKind) semanticType() (SemanticType, Qualifier) {
	switch k {
	case numLong:
		return Long, NoQualifier
	case numSignedLong:
		return Long, Signed
	case numDouble, numDoubleExp:
		return Double, NoQualifier
	case numSignedDouble, numSignedDoubleExp:
		return Double, Signed
	}
	return Unknown, NoQualifier
}
