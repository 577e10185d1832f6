package dataset

// Class is the analysis category assigned to a column. It is a closed set:
// every declared kind maps to exactly one class.
type Class string

const (
	ClassNumeric     Class = "numeric"
	ClassTextual     Class = "textual"
	ClassTemporal    Class = "temporal"
	ClassUnsupported Class = "unsupported"
)

// Classify maps a declared kind to its analysis class. Pure function, no
// side effects. String-like and unknown kinds both land in ClassTextual:
// unknown plays the generic/object catch-all role for categorical data.
// Boolean and nested kinds are unsupported; summaries for them carry a
// notice instead of statistics.
func Classify(k Kind) Class {
	switch k {
	case KindInt, KindFloat:
		return ClassNumeric
	case KindTimestamp:
		return ClassTemporal
	case KindString, KindUnknown:
		return ClassTextual
	default:
		return ClassUnsupported
	}
}

// Label returns a human-readable class name for display.
func (c Class) Label() string {
	switch c {
	case ClassNumeric:
		return "Numeric"
	case ClassTextual:
		return "Text / Categorical"
	case ClassTemporal:
		return "Date / Time"
	default:
		return "Not Supported"
	}
}
