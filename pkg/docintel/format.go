package docintel

import (
	"fmt"
	"strconv"
)

// FormatValue renders the field's value for display according to its kind.
// Currency fields render as symbol plus two-decimal amount, numeric fields as
// their typed value, everything else as the raw content. An empty field
// renders as "N/A".
func (f ExtractedField) FormatValue() string {
	switch f.Kind {
	case KindCurrency:
		if f.Currency != nil {
			return fmt.Sprintf("%s%.2f", f.Currency.Symbol, f.Currency.Amount)
		}
	case KindNumber:
		if f.Number != nil {
			return strconv.FormatFloat(*f.Number, 'f', -1, 64)
		}
	case KindInteger:
		if f.Integer != nil {
			return strconv.FormatInt(*f.Integer, 10)
		}
	}
	if f.Content == "" {
		return "N/A"
	}
	return f.Content
}

// FormatValueWithConfidence renders the value followed by a confidence
// annotation when the engine reported one.
func (f ExtractedField) FormatValueWithConfidence() string {
	value := f.FormatValue()
	if f.Confidence == nil {
		return value
	}
	return fmt.Sprintf("%s (conf: %.2f)", value, *f.Confidence)
}
