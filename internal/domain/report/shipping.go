package report

// Shipping labels written to the report.
const (
	LabelEastie  = "Eastie Shipping"
	LabelOutside = "Outside Shipping"
	LabelOther   = "Other Shipping"
)

// ShippingClassifier maps a shipping rate id to a label using the two
// configured reference rates.
type ShippingClassifier struct {
	EastieRateID  string
	OutsideRateID string
}

// Classify returns the label for rateID. Unconfigured reference ids never match.
func (c ShippingClassifier) Classify(rateID string) string {
	switch {
	case c.EastieRateID != "" && rateID == c.EastieRateID:
		return LabelEastie
	case c.OutsideRateID != "" && rateID == c.OutsideRateID:
		return LabelOutside
	default:
		return LabelOther
	}
}
