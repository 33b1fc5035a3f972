package finance

// Common VAT rates, as fractions.
const (
	VATStandard = 0.20
	VATReduced  = 0.05
	VATZero     = 0.00
)

// DefaultVATRate is applied when an invoice does not specify one.
const DefaultVATRate = VATStandard

// TaxRates maps region and band to a fractional rate.
var TaxRates = map[string]map[string]float64{
	"US": {"FEDERAL": 0.00, "STATE": 0.00, "LOCAL": 0.00},
	"UK": {"STANDARD": 0.20, "REDUCED": 0.05, "ZERO": 0.00},
	"EU": {"STANDARD": 0.20, "REDUCED": 0.05, "ZERO": 0.00},
}

// TaxRate resolves a region/band pair, returning 0 for unknown keys.
func TaxRate(region, band string) float64 {
	if m, ok := TaxRates[region]; ok {
		return m[band]
	}
	return 0
}
