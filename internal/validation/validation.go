package validation

import (
	"regexp"
	"strings"
	"time"
)

// Violations maps field name to a short machine-readable reason,
// suitable for the details payload of a validation error response.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	skuRe      = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	barcodeRe  = regexp.MustCompile(`^\d+$`)
	zipRe      = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// Basic validators. Each records a violation under the field name and
// is a no-op when the value passes.

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MinLength(field, value string, min int, v Violations) {
	if len(value) < min {
		v[field] = "too_short"
	}
}

func MaxLength(field, value string, max int, v Violations) {
	if len(value) > max {
		v[field] = "too_long"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// Optional-field validators: empty values pass, present values must
// match.

func Email(field, value string, v Violations) {
	if value != "" && !emailRe.MatchString(value) {
		v[field] = "invalid_email"
	}
}

func Phone(field, value string, v Violations) {
	if value == "" {
		return
	}
	if !phoneRe.MatchString(phoneStrip.Replace(value)) {
		v[field] = "invalid_phone"
	}
}

func SKU(field, value string, v Violations) {
	if value != "" && !skuRe.MatchString(value) {
		v[field] = "invalid_sku"
	}
}

func Barcode(field, value string, v Violations) {
	if value != "" && !barcodeRe.MatchString(value) {
		v[field] = "invalid_barcode"
	}
}

func InvoiceNumber(field, value string, v Violations) {
	if value != "" && !skuRe.MatchString(value) {
		v[field] = "invalid_invoice_number"
	}
}

func ZipCode(field, value string, v Violations) {
	if value != "" && !zipRe.MatchString(value) {
		v[field] = "invalid_zip_code"
	}
}

func Date(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v[field] = "invalid_date"
	}
}
