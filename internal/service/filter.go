package service

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skyguide/internal/domain"
)

// ObjectFilter narrows the catalog. Empty fields do not filter.
type ObjectFilter struct {
	Type       string
	Month      string
	Hemisphere string
}

// FilterObjects applies the type, month and hemisphere predicates in that order.
// Months compare case-insensitively.
// Objects without a month or hemisphere pass the respective filter, objects marked
// "both" pass any hemisphere, and a hemisphere filter of "both" matches everything.
func FilterObjects(objects []domain.CelestialObject, f ObjectFilter) []domain.CelestialObject {
	out := make([]domain.CelestialObject, 0, len(objects))
	for _, obj := range objects {
		if f.Type != "" && string(obj.Type) != f.Type {
			continue
		}
		if f.Month != "" && obj.Month != "" && !strings.EqualFold(obj.Month, f.Month) {
			continue
		}
		if !matchesHemisphere(obj.Hemisphere, f.Hemisphere) {
			continue
		}
		out = append(out, obj)
	}
	return out
}

func matchesHemisphere(objHemisphere, filter string) bool {
	if filter == "" || domain.IsBothHemispheres(filter) {
		return true
	}
	if objHemisphere == "" || domain.IsBothHemispheres(objHemisphere) {
		return true
	}
	return objHemisphere == filter
}

// CanonicalMonth turns user input such as "april" or "APRIL" into "April".
func CanonicalMonth(month string) string {
	month = strings.TrimSpace(month)
	if month == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(month))
}
