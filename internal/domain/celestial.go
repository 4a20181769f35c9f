package domain

import "strings"

// ObjectType classifies a catalog entry.
type ObjectType string

const (
	ObjectTypePlanet      ObjectType = "planet"
	ObjectTypeGalaxy      ObjectType = "galaxy"
	ObjectTypeNebula      ObjectType = "nebula"
	ObjectTypeStarCluster ObjectType = "star_cluster"
	ObjectTypeDoubleStar  ObjectType = "double_star"
	ObjectTypeMoon        ObjectType = "moon"
	ObjectTypeOther       ObjectType = "other"
)

// ObjectTypes lists every accepted object type in display order.
var ObjectTypes = []ObjectType{
	ObjectTypePlanet,
	ObjectTypeGalaxy,
	ObjectTypeNebula,
	ObjectTypeStarCluster,
	ObjectTypeDoubleStar,
	ObjectTypeMoon,
	ObjectTypeOther,
}

// Valid reports whether t belongs to the closed set of object types.
func (t ObjectType) Valid() bool {
	for _, known := range ObjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

const (
	HemisphereNorthern = "Northern"
	HemisphereSouthern = "Southern"
	HemisphereBoth     = "both"
)

// IsBothHemispheres matches the "both" wildcard regardless of case.
func IsBothHemispheres(h string) bool {
	return strings.EqualFold(strings.TrimSpace(h), HemisphereBoth)
}

// ValidGuideHemisphere reports whether h may be stored on a monthly guide.
func ValidGuideHemisphere(h string) bool {
	switch h {
	case HemisphereNorthern, HemisphereSouthern, HemisphereBoth:
		return true
	}
	return false
}

// CelestialObject is a catalog entry shown to observers.
type CelestialObject struct {
	ID                  int64
	Name                string
	Type                ObjectType
	Description         string
	Coordinates         string
	Month               string
	BestViewingTime     string
	ImageURL            string
	VisibilityRating    string
	Information         string
	Constellation       string
	Magnitude           string
	Hemisphere          string
	RecommendedEyepiece string
}
