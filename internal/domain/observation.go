package domain

import "time"

// Observation is an entry on a user's observing list.
type Observation struct {
	ID               int64
	UserID           int64
	ObjectID         int64
	DateAdded        time.Time
	IsObserved       bool
	ObservationNotes string
	PlannedDate      string
}

// ObservationPatch carries the mutable fields of an observation. Nil fields are left unchanged.
type ObservationPatch struct {
	IsObserved       *bool
	ObservationNotes *string
	PlannedDate      *string
}

// Apply copies the supplied fields onto obs.
func (p ObservationPatch) Apply(obs *Observation) {
	if p.IsObserved != nil {
		obs.IsObserved = *p.IsObserved
	}
	if p.ObservationNotes != nil {
		obs.ObservationNotes = *p.ObservationNotes
	}
	if p.PlannedDate != nil {
		obs.PlannedDate = *p.PlannedDate
	}
}
