package records

import "time"

// Vaccination es una aplicación de vacuna. Append-only.
type Vaccination struct {
	ID       string
	AnimalID string
	OwnerID  string

	VaccineType     string
	ApplicationDate time.Time
	NextDoseDate    *time.Time

	Notes     string
	CreatedAt time.Time
}

// Weight es un pesaje en kg. Append-only.
type Weight struct {
	ID       string
	AnimalID string
	OwnerID  string

	Weight       float64
	RecordedDate time.Time

	Notes     string
	CreatedAt time.Time
}
