package model

import "strings"

// CustomerType classifies customer for queueing priority. Comparisons are
// case-insensitive, "Corporativo" queues the same as "corporativo".
type CustomerType string

const (
	// TypeCorporate is served before any other type
	TypeCorporate CustomerType = "corporativo"
	// TypePriority is served before regular customers
	TypePriority CustomerType = "preferencial"
	// TypeRegular is served last
	TypeRegular CustomerType = "comum"
)

// priority per type, lower value wins; unknown types sink to the bottom
const (
	priorityCorporate = 1
	priorityPriority  = 2
	priorityRegular   = 3
	priorityUnknown   = 99
)

// Normalized returns the canonical lowercase form of the type
func (t CustomerType) Normalized() CustomerType {
	return CustomerType(strings.ToLower(string(t)))
}

// Priority returns queueing priority of the type, lower value means served earlier
func (t CustomerType) Priority() int {
	switch t.Normalized() {
	case TypeCorporate:
		return priorityCorporate
	case TypePriority:
		return priorityPriority
	case TypeRegular:
		return priorityRegular
	default:
		return priorityUnknown
	}
}

// Customer is registered customer model entity
type Customer struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Name        string       `json:"nome" bson:"nome"`
	Type        CustomerType `json:"tipo" bson:"tipo"`
	ServiceTime float64      `json:"tempo" bson:"tempo"`
	Arrival     float64      `json:"chegada" bson:"chegada"`
}

// ServedCustomer is customer enriched with the outcome of a simulation run
type ServedCustomer struct {
	Customer
	ServiceStart float64 `json:"inicio"`
	ServiceEnd   float64 `json:"termino"`
}

// Wait returns how long the customer waited before being served
func (s *ServedCustomer) Wait() float64 {
	return s.ServiceStart - s.Arrival
}

// Turnaround returns full time between arrival and end of service
func (s *ServedCustomer) Turnaround() float64 {
	return s.ServiceEnd - s.Arrival
}
