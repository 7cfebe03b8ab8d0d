// Package api holds the wire types of the registration service contract.
package api

type (
	// RegisterCustomerRequest is the registration record submitted by the
	// form. Arrival is carried as free text, its format is owned by the
	// service.
	RegisterCustomerRequest struct {
		ID          string  `json:"id"`
		Name        string  `json:"nome"`
		Type        string  `json:"tipo"`
		ServiceTime float64 `json:"tempo"`
		Arrival     string  `json:"chegada"`
	}

	// ImportSummaryResponse reports how many customers a CSV import
	// registered
	ImportSummaryResponse struct {
		Imported int `json:"importados"`
	}
)
