package dto

type StartSessionInput struct {
	Name string `json:"name"`
}

type UpdateSessionInput struct {
	Name               *string `json:"name"`
	Notes              *string `json:"notes"`
	CustomerCount      *int    `json:"customerCount"`
	ClearCustomerCount bool    `json:"clearCustomerCount"`
}
