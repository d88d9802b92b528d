package location

// Location is a registered site a field worker can clock in at.
type Location struct {
	ID        string
	CompanyID string
	Name      string
}

type LocationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
