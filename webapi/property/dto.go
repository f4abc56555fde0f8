package property

// CreatePropertyInput is the body of POST /properties.
type CreatePropertyInput struct {
	Title        string `json:"title" validate:"required,max=200"`
	City         string `json:"city" validate:"required,max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	MonthlyRent  int64  `json:"monthlyRent" validate:"required,gt=0"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
}

// ToggleInput publishes or unpublishes a listing.
type ToggleInput struct {
	Active *bool `json:"active" validate:"required"`
}
