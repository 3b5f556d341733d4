package request

// CreateCountyRequest represents a request to create a county
type CreateCountyRequest struct {
	County     string `json:"county" binding:"required,min=2,max=255"`
	CountyCode string `json:"county_code" binding:"required,min=1,max=20"`
}

// UpdateCountyRequest represents a request to update a county
type UpdateCountyRequest struct {
	County     *string `json:"county" binding:"omitempty,min=2,max=255"`
	CountyCode *string `json:"county_code" binding:"omitempty,min=1,max=20"`
}
