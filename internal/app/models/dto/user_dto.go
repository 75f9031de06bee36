package dto

// UpdateUserRequest is the payload for PUT /users/:id. Role and activation
// changes are restricted to admins at the route level.
type UpdateUserRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=2,max=100"`
	CGPA     *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	Degree   *string  `json:"degree"`
	Batch    *string  `json:"batch"`
	Skills   []string `json:"skills"`
	Role     *string  `json:"role" binding:"omitempty,oneof=student faculty admin placement"`
	IsActive *bool    `json:"isActive"`
}
