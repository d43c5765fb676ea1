package request

// UpdateOrderStatusRequest represents a farmer's order status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// UpdateProfileRequest represents a profile update; omitted fields are left
// unchanged
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Photo    *string `json:"photo" binding:"omitempty,max=255"`
	Location *string `json:"location" binding:"omitempty,max=255"`
}
