package dto

// SignupRequest registers a requester account
type SignupRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Age           int    `json:"age" binding:"required,min=1"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	MobilityNeeds string `json:"mobility_needs"`
}

// SignupHelperRequest registers a helper application
type SignupHelperRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Age      int      `json:"age" binding:"required,min=1"`
	City     string   `json:"city" binding:"required"`
	Phone    string   `json:"phone" binding:"required"`
	NGOID    string   `json:"ngo_id" binding:"required"`
	Skills   []string `json:"skills" binding:"required"`
}

// LoginRequest verifies a credential
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AvailabilityRequest toggles helper availability
type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// CreateAssistanceRequest creates a new assistance request
type CreateAssistanceRequest struct {
	City               string `json:"city" binding:"required"`
	Need               string `json:"need" binding:"required"`
	PickupAddress      string `json:"pickup_address"`
	DestinationAddress string `json:"destination_address"`
	Phone              string `json:"phone"`
	NeededDate         string `json:"needed_date"`
	NeededTime         string `json:"needed_time"`
}

// CreateRatingRequest rates a completed request
type CreateRatingRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Feedback  string `json:"feedback"`
}

// SOSRequest raises an emergency alert
type SOSRequest struct {
	Message string `json:"message"`
}
