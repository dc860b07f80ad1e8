package identity

type ListProfilesQuery struct {
	Role string `form:"role" binding:"required,oneof=client employee admin"`
}

type ProfileResponse struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Role   Role     `json:"role"`
	Mobile string   `json:"mobile,omitempty"`
	Email  string   `json:"email,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}
