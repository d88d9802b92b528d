package employee

type ProfileResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	HasRegisteredFace bool    `json:"has_registered_face"`
	AssignedShiftID   *string `json:"assigned_shift_id"`
	Status            string  `json:"status"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		Name:              p.FullName,
		HasRegisteredFace: p.HasRegisteredFace,
		AssignedShiftID:   p.AssignedShiftID,
		Status:            string(p.Status),
	}
}
