package user

// UpdateProfileDTO lists the only profile fields a user may change. Absent
// fields are left untouched.
type UpdateProfileDTO struct {
	CompanyName  *string `json:"companyName,omitempty" validate:"omitnil,notblank"`
	BusinessType *string `json:"businessType,omitempty"`
	WebLink      *string `json:"webLink,omitempty"`
	Logo         *string `json:"logo,omitempty"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
