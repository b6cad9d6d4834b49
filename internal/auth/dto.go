package auth

import userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterDTO opens a business account. webLink is derived from the company
// name when left empty.
type RegisterDTO struct {
	Username     string  `json:"username" validate:"required,min=3,max=64"`
	Password     string  `json:"password" validate:"required,min=6,max=72"`
	CompanyName  string  `json:"companyName" validate:"required,notblank"`
	BusinessType *string `json:"businessType"`
	WebLink      *string `json:"webLink"`
	Logo         *string `json:"logo"`
}

func (dto RegisterDTO) ToDataModel(passwordHash string) *userDatamodel.User {
	return &userDatamodel.User{
		Username:     dto.Username,
		Password:     passwordHash,
		CompanyName:  dto.CompanyName,
		BusinessType: dto.BusinessType,
		WebLink:      dto.WebLink,
		Logo:         dto.Logo,
	}
}
