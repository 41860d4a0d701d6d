package store

import "github.com/jonathan/resume-studio/internal/types"

// PersonalInfoPatch is a partial personal info update. Nil fields are left as they are.
type PersonalInfoPatch struct {
	FullName     *string `json:"fullName,omitempty"`
	JobTitle     *string `json:"jobTitle,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Location     *string `json:"location,omitempty"`
	Website      *string `json:"website,omitempty"`
	LinkedIn     *string `json:"linkedin,omitempty"`
	GitHub       *string `json:"github,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	BirthDate    *string `json:"birthDate,omitempty"`
}

// Apply returns info with the present fields of p merged in
func (p PersonalInfoPatch) Apply(info types.PersonalInfo) types.PersonalInfo {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&info.FullName, p.FullName)
	set(&info.JobTitle, p.JobTitle)
	set(&info.Email, p.Email)
	set(&info.Phone, p.Phone)
	set(&info.Location, p.Location)
	set(&info.Website, p.Website)
	set(&info.LinkedIn, p.LinkedIn)
	set(&info.GitHub, p.GitHub)
	set(&info.ProfileImage, p.ProfileImage)
	set(&info.BirthDate, p.BirthDate)
	return info
}

// IsEmpty reports whether the patch carries no fields
func (p PersonalInfoPatch) IsEmpty() bool {
	return p == PersonalInfoPatch{}
}
