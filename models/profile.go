package models

// PictureAttachment mirrors the attachment shape stored alongside a
// profile. A profile carries at most one picture.
type PictureAttachment struct {
	URL      string `dynamodbav:"url" json:"url"`
	Filename string `dynamodbav:"filename" json:"filename"`
	Type     string `dynamodbav:"type,omitempty" json:"type,omitempty"`
}

// Profile defines the structure of a participant's public record.
// LinkedEmail is the verified sign-in address that binds the record to
// an authenticated identity; Email is the contact address shown to
// connections and the two are independent.
type Profile struct {
	ID               string              `dynamodbav:"profileId" json:"id"`
	Name             string              `dynamodbav:"name" json:"name"`
	ShortIntro       string              `dynamodbav:"shortIntro" json:"shortIntro"`
	CompanyTitle     string              `dynamodbav:"companyTitle,omitempty" json:"companyTitle,omitempty"`
	Location         string              `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Email            string              `dynamodbav:"email,omitempty" json:"email,omitempty"`
	LinkedEmail      string              `dynamodbav:"linkedEmail,omitempty" json:"linkedEmail,omitempty"`
	Instagram        string              `dynamodbav:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedinLink     string              `dynamodbav:"linkedinLink,omitempty" json:"linkedinLink,omitempty"`
	GitHub           string              `dynamodbav:"github,omitempty" json:"github,omitempty"`
	Categories       []string            `dynamodbav:"categories,omitempty" json:"categories,omitempty"`
	LookingFor       string              `dynamodbav:"lookingFor,omitempty" json:"lookingFor,omitempty"`
	CanOffer         string              `dynamodbav:"canOffer,omitempty" json:"canOffer,omitempty"`
	OpenToWork       string              `dynamodbav:"openToWork,omitempty" json:"openToWork,omitempty"`
	Other            string              `dynamodbav:"other,omitempty" json:"other,omitempty"`
	Picture          []PictureAttachment `dynamodbav:"picture,omitempty" json:"picture,omitempty"`
	VerificationCode string              `dynamodbav:"verificationCode,omitempty" json:"-"`
	LastModified     string              `dynamodbav:"lastModified,omitempty" json:"lastModified,omitempty"`
}

// IsLinked reports whether the profile is already bound to a sign-in
// identity. Unlinked ("unclaimed") profiles are pre-seeded records
// waiting to be claimed through the verification-code flow.
func (p *Profile) IsLinked() bool {
	return p.LinkedEmail != ""
}

// ProfilesTable is the record-store table for profiles
const ProfilesTable = "Profiles"

// LinkedEmailIndex resolves profiles by their linking identity
const LinkedEmailIndex = "linkedEmail-index"

// NameIndex resolves unclaimed profiles by display name during the
// verification-code linking flow
const NameIndex = "name-index"
