package dto

// CreateQuoteRequestDTO is the `data` JSON part of the multipart quote form.
// Attachments travel as separate file parts, not in this payload.
type CreateQuoteRequestDTO struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`

	CompanyName    string `json:"companyName"`
	ProjectAddress string `json:"projectAddress"`

	Message         string `json:"message" binding:"required"`
	HowHeardAboutUs string `json:"howHeardAboutUs" binding:"required"`
}
