package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// QuoteRequest is one inbound customer inquiry. Records are created exactly
// once per successful form submission and never mutated afterwards: the admin
// panel only reads them. AttachmentUrls always reference objects that were
// fully uploaded before the record was written.
type QuoteRequest struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`

	CompanyName    string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	ProjectAddress string `bson:"projectAddress,omitempty" json:"projectAddress,omitempty"`

	Message         string `bson:"message" json:"message"`
	HowHeardAboutUs string `bson:"howHeardAboutUs" json:"howHeardAboutUs"`

	AttachmentUrls []string `bson:"attachmentUrls" json:"attachmentUrls"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
