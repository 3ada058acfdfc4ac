package model

import "time"

// Tutor is a tutor's public profile plus the verification material an
// administrator reviews. The proof fields hold blob-store file IDs, never
// the documents themselves.
type Tutor struct {
	ID                   string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID               string    `json:"user_id" bson:"user_id" validate:"required"`
	Name                 string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email                string    `json:"email" bson:"email" validate:"required,email"`
	Phone                string    `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Subject              string    `json:"subject" bson:"subject" validate:"required,min=2,max=100"`
	Location             string    `json:"location" bson:"location" validate:"required,max=100"`
	Languages            string    `json:"languages,omitempty" bson:"languages,omitempty" validate:"max=200"`
	Standard             string    `json:"standard" bson:"standard" validate:"required,max=50"`
	Fees                 int       `json:"fees" bson:"fees" validate:"gte=0"`
	Bio                  string    `json:"bio,omitempty" bson:"bio,omitempty" validate:"max=2000"`
	Experience           string    `json:"experience,omitempty" bson:"experience,omitempty" validate:"max=500"`
	Gender               string    `json:"gender" bson:"gender" validate:"required,oneof=male female other"`
	Qualification        string    `json:"qualification,omitempty" bson:"qualification,omitempty" validate:"max=200"`
	IdentityProofID      string    `json:"identity_proof_id,omitempty" bson:"identity_proof_id,omitempty"`
	QualificationProofID string    `json:"qualification_proof_id,omitempty" bson:"qualification_proof_id,omitempty"`
	Verified             bool      `json:"verified" bson:"verified"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at"`
}

// TutorFilter narrows tutor search. Zero values mean "no constraint";
// MinFees/MaxFees apply only when both are set, mirroring the fee-range
// picker in the search UI.
type TutorFilter struct {
	Subject  string
	Location string
	Language string
	Standard string
	Gender   string
	MinFees  int
	MaxFees  int
	Verified *bool
}
