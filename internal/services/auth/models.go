package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles accepted at registration. The role is fixed at creation and drives
// which optional fields are legal on the record.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User represents a registered clinic user, doctor or patient.
// The password hash never leaves the server: json:"-" strips it from
// every response body.
type User struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name               string        `bson:"name" json:"name"`
	Email              string        `bson:"email" json:"email"`
	Phone              string        `bson:"phone" json:"phone"`
	Role               string        `bson:"role" json:"role"`
	PasswordHash       string        `bson:"password_hash" json:"-"`
	RegistrationNumber string        `bson:"registration_number" json:"registration_number"`
	RegistrationDate   time.Time     `bson:"registration_date" json:"registration_date"`
	DiseaseDescription string        `bson:"disease_description,omitempty" json:"disease_description,omitempty"`
}
