package models

import "time"

// User represents a record in the users store. The profile field names
// (nom, prenom, datenaissance, telephone, adresse) are the public API
// contract and are kept as-is in JSON and storage.
type User struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"` // bcrypt hash, never serialized
	Nom           string    `json:"nom" bson:"nom"`
	Prenom        string    `json:"prenom" bson:"prenom"`
	DateNaissance string    `json:"datenaissance" bson:"datenaissance"`
	Telephone     string    `json:"telephone" bson:"telephone"`
	Adresse       string    `json:"adresse" bson:"adresse"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// SignupRequest is the JSON body for POST /api/users/signup.
type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	DateNaissance string `json:"datenaissance"`
	Telephone     string `json:"telephone"`
	Adresse       string `json:"adresse"`
}

// LoginRequest is the JSON body for POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRequest is the JSON body for PUT /api/users/profile. Fields left
// empty keep their stored values; a non-empty Password is re-hashed before
// it is persisted.
type UpdateRequest struct {
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	DateNaissance string `json:"datenaissance"`
	Telephone     string `json:"telephone"`
	Adresse       string `json:"adresse"`
	Password      string `json:"password"`
}

// ProfileUpdate is the fully merged field set written by UpdateByEmail.
// Password always holds a hash.
type ProfileUpdate struct {
	Nom           string
	Prenom        string
	DateNaissance string
	Telephone     string
	Adresse       string
	Password      string
}
