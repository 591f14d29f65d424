package api

import "time"

// User represents a registered customer
type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Gender      string    `json:"gender,omitempty"` // "male" or "female"
	Height      float64   `json:"height,omitempty"` // cm
	Weight      float64   `json:"weight,omitempty"` // kg
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CreateUserRequest is the POST /users payload
type CreateUserRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
}

// Measurement is a set of AI-derived body measurements. All circumferences
// and lengths are centimetres.
type Measurement struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Height             float64   `json:"height"`
	ChestCircumference float64   `json:"chestCircumference"`
	WaistCircumference float64   `json:"waistCircumference"`
	HipCircumference   float64   `json:"hipCircumference"`
	ShoulderWidth      float64   `json:"shoulderWidth"`
	SleeveLength       float64   `json:"sleeveLength"`
	UpperArmLength     float64   `json:"upperArmLength"`
	NeckCircumference  float64   `json:"neckCircumference"`
	Inseam             float64   `json:"inseam"`
	TorsoLength        float64   `json:"torsoLength"`
	BicepCircumference float64   `json:"bicepCircumference"`
	WristCircumference float64   `json:"wristCircumference"`
	ThighCircumference float64   `json:"thighCircumference"`
	FrontImageURL      string    `json:"frontImageUrl,omitempty"`
	SideImageURL       string    `json:"sideImageUrl,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty"`
}

// Tailor represents a tailor shop registered with the service
type Tailor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ShopName    string    `json:"shopName,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}
