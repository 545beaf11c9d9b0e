package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an admin account of the portal. The password is stored hashed and
// is never included in the API responses.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SocialLinks groups the optional social profile URLs of members and
// volunteers.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
}

type Member struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Phone       string             `json:"phone" bson:"phone"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Designation string             `json:"designation,omitempty" bson:"designation,omitempty"`
	Social      SocialLinks        `json:"social" bson:"social"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	Priority    int                `json:"priority" bson:"priority"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MemberPatch contains the member fields to update. Nil fields keep the value
// already stored.
type MemberPatch struct {
	Name        *string   `bson:"name"`
	Phone       *string   `bson:"phone"`
	Email       *string   `bson:"email"`
	Image       *string   `bson:"image"`
	Designation *string   `bson:"designation"`
	Facebook    *string   `bson:"social.facebook"`
	Twitter     *string   `bson:"social.twitter"`
	Instagram   *string   `bson:"social.instagram"`
	LinkedIn    *string   `bson:"social.linkedin"`
	IsActive    *bool     `bson:"isActive"`
	Priority    *int      `bson:"priority"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// MemberFilter narrows the members listing.
type MemberFilter struct {
	ActiveOnly bool
}

type Volunteer struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Phone       string             `json:"phone" bson:"phone"`
	Role        string             `json:"role,omitempty" bson:"role,omitempty"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	DateOfBirth string             `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Social      SocialLinks        `json:"social" bson:"social"`
	ShowInList  bool               `json:"showInList" bson:"showInList"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VolunteerPatch contains the volunteer fields to update. Nil fields keep the
// value already stored.
type VolunteerPatch struct {
	Name        *string   `bson:"name"`
	Phone       *string   `bson:"phone"`
	Email       *string   `bson:"email"`
	Role        *string   `bson:"role"`
	Image       *string   `bson:"image"`
	DateOfBirth *string   `bson:"dateOfBirth"`
	Facebook    *string   `bson:"social.facebook"`
	Twitter     *string   `bson:"social.twitter"`
	Instagram   *string   `bson:"social.instagram"`
	LinkedIn    *string   `bson:"social.linkedin"`
	ShowInList  *bool     `bson:"showInList"`
	IsActive    *bool     `bson:"isActive"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// VolunteerFilter narrows the volunteers listing. Public selects only the
// volunteers that are active and shown in the public list.
type VolunteerFilter struct {
	Public bool
}

type Campaign struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Date        time.Time          `json:"date" bson:"date"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CampaignPatch struct {
	Name        *string    `bson:"name"`
	Description *string    `bson:"description"`
	Image       *string    `bson:"image"`
	Date        *time.Time `bson:"date"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

type Certificate struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	IssuedBy  string             `json:"issuedBy,omitempty" bson:"issuedBy,omitempty"`
	Image     string             `json:"image" bson:"image"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CertificatePatch struct {
	Name      *string   `bson:"name"`
	IssuedBy  *string   `bson:"issuedBy"`
	Image     *string   `bson:"image"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type GalleryImage struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ImgTitle    string             `json:"imgTitle" bson:"imgTitle"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Date        time.Time          `json:"date" bson:"date"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type GalleryImagePatch struct {
	ImgTitle    *string    `bson:"imgTitle"`
	Description *string    `bson:"description"`
	Image       *string    `bson:"image"`
	Date        *time.Time `bson:"date"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

type Donator struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Amount        float64            `json:"amount" bson:"amount"`
	PaymentMode   string             `json:"paymentMode,omitempty" bson:"paymentMode,omitempty"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	Date          time.Time          `json:"date" bson:"date"`
	IsVerified    bool               `json:"isVerified" bson:"isVerified"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type DonatorPatch struct {
	Name          *string    `bson:"name"`
	Email         *string    `bson:"email"`
	Phone         *string    `bson:"phone"`
	Amount        *float64   `bson:"amount"`
	PaymentMode   *string    `bson:"paymentMode"`
	TransactionID *string    `bson:"transactionId"`
	Date          *time.Time `bson:"date"`
	IsVerified    *bool      `bson:"isVerified"`
	UpdatedAt     time.Time  `bson:"updatedAt"`
}

type ContactSubmission struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Email   string             `json:"email" bson:"email"`
	Subject string             `json:"subject" bson:"subject"`
	Message string             `json:"message" bson:"message"`
	Date    time.Time          `json:"date" bson:"date"`
}

type NewsletterSubscription struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Activities holds the counters shown on the home page. The collection keeps a
// single document identified by its singleton key.
type Activities struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Singleton   string             `json:"-" bson:"singleton"`
	HappyPeople int64              `json:"happyPeople" bson:"happyPeople"`
	Offices     int64              `json:"offices" bson:"offices"`
	Staff       int64              `json:"staff" bson:"staff"`
	Volunteers  int64              `json:"volunteers" bson:"volunteers"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
