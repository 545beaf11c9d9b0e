package apicommon

//revive:disable:max-public-structs

import (
	"github.com/helpinghands/ngo-backend/db"
)

// Organization contains the public contact details of the organization shown
// on the contact page.
type Organization struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// LoginRequest is the body of the login action.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HomePage is the payload of the home page.
type HomePage struct {
	Success    bool           `json:"success"`
	Campaigns  []db.Campaign  `json:"campaigns"`
	Activities *db.Activities `json:"activities"`
}

// AboutPage is the payload of the about page: the active members and the
// volunteers shown in the public list.
type AboutPage struct {
	Success    bool           `json:"success"`
	Members    []db.Member    `json:"members"`
	Volunteers []db.Volunteer `json:"volunteers"`
}

// DonatePage is the payload of the donation page.
type DonatePage struct {
	Success         bool         `json:"success"`
	TopDonators     []db.Donator `json:"topDonators"`
	CheckoutEnabled bool         `json:"checkoutEnabled"`
}

// ContactPage is the payload of the contact page.
type ContactPage struct {
	Success      bool         `json:"success"`
	Organization Organization `json:"organization"`
}

// LoginPage is the payload of the login page.
type LoginPage struct {
	Success      bool   `json:"success"`
	Organization string `json:"organization"`
}

// Dashboard is the payload of the admin root page with the number of items
// of every kind of content.
type Dashboard struct {
	Success       bool           `json:"success"`
	Campaigns     int            `json:"campaigns"`
	Certificates  int            `json:"certificates"`
	Contacts      int            `json:"contacts"`
	Donators      int64          `json:"donators"`
	Gallery       int            `json:"gallery"`
	Members       int            `json:"members"`
	Volunteers    int            `json:"volunteers"`
	Subscriptions int            `json:"subscriptions"`
	Activities    *db.Activities `json:"activities"`
}
