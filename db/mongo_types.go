package db

// Dump is the JSON document produced by String and read by Import. It
// carries every collection of the portal except the migration records.
type Dump struct {
	Users        []User                   `json:"users"`
	Members      []Member                 `json:"members"`
	Volunteers   []Volunteer              `json:"volunteers"`
	Campaigns    []Campaign               `json:"campaigns"`
	Certificates []Certificate            `json:"certificates"`
	Gallery      []GalleryImage           `json:"gallery"`
	Donators     []Donator                `json:"donators"`
	Contacts     []ContactSubmission      `json:"contacts"`
	Newsletter   []NewsletterSubscription `json:"newsletter"`
	Activities   []Activities             `json:"activities"`
}
