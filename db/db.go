package db

// Database is the storage contract used by the content and auth services.
// MongoStorage is its only production implementation.
type Database interface {
	// basic db management operations
	Close()
	Reset() error
	String() string
	Import([]byte) error
	// user methods
	User(id string) (*User, error)
	UserByEmail(email string) (*User, error)
	Users() ([]User, error)
	SetUser(user *User) (string, error)
	DelUser(id string) error
	// member methods
	Members(filter MemberFilter) ([]Member, error)
	Member(id string) (*Member, error)
	MemberByEmail(email string) (*Member, error)
	CreateMember(member *Member) (string, error)
	UpdateMember(id string, patch *MemberPatch) (*Member, error)
	DelMember(id string) error
	// volunteer methods
	Volunteers(filter VolunteerFilter) ([]Volunteer, error)
	Volunteer(id string) (*Volunteer, error)
	VolunteerByEmail(email string) (*Volunteer, error)
	CreateVolunteer(volunteer *Volunteer) (string, error)
	UpdateVolunteer(id string, patch *VolunteerPatch) (*Volunteer, error)
	DelVolunteer(id string) error
	// campaign methods
	Campaigns(limit int64) ([]Campaign, error)
	Campaign(id string) (*Campaign, error)
	CreateCampaign(campaign *Campaign) (string, error)
	UpdateCampaign(id string, patch *CampaignPatch) (*Campaign, error)
	DelCampaign(id string) error
	// certificate methods
	Certificates() ([]Certificate, error)
	Certificate(id string) (*Certificate, error)
	CreateCertificate(certificate *Certificate) (string, error)
	UpdateCertificate(id string, patch *CertificatePatch) (*Certificate, error)
	DelCertificate(id string) error
	// gallery methods
	GalleryImages(limit int64) ([]GalleryImage, error)
	GalleryImage(id string) (*GalleryImage, error)
	CreateGalleryImage(image *GalleryImage) (string, error)
	UpdateGalleryImage(id string, patch *GalleryImagePatch) (*GalleryImage, error)
	DelGalleryImage(id string) error
	// donator methods
	Donators(page, pageSize int64) ([]Donator, int64, error)
	TopDonators(limit int64) ([]Donator, error)
	Donator(id string) (*Donator, error)
	CreateDonator(donator *Donator) (string, error)
	UpdateDonator(id string, patch *DonatorPatch) (*Donator, error)
	VerifyDonatorByTransaction(transactionID string) (*Donator, error)
	DelDonator(id string) error
	// contact submission methods
	Contacts() ([]ContactSubmission, error)
	Contact(id string) (*ContactSubmission, error)
	CreateContact(contact *ContactSubmission) (string, error)
	DelContact(id string) error
	// newsletter methods
	Subscriptions() ([]NewsletterSubscription, error)
	CreateSubscription(subscription *NewsletterSubscription) (string, error)
	DelSubscription(id string) error
	// activities methods
	Activities() (*Activities, error)
	SetActivities(activities *Activities) (*Activities, error)
}

var _ Database = (*MongoStorage)(nil)
