package db

import "time"

const (
	// defaultTimeout is the timeout of every single storage operation.
	defaultTimeout = 10 * time.Second
	// connectTimeout bounds the connection and ping to the database server.
	connectTimeout = 10 * time.Second

	// DefaultMemberPriority is assigned to members created without priority.
	DefaultMemberPriority = 1000
	// TopDonatorsLimit is the maximum number of donators in the public list.
	TopDonatorsLimit = 10
	// activitiesSingletonKey is the value of the unique key that keeps the
	// activities collection to a single document.
	activitiesSingletonKey = "activities"
)

// collection names
const (
	usersCollection        = "users"
	membersCollection      = "members"
	volunteersCollection   = "volunteers"
	campaignsCollection    = "campaigns"
	certificatesCollection = "certificates"
	galleryCollection      = "gallery"
	donatorsCollection     = "donators"
	contactsCollection     = "contacts"
	newsletterCollection   = "newsletter"
	activitiesCollection   = "activities"
	migrationsCollection   = "migrations"
)
