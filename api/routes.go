package api

const (
	// GET /ping to check the server is alive
	pingEndpoint = "/ping"

	// public pages without cached rendering

	// GET /campaigns lists every campaign
	campaignsPagePath = "/campaigns"
	// GET /gallery lists the gallery images
	galleryPagePath = "/gallery"
	// GET /certificates lists the certificates
	certificatesPagePath = "/certificates"
	// GET /contact returns the contact details of the organization
	contactPagePath = "/contact"

	// admin pages without cached rendering

	// GET /admin/users lists the admin accounts
	adminUsersPath = "/admin/users"

	// auth routes

	// POST /api/auth/login to login and get the session cookie
	authLoginEndpoint = "/api/auth/login"
	// POST /api/auth/logout to expire the session cookie
	authLogoutEndpoint = "/api/auth/logout"
	// GET /api/auth/session to get the current session
	authSessionEndpoint = "/api/auth/session"

	// visitor routes

	// POST /api/contacts to send a contact message
	contactsEndpoint = "/api/contacts"
	// POST /api/newsletter to subscribe to the newsletter
	newsletterEndpoint = "/api/newsletter"
	// POST /api/donators to record a donation pending of verification
	donationsEndpoint = "/api/donators"
	// POST /api/donators/checkout to start a Stripe checkout for a donation
	donationsCheckoutEndpoint = "/api/donators/checkout"
	// POST /api/donators/webhook to receive the Stripe events
	donationsWebhookEndpoint = "/api/donators/webhook"

	// admin routes, the item routes take the id as URL param

	adminAPIPrefix = "/api/admin"
	idParam        = "id"

	adminUsersEndpoint         = adminAPIPrefix + "/users"
	adminMembersEndpoint       = adminAPIPrefix + "/members"
	adminVolunteersEndpoint    = adminAPIPrefix + "/volunteers"
	adminCampaignsEndpoint     = adminAPIPrefix + "/campaigns"
	adminCertificatesEndpoint  = adminAPIPrefix + "/certificates"
	adminGalleryEndpoint       = adminAPIPrefix + "/gallery"
	adminDonatorsEndpoint      = adminAPIPrefix + "/donators"
	adminContactsEndpoint      = adminAPIPrefix + "/contacts"
	adminNewsletterEndpoint    = adminAPIPrefix + "/newsletter"
	adminActivitiesEndpoint    = adminAPIPrefix + "/activities"
	adminVerifyDonatorEndpoint = adminDonatorsEndpoint + "/verify/{transactionId}"
)

// itemEndpoint returns the route of a single item of the collection.
func itemEndpoint(collection string) string {
	return collection + "/{" + idParam + "}"
}
