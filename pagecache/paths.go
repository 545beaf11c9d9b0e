package pagecache

// Entity identifies a kind of content whose mutations invalidate pages.
type Entity string

const (
	Campaign    Entity = "campaign"
	Certificate Entity = "certificate"
	Contact     Entity = "contact"
	Donator     Entity = "donator"
	Gallery     Entity = "gallery"
	Member      Entity = "member"
	Volunteer   Entity = "volunteer"
	Activities  Entity = "activities"
	Newsletter  Entity = "newsletter"
)

// Page paths of the site.
const (
	HomePath   = "/"
	AboutPath  = "/about"
	DonatePath = "/donate"

	AdminCampaignsPath    = "/admin/campaigns"
	AdminCertificatesPath = "/admin/certificates"
	AdminContactsPath     = "/admin/contacts"
	AdminDonatorsPath     = "/admin/donators"
	AdminGalleryPath      = "/admin/gallery"
	AdminMembersPath      = "/admin/members"
	AdminVolunteersPath   = "/admin/volunteers"
	AdminActivitiesPath   = "/admin/activities"
	AdminNewsletterPath   = "/admin/newsletter"
)

// dependentPaths lists the pages that render each entity.
var dependentPaths = map[Entity][]string{
	Campaign:    {AdminCampaignsPath, HomePath},
	Certificate: {AdminCertificatesPath},
	Contact:     {AdminContactsPath},
	Donator:     {AdminDonatorsPath, DonatePath},
	Gallery:     {AdminGalleryPath},
	Member:      {AdminMembersPath},
	Volunteer:   {AdminVolunteersPath, AboutPath},
	Activities:  {AdminActivitiesPath, HomePath},
	Newsletter:  {AdminNewsletterPath},
}

// PathsFor returns the pages that must be invalidated after a mutation of
// the entity.
func PathsFor(entity Entity) []string {
	paths := dependentPaths[entity]
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}
