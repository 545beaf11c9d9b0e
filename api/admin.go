package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/ngo-backend/api/apicommon"
	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/gate"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// adminRoutes registers the admin pages and actions. The caller installs
// the session middleware.
func (a *API) adminRoutes(r chi.Router) {
	a.get(r, gate.AdminPath, a.dashboardHandler)

	// the admin list pages are also the listing of the admin collections
	lists := []struct {
		page     string
		endpoint string
		handler  http.HandlerFunc
	}{
		{pagecache.AdminMembersPath, adminMembersEndpoint, a.cachedPage(pagecache.AdminMembersPath,
			func() (any, *errors.Error) { return envelope(a.content.ListMembers(false)) })},
		{pagecache.AdminVolunteersPath, adminVolunteersEndpoint, a.cachedPage(pagecache.AdminVolunteersPath,
			func() (any, *errors.Error) { return envelope(a.content.ListVolunteers(false)) })},
		{pagecache.AdminCampaignsPath, adminCampaignsEndpoint, a.cachedPage(pagecache.AdminCampaignsPath,
			func() (any, *errors.Error) { return envelope(a.content.ListCampaigns(0)) })},
		{pagecache.AdminCertificatesPath, adminCertificatesEndpoint, a.cachedPage(pagecache.AdminCertificatesPath,
			func() (any, *errors.Error) { return envelope(a.content.ListCertificates()) })},
		{pagecache.AdminGalleryPath, adminGalleryEndpoint, a.cachedPage(pagecache.AdminGalleryPath,
			func() (any, *errors.Error) { return envelope(a.content.ListGalleryImages(0)) })},
		{pagecache.AdminContactsPath, adminContactsEndpoint, a.cachedPage(pagecache.AdminContactsPath,
			func() (any, *errors.Error) { return envelope(a.content.ListContacts()) })},
		{pagecache.AdminNewsletterPath, adminNewsletterEndpoint, a.cachedPage(pagecache.AdminNewsletterPath,
			func() (any, *errors.Error) { return envelope(a.content.ListSubscriptions()) })},
		{pagecache.AdminActivitiesPath, adminActivitiesEndpoint, a.cachedPage(pagecache.AdminActivitiesPath,
			func() (any, *errors.Error) { return envelope(a.content.Activities()) })},
		{pagecache.AdminDonatorsPath, adminDonatorsEndpoint, a.listDonatorsHandler},
		{adminUsersPath, adminUsersEndpoint, a.page(
			func() (any, *errors.Error) { return envelope(a.content.ListUsers()) })},
	}
	for _, l := range lists {
		a.get(r, l.page, l.handler)
		a.get(r, l.endpoint, l.handler)
	}

	// users
	a.post(r, adminUsersEndpoint, a.createUserHandler)
	a.get(r, itemEndpoint(adminUsersEndpoint), a.userHandler)
	a.put(r, itemEndpoint(adminUsersEndpoint), a.updateUserHandler)
	a.delete(r, itemEndpoint(adminUsersEndpoint), a.deleteUserHandler)
	// members
	a.post(r, adminMembersEndpoint, a.createMemberHandler)
	a.get(r, itemEndpoint(adminMembersEndpoint), a.memberHandler)
	a.put(r, itemEndpoint(adminMembersEndpoint), a.updateMemberHandler)
	a.delete(r, itemEndpoint(adminMembersEndpoint), a.deleteMemberHandler)
	// volunteers
	a.post(r, adminVolunteersEndpoint, a.createVolunteerHandler)
	a.get(r, itemEndpoint(adminVolunteersEndpoint), a.volunteerHandler)
	a.put(r, itemEndpoint(adminVolunteersEndpoint), a.updateVolunteerHandler)
	a.delete(r, itemEndpoint(adminVolunteersEndpoint), a.deleteVolunteerHandler)
	// campaigns
	a.post(r, adminCampaignsEndpoint, a.createCampaignHandler)
	a.get(r, itemEndpoint(adminCampaignsEndpoint), a.campaignHandler)
	a.put(r, itemEndpoint(adminCampaignsEndpoint), a.updateCampaignHandler)
	a.delete(r, itemEndpoint(adminCampaignsEndpoint), a.deleteCampaignHandler)
	// certificates
	a.post(r, adminCertificatesEndpoint, a.createCertificateHandler)
	a.get(r, itemEndpoint(adminCertificatesEndpoint), a.certificateHandler)
	a.put(r, itemEndpoint(adminCertificatesEndpoint), a.updateCertificateHandler)
	a.delete(r, itemEndpoint(adminCertificatesEndpoint), a.deleteCertificateHandler)
	// gallery
	a.post(r, adminGalleryEndpoint, a.createGalleryImageHandler)
	a.get(r, itemEndpoint(adminGalleryEndpoint), a.galleryImageHandler)
	a.put(r, itemEndpoint(adminGalleryEndpoint), a.updateGalleryImageHandler)
	a.delete(r, itemEndpoint(adminGalleryEndpoint), a.deleteGalleryImageHandler)
	// donators
	a.post(r, adminDonatorsEndpoint, a.createDonatorHandler)
	a.post(r, adminVerifyDonatorEndpoint, a.verifyDonatorHandler)
	a.get(r, itemEndpoint(adminDonatorsEndpoint), a.donatorHandler)
	a.put(r, itemEndpoint(adminDonatorsEndpoint), a.updateDonatorHandler)
	a.delete(r, itemEndpoint(adminDonatorsEndpoint), a.deleteDonatorHandler)
	// contact submissions and newsletter subscriptions are only read and
	// deleted by the admins
	a.get(r, itemEndpoint(adminContactsEndpoint), a.contactHandler)
	a.delete(r, itemEndpoint(adminContactsEndpoint), a.deleteContactHandler)
	a.delete(r, itemEndpoint(adminNewsletterEndpoint), a.deleteSubscriptionHandler)
	// activities counter
	a.put(r, adminActivitiesEndpoint, a.updateActivitiesHandler)
}

// users

func (a *API) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req content.UserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateUser(req))
}

func (a *API) userHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.UserByID(idFromRequest(r)))
}

func (a *API) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req content.UserUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateUser(idFromRequest(r), req))
}

func (a *API) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteUser(idFromRequest(r)))
}

// members

// createMemberHandler godoc
//
//	@Summary		Create a member
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		content.MemberRequest	true	"Member"
//	@Success		200		{object}	content.MemberResult
//	@Failure		400		{object}	errors.Error	"Missing or invalid fields"
//	@Failure		401		{object}	errors.Error	"Unauthorized"
//	@Failure		409		{object}	errors.Error	"Email already exists"
//	@Router			/api/admin/members [post]
func (a *API) createMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req content.MemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateMember(req))
}

func (a *API) memberHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.MemberByID(idFromRequest(r)))
}

// updateMemberHandler godoc
//
//	@Summary		Update a member
//	@Description	Name and phone are always required, the absent optional fields keep their value
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Member id"
//	@Param			request	body		content.MemberUpdateRequest	true	"Member fields"
//	@Success		200		{object}	content.MemberResult
//	@Failure		404		{object}	errors.Error	"Member not found"
//	@Failure		409		{object}	errors.Error	"Email already exists"
//	@Router			/api/admin/members/{id} [put]
func (a *API) updateMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req content.MemberUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateMember(idFromRequest(r), req))
}

func (a *API) deleteMemberHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteMember(idFromRequest(r)))
}

// volunteers

func (a *API) createVolunteerHandler(w http.ResponseWriter, r *http.Request) {
	var req content.VolunteerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateVolunteer(req))
}

func (a *API) volunteerHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.VolunteerByID(idFromRequest(r)))
}

func (a *API) updateVolunteerHandler(w http.ResponseWriter, r *http.Request) {
	var req content.VolunteerUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateVolunteer(idFromRequest(r), req))
}

func (a *API) deleteVolunteerHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteVolunteer(idFromRequest(r)))
}

// campaigns

func (a *API) createCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var req content.CampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateCampaign(req))
}

func (a *API) campaignHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.CampaignByID(idFromRequest(r)))
}

// updateCampaignHandler godoc
//
//	@Summary		Update a campaign
//	@Description	Name, description and image are required as on creation
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Campaign id"
//	@Param			request	body		content.CampaignRequest	true	"Campaign"
//	@Success		200		{object}	content.CampaignResult
//	@Failure		400		{object}	errors.Error	"Missing fields"
//	@Failure		404		{object}	errors.Error	"Campaign not found"
//	@Router			/api/admin/campaigns/{id} [put]
func (a *API) updateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var req content.CampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateCampaign(idFromRequest(r), req))
}

func (a *API) deleteCampaignHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteCampaign(idFromRequest(r)))
}

// certificates

func (a *API) createCertificateHandler(w http.ResponseWriter, r *http.Request) {
	var req content.CertificateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateCertificate(req))
}

func (a *API) certificateHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.CertificateByID(idFromRequest(r)))
}

func (a *API) updateCertificateHandler(w http.ResponseWriter, r *http.Request) {
	var req content.CertificateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateCertificate(idFromRequest(r), req))
}

func (a *API) deleteCertificateHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteCertificate(idFromRequest(r)))
}

// gallery

func (a *API) createGalleryImageHandler(w http.ResponseWriter, r *http.Request) {
	var req content.GalleryImageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateGalleryImage(req))
}

func (a *API) galleryImageHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.GalleryImageByID(idFromRequest(r)))
}

func (a *API) updateGalleryImageHandler(w http.ResponseWriter, r *http.Request) {
	var req content.GalleryImageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateGalleryImage(idFromRequest(r), req))
}

func (a *API) deleteGalleryImageHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteGalleryImage(idFromRequest(r)))
}

// donators

func (a *API) createDonatorHandler(w http.ResponseWriter, r *http.Request) {
	var req content.DonatorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateDonator(req))
}

func (a *API) donatorHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DonatorByID(idFromRequest(r)))
}

func (a *API) updateDonatorHandler(w http.ResponseWriter, r *http.Request) {
	var req content.DonatorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateDonator(idFromRequest(r), req))
}

// verifyDonatorHandler godoc
//
//	@Summary		Verify a donation
//	@Description	Mark as verified the donation with the transaction id, the donator receives a thank you email
//	@Tags			admin
//	@Produce		json
//	@Param			transactionId	path		string	true	"Transaction id of the donation"
//	@Success		200				{object}	content.DonatorResult
//	@Failure		404				{object}	errors.Error	"No donation with the transaction id"
//	@Router			/api/admin/donators/verify/{transactionId} [post]
func (a *API) verifyDonatorHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.VerifyDonation(chi.URLParam(r, "transactionId")))
}

func (a *API) deleteDonatorHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteDonator(idFromRequest(r)))
}

// submissions

func (a *API) contactHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.ContactByID(idFromRequest(r)))
}

func (a *API) deleteContactHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteContact(idFromRequest(r)))
}

func (a *API) deleteSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	apicommon.HTTPWriteResult(w, a.content.DeleteSubscription(idFromRequest(r)))
}

// updateActivitiesHandler godoc
//
//	@Summary		Update the activities counter
//	@Description	The absent counters keep their value, negative values are rejected
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		content.ActivitiesRequest	true	"Counters"
//	@Success		200		{object}	content.ActivitiesResult
//	@Failure		400		{object}	errors.Error	"Negative counter"
//	@Router			/api/admin/activities [put]
func (a *API) updateActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	var req content.ActivitiesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.UpdateActivities(req))
}
