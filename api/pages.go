package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/helpinghands/ngo-backend/api/apicommon"
	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// renderFunc builds the payload of a page. A failed render is never cached.
type renderFunc func() (any, *errors.Error)

// envelope adapts the result of an operation to a renderFunc.
func envelope[T apicommon.Envelope](res T) (any, *errors.Error) {
	return res, res.Failure()
}

// cachedPage serves the page from the page cache, rendering it when the
// cached payload is missing or stale.
func (a *API) cachedPage(path string, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		payload, err := a.pages.Render(path, func() ([]byte, error) {
			data, failure := render()
			if failure != nil {
				return nil, *failure
			}
			return json.Marshal(data)
		})
		if err != nil {
			writeRenderError(w, err)
			return
		}
		apicommon.HTTPWriteRawJSON(w, payload)
	}
}

// page serves a page rendered on every request.
func (*API) page(render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		data, failure := render()
		if failure != nil {
			failure.Write(w)
			return
		}
		apicommon.HTTPWriteJSON(w, data)
	}
}

func writeRenderError(w http.ResponseWriter, err error) {
	var apiErr errors.Error
	if stderrors.As(err, &apiErr) {
		apiErr.Write(w)
		return
	}
	errors.ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
}

// homePageHandler godoc
//
//	@Summary		Home page
//	@Description	Latest campaigns and the activities counter
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	apicommon.HomePage
//	@Failure		503	{object}	errors.Error	"Database unavailable"
//	@Router			/ [get]
func (a *API) homePageHandler(w http.ResponseWriter, r *http.Request) {
	a.cachedPage(pagecache.HomePath, a.renderHome)(w, r)
}

func (a *API) renderHome() (any, *errors.Error) {
	campaigns := a.content.ListCampaigns(apicommon.HomeCampaignsLimit)
	if campaigns.Err != nil {
		return nil, campaigns.Err
	}
	activities := a.content.Activities()
	if activities.Err != nil {
		return nil, activities.Err
	}
	return apicommon.HomePage{
		Success:    true,
		Campaigns:  campaigns.Campaigns,
		Activities: activities.Activities,
	}, nil
}

// aboutPageHandler godoc
//
//	@Summary		About page
//	@Description	Active members and the volunteers shown in the public list
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	apicommon.AboutPage
//	@Router			/about [get]
func (a *API) aboutPageHandler(w http.ResponseWriter, _ *http.Request) {
	volunteers, err := a.pages.Render(pagecache.AboutPath, a.renderAboutVolunteers)
	if err != nil {
		writeRenderError(w, err)
		return
	}
	members := a.content.ListMembers(true)
	if members.Err != nil {
		members.Err.Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, aboutPayload{
		Success:    true,
		Members:    members.Members,
		Volunteers: volunteers,
	})
}

// aboutPayload is apicommon.AboutPage with the volunteers taken from the
// page cache. Members are read on every request since no member change
// invalidates the about page.
type aboutPayload struct {
	Success    bool            `json:"success"`
	Members    []db.Member     `json:"members"`
	Volunteers json.RawMessage `json:"volunteers"`
}

func (a *API) renderAboutVolunteers() ([]byte, error) {
	volunteers := a.content.ListVolunteers(true)
	if volunteers.Err != nil {
		return nil, *volunteers.Err
	}
	return json.Marshal(volunteers.Volunteers)
}

// donatePageHandler godoc
//
//	@Summary		Donation page
//	@Description	The verified donators with the highest amounts
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	apicommon.DonatePage
//	@Router			/donate [get]
func (a *API) donatePageHandler(w http.ResponseWriter, r *http.Request) {
	a.cachedPage(pagecache.DonatePath, a.renderDonate)(w, r)
}

func (a *API) renderDonate() (any, *errors.Error) {
	top := a.content.TopDonators()
	if top.Err != nil {
		return nil, top.Err
	}
	return apicommon.DonatePage{
		Success:         true,
		TopDonators:     top.Donators,
		CheckoutEnabled: a.stripe != nil && a.stripe.Config().CheckoutEnabled(),
	}, nil
}

func (a *API) campaignsPageHandler(w http.ResponseWriter, r *http.Request) {
	a.page(func() (any, *errors.Error) { return envelope(a.content.ListCampaigns(0)) })(w, r)
}

func (a *API) galleryPageHandler(w http.ResponseWriter, r *http.Request) {
	a.page(func() (any, *errors.Error) { return envelope(a.content.ListGalleryImages(0)) })(w, r)
}

func (a *API) certificatesPageHandler(w http.ResponseWriter, r *http.Request) {
	a.page(func() (any, *errors.Error) { return envelope(a.content.ListCertificates()) })(w, r)
}

func (a *API) contactPageHandler(w http.ResponseWriter, _ *http.Request) {
	apicommon.HTTPWriteJSON(w, apicommon.ContactPage{Success: true, Organization: a.organization})
}

func (a *API) loginPageHandler(w http.ResponseWriter, _ *http.Request) {
	apicommon.HTTPWriteJSON(w, apicommon.LoginPage{Success: true, Organization: a.organization.Name})
}

// dashboardHandler godoc
//
//	@Summary		Admin dashboard
//	@Description	Number of items of every kind of content
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	apicommon.Dashboard
//	@Failure		401	{object}	errors.Error	"Unauthorized"
//	@Router			/admin [get]
func (a *API) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	a.page(a.renderDashboard)(w, r)
}

func (a *API) renderDashboard() (any, *errors.Error) {
	d := apicommon.Dashboard{Success: true}
	campaigns := a.content.ListCampaigns(0)
	if campaigns.Err != nil {
		return nil, campaigns.Err
	}
	d.Campaigns = len(campaigns.Campaigns)
	certificates := a.content.ListCertificates()
	if certificates.Err != nil {
		return nil, certificates.Err
	}
	d.Certificates = len(certificates.Certificates)
	contacts := a.content.ListContacts()
	if contacts.Err != nil {
		return nil, contacts.Err
	}
	d.Contacts = len(contacts.Contacts)
	donators := a.content.ListDonators(1, 1)
	if donators.Err != nil {
		return nil, donators.Err
	}
	d.Donators = donators.Total
	gallery := a.content.ListGalleryImages(0)
	if gallery.Err != nil {
		return nil, gallery.Err
	}
	d.Gallery = len(gallery.Images)
	members := a.content.ListMembers(false)
	if members.Err != nil {
		return nil, members.Err
	}
	d.Members = len(members.Members)
	volunteers := a.content.ListVolunteers(false)
	if volunteers.Err != nil {
		return nil, volunteers.Err
	}
	d.Volunteers = len(volunteers.Volunteers)
	subscriptions := a.content.ListSubscriptions()
	if subscriptions.Err != nil {
		return nil, subscriptions.Err
	}
	d.Subscriptions = len(subscriptions.Subscriptions)
	activities := a.content.Activities()
	if activities.Err != nil {
		return nil, activities.Err
	}
	d.Activities = activities.Activities
	return d, nil
}

// listDonatorsHandler godoc
//
//	@Summary		List donators
//	@Description	A page of the donators, the most recent first. Only the first page with the default size is cached.
//	@Tags			admin
//	@Produce		json
//	@Param			page		query		int	false	"Page number, starting at 1"
//	@Param			pageSize	query		int	false	"Number of donators per page"
//	@Success		200			{object}	content.DonatorsResult
//	@Failure		400			{object}	errors.Error	"Invalid page"
//	@Router			/admin/donators [get]
func (a *API) listDonatorsHandler(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		errors.ErrMalformedURLParam.WithErr(err).Write(w)
		return
	}
	render := func() (any, *errors.Error) { return envelope(a.content.ListDonators(page, pageSize)) }
	if page <= 1 && (pageSize == 0 || pageSize == content.DefaultDonatorsPageSize) {
		a.cachedPage(pagecache.AdminDonatorsPath, render)(w, r)
		return
	}
	a.page(render)(w, r)
}

// pageParams reads the optional page and pageSize query params, zero when
// absent.
func pageParams(r *http.Request) (page, pageSize int64, err error) {
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		if page, err = strconv.ParseInt(v, 10, 64); err != nil || page < 1 {
			return 0, 0, stderrors.New("page must be a positive number")
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if pageSize, err = strconv.ParseInt(v, 10, 64); err != nil || pageSize < 1 || pageSize > 100 {
			return 0, 0, stderrors.New("pageSize must be between 1 and 100")
		}
	}
	return page, pageSize, nil
}
