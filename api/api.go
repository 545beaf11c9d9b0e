// Package api provides the HTTP API of the NGO website backend: the JSON
// payloads of the public and admin pages, the authentication actions and
// the content actions.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/helpinghands/ngo-backend/api/apicommon"
	"github.com/helpinghands/ngo-backend/auth"
	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/gate"
	"github.com/helpinghands/ngo-backend/pagecache"
	"github.com/helpinghands/ngo-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

type Config struct {
	Host    string
	Port    int
	Auth    *auth.Service
	Content *content.Service
	Pages   *pagecache.Cache
	// Stripe is optional, without it the webhook and the checkout routes
	// are not registered.
	Stripe *stripe.Service
	// AllowedOrigins of the CORS requests, any origin if empty.
	AllowedOrigins []string
	Organization   apicommon.Organization
}

// API type represents the API HTTP server.
type API struct {
	host           string
	port           int
	auth           *auth.Service
	content        *content.Service
	pages          *pagecache.Cache
	stripe         *stripe.Service
	allowedOrigins []string
	organization   apicommon.Organization
	router         *chi.Mux
	server         *http.Server
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) (*API, error) {
	if conf == nil || conf.Auth == nil || conf.Content == nil {
		return nil, fmt.Errorf("missing auth or content service")
	}
	pages := conf.Pages
	if pages == nil {
		var err error
		if pages, err = pagecache.New(pagecache.DefaultSize); err != nil {
			return nil, err
		}
	}
	origins := conf.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &API{
		host:           conf.Host,
		port:           conf.Port,
		auth:           conf.Auth,
		content:        conf.Content,
		pages:          pages,
		stripe:         conf.Stripe,
		allowedOrigins: origins,
		organization:   conf.Organization,
	}, nil
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	a.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.host, a.port),
		Handler:           a.initRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Shutdown stops the server once the in-flight requests are done.
func (a *API) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Router returns the handler with every route registered.
func (a *API) Router() http.Handler {
	if a.router == nil {
		a.initRouter()
	}
	return a.router
}

// router creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", apicommon.StripeSignatureHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(apicommon.RequestTimeout))
	// redirects to the login or the admin page before any page logic
	r.Use(gate.Middleware)

	r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(".")); err != nil {
			log.Warnw("failed to write ping response", "error", err)
		}
	})

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(apicommon.MaxBodySize))
		// public pages
		a.get(r, pagecache.HomePath, a.homePageHandler)
		a.get(r, pagecache.AboutPath, a.aboutPageHandler)
		a.get(r, campaignsPagePath, a.campaignsPageHandler)
		a.get(r, galleryPagePath, a.galleryPageHandler)
		a.get(r, certificatesPagePath, a.certificatesPageHandler)
		a.get(r, pagecache.DonatePath, a.donatePageHandler)
		a.get(r, contactPagePath, a.contactPageHandler)
		a.get(r, gate.LoginPath, a.loginPageHandler)
		// auth actions
		a.post(r, authLoginEndpoint, a.authLoginHandler)
		a.post(r, authLogoutEndpoint, a.authLogoutHandler)
		a.get(r, authSessionEndpoint, a.authSessionHandler)
		// visitor submissions
		a.post(r, contactsEndpoint, a.createContactHandler)
		a.post(r, newsletterEndpoint, a.subscribeHandler)
		a.post(r, donationsEndpoint, a.recordDonationHandler)
		if a.stripe != nil && a.stripe.Config().CheckoutEnabled() {
			a.post(r, donationsCheckoutEndpoint, a.donationCheckoutHandler)
		}
	})
	// the webhook payload is not limited by the JSON content type
	if a.stripe != nil && a.stripe.Config().WebhookEnabled() {
		a.post(r, donationsWebhookEndpoint, a.stripeWebhookHandler)
	}

	// protected routes
	r.Group(func(r chi.Router) {
		// seek, verify and validate the session cookie
		r.Use(a.auth.Middleware)
		r.Use(middleware.RequestSize(apicommon.MaxBodySize))
		a.adminRoutes(r)
	})
	a.router = r
	return r
}

func (*API) get(r chi.Router, path string, h http.HandlerFunc) {
	log.Infow("new route", "method", "GET", "path", path)
	r.Get(path, h)
}

func (*API) post(r chi.Router, path string, h http.HandlerFunc) {
	log.Infow("new route", "method", "POST", "path", path)
	r.Post(path, h)
}

func (*API) put(r chi.Router, path string, h http.HandlerFunc) {
	log.Infow("new route", "method", "PUT", "path", path)
	r.Put(path, h)
}

func (*API) delete(r chi.Router, path string, h http.HandlerFunc) {
	log.Infow("new route", "method", "DELETE", "path", path)
	r.Delete(path, h)
}
