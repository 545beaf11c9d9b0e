package content

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/notifications"
	"github.com/helpinghands/ngo-backend/notifications/mailtemplates"
	"github.com/helpinghands/ngo-backend/test"
)

var testDB *db.MongoStorage

const (
	testEmail = "someone@ngo.test"
	testPhone = "+34 678 90 90 90"
	testImage = "data:image/webp;base64,UklGRg=="
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	dbContainer, err := test.StartMongoContainer(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to start MongoDB container: %v", err))
	}
	mongoURI, err := dbContainer.Endpoint(ctx, "mongodb")
	if err != nil {
		panic(fmt.Sprintf("failed to get MongoDB endpoint: %v", err))
	}
	testDB, err = db.New(&db.Config{MongoURL: mongoURI, Database: test.RandomDatabaseName()})
	if err != nil {
		panic(fmt.Sprintf("failed to create new MongoDB storage: %v", err))
	}
	if err := mailtemplates.Load(); err != nil {
		panic(fmt.Sprintf("failed to load mail templates: %v", err))
	}

	code := m.Run()

	testDB.Close()
	if err := dbContainer.Terminate(ctx); err != nil {
		panic(fmt.Sprintf("failed to stop MongoDB container: %v", err))
	}
	os.Exit(code)
}

// recorder is an Invalidator that remembers every invalidated path.
type recorder struct {
	mtx   sync.Mutex
	paths []string
}

func (r *recorder) Invalidate(paths ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.paths = append(r.paths, paths...)
}

func (r *recorder) take() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	paths := r.paths
	r.paths = nil
	return paths
}

// mailbox is a NotificationService that keeps the sent notifications.
type mailbox struct {
	mtx  sync.Mutex
	sent []notifications.Notification
	err  error
}

func (mb *mailbox) Init(any) error { return nil }

func (mb *mailbox) SendNotification(_ context.Context, n *notifications.Notification) error {
	mb.mtx.Lock()
	defer mb.mtx.Unlock()
	if mb.err != nil {
		return mb.err
	}
	mb.sent = append(mb.sent, *n)
	return nil
}

func (mb *mailbox) all() []notifications.Notification {
	mb.mtx.Lock()
	defer mb.mtx.Unlock()
	return append([]notifications.Notification(nil), mb.sent...)
}

// unreachableDB fails the test if any storage method is called. The nil
// embedded interface panics on every call.
type unreachableDB struct {
	db.Database
}

func newTestService(t *testing.T, opts ...Option) (*Service, *recorder) {
	t.Helper()
	t.Cleanup(func() {
		if err := testDB.Reset(); err != nil {
			t.Error(err)
		}
	})
	inv := &recorder{}
	return New(testDB, inv, opts...), inv
}

func assertFailure(c *qt.C, res Result, want errors.Error) {
	c.Helper()
	c.Assert(res.Success, qt.IsFalse)
	c.Assert(res.Err, qt.Not(qt.IsNil))
	c.Assert(res.Err.Code, qt.Equals, want.Code)
	c.Assert(res.Message, qt.Not(qt.Equals), "")
}

func TestValidationNeverReachesStorage(t *testing.T) {
	c := qt.New(t)
	inv := &recorder{}
	s := New(unreachableDB{}, inv)

	results := map[string]Result{
		"user":             s.CreateUser(UserRequest{Name: "admin", Email: "admin@ngo.test"}).Result,
		"user bad email":   s.CreateUser(UserRequest{Name: "admin", Email: "admin", Password: "secret-password"}).Result,
		"member":           s.CreateMember(MemberRequest{Name: "John", Email: testEmail}).Result,
		"member bad phone": s.CreateMember(MemberRequest{Name: "John", Email: testEmail, Phone: "call me"}).Result,
		"member update":    s.UpdateMember("65f1c0ffee0000000000abcd", MemberUpdateRequest{Name: "John"}).Result,
		"volunteer":        s.CreateVolunteer(VolunteerRequest{Email: testEmail, Phone: testPhone}).Result,
		"volunteer update": s.UpdateVolunteer("65f1c0ffee0000000000abcd", VolunteerUpdateRequest{Phone: testPhone}).Result,
		"campaign":         s.CreateCampaign(CampaignRequest{Name: "Food drive", Description: "  "}).Result,
		"campaign update":  s.UpdateCampaign("65f1c0ffee0000000000abcd", CampaignRequest{Name: "Food drive"}).Result,
		"certificate":      s.CreateCertificate(CertificateRequest{Name: "ISO"}).Result,
		"gallery":          s.CreateGalleryImage(GalleryImageRequest{ImgTitle: "Day one", Image: testImage}).Result,
		"donator amount":   s.CreateDonator(DonatorRequest{Name: "Ann", Email: testEmail, Amount: -5, TransactionID: "tx"}).Result,
		"donation":         s.RecordDonation(DonatorRequest{Name: "Ann", Email: testEmail, Amount: 10}).Result,
		"contact":          s.CreateContact(ContactRequest{Name: "Ann", Email: testEmail, Subject: "Hi"}).Result,
		"newsletter":       s.Subscribe(SubscriptionRequest{Email: "not an email"}).Result,
		"activities":       s.UpdateActivities(ActivitiesRequest{Staff: ptr(int64(-1))}).Result,
		"delete no id":     s.DeleteMember(" "),
		"verify no tx":     s.VerifyDonation(""),
	}
	for name, res := range results {
		c.Run(name, func(c *qt.C) {
			assertFailure(c, res, errors.ErrValidation)
		})
	}
	c.Assert(inv.take(), qt.HasLen, 0)
}

func TestValidationErrorNamesFields(t *testing.T) {
	c := qt.New(t)
	s := New(unreachableDB{}, nil)
	res := s.CreateMember(MemberRequest{Name: "John"})
	assertFailure(c, res.Result, errors.ErrValidation)
	c.Assert(res.Message, qt.Contains, "email")
	c.Assert(res.Message, qt.Contains, "phone")
	c.Assert(res.Message, qt.Not(qt.Contains), "name")
	c.Assert(res.Member, qt.IsNil)
}

func TestConnectionFailure(t *testing.T) {
	c := qt.New(t)
	unreachable, err := db.New(&db.Config{
		MongoURL: "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=500&connectTimeoutMS=500",
		Database: "ngo",
	})
	c.Assert(err, qt.IsNil)
	s := New(unreachable, nil)
	assertFailure(c, s.ListCampaigns(0).Result, errors.ErrConnection)
	assertFailure(c, s.Activities().Result, errors.ErrConnection)
}

func ptr[T any](v T) *T {
	return &v
}
