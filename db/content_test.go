package db

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestCampaignsOrderAndLimit(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	now := time.Now()
	for i, name := range []string{"old", "newest", "middle"} {
		offset := map[string]time.Duration{"old": -48 * time.Hour, "newest": 0, "middle": -24 * time.Hour}[name]
		_, err := testDB.CreateCampaign(&Campaign{
			Name:        name,
			Description: "description",
			Image:       testImage,
			Date:        now.Add(offset),
		})
		c.Assert(err, qt.IsNil, qt.Commentf("campaign %d", i))
	}
	campaigns, err := testDB.Campaigns(0)
	c.Assert(err, qt.IsNil)
	c.Assert(campaigns, qt.HasLen, 3)
	c.Assert(campaigns[0].Name, qt.Equals, "newest")
	c.Assert(campaigns[1].Name, qt.Equals, "middle")
	c.Assert(campaigns[2].Name, qt.Equals, "old")
	latest, err := testDB.Campaigns(2)
	c.Assert(err, qt.IsNil)
	c.Assert(latest, qt.HasLen, 2)
}

func TestCampaignDefaultDate(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	campaign := &Campaign{Name: "food", Description: "food bank", Image: testImage}
	id, err := testDB.CreateCampaign(campaign)
	c.Assert(err, qt.IsNil)
	stored, err := testDB.Campaign(id)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Date.IsZero(), qt.IsFalse)
	description := "food bank for families"
	updated, err := testDB.UpdateCampaign(id, &CampaignPatch{Description: &description})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, "food")
	c.Assert(updated.Description, qt.Equals, description)
	c.Assert(testDB.DelCampaign(id), qt.IsNil)
	c.Assert(testDB.DelCampaign(id), qt.Equals, ErrNotFound)
}

func TestCertificatesInsertionOrder(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	for _, name := range []string{"first", "second", "third"} {
		_, err := testDB.CreateCertificate(&Certificate{Name: name, Image: testImage})
		c.Assert(err, qt.IsNil)
	}
	certificates, err := testDB.Certificates()
	c.Assert(err, qt.IsNil)
	c.Assert(certificates, qt.HasLen, 3)
	c.Assert(certificates[0].Name, qt.Equals, "third")
	c.Assert(certificates[2].Name, qt.Equals, "first")
}

func TestGalleryImages(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	id, err := testDB.CreateGalleryImage(&GalleryImage{ImgTitle: "Camp", Description: "summer camp", Image: testImage})
	c.Assert(err, qt.IsNil)
	images, err := testDB.GalleryImages(0)
	c.Assert(err, qt.IsNil)
	c.Assert(images, qt.HasLen, 1)
	title := "Summer camp"
	updated, err := testDB.UpdateGalleryImage(id, &GalleryImagePatch{ImgTitle: &title})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.ImgTitle, qt.Equals, title)
	c.Assert(updated.Description, qt.Equals, "summer camp")
	c.Assert(testDB.DelGalleryImage(id), qt.IsNil)
	_, err = testDB.GalleryImage(id)
	c.Assert(err, qt.Equals, ErrNotFound)
}

func TestContactsAndSubscriptions(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	id, err := testDB.CreateContact(&ContactSubmission{
		Name:    testName,
		Email:   "visitor@ngo.test",
		Subject: "Hello",
		Message: "I want to help",
	})
	c.Assert(err, qt.IsNil)
	contacts, err := testDB.Contacts()
	c.Assert(err, qt.IsNil)
	c.Assert(contacts, qt.HasLen, 1)
	c.Assert(contacts[0].Date.IsZero(), qt.IsFalse)
	c.Assert(testDB.DelContact(id), qt.IsNil)
	c.Assert(testDB.DelContact(id), qt.Equals, ErrNotFound)

	// the same email can subscribe twice
	for i := 0; i < 2; i++ {
		_, err := testDB.CreateSubscription(&NewsletterSubscription{Email: "reader@ngo.test"})
		c.Assert(err, qt.IsNil)
	}
	subscriptions, err := testDB.Subscriptions()
	c.Assert(err, qt.IsNil)
	c.Assert(subscriptions, qt.HasLen, 2)
	c.Assert(testDB.DelSubscription(subscriptions[0].ID.Hex()), qt.IsNil)
}
