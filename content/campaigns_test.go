package content

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/pagecache"
)

func TestCampaignLifecycle(t *testing.T) {
	c := qt.New(t)
	s, inv := newTestService(t)

	older := time.Now().Add(-48 * time.Hour).Truncate(time.Millisecond)
	first := s.CreateCampaign(CampaignRequest{Name: "Winter coats", Description: "Coats", Image: testImage, Date: &older})
	c.Assert(first.Success, qt.IsTrue, qt.Commentf("%s", first.Message))
	second := s.CreateCampaign(CampaignRequest{Name: " Food drive ", Description: "Food", Image: testImage})
	c.Assert(second.Success, qt.IsTrue)
	c.Assert(second.Campaign.Name, qt.Equals, "Food drive")
	c.Assert(second.Campaign.Date.IsZero(), qt.IsFalse)
	c.Assert(inv.take(), qt.DeepEquals, []string{
		pagecache.AdminCampaignsPath, pagecache.HomePath,
		pagecache.AdminCampaignsPath, pagecache.HomePath,
	})

	list := s.ListCampaigns(0)
	c.Assert(list.Campaigns, qt.HasLen, 2)
	c.Assert(list.Campaigns[0].Name, qt.Equals, "Food drive")
	c.Assert(s.ListCampaigns(1).Campaigns, qt.HasLen, 1)

	// the update requires the same fields as the creation
	res := s.UpdateCampaign(first.Campaign.ID.Hex(), CampaignRequest{Name: "Warm coats"})
	assertFailure(c, res.Result, errors.ErrValidation)

	res = s.UpdateCampaign(first.Campaign.ID.Hex(), CampaignRequest{Name: "Warm coats", Description: "Coats", Image: testImage})
	c.Assert(res.Success, qt.IsTrue)
	c.Assert(res.Campaign.Name, qt.Equals, "Warm coats")
	c.Assert(res.Campaign.Date.Equal(older), qt.IsTrue)
	c.Assert(inv.take(), qt.DeepEquals, []string{pagecache.AdminCampaignsPath, pagecache.HomePath})

	c.Assert(s.DeleteCampaign(first.Campaign.ID.Hex()).Success, qt.IsTrue)
	assertFailure(c, s.DeleteCampaign(first.Campaign.ID.Hex()), errors.ErrNotFound)
	assertFailure(c, s.CampaignByID(first.Campaign.ID.Hex()).Result, errors.ErrNotFound)
}

func TestCertificatesAndGallery(t *testing.T) {
	c := qt.New(t)
	s, inv := newTestService(t)

	cert := s.CreateCertificate(CertificateRequest{Name: "ISO 9001", Image: testImage})
	c.Assert(cert.Success, qt.IsTrue, qt.Commentf("%s", cert.Message))
	c.Assert(inv.take(), qt.DeepEquals, []string{pagecache.AdminCertificatesPath})
	c.Assert(s.CreateCertificate(CertificateRequest{Name: "Charity", IssuedBy: ptr("Registry"), Image: testImage}).Success, qt.IsTrue)
	certs := s.ListCertificates()
	c.Assert(certs.Certificates, qt.HasLen, 2)
	c.Assert(certs.Certificates[0].Name, qt.Equals, "Charity")

	updated := s.UpdateCertificate(cert.Certificate.ID.Hex(), CertificateRequest{Name: "ISO 14001", Image: testImage})
	c.Assert(updated.Success, qt.IsTrue)
	c.Assert(updated.Certificate.Name, qt.Equals, "ISO 14001")
	c.Assert(s.DeleteCertificate(cert.Certificate.ID.Hex()).Success, qt.IsTrue)
	inv.take()

	img := s.CreateGalleryImage(GalleryImageRequest{ImgTitle: "Day one", Description: "Opening", Image: testImage})
	c.Assert(img.Success, qt.IsTrue, qt.Commentf("%s", img.Message))
	c.Assert(inv.take(), qt.DeepEquals, []string{pagecache.AdminGalleryPath})
	updatedImg := s.UpdateGalleryImage(img.Image.ID.Hex(), GalleryImageRequest{ImgTitle: "Day 1", Description: "Opening", Image: testImage})
	c.Assert(updatedImg.Success, qt.IsTrue)
	c.Assert(updatedImg.Image.ImgTitle, qt.Equals, "Day 1")
	c.Assert(s.ListGalleryImages(0).Images, qt.HasLen, 1)
	c.Assert(s.DeleteGalleryImage(img.Image.ID.Hex()).Success, qt.IsTrue)
	assertFailure(c, s.GalleryImageByID(img.Image.ID.Hex()).Result, errors.ErrNotFound)
}
