package content

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/pagecache"
)

func TestVolunteerPartialUpdateKeepsRole(t *testing.T) {
	c := qt.New(t)
	s, inv := newTestService(t)

	created := s.CreateVolunteer(VolunteerRequest{
		Name:  "Ann",
		Email: testEmail,
		Phone: testPhone,
		Role:  ptr("Coordinator"),
	})
	c.Assert(created.Success, qt.IsTrue, qt.Commentf("%s", created.Message))
	c.Assert(created.Volunteer.ShowInList, qt.IsTrue)
	c.Assert(created.Volunteer.IsActive, qt.IsTrue)
	c.Assert(inv.take(), qt.DeepEquals, []string{pagecache.AdminVolunteersPath, pagecache.AboutPath})

	res := s.UpdateVolunteer(created.Volunteer.ID.Hex(), VolunteerUpdateRequest{
		Name:  "Ann Smith",
		Phone: "+34 611 111 111",
	})
	c.Assert(res.Success, qt.IsTrue, qt.Commentf("%s", res.Message))
	c.Assert(res.Volunteer.Name, qt.Equals, "Ann Smith")
	c.Assert(res.Volunteer.Role, qt.Equals, "Coordinator")
	c.Assert(inv.take(), qt.DeepEquals, []string{pagecache.AdminVolunteersPath, pagecache.AboutPath})

	stored := s.VolunteerByID(created.Volunteer.ID.Hex())
	c.Assert(stored.Success, qt.IsTrue)
	c.Assert(stored.Volunteer.Role, qt.Equals, "Coordinator")
}

func TestVolunteerPublicList(t *testing.T) {
	c := qt.New(t)
	s, _ := newTestService(t)

	for _, req := range []VolunteerRequest{
		{Name: "Visible", Email: "visible@ngo.test", Phone: testPhone},
		{Name: "Hidden", Email: "hidden@ngo.test", Phone: testPhone, ShowInList: ptr(false)},
		{Name: "Inactive", Email: "inactive@ngo.test", Phone: testPhone, IsActive: ptr(false)},
	} {
		c.Assert(s.CreateVolunteer(req).Success, qt.IsTrue)
	}
	c.Assert(s.ListVolunteers(false).Volunteers, qt.HasLen, 3)
	public := s.ListVolunteers(true)
	c.Assert(public.Success, qt.IsTrue)
	c.Assert(public.Volunteers, qt.HasLen, 1)
	c.Assert(public.Volunteers[0].Name, qt.Equals, "Visible")
}

func TestVolunteerEmailConflict(t *testing.T) {
	c := qt.New(t)
	s, _ := newTestService(t)

	c.Assert(s.CreateVolunteer(VolunteerRequest{Name: "Ann", Email: testEmail, Phone: testPhone}).Success, qt.IsTrue)
	res := s.CreateVolunteer(VolunteerRequest{Name: "Other", Email: "Someone@NGO.test", Phone: testPhone})
	assertFailure(c, res.Result, errors.ErrConflict)

	// members and volunteers do not share the email constraint
	c.Assert(s.CreateMember(MemberRequest{Name: "Ann", Email: testEmail, Phone: testPhone}).Success, qt.IsTrue)
}

func TestDeleteVolunteerTwice(t *testing.T) {
	c := qt.New(t)
	s, _ := newTestService(t)

	created := s.CreateVolunteer(VolunteerRequest{Name: "Ann", Email: testEmail, Phone: testPhone})
	c.Assert(created.Success, qt.IsTrue)
	c.Assert(s.DeleteVolunteer(created.Volunteer.ID.Hex()).Success, qt.IsTrue)
	assertFailure(c, s.DeleteVolunteer(created.Volunteer.ID.Hex()), errors.ErrNotFound)
}
