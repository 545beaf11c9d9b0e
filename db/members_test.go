package db

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func resetDB(t *testing.T) {
	t.Helper()
	if err := testDB.Reset(); err != nil {
		t.Error(err)
	}
}

func TestMembersOrder(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	// empty collection returns an empty list
	members, err := testDB.Members(MemberFilter{})
	c.Assert(err, qt.IsNil)
	c.Assert(members, qt.HasLen, 0)

	for i, priority := range []int{DefaultMemberPriority, 1, DefaultMemberPriority, 5} {
		_, err := testDB.CreateMember(&Member{
			Name:     testName,
			Email:    string(rune('a'+i)) + testMemberEmail,
			Phone:    testPhone,
			IsActive: i != 3,
			Priority: priority,
		})
		c.Assert(err, qt.IsNil)
	}
	members, err = testDB.Members(MemberFilter{})
	c.Assert(err, qt.IsNil)
	c.Assert(members, qt.HasLen, 4)
	c.Assert(members[0].Priority, qt.Equals, 1)
	c.Assert(members[1].Priority, qt.Equals, 5)
	// same priority is sorted by insertion
	c.Assert(members[2].Email, qt.Equals, "a"+testMemberEmail)
	c.Assert(members[3].Email, qt.Equals, "c"+testMemberEmail)

	active, err := testDB.Members(MemberFilter{ActiveOnly: true})
	c.Assert(err, qt.IsNil)
	c.Assert(active, qt.HasLen, 3)
}

func TestMemberCRUD(t *testing.T) {
	defer resetDB(t)
	c := qt.New(t)
	member := &Member{
		Name:        testName,
		Email:       testMemberEmail,
		Phone:       testPhone,
		Designation: "Treasurer",
		Social:      SocialLinks{Facebook: "https://facebook.com/member"},
		IsActive:    true,
		Priority:    DefaultMemberPriority,
	}
	id, err := testDB.CreateMember(member)
	c.Assert(err, qt.IsNil)
	c.Assert(member.CreatedAt.IsZero(), qt.IsFalse)

	// the email is unique
	_, err = testDB.CreateMember(&Member{Name: "Other", Email: testMemberEmail, Phone: testPhone})
	c.Assert(err, qt.Equals, ErrAlreadyExists)

	byEmail, err := testDB.MemberByEmail(testMemberEmail)
	c.Assert(err, qt.IsNil)
	c.Assert(byEmail.ID.Hex(), qt.Equals, id)

	// partial update keeps the fields that are not provided
	newName, newPhone, twitter, inactive := "Renamed", "+34600000000", "https://x.com/member", false
	updated, err := testDB.UpdateMember(id, &MemberPatch{
		Name:     &newName,
		Phone:    &newPhone,
		Twitter:  &twitter,
		IsActive: &inactive,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, newName)
	c.Assert(updated.Phone, qt.Equals, newPhone)
	c.Assert(updated.Designation, qt.Equals, "Treasurer")
	c.Assert(updated.Social.Facebook, qt.Equals, "https://facebook.com/member")
	c.Assert(updated.Social.Twitter, qt.Equals, twitter)
	c.Assert(updated.IsActive, qt.IsFalse)

	// unknown or malformed ids
	_, err = testDB.UpdateMember("bad-id", &MemberPatch{Name: &newName})
	c.Assert(err, qt.Equals, ErrNotFound)
	_, err = testDB.Member("bad-id")
	c.Assert(err, qt.Equals, ErrNotFound)

	c.Assert(testDB.DelMember(id), qt.IsNil)
	c.Assert(testDB.DelMember(id), qt.Equals, ErrNotFound)
	_, err = testDB.Member(id)
	c.Assert(err, qt.Equals, ErrNotFound)
}
