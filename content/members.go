package content

import (
	stderrors "errors"
	"strings"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// MemberRequest contains the fields to create a member. Optional fields
// take their default value when omitted.
type MemberRequest struct {
	Name        string         `json:"name" validate:"required"`
	Email       string         `json:"email" validate:"required,mail"`
	Phone       string         `json:"phone" validate:"required,phone"`
	Image       *string        `json:"image"`
	Designation *string        `json:"designation"`
	Social      *SocialRequest `json:"social"`
	IsActive    *bool          `json:"isActive"`
	Priority    *int           `json:"priority" validate:"omitempty,gte=0"`
}

// MemberUpdateRequest contains the fields to update a member. Name and phone
// are always overwritten, the omitted optional fields keep their value.
type MemberUpdateRequest struct {
	Name        string         `json:"name" validate:"required"`
	Phone       string         `json:"phone" validate:"required,phone"`
	Email       *string        `json:"email" validate:"omitempty,min=1,mail"`
	Image       *string        `json:"image"`
	Designation *string        `json:"designation"`
	Social      *SocialRequest `json:"social"`
	IsActive    *bool          `json:"isActive"`
	Priority    *int           `json:"priority" validate:"omitempty,gte=0"`
}

type MembersResult struct {
	Result
	Members []db.Member `json:"members"`
}

type MemberResult struct {
	Result
	Member *db.Member `json:"member,omitempty"`
}

// ListMembers returns the members ordered by priority. activeOnly leaves out
// the inactive members.
func (s *Service) ListMembers(activeOnly bool) MembersResult {
	members, err := s.db.Members(db.MemberFilter{ActiveOnly: activeOnly})
	if err != nil {
		return MembersResult{Result: storageFailure("cannot list members", err)}
	}
	return MembersResult{Result: succeed(""), Members: members}
}

// MemberByID returns the member with the given id.
func (s *Service) MemberByID(id string) MemberResult {
	member, err := s.db.Member(id)
	if err != nil {
		return MemberResult{Result: storageFailure("cannot get member", err)}
	}
	return MemberResult{Result: succeed(""), Member: member}
}

// CreateMember stores a new member. The email must not be in use by another
// member.
func (s *Service) CreateMember(req MemberRequest) MemberResult {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = internal.NormalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Image = internal.TrimPtr(req.Image)
	req.Designation = internal.TrimPtr(req.Designation)
	req.Social.trim()
	if e := s.validate(&req); e != nil {
		return MemberResult{Result: fail(*e)}
	}
	if _, err := s.db.MemberByEmail(req.Email); err == nil {
		return MemberResult{Result: fail(errors.ErrConflict)}
	} else if !stderrors.Is(err, db.ErrNotFound) {
		return MemberResult{Result: storageFailure("cannot check member email", err)}
	}
	member := &db.Member{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Image:       deref(req.Image),
		Designation: deref(req.Designation),
		Social:      req.Social.links(),
		IsActive:    true,
		Priority:    db.DefaultMemberPriority,
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if req.Priority != nil {
		member.Priority = *req.Priority
	}
	if _, err := s.db.CreateMember(member); err != nil {
		return MemberResult{Result: storageFailure("cannot create member", err)}
	}
	s.invalidate(pagecache.Member)
	return MemberResult{Result: succeed("member created"), Member: member}
}

// UpdateMember overwrites the name and phone of the member and the optional
// fields provided.
func (s *Service) UpdateMember(id string, req MemberUpdateRequest) MemberResult {
	if e := requireID(id); e != nil {
		return MemberResult{Result: fail(*e)}
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email != nil {
		email := internal.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	req.Image = internal.TrimPtr(req.Image)
	req.Designation = internal.TrimPtr(req.Designation)
	req.Social.trim()
	if e := s.validate(&req); e != nil {
		return MemberResult{Result: fail(*e)}
	}
	current, err := s.db.Member(id)
	if err != nil {
		return MemberResult{Result: storageFailure("cannot get member", err)}
	}
	if req.Email != nil && *req.Email != current.Email {
		if other, err := s.db.MemberByEmail(*req.Email); err == nil && other.ID != current.ID {
			return MemberResult{Result: fail(errors.ErrConflict)}
		} else if err != nil && !stderrors.Is(err, db.ErrNotFound) {
			return MemberResult{Result: storageFailure("cannot check member email", err)}
		}
	}
	patch := &db.MemberPatch{
		Name:        &req.Name,
		Phone:       &req.Phone,
		Email:       req.Email,
		Image:       req.Image,
		Designation: req.Designation,
		IsActive:    req.IsActive,
		Priority:    req.Priority,
	}
	patch.Facebook, patch.Twitter, patch.Instagram, patch.LinkedIn = req.Social.fields()
	member, err := s.db.UpdateMember(id, patch)
	if err != nil {
		return MemberResult{Result: storageFailure("cannot update member", err)}
	}
	s.invalidate(pagecache.Member)
	return MemberResult{Result: succeed("member updated"), Member: member}
}

// DeleteMember removes the member with the given id.
func (s *Service) DeleteMember(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelMember(id); err != nil {
		return storageFailure("cannot delete member", err)
	}
	s.invalidate(pagecache.Member)
	return succeed("member deleted")
}
