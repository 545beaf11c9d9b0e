package content

import (
	stderrors "errors"
	"strings"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// VolunteerRequest contains the fields to register a volunteer.
type VolunteerRequest struct {
	Name        string         `json:"name" validate:"required"`
	Email       string         `json:"email" validate:"required,mail"`
	Phone       string         `json:"phone" validate:"required,phone"`
	Role        *string        `json:"role"`
	Image       *string        `json:"image"`
	DateOfBirth *string        `json:"dateOfBirth"`
	Social      *SocialRequest `json:"social"`
	ShowInList  *bool          `json:"showInList"`
	IsActive    *bool          `json:"isActive"`
}

// VolunteerUpdateRequest contains the fields to update a volunteer. Name and
// phone are always overwritten, the omitted optional fields keep their value.
type VolunteerUpdateRequest struct {
	Name        string         `json:"name" validate:"required"`
	Phone       string         `json:"phone" validate:"required,phone"`
	Email       *string        `json:"email" validate:"omitempty,min=1,mail"`
	Role        *string        `json:"role"`
	Image       *string        `json:"image"`
	DateOfBirth *string        `json:"dateOfBirth"`
	Social      *SocialRequest `json:"social"`
	ShowInList  *bool          `json:"showInList"`
	IsActive    *bool          `json:"isActive"`
}

type VolunteersResult struct {
	Result
	Volunteers []db.Volunteer `json:"volunteers"`
}

type VolunteerResult struct {
	Result
	Volunteer *db.Volunteer `json:"volunteer,omitempty"`
}

// ListVolunteers returns the volunteers. publicOnly keeps only the active
// volunteers that accepted to be shown in the public list.
func (s *Service) ListVolunteers(publicOnly bool) VolunteersResult {
	volunteers, err := s.db.Volunteers(db.VolunteerFilter{Public: publicOnly})
	if err != nil {
		return VolunteersResult{Result: storageFailure("cannot list volunteers", err)}
	}
	return VolunteersResult{Result: succeed(""), Volunteers: volunteers}
}

func (s *Service) VolunteerByID(id string) VolunteerResult {
	volunteer, err := s.db.Volunteer(id)
	if err != nil {
		return VolunteerResult{Result: storageFailure("cannot get volunteer", err)}
	}
	return VolunteerResult{Result: succeed(""), Volunteer: volunteer}
}

// CreateVolunteer registers a new volunteer. The email must not be in use by
// another volunteer.
func (s *Service) CreateVolunteer(req VolunteerRequest) VolunteerResult {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = internal.NormalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Role = internal.TrimPtr(req.Role)
	req.Image = internal.TrimPtr(req.Image)
	req.DateOfBirth = internal.TrimPtr(req.DateOfBirth)
	req.Social.trim()
	if e := s.validate(&req); e != nil {
		return VolunteerResult{Result: fail(*e)}
	}
	if _, err := s.db.VolunteerByEmail(req.Email); err == nil {
		return VolunteerResult{Result: fail(errors.ErrConflict)}
	} else if !stderrors.Is(err, db.ErrNotFound) {
		return VolunteerResult{Result: storageFailure("cannot check volunteer email", err)}
	}
	volunteer := &db.Volunteer{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        deref(req.Role),
		Image:       deref(req.Image),
		DateOfBirth: deref(req.DateOfBirth),
		Social:      req.Social.links(),
		ShowInList:  true,
		IsActive:    true,
	}
	if req.ShowInList != nil {
		volunteer.ShowInList = *req.ShowInList
	}
	if req.IsActive != nil {
		volunteer.IsActive = *req.IsActive
	}
	if _, err := s.db.CreateVolunteer(volunteer); err != nil {
		return VolunteerResult{Result: storageFailure("cannot create volunteer", err)}
	}
	s.invalidate(pagecache.Volunteer)
	return VolunteerResult{Result: succeed("volunteer created"), Volunteer: volunteer}
}

// UpdateVolunteer overwrites the name and phone of the volunteer and the
// optional fields provided.
func (s *Service) UpdateVolunteer(id string, req VolunteerUpdateRequest) VolunteerResult {
	if e := requireID(id); e != nil {
		return VolunteerResult{Result: fail(*e)}
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email != nil {
		email := internal.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	req.Role = internal.TrimPtr(req.Role)
	req.Image = internal.TrimPtr(req.Image)
	req.DateOfBirth = internal.TrimPtr(req.DateOfBirth)
	req.Social.trim()
	if e := s.validate(&req); e != nil {
		return VolunteerResult{Result: fail(*e)}
	}
	current, err := s.db.Volunteer(id)
	if err != nil {
		return VolunteerResult{Result: storageFailure("cannot get volunteer", err)}
	}
	if req.Email != nil && *req.Email != current.Email {
		if other, err := s.db.VolunteerByEmail(*req.Email); err == nil && other.ID != current.ID {
			return VolunteerResult{Result: fail(errors.ErrConflict)}
		} else if err != nil && !stderrors.Is(err, db.ErrNotFound) {
			return VolunteerResult{Result: storageFailure("cannot check volunteer email", err)}
		}
	}
	patch := &db.VolunteerPatch{
		Name:        &req.Name,
		Phone:       &req.Phone,
		Email:       req.Email,
		Role:        req.Role,
		Image:       req.Image,
		DateOfBirth: req.DateOfBirth,
		ShowInList:  req.ShowInList,
		IsActive:    req.IsActive,
	}
	patch.Facebook, patch.Twitter, patch.Instagram, patch.LinkedIn = req.Social.fields()
	volunteer, err := s.db.UpdateVolunteer(id, patch)
	if err != nil {
		return VolunteerResult{Result: storageFailure("cannot update volunteer", err)}
	}
	s.invalidate(pagecache.Volunteer)
	return VolunteerResult{Result: succeed("volunteer updated"), Volunteer: volunteer}
}

func (s *Service) DeleteVolunteer(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelVolunteer(id); err != nil {
		return storageFailure("cannot delete volunteer", err)
	}
	s.invalidate(pagecache.Volunteer)
	return succeed("volunteer deleted")
}
