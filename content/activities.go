package content

import (
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// ActivitiesRequest contains the counters to change. Omitted counters keep
// their value.
type ActivitiesRequest struct {
	HappyPeople *int64 `json:"happyPeople" validate:"omitempty,gte=0"`
	Offices     *int64 `json:"offices" validate:"omitempty,gte=0"`
	Staff       *int64 `json:"staff" validate:"omitempty,gte=0"`
	Volunteers  *int64 `json:"volunteers" validate:"omitempty,gte=0"`
}

type ActivitiesResult struct {
	Result
	Activities *db.Activities `json:"activities,omitempty"`
}

// Activities returns the counters. They are created with zero values on
// first access, so it never reports not found.
func (s *Service) Activities() ActivitiesResult {
	activities, err := s.db.Activities()
	if err != nil {
		return ActivitiesResult{Result: storageFailure("cannot get activities", err)}
	}
	return ActivitiesResult{Result: succeed(""), Activities: activities}
}

// UpdateActivities sets the provided counters. Negative values are rejected.
func (s *Service) UpdateActivities(req ActivitiesRequest) ActivitiesResult {
	if e := s.validate(&req); e != nil {
		return ActivitiesResult{Result: fail(*e)}
	}
	current, err := s.db.Activities()
	if err != nil {
		return ActivitiesResult{Result: storageFailure("cannot get activities", err)}
	}
	next := *current
	if req.HappyPeople != nil {
		next.HappyPeople = *req.HappyPeople
	}
	if req.Offices != nil {
		next.Offices = *req.Offices
	}
	if req.Staff != nil {
		next.Staff = *req.Staff
	}
	if req.Volunteers != nil {
		next.Volunteers = *req.Volunteers
	}
	stored, err := s.db.SetActivities(&next)
	if err != nil {
		return ActivitiesResult{Result: storageFailure("cannot update activities", err)}
	}
	s.invalidate(pagecache.Activities)
	return ActivitiesResult{Result: succeed("activities updated"), Activities: stored}
}
