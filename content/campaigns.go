package content

import (
	"strings"
	"time"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// CampaignRequest contains the fields of a campaign. The same fields are
// required to create and to update it. An omitted date defaults to now on
// create and keeps the stored date on update.
type CampaignRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Image       string     `json:"image" validate:"required"`
	Date        *time.Time `json:"date"`
}

type CampaignsResult struct {
	Result
	Campaigns []db.Campaign `json:"campaigns"`
}

type CampaignResult struct {
	Result
	Campaign *db.Campaign `json:"campaign,omitempty"`
}

func (req *CampaignRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Image = strings.TrimSpace(req.Image)
}

// ListCampaigns returns the campaigns, the most recent first. A zero limit
// returns all of them.
func (s *Service) ListCampaigns(limit int64) CampaignsResult {
	campaigns, err := s.db.Campaigns(limit)
	if err != nil {
		return CampaignsResult{Result: storageFailure("cannot list campaigns", err)}
	}
	return CampaignsResult{Result: succeed(""), Campaigns: campaigns}
}

func (s *Service) CampaignByID(id string) CampaignResult {
	campaign, err := s.db.Campaign(id)
	if err != nil {
		return CampaignResult{Result: storageFailure("cannot get campaign", err)}
	}
	return CampaignResult{Result: succeed(""), Campaign: campaign}
}

func (s *Service) CreateCampaign(req CampaignRequest) CampaignResult {
	req.normalize()
	if e := s.validate(&req); e != nil {
		return CampaignResult{Result: fail(*e)}
	}
	campaign := &db.Campaign{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Date:        deref(req.Date),
	}
	if _, err := s.db.CreateCampaign(campaign); err != nil {
		return CampaignResult{Result: storageFailure("cannot create campaign", err)}
	}
	s.invalidate(pagecache.Campaign)
	return CampaignResult{Result: succeed("campaign created"), Campaign: campaign}
}

func (s *Service) UpdateCampaign(id string, req CampaignRequest) CampaignResult {
	if e := requireID(id); e != nil {
		return CampaignResult{Result: fail(*e)}
	}
	req.normalize()
	if e := s.validate(&req); e != nil {
		return CampaignResult{Result: fail(*e)}
	}
	campaign, err := s.db.UpdateCampaign(id, &db.CampaignPatch{
		Name:        &req.Name,
		Description: &req.Description,
		Image:       &req.Image,
		Date:        req.Date,
	})
	if err != nil {
		return CampaignResult{Result: storageFailure("cannot update campaign", err)}
	}
	s.invalidate(pagecache.Campaign)
	return CampaignResult{Result: succeed("campaign updated"), Campaign: campaign}
}

func (s *Service) DeleteCampaign(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelCampaign(id); err != nil {
		return storageFailure("cannot delete campaign", err)
	}
	s.invalidate(pagecache.Campaign)
	return succeed("campaign deleted")
}
