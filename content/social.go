package content

import (
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/internal"
)

// SocialRequest holds the optional social profile URLs. A nil field keeps
// the stored value on update.
type SocialRequest struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
}

func (sr *SocialRequest) trim() {
	if sr == nil {
		return
	}
	sr.Facebook = internal.TrimPtr(sr.Facebook)
	sr.Twitter = internal.TrimPtr(sr.Twitter)
	sr.Instagram = internal.TrimPtr(sr.Instagram)
	sr.LinkedIn = internal.TrimPtr(sr.LinkedIn)
}

func (sr *SocialRequest) links() db.SocialLinks {
	if sr == nil {
		return db.SocialLinks{}
	}
	return db.SocialLinks{
		Facebook:  deref(sr.Facebook),
		Twitter:   deref(sr.Twitter),
		Instagram: deref(sr.Instagram),
		LinkedIn:  deref(sr.LinkedIn),
	}
}

// fields returns the four links as patch fields, all nil if sr is nil.
func (sr *SocialRequest) fields() (facebook, twitter, instagram, linkedin *string) {
	if sr == nil {
		return nil, nil, nil, nil
	}
	return sr.Facebook, sr.Twitter, sr.Instagram, sr.LinkedIn
}
