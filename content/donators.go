package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/notifications/mailtemplates"
	"github.com/helpinghands/ngo-backend/pagecache"
	"go.vocdoni.io/dvote/log"
)

// DefaultDonatorsPageSize is the page size of the admin donators list when
// none is requested.
const DefaultDonatorsPageSize = 20

// DonatorRequest contains the fields of a donation, required both to record
// and to update it. IsVerified is ignored on the public donation form.
type DonatorRequest struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"required,mail"`
	Phone         *string    `json:"phone" validate:"omitempty,phone"`
	Amount        float64    `json:"amount" validate:"gt=0"`
	PaymentMode   *string    `json:"paymentMode"`
	TransactionID string     `json:"transactionId" validate:"required"`
	Date          *time.Time `json:"date"`
	IsVerified    *bool      `json:"isVerified"`
}

// pendingTransactionID stands for the transaction id assigned once the
// payment is started.
const pendingTransactionID = "pending"

type DonatorsResult struct {
	Result
	Donators []db.Donator `json:"donators"`
	Total    int64        `json:"total,omitempty"`
	Page     int64        `json:"page,omitempty"`
	PageSize int64        `json:"pageSize,omitempty"`
}

type DonatorResult struct {
	Result
	Donator *db.Donator `json:"donator,omitempty"`
}

func (req *DonatorRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = internal.NormalizeEmail(req.Email)
	req.Phone = internal.TrimPtr(req.Phone)
	req.PaymentMode = internal.TrimPtr(req.PaymentMode)
	req.TransactionID = strings.TrimSpace(req.TransactionID)
}

// ListDonators returns a page of the donators, the most recent first, and
// the total number of donators. Pages start at 1.
func (s *Service) ListDonators(page, pageSize int64) DonatorsResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultDonatorsPageSize
	}
	donators, total, err := s.db.Donators(page, pageSize)
	if err != nil {
		return DonatorsResult{Result: storageFailure("cannot list donators", err)}
	}
	return DonatorsResult{
		Result:   succeed(""),
		Donators: donators,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// TopDonators returns the verified donators with the highest amounts.
func (s *Service) TopDonators() DonatorsResult {
	donators, err := s.db.TopDonators(db.TopDonatorsLimit)
	if err != nil {
		return DonatorsResult{Result: storageFailure("cannot list top donators", err)}
	}
	return DonatorsResult{Result: succeed(""), Donators: donators}
}

func (s *Service) DonatorByID(id string) DonatorResult {
	donator, err := s.db.Donator(id)
	if err != nil {
		return DonatorResult{Result: storageFailure("cannot get donator", err)}
	}
	return DonatorResult{Result: succeed(""), Donator: donator}
}

// CreateDonator records a donation entered by an admin, who may mark it as
// verified.
func (s *Service) CreateDonator(req DonatorRequest) DonatorResult {
	return s.createDonator(req, true)
}

// RecordDonation records a donation submitted from the public site. It is
// stored unverified until the payment is confirmed.
func (s *Service) RecordDonation(req DonatorRequest) DonatorResult {
	return s.createDonator(req, false)
}

// ValidateDonation checks a donation whose transaction id is not known yet,
// such as a checkout before the payment session exists. Nothing is stored.
func (s *Service) ValidateDonation(req DonatorRequest) Result {
	req.normalize()
	if req.TransactionID == "" {
		req.TransactionID = pendingTransactionID
	}
	if e := s.validate(&req); e != nil {
		return fail(*e)
	}
	return succeed("donation is valid")
}

func (s *Service) createDonator(req DonatorRequest, trusted bool) DonatorResult {
	req.normalize()
	if e := s.validate(&req); e != nil {
		return DonatorResult{Result: fail(*e)}
	}
	donator := &db.Donator{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         deref(req.Phone),
		Amount:        req.Amount,
		PaymentMode:   deref(req.PaymentMode),
		TransactionID: req.TransactionID,
		Date:          deref(req.Date),
	}
	if trusted {
		donator.IsVerified = deref(req.IsVerified)
	}
	if _, err := s.db.CreateDonator(donator); err != nil {
		return DonatorResult{Result: storageFailure("cannot create donator", err)}
	}
	s.invalidate(pagecache.Donator)
	return DonatorResult{Result: succeed("donation recorded"), Donator: donator}
}

func (s *Service) UpdateDonator(id string, req DonatorRequest) DonatorResult {
	if e := requireID(id); e != nil {
		return DonatorResult{Result: fail(*e)}
	}
	req.normalize()
	if e := s.validate(&req); e != nil {
		return DonatorResult{Result: fail(*e)}
	}
	donator, err := s.db.UpdateDonator(id, &db.DonatorPatch{
		Name:          &req.Name,
		Email:         &req.Email,
		Phone:         req.Phone,
		Amount:        &req.Amount,
		PaymentMode:   req.PaymentMode,
		TransactionID: &req.TransactionID,
		Date:          req.Date,
		IsVerified:    req.IsVerified,
	})
	if err != nil {
		return DonatorResult{Result: storageFailure("cannot update donator", err)}
	}
	s.invalidate(pagecache.Donator)
	return DonatorResult{Result: succeed("donator updated"), Donator: donator}
}

// VerifyDonation marks as verified the donation paid with the given
// transaction and thanks the donator by email.
func (s *Service) VerifyDonation(transactionID string) DonatorResult {
	transactionID = strings.TrimSpace(transactionID)
	if e := requireID(transactionID); e != nil {
		return DonatorResult{Result: fail(*e)}
	}
	donator, err := s.db.VerifyDonatorByTransaction(transactionID)
	if err != nil {
		return DonatorResult{Result: storageFailure("cannot verify donation", err)}
	}
	s.invalidate(pagecache.Donator)
	log.Infow("donation verified", "donator", donator.ID.Hex(), "amount", donator.Amount)
	s.notify(mailtemplates.DonationVerifiedNotification, donator.Email, "", struct {
		Name          string
		Amount        string
		TransactionID string
		Organization  string
	}{
		Name:          donator.Name,
		Amount:        fmt.Sprintf("%.2f", donator.Amount),
		TransactionID: donator.TransactionID,
		Organization:  s.organization,
	})
	return DonatorResult{Result: succeed("donation verified"), Donator: donator}
}

func (s *Service) DeleteDonator(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelDonator(id); err != nil {
		return storageFailure("cannot delete donator", err)
	}
	s.invalidate(pagecache.Donator)
	return succeed("donator deleted")
}
