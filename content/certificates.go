package content

import (
	"strings"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// CertificateRequest contains the fields of a certificate, required both to
// create and to update it.
type CertificateRequest struct {
	Name     string  `json:"name" validate:"required"`
	IssuedBy *string `json:"issuedBy"`
	Image    string  `json:"image" validate:"required"`
}

type CertificatesResult struct {
	Result
	Certificates []db.Certificate `json:"certificates"`
}

type CertificateResult struct {
	Result
	Certificate *db.Certificate `json:"certificate,omitempty"`
}

func (req *CertificateRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.IssuedBy = internal.TrimPtr(req.IssuedBy)
	req.Image = strings.TrimSpace(req.Image)
}

// ListCertificates returns the certificates, the last added first.
func (s *Service) ListCertificates() CertificatesResult {
	certificates, err := s.db.Certificates()
	if err != nil {
		return CertificatesResult{Result: storageFailure("cannot list certificates", err)}
	}
	return CertificatesResult{Result: succeed(""), Certificates: certificates}
}

func (s *Service) CertificateByID(id string) CertificateResult {
	certificate, err := s.db.Certificate(id)
	if err != nil {
		return CertificateResult{Result: storageFailure("cannot get certificate", err)}
	}
	return CertificateResult{Result: succeed(""), Certificate: certificate}
}

func (s *Service) CreateCertificate(req CertificateRequest) CertificateResult {
	req.normalize()
	if e := s.validate(&req); e != nil {
		return CertificateResult{Result: fail(*e)}
	}
	certificate := &db.Certificate{
		Name:     req.Name,
		IssuedBy: deref(req.IssuedBy),
		Image:    req.Image,
	}
	if _, err := s.db.CreateCertificate(certificate); err != nil {
		return CertificateResult{Result: storageFailure("cannot create certificate", err)}
	}
	s.invalidate(pagecache.Certificate)
	return CertificateResult{Result: succeed("certificate created"), Certificate: certificate}
}

func (s *Service) UpdateCertificate(id string, req CertificateRequest) CertificateResult {
	if e := requireID(id); e != nil {
		return CertificateResult{Result: fail(*e)}
	}
	req.normalize()
	if e := s.validate(&req); e != nil {
		return CertificateResult{Result: fail(*e)}
	}
	certificate, err := s.db.UpdateCertificate(id, &db.CertificatePatch{
		Name:     &req.Name,
		IssuedBy: req.IssuedBy,
		Image:    &req.Image,
	})
	if err != nil {
		return CertificateResult{Result: storageFailure("cannot update certificate", err)}
	}
	s.invalidate(pagecache.Certificate)
	return CertificateResult{Result: succeed("certificate updated"), Certificate: certificate}
}

func (s *Service) DeleteCertificate(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelCertificate(id); err != nil {
		return storageFailure("cannot delete certificate", err)
	}
	s.invalidate(pagecache.Certificate)
	return succeed("certificate deleted")
}
