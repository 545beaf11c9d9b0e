package content

import (
	"strings"
	"time"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// GalleryImageRequest contains the fields of a gallery image, required both
// to create and to update it.
type GalleryImageRequest struct {
	ImgTitle    string     `json:"imgTitle" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Image       string     `json:"image" validate:"required"`
	Date        *time.Time `json:"date"`
}

type GalleryImagesResult struct {
	Result
	Images []db.GalleryImage `json:"images"`
}

type GalleryImageResult struct {
	Result
	Image *db.GalleryImage `json:"image,omitempty"`
}

func (req *GalleryImageRequest) normalize() {
	req.ImgTitle = strings.TrimSpace(req.ImgTitle)
	req.Description = strings.TrimSpace(req.Description)
	req.Image = strings.TrimSpace(req.Image)
}

// ListGalleryImages returns the gallery, the most recent first. A zero limit
// returns every image.
func (s *Service) ListGalleryImages(limit int64) GalleryImagesResult {
	images, err := s.db.GalleryImages(limit)
	if err != nil {
		return GalleryImagesResult{Result: storageFailure("cannot list gallery images", err)}
	}
	return GalleryImagesResult{Result: succeed(""), Images: images}
}

func (s *Service) GalleryImageByID(id string) GalleryImageResult {
	image, err := s.db.GalleryImage(id)
	if err != nil {
		return GalleryImageResult{Result: storageFailure("cannot get gallery image", err)}
	}
	return GalleryImageResult{Result: succeed(""), Image: image}
}

func (s *Service) CreateGalleryImage(req GalleryImageRequest) GalleryImageResult {
	req.normalize()
	if e := s.validate(&req); e != nil {
		return GalleryImageResult{Result: fail(*e)}
	}
	image := &db.GalleryImage{
		ImgTitle:    req.ImgTitle,
		Description: req.Description,
		Image:       req.Image,
		Date:        deref(req.Date),
	}
	if _, err := s.db.CreateGalleryImage(image); err != nil {
		return GalleryImageResult{Result: storageFailure("cannot create gallery image", err)}
	}
	s.invalidate(pagecache.Gallery)
	return GalleryImageResult{Result: succeed("image created"), Image: image}
}

func (s *Service) UpdateGalleryImage(id string, req GalleryImageRequest) GalleryImageResult {
	if e := requireID(id); e != nil {
		return GalleryImageResult{Result: fail(*e)}
	}
	req.normalize()
	if e := s.validate(&req); e != nil {
		return GalleryImageResult{Result: fail(*e)}
	}
	image, err := s.db.UpdateGalleryImage(id, &db.GalleryImagePatch{
		ImgTitle:    &req.ImgTitle,
		Description: &req.Description,
		Image:       &req.Image,
		Date:        req.Date,
	})
	if err != nil {
		return GalleryImageResult{Result: storageFailure("cannot update gallery image", err)}
	}
	s.invalidate(pagecache.Gallery)
	return GalleryImageResult{Result: succeed("image updated"), Image: image}
}

func (s *Service) DeleteGalleryImage(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelGalleryImage(id); err != nil {
		return storageFailure("cannot delete gallery image", err)
	}
	s.invalidate(pagecache.Gallery)
	return succeed("image deleted")
}
