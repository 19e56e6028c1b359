package companysrv

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/company"
	"github.com/redlaboral/portal/pkg/errx"
	"github.com/redlaboral/portal/pkg/fsx"
	"github.com/redlaboral/portal/pkg/kernel"
)

// CompanyService manages company profiles, the premium upgrade and
// moderated ratings.
type CompanyService struct {
	repo    company.Repository
	ratings company.RatingRepository
	files   fsx.FileSystem
}

// NewCompanyService creates a new company service instance
func NewCompanyService(repo company.Repository, ratings company.RatingRepository, files fsx.FileSystem) *CompanyService {
	return &CompanyService{
		repo:    repo,
		ratings: ratings,
		files:   files,
	}
}

// UpsertProfile creates the caller's profile on first save and updates
// it afterwards.
func (s *CompanyService) UpsertProfile(ctx context.Context, userID kernel.UserID, req company.UpsertProfileRequest) (*company.CompanyResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, company.ErrMissingName()
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}

		now := time.Now()
		created := &company.Company{
			ID:          kernel.NewCompanyID(uuid.NewString()),
			UserID:      userID,
			Name:        strings.TrimSpace(req.Name),
			Website:     req.Website,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, created); err != nil {
			return nil, err
		}

		response := created.ToResponse()
		return &response, nil
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Website = req.Website
	existing.Description = req.Description
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing.ID, existing); err != nil {
		return nil, err
	}

	response := existing.ToResponse()
	return &response, nil
}

// UploadLogo stores a logo image and records its URL on the profile
func (s *CompanyService) UploadLogo(ctx context.Context, userID kernel.UserID, data []byte, contentType string) (*company.CompanyResponse, error) {
	return s.uploadImage(ctx, userID, "logos", data, contentType, func(c *company.Company, url kernel.BucketURL) {
		c.LogoURL = &url
	})
}

// UploadBanner stores a banner image and records its URL on the profile
func (s *CompanyService) UploadBanner(ctx context.Context, userID kernel.UserID, data []byte, contentType string) (*company.CompanyResponse, error) {
	return s.uploadImage(ctx, userID, "banners", data, contentType, func(c *company.Company, url kernel.BucketURL) {
		c.BannerURL = &url
	})
}

func (s *CompanyService) uploadImage(
	ctx context.Context,
	userID kernel.UserID,
	folder string,
	data []byte,
	contentType string,
	assign func(*company.Company, kernel.BucketURL),
) (*company.CompanyResponse, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("companies/%s/%s/%s", profile.ID.String(), folder, uuid.NewString())
	url, err := s.files.WriteFile(ctx, path, data, contentType)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store company image", errx.TypeExternal)
	}

	assign(profile, url)
	profile.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, profile.ID, profile); err != nil {
		return nil, err
	}

	response := profile.ToResponse()
	return &response, nil
}

// GetOwnProfile retrieves the caller's profile
func (s *CompanyService) GetOwnProfile(ctx context.Context, userID kernel.UserID) (*company.CompanyResponse, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := profile.ToResponse()
	return &response, nil
}

// GetProfilePage assembles the public page for a company name: the
// profile when one exists, approved ratings and their average rounded
// to one decimal. A missing profile is not an error, offers may
// mention companies that never registered.
func (s *CompanyService) GetProfilePage(ctx context.Context, name string) (*company.ProfilePageResponse, error) {
	page := &company.ProfilePageResponse{
		Name:    name,
		Ratings: []company.RatingResponse{},
	}

	profile, err := s.repo.GetByName(ctx, name)
	if err == nil {
		response := profile.ToResponse()
		page.Profile = &response
	} else if !errx.IsType(err, errx.TypeNotFound) {
		return nil, err
	}

	ratings, err := s.ratings.ListApprovedByCompanyName(ctx, name)
	if err != nil {
		return nil, err
	}

	var total int
	for _, r := range ratings {
		page.Ratings = append(page.Ratings, r.ToResponse())
		total += r.Stars
	}

	if len(ratings) > 0 {
		avg := math.Round(float64(total)/float64(len(ratings))*10) / 10
		page.AverageStars = &avg
	}

	return page, nil
}

// ListCompanies lists named profiles with a logo, optionally filtered
func (s *CompanyService) ListCompanies(ctx context.Context, nameQuery string) ([]company.CompanyResponse, error) {
	companies, err := s.repo.List(ctx, nameQuery)
	if err != nil {
		return nil, err
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// ListFeatured lists the carousel of featured companies
func (s *CompanyService) ListFeatured(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// UpgradeToPremium marks the caller's profile as premium. Payment is
// simulated, reaching this point counts as a successful checkout.
func (s *CompanyService) UpgradeToPremium(ctx context.Context, userID kernel.UserID) (*company.CompanyResponse, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, company.ErrNotACompany()
		}
		return nil, err
	}

	profile.UpgradeToPremium()
	if err := s.repo.Update(ctx, profile.ID, profile); err != nil {
		return nil, err
	}

	response := profile.ToResponse()
	return &response, nil
}

// SubmitRating stores a visitor review. It stays hidden until approved.
func (s *CompanyService) SubmitRating(ctx context.Context, companyName string, req company.SubmitRatingRequest) error {
	if req.Stars < 1 || req.Stars > 5 {
		return company.ErrInvalidStars().WithDetail("stars", req.Stars)
	}

	rating := &company.Rating{
		ID:          kernel.NewRatingID(uuid.NewString()),
		CompanyName: companyName,
		Stars:       req.Stars,
		Comment:     req.Comment,
		CreatedAt:   time.Now(),
	}

	return s.ratings.Create(ctx, rating)
}

// ApproveRating publishes a pending rating
func (s *CompanyService) ApproveRating(ctx context.Context, id kernel.RatingID) error {
	rating, err := s.ratings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	rating.Approve()
	return s.ratings.Update(ctx, id, rating)
}

// ListPendingRatings lists ratings awaiting moderation
func (s *CompanyService) ListPendingRatings(ctx context.Context) ([]*company.Rating, error) {
	return s.ratings.ListPending(ctx)
}
