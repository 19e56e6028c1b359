package servicesrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/service"
	"github.com/redlaboral/portal/pkg/errx"
	"github.com/redlaboral/portal/pkg/fsx"
	"github.com/redlaboral/portal/pkg/kernel"
)

// ServiceService manages freelance service listings
type ServiceService struct {
	repo  service.Repository
	files fsx.FileSystem
}

// NewServiceService creates a new service listing service instance
func NewServiceService(repo service.Repository, files fsx.FileSystem) *ServiceService {
	return &ServiceService{
		repo:  repo,
		files: files,
	}
}

// CreateService stores a new listing owned by userID
func (s *ServiceService) CreateService(ctx context.Context, userID kernel.UserID, req service.CreateServiceRequest) (*service.ServiceResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, service.ErrMissingTitle()
	}
	if !req.Region.IsValid() {
		return nil, service.ErrInvalidRegion().WithDetail("region", string(req.Region))
	}

	now := time.Now()
	created := &service.Service{
		ID:             kernel.NewServiceID(uuid.NewString()),
		UserID:         userID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Industry:       req.Industry,
		Region:         req.Region,
		Phone:          req.Phone,
		ContactEmail:   req.ContactEmail,
		ReferencePrice: req.ReferencePrice,
		Published:      req.Published,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

// UpdateService edits an owned listing
func (s *ServiceService) UpdateService(ctx context.Context, userID kernel.UserID, id kernel.ServiceID, req service.UpdateServiceRequest) (*service.ServiceResponse, error) {
	stored, err := s.ownedService(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(stored, req)
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	resp := stored.ToResponse()
	return &resp, nil
}

// DeleteService removes an owned listing
func (s *ServiceService) DeleteService(ctx context.Context, userID kernel.UserID, id kernel.ServiceID) error {
	stored, err := s.ownedService(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, stored.ID)
}

// UploadImage stores the listing image
func (s *ServiceService) UploadImage(ctx context.Context, userID kernel.UserID, id kernel.ServiceID, data []byte, contentType string) (*service.ServiceResponse, error) {
	stored, err := s.ownedService(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("services/%s/images/%s", stored.ID.String(), uuid.NewString())
	url, err := s.files.WriteFile(ctx, path, data, contentType)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store service image", errx.TypeExternal)
	}

	stored.ImageURL = &url
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	resp := stored.ToResponse()
	return &resp, nil
}

// GetService retrieves a single listing
func (s *ServiceService) GetService(ctx context.Context, id kernel.ServiceID) (*service.ServiceResponse, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := stored.ToResponse()
	return &resp, nil
}

// ListMyServices retrieves the caller's listings
func (s *ServiceService) ListMyServices(ctx context.Context, userID kernel.UserID) ([]service.ServiceResponse, error) {
	services, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]service.ServiceResponse, 0, len(services))
	for _, stored := range services {
		responses = append(responses, stored.ToResponse())
	}
	return responses, nil
}

// SearchServices retrieves published listings matching the filters
func (s *ServiceService) SearchServices(ctx context.Context, req service.SearchServicesRequest) (*kernel.Paginated[service.ServiceResponse], error) {
	page, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	items := make([]service.ServiceResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, page.Items[i].ToResponse())
	}

	return &kernel.Paginated[service.ServiceResponse]{
		Items: items,
		Page:  page.Page,
		Empty: len(items) == 0,
	}, nil
}

func (s *ServiceService) ownedService(ctx context.Context, userID kernel.UserID, id kernel.ServiceID) (*service.Service, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stored.IsOwnedBy(userID) {
		return nil, service.ErrNotOwner()
	}
	return stored, nil
}

func applyUpdate(stored *service.Service, req service.UpdateServiceRequest) {
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		stored.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		stored.Description = *req.Description
	}
	if req.Industry != nil && req.Industry.IsValid() {
		stored.Industry = *req.Industry
	}
	if req.Region != nil && req.Region.IsValid() {
		stored.Region = *req.Region
	}
	if req.Phone != nil {
		stored.Phone = *req.Phone
	}
	if req.ContactEmail != nil {
		stored.ContactEmail = *req.ContactEmail
	}
	if req.ReferencePrice != nil {
		stored.ReferencePrice = req.ReferencePrice
	}
	if req.Published != nil {
		stored.Published = *req.Published
	}
}
