package servicesrv

import (
	"context"
	"testing"

	"github.com/redlaboral/portal/marketplace/service"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryServiceRepo struct {
	byID map[kernel.ServiceID]*service.Service
}

func newMemoryServiceRepo() *memoryServiceRepo {
	return &memoryServiceRepo{byID: make(map[kernel.ServiceID]*service.Service)}
}

func (r *memoryServiceRepo) Create(_ context.Context, s *service.Service) error {
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *memoryServiceRepo) Update(_ context.Context, id kernel.ServiceID, s *service.Service) error {
	if _, ok := r.byID[id]; !ok {
		return service.ErrServiceNotFound()
	}
	clone := *s
	r.byID[id] = &clone
	return nil
}

func (r *memoryServiceRepo) GetByID(_ context.Context, id kernel.ServiceID) (*service.Service, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, service.ErrServiceNotFound()
	}
	clone := *stored
	return &clone, nil
}

func (r *memoryServiceRepo) Delete(_ context.Context, id kernel.ServiceID) error {
	if _, ok := r.byID[id]; !ok {
		return service.ErrServiceNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryServiceRepo) ListByUserID(_ context.Context, userID kernel.UserID) ([]*service.Service, error) {
	services := make([]*service.Service, 0)
	for _, stored := range r.byID {
		if stored.UserID == userID {
			clone := *stored
			services = append(services, &clone)
		}
	}
	return services, nil
}

func (r *memoryServiceRepo) Search(_ context.Context, req service.SearchServicesRequest) (*kernel.Paginated[service.Service], error) {
	items := make([]service.Service, 0)
	for _, stored := range r.byID {
		if !stored.Published {
			continue
		}
		if req.Industry != "" && stored.Industry != req.Industry {
			continue
		}
		if req.Region != "" && stored.Region != req.Region {
			continue
		}
		items = append(items, *stored)
	}
	return &kernel.Paginated[service.Service]{Items: items, Empty: len(items) == 0}, nil
}

type nullFileSystem struct{}

func (nullFileSystem) WriteFile(_ context.Context, path string, _ []byte, _ string) (kernel.BucketURL, error) {
	return kernel.BucketURL("s3://test-bucket/" + path), nil
}
func (nullFileSystem) ReadFile(_ context.Context, _ string) ([]byte, error) { return nil, nil }
func (nullFileSystem) DeleteFile(_ context.Context, _ string) error         { return nil }
func (nullFileSystem) Exists(_ context.Context, _ string) (bool, error)     { return false, nil }

func validCreateRequest() service.CreateServiceRequest {
	return service.CreateServiceRequest{
		Title:       "Gasfitería a domicilio",
		Description: "Reparaciones e instalaciones",
		Industry:    kernel.IndustryConstruction,
		Region:      kernel.RegionValparaiso,
		Phone:       "+56922222222",
		Published:   true,
	}
}

func TestCreateServiceValidation(t *testing.T) {
	svc := NewServiceService(newMemoryServiceRepo(), nullFileSystem{})

	noTitle := validCreateRequest()
	noTitle.Title = "  "
	_, err := svc.CreateService(context.Background(), kernel.NewUserID("u1"), noTitle)
	assert.Error(t, err)

	badRegion := validCreateRequest()
	badRegion.Region = "XX"
	_, err = svc.CreateService(context.Background(), kernel.NewUserID("u1"), badRegion)
	assert.Error(t, err)
}

func TestUpdateServiceRequiresOwnership(t *testing.T) {
	repo := newMemoryServiceRepo()
	svc := NewServiceService(repo, nullFileSystem{})
	owner := kernel.NewUserID("owner-1")

	created, err := svc.CreateService(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)

	newTitle := "Gasfitería y calefacción"
	_, err = svc.UpdateService(context.Background(), kernel.NewUserID("intruder"), created.ID, service.UpdateServiceRequest{Title: &newTitle})
	assert.Error(t, err)

	updated, err := svc.UpdateService(context.Background(), owner, created.ID, service.UpdateServiceRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
}

func TestSearchServicesFiltersPublishedByIndustryAndRegion(t *testing.T) {
	repo := newMemoryServiceRepo()
	svc := NewServiceService(repo, nullFileSystem{})
	owner := kernel.NewUserID("owner-1")

	_, err := svc.CreateService(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)

	tech := validCreateRequest()
	tech.Title = "Desarrollo de sitios web"
	tech.Industry = kernel.IndustryTechnology
	tech.Region = kernel.RegionMetropolitana
	_, err = svc.CreateService(context.Background(), owner, tech)
	require.NoError(t, err)

	draft := validCreateRequest()
	draft.Title = "Borrador"
	draft.Published = false
	_, err = svc.CreateService(context.Background(), owner, draft)
	require.NoError(t, err)

	page, err := svc.SearchServices(context.Background(), service.SearchServicesRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.SearchServices(context.Background(), service.SearchServicesRequest{
		Industry: kernel.IndustryTechnology,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Desarrollo de sitios web", page.Items[0].Title)

	page, err = svc.SearchServices(context.Background(), service.SearchServicesRequest{
		Region: kernel.RegionValparaiso,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Gasfitería a domicilio", page.Items[0].Title)
}

func TestUploadImageLinksURL(t *testing.T) {
	repo := newMemoryServiceRepo()
	svc := NewServiceService(repo, nullFileSystem{})
	owner := kernel.NewUserID("owner-1")

	created, err := svc.CreateService(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UploadImage(context.Background(), owner, created.ID, []byte("img"), "image/png")
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.Contains(t, updated.ImageURL.String(), "services/")
}

func TestDeleteService(t *testing.T) {
	repo := newMemoryServiceRepo()
	svc := NewServiceService(repo, nullFileSystem{})
	owner := kernel.NewUserID("owner-1")

	created, err := svc.CreateService(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)

	require.Error(t, svc.DeleteService(context.Background(), kernel.NewUserID("intruder"), created.ID))
	require.NoError(t, svc.DeleteService(context.Background(), owner, created.ID))

	_, err = svc.GetService(context.Background(), created.ID)
	assert.Error(t, err)
}
