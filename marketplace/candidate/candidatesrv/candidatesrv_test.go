package candidatesrv

import (
	"context"
	"fmt"
	"testing"

	"github.com/redlaboral/portal/internal/ai/resumeparser"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/company"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCandidateRepo struct {
	byID map[kernel.CandidateID]*candidate.Candidate
}

func newMemoryCandidateRepo() *memoryCandidateRepo {
	return &memoryCandidateRepo{byID: make(map[kernel.CandidateID]*candidate.Candidate)}
}

func (r *memoryCandidateRepo) Create(_ context.Context, c *candidate.Candidate) error {
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *memoryCandidateRepo) Update(_ context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	if _, ok := r.byID[id]; !ok {
		return candidate.ErrCandidateNotFound()
	}
	clone := *c
	r.byID[id] = &clone
	return nil
}

func (r *memoryCandidateRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	clone := *stored
	return &clone, nil
}

func (r *memoryCandidateRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	for _, stored := range r.byID {
		if stored.UserID == userID {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (r *memoryCandidateRepo) Delete(_ context.Context, id kernel.CandidateID) error {
	if _, ok := r.byID[id]; !ok {
		return candidate.ErrCandidateNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryCandidateRepo) Search(_ context.Context, req candidate.SearchCandidatesRequest) (*kernel.Paginated[candidate.Candidate], error) {
	items := make([]candidate.Candidate, 0)
	for _, stored := range r.byID {
		if !stored.Published {
			continue
		}
		if req.Region != "" && stored.Region != req.Region {
			continue
		}
		if req.Industry != "" && stored.Industry != req.Industry {
			continue
		}
		items = append(items, *stored)
	}
	return &kernel.Paginated[candidate.Candidate]{Items: items, Empty: len(items) == 0}, nil
}

type memoryCompanyRepo struct {
	byUser map[kernel.UserID]*company.Company
}

func (r *memoryCompanyRepo) Create(_ context.Context, c *company.Company) error {
	r.byUser[c.UserID] = c
	return nil
}

func (r *memoryCompanyRepo) Update(_ context.Context, _ kernel.CompanyID, c *company.Company) error {
	r.byUser[c.UserID] = c
	return nil
}

func (r *memoryCompanyRepo) GetByID(_ context.Context, _ kernel.CompanyID) (*company.Company, error) {
	return nil, company.ErrCompanyNotFound()
}

func (r *memoryCompanyRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*company.Company, error) {
	stored, ok := r.byUser[userID]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	return stored, nil
}

func (r *memoryCompanyRepo) GetByName(_ context.Context, _ string) (*company.Company, error) {
	return nil, company.ErrCompanyNotFound()
}

func (r *memoryCompanyRepo) List(_ context.Context, _ string) ([]*company.Company, error) {
	return nil, nil
}

func (r *memoryCompanyRepo) ListFeatured(_ context.Context) ([]*company.Company, error) {
	return nil, nil
}

type memoryFileSystem struct {
	objects map[string][]byte
}

func newMemoryFileSystem() *memoryFileSystem {
	return &memoryFileSystem{objects: make(map[string][]byte)}
}

func (f *memoryFileSystem) WriteFile(_ context.Context, path string, data []byte, _ string) (kernel.BucketURL, error) {
	f.objects[path] = data
	return kernel.BucketURL(fmt.Sprintf("s3://test-bucket/%s", path)), nil
}

func (f *memoryFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.objects[path]
	if !ok {
		return nil, fmt.Errorf("no object at %s", path)
	}
	return data, nil
}

func (f *memoryFileSystem) DeleteFile(_ context.Context, path string) error {
	delete(f.objects, path)
	return nil
}

func (f *memoryFileSystem) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.objects[path]
	return ok, nil
}

type stubParser struct{}

func (stubParser) ParseResumeFromMultiplePages(_ context.Context, _ [][]byte) (*resumeparser.ResumeData, error) {
	return &resumeparser.ResumeData{}, nil
}

func newTestService() (*CandidateService, *memoryCandidateRepo, *memoryCompanyRepo, *memoryFileSystem) {
	repo := newMemoryCandidateRepo()
	companies := &memoryCompanyRepo{byUser: make(map[kernel.UserID]*company.Company)}
	files := newMemoryFileSystem()
	svc := NewCandidateService(repo, companies, files, stubParser{})
	return svc, repo, companies, files
}

func validProfileRequest() candidate.UpsertProfileRequest {
	return candidate.UpsertProfileRequest{
		Headline:   "Desarrollador Backend",
		Industry:   kernel.IndustryTechnology,
		Region:     kernel.RegionMetropolitana,
		Experience: kernel.ExperienceSenior,
		Email:      "Dev@Example.com",
		Phone:      "+56911111111",
		Published:  true,
	}
}

func TestUpsertProfileCreatesThenUpdates(t *testing.T) {
	svc, repo, _, _ := newTestService()
	userID := kernel.NewUserID("user-1")

	created, err := svc.UpsertProfile(context.Background(), userID, validProfileRequest())
	require.NoError(t, err)
	assert.Equal(t, "Desarrollador Backend", created.Headline)
	require.NotNil(t, created.Contact)
	assert.Equal(t, kernel.Email("dev@example.com"), created.Contact.Email)
	assert.Len(t, repo.byID, 1)

	req := validProfileRequest()
	req.Headline = "Ingeniero de Datos"
	updated, err := svc.UpsertProfile(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ingeniero de Datos", updated.Headline)
	assert.Len(t, repo.byID, 1)
}

func TestUpsertProfileValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := kernel.NewUserID("user-1")

	noHeadline := validProfileRequest()
	noHeadline.Headline = "   "
	_, err := svc.UpsertProfile(context.Background(), userID, noHeadline)
	assert.Error(t, err)

	badRegion := validProfileRequest()
	badRegion.Region = "XX"
	_, err = svc.UpsertProfile(context.Background(), userID, badRegion)
	assert.Error(t, err)

	badEmail := validProfileRequest()
	badEmail.Email = "not-an-email"
	_, err = svc.UpsertProfile(context.Background(), userID, badEmail)
	assert.Error(t, err)
}

func TestContactVisibility(t *testing.T) {
	svc, _, companies, _ := newTestService()
	owner := kernel.NewUserID("owner-1")

	created, err := svc.UpsertProfile(context.Background(), owner, validProfileRequest())
	require.NoError(t, err)

	companies.byUser[kernel.NewUserID("premium-co")] = &company.Company{
		UserID:  kernel.NewUserID("premium-co"),
		Premium: true,
	}
	companies.byUser[kernel.NewUserID("basic-co")] = &company.Company{
		UserID: kernel.NewUserID("basic-co"),
	}

	tests := []struct {
		name    string
		viewer  Viewer
		visible bool
	}{
		{"anonymous", Viewer{}, false},
		{"owner", Viewer{UserID: owner, Role: auth.RoleCandidate}, true},
		{"admin", Viewer{UserID: kernel.NewUserID("admin-1"), Role: auth.RoleAdmin}, true},
		{"premium company", Viewer{UserID: kernel.NewUserID("premium-co"), Role: auth.RoleCompany}, true},
		{"basic company", Viewer{UserID: kernel.NewUserID("basic-co"), Role: auth.RoleCompany}, false},
		{"other candidate", Viewer{UserID: kernel.NewUserID("other-1"), Role: auth.RoleCandidate}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetCandidate(context.Background(), created.ID, tt.viewer)
			require.NoError(t, err)
			if tt.visible {
				require.NotNil(t, resp.Contact)
				assert.Equal(t, kernel.Email("dev@example.com"), resp.Contact.Email)
			} else {
				assert.Nil(t, resp.Contact)
			}
		})
	}
}

func TestUploadCVStoresFileAndTolerantPreview(t *testing.T) {
	svc, _, _, files := newTestService()
	userID := kernel.NewUserID("user-1")

	_, err := svc.UpsertProfile(context.Background(), userID, validProfileRequest())
	require.NoError(t, err)

	// Not a real PDF, the preview render fails but the upload survives
	resp, err := svc.UploadCV(context.Background(), userID, "cv.pdf", []byte("not a pdf"))
	require.NoError(t, err)
	assert.True(t, resp.HasCV)
	assert.Len(t, files.objects, 1)
}

func TestDownloadCVRequiresAccess(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := kernel.NewUserID("owner-1")

	created, err := svc.UpsertProfile(context.Background(), owner, validProfileRequest())
	require.NoError(t, err)

	_, err = svc.DownloadCV(context.Background(), created.ID, Viewer{UserID: owner})
	assert.Error(t, err, "no CV uploaded yet")

	_, err = svc.UploadCV(context.Background(), owner, "cv.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)

	content, err := svc.DownloadCV(context.Background(), created.ID, Viewer{UserID: owner, Role: auth.RoleCandidate})
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), content)

	_, err = svc.DownloadCV(context.Background(), created.ID, Viewer{UserID: kernel.NewUserID("stranger"), Role: auth.RoleCandidate})
	assert.Error(t, err)
}

func TestSearchCandidatesHidesContactAndUnpublished(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpsertProfile(context.Background(), kernel.NewUserID("u1"), validProfileRequest())
	require.NoError(t, err)

	hidden := validProfileRequest()
	hidden.Published = false
	_, err = svc.UpsertProfile(context.Background(), kernel.NewUserID("u2"), hidden)
	require.NoError(t, err)

	page, err := svc.SearchCandidates(context.Background(), candidate.SearchCandidatesRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.Items[0].Contact)
}

func TestSuggestionFromResumeMapsChileanCVFields(t *testing.T) {
	data := &resumeparser.ResumeData{
		PersonalInfo: resumeparser.PersonalInfo{
			Name:     "María Contreras",
			Email:    "maria.contreras@example.cl",
			Phone:    "+56987654321",
			LinkedIn: "linkedin.com/in/mcontreras",
		},
		Headline:      "Analista Contable",
		Summary:       "Diez años de experiencia en contabilidad pyme.",
		DesiredSalary: 950000,
		Experience: []resumeparser.Experience{
			{Company: "Comercial Andes", Title: "Contadora Senior"},
		},
	}

	suggestion := suggestionFromResume(data)
	assert.Equal(t, "Analista Contable", suggestion.Headline)
	assert.Equal(t, "Diez años de experiencia en contabilidad pyme.", suggestion.Presentation)
	assert.Equal(t, kernel.Phone("+56987654321"), suggestion.Phone)
	assert.Equal(t, kernel.Email("maria.contreras@example.cl"), suggestion.Email)
	require.NotNil(t, suggestion.DesiredSalary)
	assert.Equal(t, kernel.Salary(950000), *suggestion.DesiredSalary)
}

func TestSuggestionFromResumeFallsBackToExperienceTitle(t *testing.T) {
	data := &resumeparser.ResumeData{
		Experience: []resumeparser.Experience{
			{Company: "Constructora Sur", Title: "Maestro Gasfiter"},
		},
	}

	suggestion := suggestionFromResume(data)
	assert.Equal(t, "Maestro Gasfiter", suggestion.Headline)
	assert.Nil(t, suggestion.DesiredSalary)
}
