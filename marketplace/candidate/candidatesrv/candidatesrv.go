package candidatesrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/internal/ai/resumeparser"
	"github.com/redlaboral/portal/internal/pdf"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/company"
	"github.com/redlaboral/portal/pkg/errx"
	"github.com/redlaboral/portal/pkg/fsx"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/logx"
)

// Viewer identifies who is looking at a profile. A zero Viewer is an
// anonymous visitor.
type Viewer struct {
	UserID kernel.UserID
	Role   auth.Role
}

// CVParser extracts structured data from resume page images
type CVParser interface {
	ParseResumeFromMultiplePages(ctx context.Context, pages [][]byte) (*resumeparser.ResumeData, error)
}

// CandidateService manages candidate profiles, their uploads and the
// contact visibility rules.
type CandidateService struct {
	repo      candidate.Repository
	companies company.Repository
	files     fsx.FileSystem
	parser    CVParser
}

// NewCandidateService creates a new candidate service instance
func NewCandidateService(
	repo candidate.Repository,
	companies company.Repository,
	files fsx.FileSystem,
	parser CVParser,
) *CandidateService {
	return &CandidateService{
		repo:      repo,
		companies: companies,
		files:     files,
		parser:    parser,
	}
}

// UpsertProfile creates the caller's profile, or replaces its fields
// when one already exists. Uploaded files are kept as they are.
func (s *CandidateService) UpsertProfile(ctx context.Context, userID kernel.UserID, req candidate.UpsertProfileRequest) (*candidate.CandidateResponse, error) {
	if strings.TrimSpace(req.Headline) == "" {
		return nil, candidate.ErrMissingHeadline()
	}
	if !req.Region.IsValid() {
		return nil, candidate.ErrInvalidRegion().WithDetail("region", string(req.Region))
	}
	if !req.Email.IsEmpty() && !req.Email.IsValid() {
		return nil, candidate.ErrInvalidEmail().WithDetail("email", string(req.Email))
	}

	now := time.Now()
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}

		created := &candidate.Candidate{
			ID:        kernel.NewCandidateID(uuid.NewString()),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyProfile(created, req)

		if err := s.repo.Create(ctx, created); err != nil {
			return nil, err
		}

		resp := created.ToResponse(true)
		return &resp, nil
	}

	applyProfile(existing, req)
	existing.UpdatedAt = now

	if err := s.repo.Update(ctx, existing.ID, existing); err != nil {
		return nil, err
	}

	resp := existing.ToResponse(true)
	return &resp, nil
}

// GetOwnProfile retrieves the caller's profile with contact details
func (s *CandidateService) GetOwnProfile(ctx context.Context, userID kernel.UserID) (*candidate.CandidateResponse, error) {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := stored.ToResponse(true)
	return &resp, nil
}

// GetCandidate retrieves a profile. Contact details are included only
// for the owner, premium companies and administrators.
func (s *CandidateService) GetCandidate(ctx context.Context, id kernel.CandidateID, viewer Viewer) (*candidate.CandidateResponse, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := stored.ToResponse(s.canSeeContact(ctx, viewer, stored))
	return &resp, nil
}

// SearchCandidates retrieves published profiles without contact details
func (s *CandidateService) SearchCandidates(ctx context.Context, req candidate.SearchCandidatesRequest) (*kernel.Paginated[candidate.CandidateResponse], error) {
	page, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	items := make([]candidate.CandidateResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, page.Items[i].ToResponse(false))
	}

	return &kernel.Paginated[candidate.CandidateResponse]{
		Items: items,
		Page:  page.Page,
		Empty: len(items) == 0,
	}, nil
}

// DeleteProfile removes the caller's profile
func (s *CandidateService) DeleteProfile(ctx context.Context, userID kernel.UserID) error {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, stored.ID)
}

// UploadPhoto stores a profile photo and links it to the profile
func (s *CandidateService) UploadPhoto(ctx context.Context, userID kernel.UserID, filename, contentType string, content []byte) (*candidate.CandidateResponse, error) {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Photos are normalized to JPEG when they decode; anything else is
	// stored as uploaded.
	if normalized, err := pdf.NormalizeImageToJPEG(content); err != nil {
		logx.Warnf("photo normalization for candidate %s failed: %v", stored.ID.String(), err)
	} else {
		content = normalized
		contentType = "image/jpeg"
	}

	path := fmt.Sprintf("candidates/%s/photos/%s-%s", stored.ID.String(), uuid.NewString(), filename)
	url, err := s.files.WriteFile(ctx, path, content, contentType)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store profile photo", errx.TypeExternal)
	}

	stored.PhotoURL = &url
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	resp := stored.ToResponse(true)
	return &resp, nil
}

// UploadCV stores a resume PDF and renders its first page as a
// preview image. The preview failing does not fail the upload.
func (s *CandidateService) UploadCV(ctx context.Context, userID kernel.UserID, filename string, content []byte) (*candidate.CandidateResponse, error) {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("candidates/%s/cv/%s-%s", stored.ID.String(), uuid.NewString(), filename)
	url, err := s.files.WriteFile(ctx, path, content, "application/pdf")
	if err != nil {
		return nil, errx.Wrap(err, "failed to store resume", errx.TypeExternal)
	}

	if preview, err := pdf.RenderFirstPage(content); err != nil {
		logx.Warnf("cv preview for candidate %s failed: %v", stored.ID.String(), err)
	} else {
		previewPath := s.cvPreviewPath(stored.ID)
		if _, err := s.files.WriteFile(ctx, previewPath, preview, "image/jpeg"); err != nil {
			logx.Warnf("cv preview upload for candidate %s failed: %v", stored.ID.String(), err)
		}
	}

	stored.CVURL = &url
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	resp := stored.ToResponse(true)
	return &resp, nil
}

// DownloadCV retrieves the resume file, gated by the same rule as
// contact details
func (s *CandidateService) DownloadCV(ctx context.Context, id kernel.CandidateID, viewer Viewer) ([]byte, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stored.HasCV() {
		return nil, candidate.ErrNoCV()
	}
	if !s.canSeeContact(ctx, viewer, stored) {
		return nil, auth.ErrForbidden()
	}

	content, err := s.files.ReadFile(ctx, bucketPath(*stored.CVURL))
	if err != nil {
		return nil, errx.Wrap(err, "failed to read resume", errx.TypeExternal)
	}
	return content, nil
}

// GetCVPreview retrieves the first-page preview image of the resume
func (s *CandidateService) GetCVPreview(ctx context.Context, id kernel.CandidateID) ([]byte, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stored.HasCV() {
		return nil, candidate.ErrNoCV()
	}

	content, err := s.files.ReadFile(ctx, s.cvPreviewPath(stored.ID))
	if err != nil {
		return nil, errx.Wrap(err, "failed to read resume preview", errx.TypeExternal)
	}
	return content, nil
}

// SuggestProfileFromCV parses the caller's uploaded resume and returns
// prefilled profile fields. Nothing is persisted until the caller
// submits the suggestion.
func (s *CandidateService) SuggestProfileFromCV(ctx context.Context, userID kernel.UserID) (*candidate.UpsertProfileRequest, error) {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !stored.HasCV() {
		return nil, candidate.ErrNoCV()
	}

	content, err := s.files.ReadFile(ctx, bucketPath(*stored.CVURL))
	if err != nil {
		return nil, errx.Wrap(err, "failed to read resume", errx.TypeExternal)
	}

	pages, err := pdf.ConvertPDFToImages(content)
	if err != nil {
		return nil, errx.Wrap(err, "failed to render resume", errx.TypeExternal)
	}

	data, err := s.parser.ParseResumeFromMultiplePages(ctx, pages)
	if err != nil {
		return nil, errx.Wrap(err, "failed to parse resume", errx.TypeExternal)
	}

	return suggestionFromResume(data), nil
}

// ============================================================================
// Internals
// ============================================================================

func (s *CandidateService) canSeeContact(ctx context.Context, viewer Viewer, stored *candidate.Candidate) bool {
	if viewer.UserID.IsEmpty() {
		return false
	}
	if stored.IsOwnedBy(viewer.UserID) || viewer.Role == auth.RoleAdmin {
		return true
	}
	if viewer.Role != auth.RoleCompany {
		return false
	}

	profile, err := s.companies.GetByUserID(ctx, viewer.UserID)
	if err != nil {
		return false
	}
	return profile.Premium
}

func (s *CandidateService) cvPreviewPath(id kernel.CandidateID) string {
	return fmt.Sprintf("candidates/%s/cv/preview.jpg", id.String())
}

func suggestionFromResume(data *resumeparser.ResumeData) *candidate.UpsertProfileRequest {
	suggestion := &candidate.UpsertProfileRequest{
		Headline:     headlineFromResume(data),
		Presentation: data.Summary,
		Phone:        kernel.Phone(data.PersonalInfo.Phone),
		Email:        kernel.Email(data.PersonalInfo.Email),
		LinkedIn:     data.PersonalInfo.LinkedIn,
	}
	if data.DesiredSalary > 0 {
		salary := kernel.Salary(data.DesiredSalary)
		suggestion.DesiredSalary = &salary
	}
	return suggestion
}

func headlineFromResume(data *resumeparser.ResumeData) string {
	if data.Headline != "" {
		return data.Headline
	}
	if len(data.Experience) > 0 && data.Experience[0].Title != "" {
		return data.Experience[0].Title
	}
	return ""
}

func applyProfile(stored *candidate.Candidate, req candidate.UpsertProfileRequest) {
	stored.Headline = strings.TrimSpace(req.Headline)
	stored.Industry = req.Industry
	stored.Region = req.Region
	stored.Experience = req.Experience
	stored.DesiredSalary = req.DesiredSalary
	stored.Availability = req.Availability
	stored.Phone = req.Phone
	stored.Email = req.Email.Normalized()
	stored.LinkedIn = req.LinkedIn
	stored.Presentation = req.Presentation
	stored.VideoURL = req.VideoURL
	stored.Published = req.Published
}

// bucketPath strips the bucket scheme prefix so the stored URL can be
// read back through the filesystem abstraction.
func bucketPath(url kernel.BucketURL) string {
	raw := string(url)
	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+3:]
	}
	if i := strings.Index(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}
