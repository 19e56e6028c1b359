package offersrv

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redlaboral/portal/marketplace/alert"
	"github.com/redlaboral/portal/marketplace/alert/alertsrv"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/notification"
	"github.com/redlaboral/portal/marketplace/notification/notificationsrv"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/mailx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// In-memory fakes
// ============================================================================

type memoryOfferRepo struct {
	byID       map[kernel.OfferID]*offer.Offer
	embeddings map[kernel.OfferID][]float32
}

func newMemoryOfferRepo() *memoryOfferRepo {
	return &memoryOfferRepo{
		byID:       make(map[kernel.OfferID]*offer.Offer),
		embeddings: make(map[kernel.OfferID][]float32),
	}
}

func (r *memoryOfferRepo) Create(_ context.Context, o *offer.Offer) error {
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *memoryOfferRepo) Update(_ context.Context, id kernel.OfferID, o *offer.Offer) error {
	if _, ok := r.byID[id]; !ok {
		return offer.ErrOfferNotFound()
	}
	clone := *o
	r.byID[id] = &clone
	return nil
}

func (r *memoryOfferRepo) GetByID(_ context.Context, id kernel.OfferID) (*offer.Offer, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, offer.ErrOfferNotFound()
	}
	clone := *stored
	return &clone, nil
}

func (r *memoryOfferRepo) GetByToken(_ context.Context, token string) (*offer.Offer, error) {
	for _, stored := range r.byID {
		if stored.Token == token {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, offer.ErrOfferNotFound()
}

func (r *memoryOfferRepo) Delete(_ context.Context, id kernel.OfferID) error {
	if _, ok := r.byID[id]; !ok {
		return offer.ErrOfferNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryOfferRepo) Search(_ context.Context, req offer.SearchOffersRequest) (*kernel.Paginated[offer.Offer], error) {
	items := make([]offer.Offer, 0)
	for _, stored := range r.byID {
		if !stored.Published {
			continue
		}
		if req.Region != "" && stored.Region != req.Region {
			continue
		}
		if req.Type != "" && stored.Type != req.Type {
			continue
		}
		if req.Query != "" &&
			!strings.Contains(strings.ToLower(stored.Title), strings.ToLower(req.Query)) &&
			!strings.Contains(strings.ToLower(stored.CompanyName), strings.ToLower(req.Query)) {
			continue
		}
		if req.MinSalary != nil && (stored.Salary == nil || *stored.Salary < *req.MinSalary) {
			continue
		}
		items = append(items, *stored)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return &kernel.Paginated[offer.Offer]{Items: items, Empty: len(items) == 0}, nil
}

func (r *memoryOfferRepo) ListByUserID(_ context.Context, userID kernel.UserID) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0)
	for _, stored := range r.byID {
		if stored.UserID == userID {
			clone := *stored
			offers = append(offers, &clone)
		}
	}
	return offers, nil
}

func (r *memoryOfferRepo) ListFeatured(_ context.Context, limit int) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0)
	for _, stored := range r.byID {
		if stored.Published && stored.Featured && len(offers) < limit {
			clone := *stored
			offers = append(offers, &clone)
		}
	}
	return offers, nil
}

func (r *memoryOfferRepo) ListPublishedByCompanyName(_ context.Context, name string) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0)
	for _, stored := range r.byID {
		if stored.Published && strings.EqualFold(stored.CompanyName, name) {
			clone := *stored
			offers = append(offers, &clone)
		}
	}
	return offers, nil
}

func (r *memoryOfferRepo) ListSimilarByType(_ context.Context, exclude kernel.OfferID, jobType kernel.JobType, limit int) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0)
	for _, stored := range r.byID {
		if stored.ID == exclude || !stored.Published || stored.Type != jobType {
			continue
		}
		if len(offers) == limit {
			break
		}
		clone := *stored
		offers = append(offers, &clone)
	}
	return offers, nil
}

func (r *memoryOfferRepo) ListSimilarBySemantic(_ context.Context, id kernel.OfferID, _ int) ([]*offer.Offer, error) {
	// Mirrors the SQL contract: no stored embedding means no results
	if _, ok := r.embeddings[id]; !ok {
		return nil, nil
	}
	offers := make([]*offer.Offer, 0)
	for otherID, stored := range r.byID {
		if otherID == id || !stored.Published {
			continue
		}
		if _, ok := r.embeddings[otherID]; !ok {
			continue
		}
		clone := *stored
		offers = append(offers, &clone)
	}
	return offers, nil
}

func (r *memoryOfferRepo) UpdateEmbedding(_ context.Context, id kernel.OfferID, embedding []float32) error {
	r.embeddings[id] = embedding
	return nil
}

func (r *memoryOfferRepo) CountPublishedByRegion(_ context.Context) ([]offer.RegionCount, error) {
	totals := make(map[kernel.Region]int64)
	for _, stored := range r.byID {
		if stored.Published {
			totals[stored.Region]++
		}
	}
	counts := make([]offer.RegionCount, 0, len(totals))
	for region, total := range totals {
		counts = append(counts, offer.RegionCount{Region: region, Total: total})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Region < counts[j].Region })
	return counts, nil
}

type memoryVisitCounter struct {
	visits map[kernel.OfferID]int64
}

func (c *memoryVisitCounter) Increment(_ context.Context, id kernel.OfferID) (int64, error) {
	c.visits[id]++
	return c.visits[id], nil
}

func (c *memoryVisitCounter) Get(_ context.Context, id kernel.OfferID) (int64, error) {
	return c.visits[id], nil
}

type favoriteKey struct {
	user  kernel.UserID
	offer kernel.OfferID
}

type memoryFavoriteRepo struct {
	favorites map[favoriteKey]*offer.Favorite
}

func (r *memoryFavoriteRepo) Add(_ context.Context, f *offer.Favorite) error {
	r.favorites[favoriteKey{f.UserID, f.OfferID}] = f
	return nil
}

func (r *memoryFavoriteRepo) Remove(_ context.Context, userID kernel.UserID, offerID kernel.OfferID) error {
	delete(r.favorites, favoriteKey{userID, offerID})
	return nil
}

func (r *memoryFavoriteRepo) Exists(_ context.Context, userID kernel.UserID, offerID kernel.OfferID) (bool, error) {
	_, ok := r.favorites[favoriteKey{userID, offerID}]
	return ok, nil
}

func (r *memoryFavoriteRepo) ListByUser(_ context.Context, userID kernel.UserID) ([]*offer.Favorite, error) {
	favorites := make([]*offer.Favorite, 0)
	for key, f := range r.favorites {
		if key.user == userID {
			favorites = append(favorites, f)
		}
	}
	return favorites, nil
}

func (r *memoryFavoriteRepo) ListOfferIDsByUser(_ context.Context, userID kernel.UserID) ([]kernel.OfferID, error) {
	ids := make([]kernel.OfferID, 0)
	for key := range r.favorites {
		if key.user == userID {
			ids = append(ids, key.offer)
		}
	}
	return ids, nil
}

type memoryQuestionRepo struct {
	byID map[kernel.QuestionID]*offer.Question
}

func (r *memoryQuestionRepo) Create(_ context.Context, q *offer.Question) error {
	clone := *q
	r.byID[q.ID] = &clone
	return nil
}

func (r *memoryQuestionRepo) Update(_ context.Context, id kernel.QuestionID, q *offer.Question) error {
	if _, ok := r.byID[id]; !ok {
		return offer.ErrQuestionNotFound()
	}
	clone := *q
	r.byID[id] = &clone
	return nil
}

func (r *memoryQuestionRepo) GetByID(_ context.Context, id kernel.QuestionID) (*offer.Question, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, offer.ErrQuestionNotFound()
	}
	clone := *stored
	return &clone, nil
}

func (r *memoryQuestionRepo) ListByOfferID(_ context.Context, offerID kernel.OfferID) ([]*offer.Question, error) {
	questions := make([]*offer.Question, 0)
	for _, stored := range r.byID {
		if stored.OfferID == offerID {
			clone := *stored
			questions = append(questions, &clone)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].CreatedAt.Before(questions[j].CreatedAt) })
	return questions, nil
}

type memoryReportRepo struct {
	reports []*offer.Report
}

func (r *memoryReportRepo) Create(_ context.Context, report *offer.Report) error {
	clone := *report
	r.reports = append(r.reports, &clone)
	return nil
}

func (r *memoryReportRepo) List(_ context.Context) ([]*offer.Report, error) {
	reports := make([]*offer.Report, len(r.reports))
	copy(reports, r.reports)
	return reports, nil
}

type memoryNotificationRepo struct {
	stored []*notification.Notification
}

func (r *memoryNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.stored = append(r.stored, n)
	return nil
}

func (r *memoryNotificationRepo) ListByUser(_ context.Context, userID kernel.UserID, _ int) ([]*notification.Notification, error) {
	matches := make([]*notification.Notification, 0)
	for _, n := range r.stored {
		if n.UserID == userID {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

func (r *memoryNotificationRepo) CountUnread(_ context.Context, userID kernel.UserID) (int, error) {
	count := 0
	for _, n := range r.stored {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memoryNotificationRepo) MarkAllRead(_ context.Context, userID kernel.UserID) error {
	for _, n := range r.stored {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

type memoryCandidateRepo struct {
	byUser map[kernel.UserID]*candidate.Candidate
}

func (r *memoryCandidateRepo) Create(_ context.Context, c *candidate.Candidate) error {
	r.byUser[c.UserID] = c
	return nil
}

func (r *memoryCandidateRepo) Update(_ context.Context, _ kernel.CandidateID, c *candidate.Candidate) error {
	r.byUser[c.UserID] = c
	return nil
}

func (r *memoryCandidateRepo) GetByID(_ context.Context, _ kernel.CandidateID) (*candidate.Candidate, error) {
	return nil, candidate.ErrCandidateNotFound()
}

func (r *memoryCandidateRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	stored, ok := r.byUser[userID]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return stored, nil
}

func (r *memoryCandidateRepo) Delete(_ context.Context, _ kernel.CandidateID) error {
	return nil
}

func (r *memoryCandidateRepo) Search(_ context.Context, _ candidate.SearchCandidatesRequest) (*kernel.Paginated[candidate.Candidate], error) {
	return &kernel.Paginated[candidate.Candidate]{Empty: true}, nil
}

type memoryAlertRepo struct {
	alerts []*alert.Alert
}

func (r *memoryAlertRepo) Create(_ context.Context, a *alert.Alert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *memoryAlertRepo) GetByID(_ context.Context, id kernel.AlertID) (*alert.Alert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, alert.ErrAlertNotFound()
}

func (r *memoryAlertRepo) ListByRegion(_ context.Context, region kernel.Region) ([]*alert.Alert, error) {
	matches := make([]*alert.Alert, 0)
	for _, a := range r.alerts {
		if a.Region == region {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

func (r *memoryAlertRepo) ListByEmail(_ context.Context, _ kernel.Email) ([]*alert.Alert, error) {
	return nil, nil
}

func (r *memoryAlertRepo) Delete(_ context.Context, _ kernel.AlertID) error {
	return nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailx.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type nullFileSystem struct{}

func (nullFileSystem) WriteFile(_ context.Context, path string, _ []byte, _ string) (kernel.BucketURL, error) {
	return kernel.BucketURL("s3://test-bucket/" + path), nil
}
func (nullFileSystem) ReadFile(_ context.Context, _ string) ([]byte, error) { return nil, nil }
func (nullFileSystem) DeleteFile(_ context.Context, _ string) error         { return nil }
func (nullFileSystem) Exists(_ context.Context, _ string) (bool, error)     { return false, nil }

type stubEmbedder struct {
	fail bool
}

func (e stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if e.fail {
		return nil, assert.AnError
	}
	return []float32{float32(len(text))}, nil
}

// ============================================================================
// Harness
// ============================================================================

type fixture struct {
	svc           *OfferService
	repo          *memoryOfferRepo
	visits        *memoryVisitCounter
	favorites     *memoryFavoriteRepo
	questions     *memoryQuestionRepo
	reports       *memoryReportRepo
	candidates    *memoryCandidateRepo
	alerts        *memoryAlertRepo
	notifications *memoryNotificationRepo
	mailer        *recordingMailer
	dispatcher    *mailx.Dispatcher
}

func newFixture() *fixture {
	repo := newMemoryOfferRepo()
	visits := &memoryVisitCounter{visits: make(map[kernel.OfferID]int64)}
	favorites := &memoryFavoriteRepo{favorites: make(map[favoriteKey]*offer.Favorite)}
	questions := &memoryQuestionRepo{byID: make(map[kernel.QuestionID]*offer.Question)}
	reports := &memoryReportRepo{}
	candidates := &memoryCandidateRepo{byUser: make(map[kernel.UserID]*candidate.Candidate)}
	alerts := &memoryAlertRepo{}
	notifications := &memoryNotificationRepo{}
	mailer := &recordingMailer{}
	dispatcher := mailx.NewDispatcher(mailer, 2, 32, time.Second)
	alertService := alertsrv.NewAlertService(alerts, dispatcher, "https://www.redlaboral.cl")
	notificationService := notificationsrv.NewNotificationService(notifications)

	return &fixture{
		svc: NewOfferService(
			repo,
			visits,
			favorites,
			questions,
			reports,
			candidates,
			alertService,
			notificationService,
			stubEmbedder{},
			nullFileSystem{},
		),
		repo:          repo,
		visits:        visits,
		favorites:     favorites,
		questions:     questions,
		reports:       reports,
		candidates:    candidates,
		alerts:        alerts,
		notifications: notifications,
		mailer:        mailer,
		dispatcher:    dispatcher,
	}
}

func validCreateRequest() offer.CreateOfferRequest {
	salary := kernel.Salary(1500000)
	return offer.CreateOfferRequest{
		Title:       "Desarrollador Backend Go",
		CompanyName: "Tecno SpA",
		Type:        kernel.JobTypeFullTime,
		Region:      kernel.RegionMetropolitana,
		Salary:      &salary,
		Description: "Equipo de plataforma",
	}
}

func (f *fixture) createPublished(t *testing.T, userID kernel.UserID, req offer.CreateOfferRequest) *offer.OwnedOfferResponse {
	t.Helper()
	created, err := f.svc.CreateOffer(context.Background(), userID, req)
	require.NoError(t, err)
	published, err := f.svc.PublishOffer(context.Background(), userID, created.ID)
	require.NoError(t, err)
	return published
}

// ============================================================================
// Tests
// ============================================================================

func TestCreateOfferStartsAsDraftWithToken(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	created, err := f.svc.CreateOffer(context.Background(), kernel.NewUserID("u1"), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.Token)
	assert.False(t, created.Published)
	assert.Equal(t, offer.ModalityOnSite, created.Modality)

	// Drafts are invisible to the public listing
	page, err := f.svc.ListOffers(context.Background(), offer.SearchOffersRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCreateOfferValidation(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	noTitle := validCreateRequest()
	noTitle.Title = "  "
	_, err := f.svc.CreateOffer(context.Background(), kernel.NewUserID("u1"), noTitle)
	assert.Error(t, err)

	badRegion := validCreateRequest()
	badRegion.Region = "ZZ"
	_, err = f.svc.CreateOffer(context.Background(), kernel.NewUserID("u1"), badRegion)
	assert.Error(t, err)

	badType := validCreateRequest()
	badType.Type = "gig"
	_, err = f.svc.CreateOffer(context.Background(), kernel.NewUserID("u1"), badType)
	assert.Error(t, err)
}

func TestPublishOfferOwnershipAndIdempotence(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	created, err := f.svc.CreateOffer(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)

	_, err = f.svc.PublishOffer(context.Background(), kernel.NewUserID("intruder"), created.ID)
	assert.Error(t, err)

	published, err := f.svc.PublishOffer(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	_, err = f.svc.PublishOffer(context.Background(), owner, created.ID)
	assert.Error(t, err, "publishing twice is rejected")
}

func TestPublishOfferNotifiesMatchingSubscribers(t *testing.T) {
	f := newFixture()

	f.alerts.alerts = []*alert.Alert{
		{ID: "a1", Email: "dev@example.com", Keyword: "backend", Region: kernel.RegionMetropolitana},
		{ID: "a2", Email: "norte@example.com", Keyword: "backend", Region: kernel.RegionAntofagasta},
		{ID: "a3", Email: "otros@example.com", Keyword: "contador", Region: kernel.RegionMetropolitana},
	}

	published := f.createPublished(t, kernel.NewUserID("owner-1"), validCreateRequest())
	f.dispatcher.Stop()

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, kernel.Email("dev@example.com"), msg.To)
	assert.Equal(t, "🔔 Alerta: Desarrollador Backend Go", msg.Subject)
	assert.Contains(t, msg.Body, string(published.ID))
}

func TestGetOfferDetailCountsVisitsAndFallsBackToTypeSimilar(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	main := f.createPublished(t, owner, validCreateRequest())

	sibling := validCreateRequest()
	sibling.Title = "Desarrollador Frontend"
	f.createPublished(t, owner, sibling)

	other := validCreateRequest()
	other.Title = "Contador General"
	other.Type = kernel.JobTypePartTime
	f.createPublished(t, owner, other)

	// No embeddings stored, the semantic lookup yields nothing
	f.repo.embeddings = make(map[kernel.OfferID][]float32)

	detail, err := f.svc.GetOfferDetail(context.Background(), main.ID, "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), detail.Offer.Visits)
	require.Len(t, detail.Similar, 1)
	assert.Equal(t, "Desarrollador Frontend", detail.Similar[0].Title)
	assert.Nil(t, detail.Match)

	detail, err = f.svc.GetOfferDetail(context.Background(), main.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Offer.Visits)
}

func TestGetOfferDetailIncludesMatchForCandidateViewer(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	published := f.createPublished(t, kernel.NewUserID("owner-1"), validCreateRequest())

	viewer := kernel.NewUserID("viewer-1")
	desired := kernel.Salary(1400000)
	f.candidates.byUser[viewer] = &candidate.Candidate{
		ID:            kernel.NewCandidateID("c1"),
		UserID:        viewer,
		Headline:      "Backend",
		Region:        kernel.RegionMetropolitana,
		DesiredSalary: &desired,
	}

	detail, err := f.svc.GetOfferDetail(context.Background(), published.ID, viewer)
	require.NoError(t, err)

	require.NotNil(t, detail.Match)
	assert.Equal(t, 100, detail.Match.Percent)
	assert.Len(t, detail.Match.Factors, 3)

	// A viewer without a profile gets no match block
	detail, err = f.svc.GetOfferDetail(context.Background(), published.ID, kernel.NewUserID("stranger"))
	require.NoError(t, err)
	assert.Nil(t, detail.Match)
}

func TestUpdateAndDeleteOfferByToken(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	created, err := f.svc.CreateOffer(context.Background(), kernel.NewUserID("u1"), validCreateRequest())
	require.NoError(t, err)

	newTitle := "Ingeniero de Plataforma"
	updated, err := f.svc.UpdateOfferByToken(context.Background(), created.Token, offer.UpdateOfferRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, created.CompanyName, updated.CompanyName)

	_, err = f.svc.UpdateOfferByToken(context.Background(), "wrong-token", offer.UpdateOfferRequest{})
	assert.Error(t, err)

	require.NoError(t, f.svc.DeleteOfferByToken(context.Background(), created.Token))
	_, err = f.svc.GetOfferByToken(context.Background(), created.Token)
	assert.Error(t, err)
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	published := f.createPublished(t, kernel.NewUserID("owner-1"), validCreateRequest())
	userID := kernel.NewUserID("fan-1")

	saved, err := f.svc.ToggleFavorite(context.Background(), userID, published.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	favorites, err := f.svc.ListFavoriteOffers(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	saved, err = f.svc.ToggleFavorite(context.Background(), userID, published.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	favorites, err = f.svc.ListFavoriteOffers(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	_, err = f.svc.ToggleFavorite(context.Background(), userID, kernel.NewOfferID("missing"))
	assert.Error(t, err)
}

func TestListInternshipsFiltersByTypeAndRegion(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")

	internship := validCreateRequest()
	internship.Title = "Práctica Desarrollo"
	internship.Type = kernel.JobTypeInternship
	f.createPublished(t, owner, internship)

	southern := validCreateRequest()
	southern.Title = "Práctica Sur"
	southern.Type = kernel.JobTypeInternship
	southern.Region = kernel.RegionBiobio
	f.createPublished(t, owner, southern)

	f.createPublished(t, owner, validCreateRequest())

	page, err := f.svc.ListInternships(context.Background(), "", kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.svc.ListInternships(context.Background(), kernel.RegionBiobio, kernel.PaginationOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Práctica Sur", page.Items[0].Title)
}

func TestRegionStatsUsesDisplayNames(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	f.createPublished(t, owner, validCreateRequest())
	f.createPublished(t, owner, validCreateRequest())

	southern := validCreateRequest()
	southern.Region = kernel.RegionBiobio
	f.createPublished(t, owner, southern)

	counts, err := f.svc.RegionStats(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)

	byRegion := make(map[kernel.Region]offer.RegionCount)
	for _, count := range counts {
		byRegion[count.Region] = count
	}
	assert.Equal(t, int64(2), byRegion[kernel.RegionMetropolitana].Total)
	assert.Equal(t, "Metropolitana", byRegion[kernel.RegionMetropolitana].Name)
	assert.Equal(t, int64(1), byRegion[kernel.RegionBiobio].Total)
}

func TestAskQuestionNotifiesThePoster(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	published := f.createPublished(t, owner, validCreateRequest())

	asker := kernel.NewUserID("curious-1")
	question, err := f.svc.AskQuestion(context.Background(), asker, published.ID, offer.AskQuestionRequest{
		Question: "¿Se puede trabajar remoto desde regiones?",
	})
	require.NoError(t, err)
	assert.False(t, question.Answered)

	require.Len(t, f.notifications.stored, 1)
	assert.Equal(t, owner, f.notifications.stored[0].UserID)
	assert.Contains(t, f.notifications.stored[0].Message, "Desarrollador Backend Go")

	// Blank questions are rejected
	_, err = f.svc.AskQuestion(context.Background(), asker, published.ID, offer.AskQuestionRequest{Question: "  "})
	assert.Error(t, err)

	// The poster asking on their own offer gets no notification
	_, err = f.svc.AskQuestion(context.Background(), owner, published.ID, offer.AskQuestionRequest{
		Question: "Aclaración sobre el horario",
	})
	require.NoError(t, err)
	assert.Len(t, f.notifications.stored, 1)

	thread, err := f.svc.ListOfferQuestions(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Len(t, thread, 2)
}

func TestAnswerQuestionByTokenNotifiesTheAsker(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	published := f.createPublished(t, owner, validCreateRequest())

	asker := kernel.NewUserID("curious-1")
	question, err := f.svc.AskQuestion(context.Background(), asker, published.ID, offer.AskQuestionRequest{
		Question: "¿Incluye colación?",
	})
	require.NoError(t, err)

	_, err = f.svc.AnswerQuestionByToken(context.Background(), "wrong-token", question.ID, offer.AnswerQuestionRequest{
		Answer: "Sí",
	})
	assert.Error(t, err)

	_, err = f.svc.AnswerQuestionByToken(context.Background(), published.Token, question.ID, offer.AnswerQuestionRequest{
		Answer: " ",
	})
	assert.Error(t, err)

	answered, err := f.svc.AnswerQuestionByToken(context.Background(), published.Token, question.ID, offer.AnswerQuestionRequest{
		Answer: "Sí, colación incluida",
	})
	require.NoError(t, err)
	assert.True(t, answered.Answered)
	assert.Equal(t, "Sí, colación incluida", answered.Answer)

	askerFeed := make([]string, 0)
	for _, n := range f.notifications.stored {
		if n.UserID == asker {
			askerFeed = append(askerFeed, n.Message)
		}
	}
	require.Len(t, askerFeed, 1)
	assert.Contains(t, askerFeed[0], "Respondieron tu pregunta")
}

func TestAnswerQuestionRejectsTokenOfAnotherOffer(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	first := f.createPublished(t, owner, validCreateRequest())

	other := validCreateRequest()
	other.Title = "Contador General"
	second := f.createPublished(t, owner, other)

	question, err := f.svc.AskQuestion(context.Background(), kernel.NewUserID("curious-1"), first.ID, offer.AskQuestionRequest{
		Question: "¿Sigue vigente?",
	})
	require.NoError(t, err)

	// The second offer's token cannot answer the first offer's question
	_, err = f.svc.AnswerQuestionByToken(context.Background(), second.Token, question.ID, offer.AnswerQuestionRequest{
		Answer: "Sí",
	})
	assert.Error(t, err)
}

func TestReportOfferQueuesForReview(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	published := f.createPublished(t, kernel.NewUserID("owner-1"), validCreateRequest())

	err := f.svc.ReportOffer(context.Background(), published.ID, offer.ReportOfferRequest{
		Reason: offer.ReportReasonFraud,
		Detail: "Piden depósito por adelantado",
	})
	require.NoError(t, err)

	err = f.svc.ReportOffer(context.Background(), published.ID, offer.ReportOfferRequest{Reason: "molesta"})
	assert.Error(t, err, "unknown reasons are rejected")

	err = f.svc.ReportOffer(context.Background(), kernel.NewOfferID("missing"), offer.ReportOfferRequest{
		Reason: offer.ReportReasonSpam,
	})
	assert.Error(t, err)

	queue, err := f.svc.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, offer.ReportReasonFraud, queue[0].Reason)
	assert.Equal(t, "Posible Estafa", queue[0].ReasonName)
	assert.Equal(t, "Piden depósito por adelantado", queue[0].Detail)
}

func TestListMyOffersIncludesTokens(t *testing.T) {
	f := newFixture()
	defer f.dispatcher.Stop()

	owner := kernel.NewUserID("owner-1")
	created, err := f.svc.CreateOffer(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)

	mine, err := f.svc.ListMyOffers(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.Token, mine[0].Token)

	other, err := f.svc.ListMyOffers(context.Background(), kernel.NewUserID("someone-else"))
	require.NoError(t, err)
	assert.Empty(t, other)
}
