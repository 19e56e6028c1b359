package accountsrv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redlaboral/portal/marketplace/account"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/mailx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	users map[kernel.UserID]*account.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[kernel.UserID]*account.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *account.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id kernel.UserID) (*account.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, account.ErrUserNotFound()
	}
	return u, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email kernel.Email) (*account.User, error) {
	for _, u := range r.users {
		if u.Email == email.Normalized() {
			return u, nil
		}
	}
	return nil, account.ErrUserNotFound()
}

func (r *memoryUserRepo) Update(_ context.Context, id kernel.UserID, u *account.User) error {
	if _, ok := r.users[id]; !ok {
		return account.ErrUserNotFound()
	}
	r.users[id] = u
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id kernel.UserID) error {
	if _, ok := r.users[id]; !ok {
		return account.ErrUserNotFound()
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *memoryUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type countingMailer struct {
	mu   sync.Mutex
	sent []mailx.Message
}

func (m *countingMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService() (*AccountService, *memoryUserRepo, *countingMailer, *mailx.Dispatcher) {
	repo := newMemoryUserRepo()
	mailer := &countingMailer{}
	dispatcher := mailx.NewDispatcher(mailer, 1, 8, time.Second)
	tokens := auth.NewJWTTokenService("test-secret", "portal-test", time.Hour)
	service := NewAccountService(repo, auth.NewBcryptPasswordService(4), tokens, dispatcher)
	return service, repo, mailer, dispatcher
}

func TestRegisterAndLogin(t *testing.T) {
	service, _, mailer, dispatcher := newTestService()

	registered, err := service.Register(context.Background(), account.RegisterRequest{
		Email: "Maria@Example.com", Name: "María", Password: "secreto123", Role: auth.RoleCandidate,
	})
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("maria@example.com"), registered.User.Email)
	assert.NotEmpty(t, registered.AccessToken)

	dispatcher.Stop()
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "¡Bienvenido a la comunidad!", mailer.sent[0].Subject)

	logged, err := service.Login(context.Background(), account.LoginRequest{
		Email: "maria@example.com", Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	service, _, _, dispatcher := newTestService()
	defer dispatcher.Stop()

	cases := []account.RegisterRequest{
		{Email: "not-an-email", Name: "x", Password: "secreto123", Role: auth.RoleCandidate},
		{Email: "a@example.com", Name: "  ", Password: "secreto123", Role: auth.RoleCandidate},
		{Email: "a@example.com", Name: "x", Password: "corta", Role: auth.RoleCandidate},
		{Email: "a@example.com", Name: "x", Password: "secreto123", Role: auth.RoleAdmin},
	}

	for _, req := range cases {
		_, err := service.Register(context.Background(), req)
		assert.Error(t, err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _, dispatcher := newTestService()
	defer dispatcher.Stop()

	req := account.RegisterRequest{Email: "dup@example.com", Name: "x", Password: "secreto123", Role: auth.RoleCompany}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _, dispatcher := newTestService()
	defer dispatcher.Stop()

	_, err := service.Register(context.Background(), account.RegisterRequest{
		Email: "p@example.com", Name: "x", Password: "secreto123", Role: auth.RoleCandidate,
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), account.LoginRequest{Email: "p@example.com", Password: "incorrecta"})
	assert.Error(t, err)

	_, err = service.Login(context.Background(), account.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.Error(t, err)
}

func TestDeleteAccount(t *testing.T) {
	service, repo, _, dispatcher := newTestService()
	defer dispatcher.Stop()

	registered, err := service.Register(context.Background(), account.RegisterRequest{
		Email: "bye@example.com", Name: "x", Password: "secreto123", Role: auth.RoleCandidate,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(context.Background(), registered.User.ID))
	_, err = repo.GetByID(context.Background(), registered.User.ID)
	assert.Error(t, err)
}
