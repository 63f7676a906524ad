package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

var (
	memberCaller = domain.Principal{AccountID: 7, Role: domain.RoleMember}
	adminCaller  = domain.Principal{AccountID: 1, Role: domain.RoleAdmin}
)

// newContext builds an echo context with the validator registered. A zero
// principal leaves the request unauthenticated.
func newContext(method, target, body string, p domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p.AccountID != 0 {
		middleware.SetPrincipal(c, p)
	}
	return c, rec
}

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.Account, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.Account, error)
	deleteFn func(ctx context.Context, p domain.Principal, password string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, p domain.Principal, password string) error {
	return s.deleteFn(ctx, p, password)
}

type stubAccountService struct {
	profileFn    func(ctx context.Context, p domain.Principal) (*domain.Account, error)
	replaceFn    func(ctx context.Context, p domain.Principal, profile domain.Profile) (*domain.Account, error)
	patchFn      func(ctx context.Context, p domain.Principal, patch domain.ProfilePatch) (*domain.Account, error)
	deactivateFn func(ctx context.Context, p domain.Principal, id int64) (*domain.Account, error)
	restoreFn    func(ctx context.Context, p domain.Principal, id int64) (*domain.Account, error)
	purgeFn      func(ctx context.Context, p domain.Principal, id int64) error
}

func (s *stubAccountService) Profile(ctx context.Context, p domain.Principal) (*domain.Account, error) {
	return s.profileFn(ctx, p)
}

func (s *stubAccountService) ReplaceProfile(ctx context.Context, p domain.Principal, profile domain.Profile) (*domain.Account, error) {
	return s.replaceFn(ctx, p, profile)
}

func (s *stubAccountService) PatchProfile(ctx context.Context, p domain.Principal, patch domain.ProfilePatch) (*domain.Account, error) {
	return s.patchFn(ctx, p, patch)
}

func (s *stubAccountService) Deactivate(ctx context.Context, p domain.Principal, id int64) (*domain.Account, error) {
	return s.deactivateFn(ctx, p, id)
}

func (s *stubAccountService) Restore(ctx context.Context, p domain.Principal, id int64) (*domain.Account, error) {
	return s.restoreFn(ctx, p, id)
}

func (s *stubAccountService) Purge(ctx context.Context, p domain.Principal, id int64) error {
	return s.purgeFn(ctx, p, id)
}

type stubPostService struct {
	createFn     func(ctx context.Context, p domain.Principal, in ports.PostInput) (*domain.Post, error)
	getFn        func(ctx context.Context, id int64) (*domain.Post, error)
	updateFn     func(ctx context.Context, p domain.Principal, ref ports.PostRef, in ports.PostInput) (*domain.Post, error)
	deleteFn     func(ctx context.Context, p domain.Principal, ref ports.PostRef) (*domain.Post, error)
	deleteMineFn func(ctx context.Context, p domain.Principal) (int64, error)
	listFn       func(ctx context.Context, p domain.Principal, ownerID int64) ([]*domain.Post, error)
	listAllFn    func(ctx context.Context, p domain.Principal) ([]domain.PostWithOwner, error)
}

func (s *stubPostService) Create(ctx context.Context, p domain.Principal, in ports.PostInput) (*domain.Post, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubPostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) Update(ctx context.Context, p domain.Principal, ref ports.PostRef, in ports.PostInput) (*domain.Post, error) {
	return s.updateFn(ctx, p, ref, in)
}

func (s *stubPostService) Delete(ctx context.Context, p domain.Principal, ref ports.PostRef) (*domain.Post, error) {
	return s.deleteFn(ctx, p, ref)
}

func (s *stubPostService) DeleteMine(ctx context.Context, p domain.Principal) (int64, error) {
	return s.deleteMineFn(ctx, p)
}

func (s *stubPostService) ListByOwner(ctx context.Context, p domain.Principal, ownerID int64) ([]*domain.Post, error) {
	return s.listFn(ctx, p, ownerID)
}

func (s *stubPostService) ListAll(ctx context.Context, p domain.Principal) ([]domain.PostWithOwner, error) {
	return s.listAllFn(ctx, p)
}
