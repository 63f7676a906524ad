package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/99minutos/account-service/internal/core/domain"
)

func TestAccountHandler_Details(t *testing.T) {
	stub := &stubAccountService{
		profileFn: func(ctx context.Context, p domain.Principal) (*domain.Account, error) {
			return &domain.Account{ID: p.AccountID, Email: "m@x.com", Role: domain.RoleMember, PasswordHash: "$2a$secret"}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodGet, "/user/details", "", memberCaller)
	if err := h.Details(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data["id"] != float64(7) || resp.Data["email"] != "m@x.com" {
		t.Fatalf("unexpected payload: %+v", resp.Data)
	}
}

func TestAccountHandler_Replace_RequiresAllFields(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	c, _ := newContext(http.MethodPut, "/user_update", `{"name":"only"}`, memberCaller)
	if err := h.Replace(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAccountHandler_Patch_OnlyProvidedFields(t *testing.T) {
	stub := &stubAccountService{
		patchFn: func(ctx context.Context, p domain.Principal, patch domain.ProfilePatch) (*domain.Account, error) {
			if patch.City == nil || *patch.City != "Karachi" {
				t.Fatalf("city not passed: %+v", patch)
			}
			if patch.Name != nil || patch.Age != nil || patch.Gender != nil {
				t.Fatalf("absent fields were set: %+v", patch)
			}
			return &domain.Account{ID: p.AccountID, Profile: domain.Profile{City: *patch.City}}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodPatch, "/user_update", `{"city":"Karachi","email":"evil@x.com","role":"admin"}`, memberCaller)
	if err := h.Patch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Patch_BadGender(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	c, _ := newContext(http.MethodPatch, "/user_update", `{"gender":"robot"}`, memberCaller)
	if err := h.Patch(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
