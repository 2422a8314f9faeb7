package services

import (
	"context"
	"testing"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/auth"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/models/dtos/requests"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	store := setupTestStore(t)
	_, _, accounts, _ := testRepos(t, store)
	tokens := auth.NewTokenService([]byte("test-secret"))
	return NewAccountService(accounts, tokens, nil)
}

func TestAccountService_Login_DefaultAdmin(t *testing.T) {
	service := newAccountService(t)

	token, _, principal, err := service.Login(context.Background(), &requests.LoginRequest{
		Username: "police",
		Password: "POLICE1234",
	})
	if err != nil {
		t.Fatalf("Expected login to succeed, got %v", err)
	}
	if token == "" {
		t.Error("Expected a token")
	}
	if principal.Role != constants.RoleAdministrator {
		t.Errorf("Expected administrator role, got %s", principal.Role)
	}
}

func TestAccountService_Login_BadPassword(t *testing.T) {
	service := newAccountService(t)

	_, _, _, err := service.Login(context.Background(), &requests.LoginRequest{
		Username: "POLICE",
		Password: "wrong",
	})
	if !apperrors.HasKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("Expected unauthorized, got %v", err)
	}
}

func TestAccountService_Login_MissingFields(t *testing.T) {
	service := newAccountService(t)

	_, _, _, err := service.Login(context.Background(), &requests.LoginRequest{Username: "POLICE"})
	if !apperrors.HasKind(err, apperrors.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestAccountService_Create_DuplicateUsernameCaseInsensitive(t *testing.T) {
	service := newAccountService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, &requests.CreateAccountRequest{
		Username: "clerk",
		Password: "secret123",
		Role:     "Data Entry",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := service.Create(ctx, &requests.CreateAccountRequest{
		Username: "CLERK",
		Password: "other456",
		Role:     "Viewer",
	})
	if !apperrors.HasKind(err, apperrors.KindConflict) {
		t.Fatalf("Expected conflict, got %v", err)
	}
}

func TestAccountService_Create_UnknownRole(t *testing.T) {
	service := newAccountService(t)

	_, err := service.Create(context.Background(), &requests.CreateAccountRequest{
		Username: "clerk",
		Password: "secret123",
		Role:     "Supervisor",
	})
	if !apperrors.HasKind(err, apperrors.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestAccountService_Delete_LastAdminRejected(t *testing.T) {
	service := newAccountService(t)
	ctx := context.Background()

	// The seeded POLICE account is the only administrator.
	accounts, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("Expected only the seeded admin, got %d accounts", len(accounts))
	}

	err = service.Delete(ctx, accounts[0].ID)
	if !apperrors.HasKind(err, apperrors.KindConflict) {
		t.Fatalf("Expected conflict deleting last admin, got %v", err)
	}
}

func TestAccountService_Delete_NonLastAdminSucceeds(t *testing.T) {
	service := newAccountService(t)
	ctx := context.Background()

	second, err := service.Create(ctx, &requests.CreateAccountRequest{
		Username: "admin2",
		Password: "secret123",
		Role:     "Administrator",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}
}

func TestAccountService_Delete_ViewerAlwaysAllowed(t *testing.T) {
	service := newAccountService(t)
	ctx := context.Background()

	viewer, err := service.Create(ctx, &requests.CreateAccountRequest{
		Username: "viewer1",
		Password: "secret123",
		Role:     "Viewer",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.Delete(ctx, viewer.ID); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}
}

func TestAccountService_UpdateRole(t *testing.T) {
	service := newAccountService(t)
	ctx := context.Background()

	account, err := service.Create(ctx, &requests.CreateAccountRequest{
		Username: "clerk",
		Password: "secret123",
		Role:     "Data Entry",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.UpdateRole(ctx, account.ID, &requests.UpdateAccountRoleRequest{Role: "Viewer"}); err != nil {
		t.Fatalf("update role failed: %v", err)
	}

	err = service.UpdateRole(ctx, account.ID, &requests.UpdateAccountRoleRequest{Role: "Chief"})
	if !apperrors.HasKind(err, apperrors.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}
