package auth

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/config"
	"github.com/ekurtoglu/guidance/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(setupTestDB(t), config.Auth{
		SessionSecret: "test-secret",
		BcryptCost:    4, // Low cost for faster tests
	})
}

func TestService_Register(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name      string
		email     string
		password  string
		firstName string
		lastName  string
		wantErr   error
	}{
		{
			name:      "valid user",
			email:     "counselor@school.edu",
			password:  "password123",
			firstName: "Ayse",
			lastName:  "Demir",
			wantErr:   nil,
		},
		{
			name:     "missing email",
			email:    "",
			password: "password123",
			wantErr:  ErrEmailRequired,
		},
		{
			name:      "invalid email",
			email:     "not-an-email",
			password:  "password123",
			firstName: "A",
			lastName:  "B",
			wantErr:   ErrEmailInvalid,
		},
		{
			name:      "missing name",
			email:     "other@school.edu",
			password:  "password123",
			firstName: "",
			lastName:  "Demir",
			wantErr:   ErrNameRequired,
		},
		{
			name:      "short password",
			email:     "short@school.edu",
			password:  "short",
			firstName: "A",
			lastName:  "B",
			wantErr:   ErrPasswordTooShort,
		},
		{
			name:      "duplicate email",
			email:     "counselor@school.edu",
			password:  "password123",
			firstName: "Ayse",
			lastName:  "Demir",
			wantErr:   ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.email, tt.password, tt.firstName, tt.lastName)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register("  Counselor@School.EDU  ", "password123", "Ayse", "Demir")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "counselor@school.edu" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	// Uniqueness is case-insensitive
	if _, err := svc.Register("COUNSELOR@school.edu", "password123", "A", "B"); !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists for case variant, got %v", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register("counselor@school.edu", "password123", "Ayse", "Demir"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate("counselor@school.edu", "password123")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.Email != "counselor@school.edu" {
			t.Errorf("Wrong user returned: %q", user.Email)
		}
	})

	t.Run("mixed-case email", func(t *testing.T) {
		if _, err := svc.Authenticate(" Counselor@School.edu ", "password123"); err != nil {
			t.Errorf("Authenticate() with unnormalized email failed: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("counselor@school.edu", "wrongpassword")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@school.edu", "password123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	// Wrong password and unknown email must be indistinguishable
	t.Run("errors collapse", func(t *testing.T) {
		_, errWrongPass := svc.Authenticate("counselor@school.edu", "wrongpassword")
		_, errUnknown := svc.Authenticate("nobody@school.edu", "password123")
		if errWrongPass.Error() != errUnknown.Error() {
			t.Errorf("Credential errors differ: %q vs %q", errWrongPass, errUnknown)
		}
	})
}

func TestService_Authenticate_InactiveAccount(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register("inactive@school.edu", "password123", "Old", "Counselor")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := svc.SetActive(user.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	_, err = svc.Authenticate("inactive@school.edu", "password123")
	if !errors.Is(err, ErrAccountInactive) {
		t.Errorf("Expected ErrAccountInactive, got %v", err)
	}

	// Wrong password on an inactive account must not leak the inactive state
	_, err = svc.Authenticate("inactive@school.edu", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_ChangePassword(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register("counselor@school.edu", "password123", "Ayse", "Demir")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrongpassword", "newpassword1"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected ErrInvalidPassword, got %v", err)
	}

	if err := svc.ChangePassword(user.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Authenticate("counselor@school.edu", "newpassword1"); err != nil {
		t.Errorf("Authenticate() with new password failed: %v", err)
	}
	if _, err := svc.Authenticate("counselor@school.edu", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Old password still works: %v", err)
	}
}

func TestService_EnsureUser(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.EnsureUser("dev@school.edu", "devpass123", "Dev", "Counselor")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	second, err := svc.EnsureUser("dev@school.edu", "different1", "Other", "Name")
	if err != nil {
		t.Fatalf("EnsureUser() second call error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("EnsureUser created a duplicate: %d vs %d", first.ID, second.ID)
	}
}
