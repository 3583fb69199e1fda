package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/config"
	"github.com/mobishop/mobishop-backend/pkg/db"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/security"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const (
	// NotFoundMessage is shown by the storefront for unknown accounts.
	NotFoundMessage           = "Kullanıcı bulunamadı"
	invalidCredentialsMessage = "invalid credentials"
)

// EmailRewriter moves records owned by oldEmail to newEmail.
type EmailRewriter interface {
	RenameEmail(ctx context.Context, oldEmail, newEmail string) error
}

// OwnedCollection names a collection keyed by user email.
type OwnedCollection struct {
	Name     string
	Rewriter EmailRewriter
}

type Service interface {
	List(ctx context.Context, email string) ([]UserDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Authenticate(ctx context.Context, input AuthenticateInput) (*UserDTO, error)
	UpdateEmail(ctx context.Context, input UpdateEmailInput) (*UpdateEmailResult, error)
}

type ServiceParams struct {
	Repo        *Repository
	Password    config.PasswordConfig
	Collections []OwnedCollection
}

type service struct {
	repo        *Repository
	password    config.PasswordConfig
	collections []OwnedCollection
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repository required")
	}
	for _, c := range params.Collections {
		if c.Rewriter == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection "+c.Name+" has no rewriter")
		}
	}
	return &service{repo: params.Repo, password: params.Password, collections: params.Collections}, nil
}

// List returns every user, or the single user matching email.
func (s *service) List(ctx context.Context, email string) ([]UserDTO, error) {
	email = normalizeEmail(email)
	if email != "" {
		user, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []UserDTO{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
		return []UserDTO{*FromModel(user)}, nil
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	cred, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}
	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Phone:        trimmedOrNil(input.Phone),
		Salt:         cred.Salt,
		PasswordHash: cred.Hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		updates["phone"] = trimmedOrNil(input.Phone)
	}
	if input.Password != nil {
		cred, err := security.HashPassword(*input.Password, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
		}
		updates["salt"] = cred.Salt
		updates["password_hash"] = cred.Hash
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, mapRepoError(err, "update user")
		}
	}
	return s.Get(ctx, id)
}

// Authenticate checks a password. Unknown emails and wrong passwords get
// the same answer.
func (s *service) Authenticate(ctx context.Context, input AuthenticateInput) (*UserDTO, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	ok, err := security.VerifyPassword(input.Password, security.Credential{Salt: user.Salt, Hash: user.PasswordHash})
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return FromModel(user), nil
}

// UpdateEmail renames the account and then every collection that references
// it. Collection updates are attempted independently; failures are reported
// together once all have run.
func (s *service) UpdateEmail(ctx context.Context, input UpdateEmailInput) (*UpdateEmailResult, error) {
	oldEmail := normalizeEmail(input.OldEmail)
	newEmail := normalizeEmail(input.NewEmail)
	if oldEmail == "" || newEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "oldEmail and newEmail are required")
	}
	if oldEmail == newEmail {
		return &UpdateEmailResult{OK: true, Unchanged: true}, nil
	}

	if _, err := s.repo.FindByEmail(ctx, newEmail); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}

	user, err := s.repo.FindByEmail(ctx, oldEmail)
	if err != nil {
		return nil, mapRepoError(err, "load user")
	}
	if err := s.repo.Update(ctx, user.ID, map[string]any{"email": newEmail}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return nil, mapRepoError(err, "update user email")
	}

	var combined error
	var failed []string
	for _, c := range s.collections {
		if err := c.Rewriter.RenameEmail(ctx, oldEmail, newEmail); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("%s: %w", c.Name, err))
			failed = append(failed, c.Name)
		}
	}
	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "email update incomplete").
			WithDetails(map[string]any{"failed": failed})
	}
	return &UpdateEmailResult{OK: true}, nil
}

func mapRepoError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, NotFoundMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
