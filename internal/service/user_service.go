package service

import (
	"context"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/policy"
	"go-jobboard/internal/repo"
	"go-jobboard/pkg/utils"
)

type UserService struct {
	db    *gorm.DB
	users domain.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, users: repo.NewUserRepo(db)}
}

type SignupInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Company  string      `json:"company"`
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if len(name) < 2 {
		return nil, apperr.BadRequest("name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.BadRequest("please enter a valid email")
	}
	if len(in.Password) < 8 {
		return nil, apperr.BadRequest("password must be at least 8 characters")
	}
	if !domain.ValidSignupRole(in.Role) {
		return nil, apperr.BadRequest("role must be employer or jobSeeker")
	}

	company := strings.TrimSpace(in.Company)
	if in.Role == domain.RoleEmployer && company == "" {
		// Employers must carry a company name; default to the account name.
		company = name
	}
	if in.Role != domain.RoleEmployer {
		company = ""
	}

	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, apperr.Internal("signup failed", err)
	} else if existing != nil {
		return nil, apperr.BadRequest("user with this email already exists")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         in.Role,
		Company:      company,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Concurrent signup with the same email loses on the unique index.
		if isDupKey(err) {
			return nil, apperr.BadRequest("user with this email already exists")
		}
		return nil, apperr.Internal("signup failed", err)
	}
	return u, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("signin failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return u, nil
}

// Get serves the public profile; the credential hash never marshals.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("fetch user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

// UpdateProfileInput is the full set of self-editable fields. Credential,
// role and email are not part of it; they cannot ride along on a profile
// update.
type UpdateProfileInput struct {
	Name       *string                `json:"name"`
	Company    *string                `json:"company"`
	Location   *string                `json:"location"`
	Website    *string                `json:"website"`
	Bio        *string                `json:"bio"`
	Skills     *domain.StringList     `json:"skills"`
	Education  *domain.EducationList  `json:"education"`
	Experience *domain.ExperienceList `json:"experience"`
}

func (s *UserService) UpdateProfile(ctx context.Context, actor policy.Actor, id string, in UpdateProfileInput) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("fetch user failed", err)
	}
	if target == nil {
		return nil, apperr.NotFound("user not found")
	}
	if err := policy.CanUpdateProfile(actor, target); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, apperr.BadRequest("name must be at least 2 characters")
		}
		patch["name"] = name
	}
	if in.Company != nil {
		patch["company"] = strings.TrimSpace(*in.Company)
	}
	if in.Location != nil {
		patch["location"] = strings.TrimSpace(*in.Location)
	}
	if in.Website != nil {
		patch["website"] = strings.TrimSpace(*in.Website)
	}
	if in.Bio != nil {
		patch["bio"] = *in.Bio
	}
	if in.Skills != nil {
		patch["skills"] = *in.Skills
	}
	if in.Education != nil {
		patch["education"] = *in.Education
	}
	if in.Experience != nil {
		patch["experience"] = *in.Experience
	}

	if err := s.users.Update(ctx, id, patch); err != nil {
		return nil, apperr.Internal("update user failed", err)
	}
	return s.Get(ctx, id)
}
