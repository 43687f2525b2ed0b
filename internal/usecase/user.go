package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/email"
	"github.com/adilbekov/shopscout/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UserUsecase struct {
	users   repository.UserRepository
	email   email.Sender
	baseURL string
	logger  *slog.Logger
}

func NewUserUsecase(users repository.UserRepository, emailSender email.Sender, baseURL string, logger *slog.Logger) *UserUsecase {
	return &UserUsecase{
		users:   users,
		email:   emailSender,
		baseURL: baseURL,
		logger:  logger.With("component", "user_usecase"),
	}
}

type SignupInput struct {
	Type     string
	Name     string
	Email    string
	Password *string
	ImageURL *string
}

// Signup creates the user. A Google-style signup is verified immediately;
// otherwise a verification token is issued and emailed. When the email is
// already registered the existing record is returned untouched.
func (u *UserUsecase) Signup(ctx context.Context, input SignupInput) (*domain.User, bool, error) {
	existing, err := u.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	isGoogle := input.Type == "google"

	var hashed *string
	if !isGoogle && input.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		s := string(h)
		hashed = &s
	}

	user, err := u.users.Create(ctx, repository.CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		ImageURL: input.ImageURL,
		Password: hashed,
		Verified: isGoogle,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	if !isGoogle {
		if err := u.issueVerification(ctx, user); err != nil {
			return nil, false, err
		}
	}
	return user, false, nil
}

// Login checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller. An unverified user gets a fresh
// verification link and ErrUserNotVerified.
func (u *UserUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	stored := ""
	if user.Password != nil {
		stored = *user.Password
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Verified {
		if err := u.issueVerification(ctx, user); err != nil {
			return nil, err
		}
		return nil, domain.ErrUserNotVerified
	}
	return user, nil
}

// Verify consumes a verification token. The token row is deleted exactly
// once: a second call with the same token fails with ErrTokenNotFound and
// changes nothing.
func (u *UserUsecase) Verify(ctx context.Context, userID, token string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := u.users.FindToken(ctx, userID, token); err != nil {
		return nil, err
	}

	if err := u.users.MarkVerified(ctx, userID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	if err := u.users.DeleteToken(ctx, token); err != nil {
		return nil, fmt.Errorf("consume token: %w", err)
	}

	user.Verified = true
	return user, nil
}

// issueVerification replaces any previous token with a fresh 32-byte
// secret and emails the verification link. A failed send is logged but
// does not fail the flow: the link can be re-sent by logging in again.
func (u *UserUsecase) issueVerification(ctx context.Context, user *domain.User) error {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := u.users.ReplaceToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	link := fmt.Sprintf("%s/user/%s/verify/%s", u.baseURL, user.ID, token)
	body := fmt.Sprintf(
		`<p>Please verify your email:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	if err := u.email.Send(ctx, user.Email, "Verify Your Email", body); err != nil {
		u.logger.Warn("send verification email", "user_id", user.ID, "error", err)
	}
	return nil
}
