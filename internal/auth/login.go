package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"givelink/internal/org"
	"givelink/pkg/domainerrors"
	"givelink/pkg/platform/sentinel"
)

// CredentialReader is the slice of the directory a login needs.
type CredentialReader interface {
	FindByEmail(ctx context.Context, email string) (org.Organization, error)
}

// TokenIssuer mints the access credential after a successful login.
type TokenIssuer interface {
	IssueToken(orgID uuid.UUID, email string) (string, error)
}

// Verifier checks a submitted secret against a stored hash.
type Verifier interface {
	Compare(hash []byte, password string) error
}

// LoginService authenticates an organization by email and password and issues
// the same credential type as registration. Unknown email and wrong password
// are indistinguishable to the caller.
type LoginService struct {
	directory CredentialReader
	verifier  Verifier
	tokens    TokenIssuer
	logger    *slog.Logger
}

func NewLoginService(directory CredentialReader, verifier Verifier, tokens TokenIssuer, logger *slog.Logger) *LoginService {
	return &LoginService{
		directory: directory,
		verifier:  verifier,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *LoginService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", domainerrors.New(domainerrors.CodeUnauthorized, "invalid credentials")
	}

	o, err := s.directory.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", domainerrors.New(domainerrors.CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		s.logger.Error("login lookup", "error", err)
		return "", domainerrors.New(domainerrors.CodeInternal, "login failed")
	}

	if err := s.verifier.Compare(o.PasswordHash, password); err != nil {
		return "", domainerrors.New(domainerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.IssueToken(o.ID, o.Email)
	if err != nil {
		s.logger.Error("issue login token", "org_id", o.ID, "error", err)
		return "", domainerrors.New(domainerrors.CodeInternal, "login failed")
	}
	return token, nil
}
