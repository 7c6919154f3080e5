package org

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"givelink/internal/platform/metrics"
	"givelink/internal/registry"
	"givelink/internal/shortcode"
	"givelink/internal/validate"
	"givelink/pkg/domainerrors"
	"givelink/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CharityChecker

// CharityChecker confirms an EIN against the external charity registry.
type CharityChecker interface {
	Check(ctx context.Context, ein string) (registry.Result, error)
}

// CodeGenerator produces short redirect codes, rejecting taken candidates.
type CodeGenerator interface {
	Generate(ctx context.Context, taken shortcode.TakenFunc) (string, error)
}

// PasswordHasher is the credential-hashing collaborator. Implementations must
// never expose the plaintext.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
}

// TokenIssuer mints the access credential returned after registration.
type TokenIssuer interface {
	IssueToken(orgID uuid.UUID, email string) (string, error)
}

// ImageEncoder renders text into a scannable image payload.
type ImageEncoder interface {
	Encode(text string) (string, error)
}

// Service orchestrates one registration request: syntax validation, EIN
// uniqueness, registry verification, email uniqueness, credential hashing,
// code assignment, persistence, and token issuance, in that order. Each check
// short-circuits on failure; steps before hashing are pure reads.
type Service struct {
	directory Directory
	checker   CharityChecker
	codes     CodeGenerator
	hasher    PasswordHasher
	tokens    TokenIssuer
	encoder   ImageEncoder
	baseURL   string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(
	directory Directory,
	checker CharityChecker,
	codes CodeGenerator,
	hasher PasswordHasher,
	tokens TokenIssuer,
	encoder ImageEncoder,
	baseURL string,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		directory: directory,
		checker:   checker,
		codes:     codes,
		hasher:    hasher,
		tokens:    tokens,
		encoder:   encoder,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
		metrics:   m,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	result, err := s.register(ctx, req)
	s.observe(err)
	return result, err
}

func (s *Service) register(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.LongURL == "" || req.EIN == "" {
		return RegisterResult{}, domainerrors.New(domainerrors.CodeMissingFields, "missing required fields")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	ein := strings.TrimSpace(req.EIN)
	longURL := req.LongURL

	if name == "" || !validate.Email(email) || password == "" || !validate.URL(longURL) || !validate.EIN(ein) {
		return RegisterResult{}, domainerrors.New(domainerrors.CodeInvalidInput, "invalid input")
	}

	// EIN uniqueness runs before the registry call so the cheap local check
	// fails fast ahead of the expensive external one.
	if err := s.requireAbsent(ctx, FieldEIN, ein); err != nil {
		return RegisterResult{}, err
	}

	start := time.Now()
	verification, err := s.checker.Check(ctx, ein)
	s.metrics.RegistryLookupSeconds.Observe(time.Since(start).Seconds())
	s.metrics.RegistryLookupsTotal.WithLabelValues(string(verification)).Inc()
	switch verification {
	case registry.ResultVerified:
	case registry.ResultUnreachable:
		s.logger.Warn("registration blocked, charity registry unreachable", "error", err)
		return RegisterResult{}, domainerrors.New(domainerrors.CodeRegistryUnavailable, "charity registry unavailable, retry later")
	default:
		return RegisterResult{}, domainerrors.New(domainerrors.CodeEINNotVerified, "EIN is not a verified public charity")
	}

	if err := s.requireAbsent(ctx, FieldEmail, email); err != nil {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("hash credential", "error", err)
		return RegisterResult{}, domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}

	code, err := s.codes.Generate(ctx, func(ctx context.Context, candidate string) (bool, error) {
		_, err := s.directory.FindByShortCode(ctx, candidate)
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		s.logger.Error("assign short code", "error", err)
		return RegisterResult{}, domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}

	shortURL := s.baseURL + "/" + code
	qr, err := s.encoder.Encode(shortURL)
	if err != nil {
		s.logger.Error("encode qr image", "error", err)
		return RegisterResult{}, domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}

	created, err := s.directory.Create(ctx, Organization{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ShortCode:    code,
		TargetURL:    longURL,
		EIN:          ein,
		QRCode:       qr,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// A lost race after the uniqueness reads surfaces here.
		var dup DuplicateKeyError
		if errors.As(err, &dup) {
			return RegisterResult{}, conflictError(dup.Field)
		}
		s.logger.Error("persist organization", "error", err)
		return RegisterResult{}, domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}

	token, err := s.tokens.IssueToken(created.ID, created.Email)
	if err != nil {
		s.logger.Error("issue access token", "org_id", created.ID, "error", err)
		return RegisterResult{}, domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}

	s.logger.Info("organization registered", "org_id", created.ID, "short_code", created.ShortCode)

	return RegisterResult{
		ID:          created.ID,
		Name:        created.Name,
		Email:       created.Email,
		ShortCode:   created.ShortCode,
		ShortURL:    shortURL,
		QRCode:      created.QRCode,
		AccessToken: token,
	}, nil
}

// requireAbsent rejects the registration when a record with the given unique
// field value already exists.
func (s *Service) requireAbsent(ctx context.Context, field Field, value string) error {
	var err error
	switch field {
	case FieldEIN:
		_, err = s.directory.FindByEIN(ctx, value)
	case FieldEmail:
		_, err = s.directory.FindByEmail(ctx, value)
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Error("uniqueness lookup", "field", field, "error", err)
		return domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}
	return conflictError(field)
}

func conflictError(field Field) error {
	switch field {
	case FieldEmail:
		return domainerrors.New(domainerrors.CodeEmailAlreadyRegistered, "email already registered")
	case FieldEIN:
		return domainerrors.New(domainerrors.CodeEINAlreadyRegistered, "EIN already registered")
	default:
		// A short-code collision after rejection sampling is not the caller's
		// fault and is retryable.
		return domainerrors.New(domainerrors.CodeInternal, "registration failed")
	}
}

func (s *Service) observe(err error) {
	outcome := "success"
	var derr domainerrors.Error
	if errors.As(err, &derr) {
		outcome = string(derr.Code)
	} else if err != nil {
		outcome = string(domainerrors.CodeInternal)
	}
	s.metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
}
