// Package clientauth exchanges API client credentials for access tokens.
// Client secrets are configured as bcrypt hashes, never in plain text.
package clientauth

import (
	"context"
	"log/slog"
	"time"

	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/secrets"
	"esgtrack/pkg/requestcontext"
)

const tokenType = "Bearer"

// TokenIssuer mints access tokens for a subject.
type TokenIssuer interface {
	GenerateAccessToken(subject string, now time.Time, expiresIn time.Duration) (string, error)
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Service struct {
	clients map[string]string
	issuer  TokenIssuer
	ttl     time.Duration
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New builds the exchange over clients, a map of client ID to secret hash.
func New(clients map[string]string, issuer TokenIssuer, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		clients: clients,
		issuer:  issuer,
		ttl:     ttl,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exchange verifies the client secret and issues a token whose subject is the
// client ID. Unknown clients and wrong secrets fail the same way.
func (s *Service) Exchange(ctx context.Context, clientID, secret string) (*Token, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid client credentials")
	hash, known := s.clients[clientID]
	if !known {
		s.logger.WarnContext(ctx, "unknown api client",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", clientID,
		)
		return nil, invalid
	}
	if err := secrets.Verify(secret, hash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.logger.WarnContext(ctx, "api client secret mismatch",
				"request_id", requestcontext.RequestID(ctx),
				"client_id", clientID,
			)
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify client secret")
	}

	access, err := s.issuer.GenerateAccessToken(clientID, requestcontext.Now(ctx), s.ttl)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	s.logger.InfoContext(ctx, "access token issued",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", clientID,
	)
	return &Token{AccessToken: access, TokenType: tokenType, ExpiresIn: int(s.ttl.Seconds())}, nil
}
