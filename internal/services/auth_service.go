package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"homeservices/internal/domain"
	"homeservices/internal/metrics"
	"homeservices/internal/session"
	"homeservices/internal/utils"
)

// AuthService authenticates the single configured admin and issues session tokens.
type AuthService struct {
	AdminUser     string
	AdminPass     string
	AdminPassHash string
	Secret        []byte
	TTL           time.Duration
	Sessions      session.Store
	Log           *zap.Logger
	Now           func() time.Time
}

type adminClaims struct {
	jwt.RegisteredClaims
}

// Login checks the credentials and returns a signed token for a new session.
func (s AuthService) Login(ctx context.Context, username, password string) (string, domain.AdminSession, error) {
	reqID := utils.RequestIDFrom(ctx)

	if !s.credentialsMatch(username, password) {
		metrics.AdminLogins.WithLabelValues(metrics.OutcomeRejected).Inc()
		utils.LogEvent(s.Log, reqID, "auth", "login_rejected", "invalid admin credentials")
		return "", domain.AdminSession{}, domain.UnauthorizedError{Reason: "invalid credentials"}
	}

	now := s.now()
	sess := domain.AdminSession{
		ID:        uuid.NewString(),
		Username:  s.AdminUser,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.Sessions.Save(ctx, sess.ID, s.TTL); err != nil {
		metrics.AdminLogins.WithLabelValues(metrics.OutcomeError).Inc()
		return "", domain.AdminSession{}, domain.UpstreamError{Service: "session store", Op: "save", Err: err}
	}

	claims := adminClaims{jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   sess.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		metrics.AdminLogins.WithLabelValues(metrics.OutcomeError).Inc()
		return "", domain.AdminSession{}, domain.InternalError{Msg: "sign session token", Err: err}
	}

	metrics.AdminLogins.WithLabelValues(metrics.OutcomeOK).Inc()
	utils.LogEvent(s.Log, reqID, "auth", "login", "admin session started", zap.String("sid", sess.ID))
	return token, sess, nil
}

// Verify validates the token signature and expiry and that its session was not revoked.
func (s AuthService) Verify(ctx context.Context, token string) (domain.AdminSession, error) {
	if token == "" {
		return domain.AdminSession{}, domain.UnauthorizedError{Reason: "no session"}
	}
	claims, err := s.parse(token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.AdminSession{}, domain.UnauthorizedError{Reason: "invalid token", Err: err}
	}
	if s.AdminUser == "" || claims.Subject != s.AdminUser {
		return domain.AdminSession{}, domain.UnauthorizedError{Reason: "unknown subject"}
	}

	ok, err := s.Sessions.Exists(ctx, claims.ID)
	if err != nil {
		return domain.AdminSession{}, domain.UpstreamError{Service: "session store", Op: "lookup", Err: err}
	}
	if !ok {
		return domain.AdminSession{}, domain.UnauthorizedError{Reason: "session revoked"}
	}

	sess := domain.AdminSession{ID: claims.ID, Username: claims.Subject}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Logout revokes the session behind token. Unparseable or foreign tokens are ignored.
func (s AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, claims.ID); err != nil {
		return domain.UpstreamError{Service: "session store", Op: "delete", Err: err}
	}
	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "auth", "logout", "admin session revoked", zap.String("sid", claims.ID))
	return nil
}

func (s AuthService) parse(token string, opts ...jwt.ParserOption) (*adminClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		if len(s.Secret) == 0 {
			return nil, errors.New("empty signing secret")
		}
		return s.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// credentialsMatch never accepts an empty configured user or password.
func (s AuthService) credentialsMatch(username, password string) bool {
	if s.AdminUser == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.AdminUser)) == 1

	var passOK bool
	switch {
	case s.AdminPassHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(s.AdminPassHash), []byte(password)) == nil
	case s.AdminPass != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.AdminPass)) == 1
	}
	return userOK && passOK
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASS_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ValidationError{Field: "password", Msg: "password is required"}
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
