package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/config"
)

// sessionIssuer is written to and required in every session token.
const sessionIssuer = "resume-recommender"

// SessionClaims ties a chat session to a stored analysis.
type SessionClaims struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	jwt.RegisteredClaims
}

// SessionService issues and validates chat session tokens. A token lets the
// client continue chatting about an analysis without resending the resume
// and job posting.
type SessionService struct {
	config *config.SessionConfig
	now    func() time.Time
}

// NewSessionService creates a session service with the given configuration.
func NewSessionService(cfg *config.SessionConfig) *SessionService {
	return &SessionService{config: cfg, now: time.Now}
}

// IssueToken signs a token for analysisID.
func (s *SessionService) IssueToken(analysisID uuid.UUID) (string, error) {
	if analysisID == uuid.Nil {
		return "", fmt.Errorf("analysis ID is required")
	}

	now := s.now()
	claims := &SessionClaims{
		AnalysisID: analysisID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature and expiry and returns the claims.
// Every failure is an *ErrInvalidSession.
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, &ErrInvalidSession{Reason: errors.New("token is empty")}
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, &ErrInvalidSession{Reason: err}
	}
	if !token.Valid || claims.AnalysisID == uuid.Nil {
		return nil, &ErrInvalidSession{Reason: errors.New("token is not valid")}
	}

	return claims, nil
}
