package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "test-session-secret-minimum-16"

func newTestSessionService(expirationHours int) *SessionService {
	return NewSessionService(&config.SessionConfig{
		Secret:          testSessionSecret,
		ExpirationHours: expirationHours,
	})
}

func TestSessionService_RoundTrip(t *testing.T) {
	service := newTestSessionService(24)
	analysisID := uuid.New()

	token, err := service.IssueToken(analysisID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, analysisID, claims.AnalysisID)
	assert.Equal(t, sessionIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionService_IssueRequiresAnalysis(t *testing.T) {
	_, err := newTestSessionService(24).IssueToken(uuid.Nil)
	assert.Error(t, err)
}

func TestSessionService_Expired(t *testing.T) {
	service := newTestSessionService(1)
	token, err := service.IssueToken(uuid.New())
	require.NoError(t, err)

	service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = service.ValidateToken(token)

	var sessionErr *ErrInvalidSession
	require.ErrorAs(t, err, &sessionErr)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionService_WrongSecret(t *testing.T) {
	token, err := newTestSessionService(24).IssueToken(uuid.New())
	require.NoError(t, err)

	other := NewSessionService(&config.SessionConfig{Secret: "a-completely-different-secret", ExpirationHours: 24})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestSessionService_RejectsMalformed(t *testing.T) {
	service := newTestSessionService(24)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.ValidateToken(token)
		var sessionErr *ErrInvalidSession
		assert.ErrorAs(t, err, &sessionErr, "token %q", token)
	}
}

func TestSessionService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &SessionClaims{
		AnalysisID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestSessionService(24).ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionService_RejectsForeignIssuer(t *testing.T) {
	claims := &SessionClaims{
		AnalysisID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSessionSecret))
	require.NoError(t, err)

	_, err = newTestSessionService(24).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
