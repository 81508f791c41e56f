package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/storage"
)

const userKey = "user"

var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and checks HS256 bearer tokens whose subject is the username.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration, now func() time.Time) *Tokens {
	if now == nil {
		now = time.Now
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: now}
}

func (t *Tokens) Issue(username string) (string, error) {
	return t.IssueAt(username, t.now().Add(t.ttl))
}

// IssueAt signs a token with an explicit expiry.
func (t *Tokens) IssueAt(username string, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(t.now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// requireUser rejects requests without a valid bearer token for a known user.
func (h *Handler) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	username, err := h.tokens.Parse(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.store.UserByUsername(username)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(userKey, user.User)
	c.Next()
}

func currentUser(c *gin.Context) domain.User {
	return c.MustGet(userKey).(domain.User)
}

func (h *Handler) signup(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "Username and password are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Signup failed")
		return
	}
	user, err := h.store.CreateUser(domain.User{Username: req.Username, Email: req.Email}, hash)
	if errors.Is(err, storage.ErrConflict) {
		msg := "Username already exists"
		if strings.HasPrefix(err.Error(), "email") {
			msg = "Email already exists"
		}
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Signup failed")
		return
	}
	h.respondWithToken(c, user)
}

func (h *Handler) login(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	rec, err := h.store.UserByUsername(strings.TrimSpace(req.Username))
	if err != nil || bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)) != nil {
		writeError(c, http.StatusBadRequest, "Invalid username or password")
		return
	}
	h.respondWithToken(c, rec.User)
}

func (h *Handler) respondWithToken(c *gin.Context, user domain.User) {
	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "token")
		return
	}
	c.JSON(http.StatusOK, domain.AuthResult{Token: token, User: &user})
}
