package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidClaims = errors.New("invalid token claims")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"type":    "access",
		"exp":     expiresAt,
	}
	if u.GroupID != nil {
		claims["group_id"] = *u.GroupID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ActorFromClaims rebuilds the caller from access token claims.
func ActorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	if t, _ := claims["type"].(string); t != "access" {
		return user.Actor{}, fmt.Errorf("%w: not an access token", ErrInvalidClaims)
	}

	userID, ok := claimInt(claims["user_id"])
	if !ok {
		return user.Actor{}, fmt.Errorf("%w: user_id", ErrInvalidClaims)
	}

	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if _, known := user.RolePermissions[role]; !known {
		return user.Actor{}, fmt.Errorf("%w: role", ErrInvalidClaims)
	}

	actor := user.Actor{UserID: userID, Role: role}
	if gid, ok := claimInt(claims["group_id"]); ok {
		actor.GroupID = &gid
	}
	return actor, nil
}

// claimInt accepts the numeric shapes a decoded JSON claim can take.
func claimInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
