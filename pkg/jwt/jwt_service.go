package jwt

import (
	"errors"
	"fmt"
	"time"

	"Expiry-Food-Track/domain"

	"github.com/golang-jwt/jwt/v4"
)

const (
	CookieName    = "token"
	TokenLifetime = 7 * 24 * time.Hour
)

type (
	JWTService interface {
		GenerateTokenUser(email string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetEmailByToken(token string) (string, error)
	}

	jwtUserClaim struct {
		Email string `json:"email"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "EXPIRY-FOOD-TRACK",
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(email string) (string, error) {
	issuedAt := j.now()
	claims := jwtUserClaim{
		email,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenLifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetEmailByToken(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenNotFound
	}

	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.Email == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Email, nil
}
