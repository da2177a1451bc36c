package session

import (
	"errors"

	"github.com/WriteMind/blog-service/internal/model"
	"github.com/WriteMind/blog-service/pkg/utils"
)

var errInvalidIdentity = errors.New("token carries no user identity")

// SignInWithToken derives the session identity from a token issued by the
// external auth service.
func (s *Session) SignInWithToken(token string, secret []byte) error {
	claims, err := utils.DecodeJWT(token, secret)
	if err != nil {
		return err
	}

	user := model.User{
		ID:    asClaimString(claims["sub"]),
		Name:  asClaimString(claims["name"]),
		Admin: claims["admin"] == true,
	}
	if user.ID == "" {
		return errInvalidIdentity
	}

	s.SetUser(user)
	return nil
}

func asClaimString(v any) string {
	s, _ := v.(string)
	return s
}
