package authutils

import (
	"testing"

	"site-tools-backend/config"
	"site-tools-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testConfig() {
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 3600
	config.Conf = conf
}

func TestJwt(t *testing.T) {
	testConfig()
	t.Run("токен содержит заявленные клеймы", func(t *testing.T) {
		tokenString, err := GetToken("user1", "Иван Петров", "space1", false, models.SiteManagerRole)
		require.Nil(t, err)
		require.NotEmpty(t, tokenString)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.Conf.Auth.JWTSecret), nil
		})
		require.Nil(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		require.Equal(t, "user1", claims["sub"])
		require.Equal(t, "space1", claims["space"])
		require.Equal(t, string(models.SiteManagerRole), claims["role"])
		require.Equal(t, false, claims["admin"])
	})

	t.Run("подпись с другим секретом не проходит", func(t *testing.T) {
		tokenString, err := GetToken("user1", "Иван Петров", "space1", true, models.SpaceAdminRole)
		require.Nil(t, err)

		_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte("wrong-secret"), nil
		})
		require.NotNil(t, err)
	})

	t.Run("md5 хеш пароля стабилен", func(t *testing.T) {
		require.Equal(t, GetMD5Hash("password"), GetMD5Hash("password"))
		require.NotEqual(t, GetMD5Hash("password"), GetMD5Hash("password1"))
		require.Len(t, GetMD5Hash("password"), 32)
	})
}
