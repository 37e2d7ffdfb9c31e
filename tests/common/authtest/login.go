//go:build unit || e2e

package authtest

import (
	"context"
	"net/http"
	"testing"

	"court-booking/internal/handler/dto/request"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser walks the SMS flow: request a code, read it back from the
// database and exchange it for tokens.
func LoginUser(t *testing.T, db dbtest.DBLike, router *gin.Engine, phone string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Phone: phone}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var code string
	err := db.QueryRow(context.Background(), "SELECT verification_code FROM users WHERE phone = $1", phone).Scan(&code)
	require.NoError(t, err)

	w = httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/verify",
		request.VerifyRequest{Phone: phone, Code: code}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Extract access token from cookie
	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, phone, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, phone, role)
	return LoginUser(t, db, router, phone)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
