package controllers_test

import (
	"TeamChat/controllers"
	"TeamChat/models"
	"TeamChat/services"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSignUpHandler(t *testing.T) {
	r, _, auth, _ := setupTestRouter(t)

	input := services.SignUpInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"}
	auth.On("SignUp", input).Return(services.AuthResult{Token: "jwt", User: models.User{ID: "U1"}}, nil)

	w := doRequest(r, http.MethodPost, "/auth/sign-up", "", input)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "jwt", decode(t, w)["token"])
}

func TestSignInHandlerMapsConflictAndUnauthorized(t *testing.T) {
	r, _, auth, _ := setupTestRouter(t)

	bad := services.SignInInput{Email: "ann@example.com", Password: "nope-nope"}
	auth.On("SignIn", bad).Return(services.AuthResult{}, fmt.Errorf("%w: invalid email or password", services.ErrUnauthorized))

	w := doRequest(r, http.MethodPost, "/auth/sign-in", "", bad)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	dup := services.SignUpInput{Name: "Ann", Email: "ann@example.com", Password: "other1"}
	auth.On("SignUp", dup).Return(services.AuthResult{}, fmt.Errorf("%w: email already registered", services.ErrConflict))

	w = doRequest(r, http.MethodPost, "/auth/sign-up", "", dup)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCurrentUserHandler(t *testing.T) {
	r, _, _, users := setupTestRouter(t)
	users.On("CurrentUser", "U1").Return(nil, nil)

	w := doRequest(r, http.MethodGet, "/users/me", "tok-u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestUpdateProfileHandler(t *testing.T) {
	r, _, _, users := setupTestRouter(t)
	status := models.StatusOnSite
	users.On("UpdateProfile", "U1", services.UpdateProfileInput{Status: &status}).
		Return(models.User{ID: "U1", Status: &status}, nil)

	w := doRequest(r, http.MethodPatch, "/users/me", "tok-u1", gin.H{"status": status})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, status, decode(t, w)["status"])
}

func TestHealth(t *testing.T) {
	r, _, _, _ := setupTestRouter(t)
	controllers.SetHealthCheck(nil)

	w := doRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}
