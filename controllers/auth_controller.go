package controllers

import (
	"TeamChat/middlewares"
	"TeamChat/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

var authService AuthServiceInterface
var userService UserServiceInterface

func SetAuthService(service AuthServiceInterface) {
	authService = service
}

func SetUserService(service UserServiceInterface) {
	userService = service
}

func SignUp(c *gin.Context) {
	var input services.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	result, err := authService.SignUp(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func SignIn(c *gin.Context) {
	var input services.SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	result, err := authService.SignIn(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func CurrentUser(c *gin.Context) {
	user, err := userService.CurrentUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	var input services.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := userService.UpdateProfile(c.Request.Context(), middlewares.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
