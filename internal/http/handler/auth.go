package handler

import (
	"github.com/gofiber/fiber/v2"

	"travelapi/internal/http/middleware"
	"travelapi/internal/service"
)

// SignUp godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.Credentials true "email and password"
// @Success 201 {object} service.Session
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /auth/signup [post]
func SignUp(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.Credentials
		if err := parseJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		sess, err := svc.SignUp(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// SignIn godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.Credentials true "email and password"
// @Success 200 {object} service.Session
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/signin [post]
func SignIn(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.Credentials
		if err := parseJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		sess, err := svc.SignIn(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sess)
	}
}

// SignOut godoc
// @Summary Revoke the current session token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/signout [post]
func SignOut(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(middleware.TokenLocalKey).(string)
		if err := svc.SignOut(c.UserContext(), token); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CurrentUser godoc
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Router /auth/me [get]
func CurrentUser(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.CurrentUser(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	}
}
