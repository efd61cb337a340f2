package apiv1

import (
	"site-tools-backend/controllers"
	spaceusershander "site-tools-backend/lib/space/users/hander"
	"site-tools-backend/middleware"
	apimodels "site-tools-backend/models/api"
	spaceapimodels "site-tools-backend/models/api/space"

	"github.com/gofiber/fiber/v2"
)

type profileController struct {
	controllers.BaseAPIController
}

func InitProfileRouters(app *fiber.App) {
	controller := profileController{}
	app.Route("user_profile", func(route fiber.Router) {
		route.Use(middleware.AuthorizationRequired())
		route.Use(middleware.RbacMiddleware())
		route.Get("", controller.GetProfile)
		route.Put("", controller.UpdateProfile)
		route.Put("push", controller.UpdatePushSettings)
	})
}

// @Summary Профиль текущего пользователя
// @Tags Профиль пользователя
// @Description Профиль текущего пользователя с настройками уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=spaceapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user_profile [get]
func (c *profileController) GetProfile(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	profile, err := spaceusershander.Instance.GetProfile(spaceID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(profile))
}

// @Summary Обновить профиль
// @Tags Профиль пользователя
// @Description Обновить профиль текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.ProfileUpdateData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user_profile [put]
func (c *profileController) UpdateProfile(ctx *fiber.Ctx) error {
	var payload spaceapimodels.ProfileUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err := spaceusershander.Instance.UpdateProfile(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Обновить настройки уведомлений
// @Tags Профиль пользователя
// @Description Обновить настройки уведомлений по событиям
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.UpdatePushSettings	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user_profile/push [put]
func (c *profileController) UpdatePushSettings(ctx *fiber.Ctx) error {
	var payload spaceapimodels.UpdatePushSettings
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err := spaceusershander.Instance.UpdatePushSettings(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления настроек уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
