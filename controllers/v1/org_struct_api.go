package apiv1

import (
	"io"

	"site-tools-backend/controllers"
	orgstructload "site-tools-backend/lib/org-struct-load"
	orgtreehandler "site-tools-backend/lib/org-tree"
	scopehandler "site-tools-backend/lib/scope"
	"site-tools-backend/middleware"
	apimodels "site-tools-backend/models/api"
	orgapimodels "site-tools-backend/models/api/org"

	"github.com/gofiber/fiber/v2"
)

type orgStructController struct {
	controllers.BaseAPIController
}

// лимит размера xlsx с оргструктурой
const maxImportFileSize = 10 << 20

func InitOrgStructRouters(app *fiber.App) {
	controller := orgStructController{}
	app.Route("org_struct", func(route fiber.Router) {
		route.Use(middleware.RbacMiddleware())
		route.Get("list", controller.List)
		route.Get("scope", controller.GetScope)
		route.Post("", controller.Create)
		route.Post("import", middleware.WithBodyLimit(maxImportFileSize), controller.Import)
		route.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.Get)
			idRoute.Get("path", controller.GetPath)
			idRoute.Put("", controller.Update)
			idRoute.Delete("", controller.Delete)
		})
	})
}

// @Summary Список подразделений
// @Tags Оргструктура
// @Description Список подразделений пространства
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]orgapimodels.OrgUnitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/list [get]
func (c *orgStructController) List(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	list, err := orgtreehandler.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подразделений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Доступные подразделения
// @Tags Оргструктура
// @Description Подразделения, входящие в скоуп текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=orgapimodels.ScopeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/scope [get]
func (c *orgStructController) GetScope(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	view, err := scopehandler.Instance.GetScopeView(spaceID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доступных подразделений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Создать подразделение
// @Tags Оргструктура
// @Description Создать подразделение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		orgapimodels.OrgUnitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct [post]
func (c *orgStructController) Create(ctx *fiber.Ctx) error {
	var payload orgapimodels.OrgUnitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := orgtreehandler.Instance.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания подразделения")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Импорт оргструктуры
// @Tags Оргструктура
// @Description Импорт оргструктуры пространства из xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file				formData	file 	true 	"xlsx файл"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/import [post]
func (c *orgStructController) Import(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка при получении файла импорта")
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка при чтении файла импорта")
	}
	spaceID := middleware.GetUserSpace(ctx)
	created, err := orgstructload.ImportOrgStruct(ctx.UserContext(), spaceID, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка импорта оргструктуры")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(created))
}

// @Summary Получить подразделение
// @Tags Оргструктура
// @Description Получить подразделение по ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"org unit ID"
// @Success 200 {object} apimodels.Response{data=orgapimodels.OrgUnitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/{id} [get]
func (c *orgStructController) Get(ctx *fiber.Ctx) error {
	unitID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	unit, err := orgtreehandler.Instance.Get(spaceID, unitID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(unit))
}

// @Summary Путь до подразделения
// @Tags Оргструктура
// @Description Путь от корня дерева до подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"org unit ID"
// @Success 200 {object} apimodels.Response{data=orgapimodels.OrgUnitPathView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/{id}/path [get]
func (c *orgStructController) GetPath(ctx *fiber.Ctx) error {
	unitID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	path, err := orgtreehandler.Instance.GetPath(spaceID, unitID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пути до подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(path))
}

// @Summary Обновить подразделение
// @Tags Оргструктура
// @Description Обновить подразделение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"org unit ID"
// @Param	body				body		orgapimodels.OrgUnitData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/{id} [put]
func (c *orgStructController) Update(ctx *fiber.Ctx) error {
	unitID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload orgapimodels.OrgUnitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = orgtreehandler.Instance.Update(spaceID, unitID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить подразделение
// @Tags Оргструктура
// @Description Удалить подразделение вместе с вложенными
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"org unit ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/org_struct/{id} [delete]
func (c *orgStructController) Delete(ctx *fiber.Ctx) error {
	unitID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = orgtreehandler.Instance.Delete(spaceID, unitID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
