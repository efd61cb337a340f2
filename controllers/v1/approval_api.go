package apiv1

import (
	"fmt"
	"io"

	"site-tools-backend/controllers"
	approvalchainhandler "site-tools-backend/lib/approval/chain"
	approvalpolicy "site-tools-backend/lib/approval/policy"
	pdfexport "site-tools-backend/lib/export/pdf"
	xlsexport "site-tools-backend/lib/export/xls"
	filestorage "site-tools-backend/lib/file-storage"
	"site-tools-backend/lib/utils/helpers"
	"site-tools-backend/middleware"
	"site-tools-backend/models"
	apimodels "site-tools-backend/models/api"
	approvalapimodels "site-tools-backend/models/api/approval"
	dbmodels "site-tools-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type approvalController struct {
	controllers.BaseAPIController
}

// лимит размера вложения заявки
const maxAttachmentSize = 20 << 20

func InitApprovalRouters(app *fiber.App) {
	controller := approvalController{}
	app.Route("approval_request", func(route fiber.Router) {
		route.Use(middleware.RbacMiddleware())
		route.Post("", controller.Create)
		route.Post("list", controller.List)
		route.Post("policy_check", controller.PolicyCheck)
		route.Post("export/xls", controller.ExportXls)
		route.Get("file/:file_id", controller.DownloadFile)
		route.Delete("file/:file_id", controller.DeleteFile)
		route.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.Get)
			idRoute.Get("history", controller.History)
			idRoute.Put("approve", controller.Approve)
			idRoute.Put("reject", controller.Reject)
			idRoute.Put("cancel", controller.Cancel)
			idRoute.Get("files", controller.ListFiles)
			idRoute.Post("upload", middleware.WithBodyLimit(maxAttachmentSize), controller.UploadFile)
			idRoute.Get("export/pdf", controller.ExportPdf)
		})
	})
}

// @Summary Создать заявку на согласование
// @Tags Заявки на согласование
// @Description Создать заявку, цепочка этапов фиксируется по типу заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.ApprovalRequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request [post]
func (c *approvalController) Create(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalRequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := approvalchainhandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на согласование")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок
// @Tags Заявки на согласование
// @Description Список заявок в скоупе пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.ApprovalRequestFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/list [post]
func (c *approvalController) List(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	list, err := approvalchainhandler.Instance.List(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Проверка лимита согласования
// @Tags Заявки на согласование
// @Description Укладывается ли сумма в лимит роли пользователя и какая роль требуется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.PolicyCheckData	true	"request body"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.PolicyCheckView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/policy_check [post]
func (c *approvalController) PolicyCheck(ctx *fiber.Ctx) error {
	var payload approvalapimodels.PolicyCheckData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	role := middleware.GetSpaceRole(ctx)
	view, err := approvalpolicy.Instance.Check(role, payload.Category, payload.Amount)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки лимита согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Получить заявку
// @Tags Заявки на согласование
// @Description Получить заявку со всеми этапами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ApprovalRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id} [get]
func (c *approvalController) Get(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	view, err := approvalchainhandler.Instance.Get(spaceID, userID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary История решений по заявке
// @Tags Заявки на согласование
// @Description История решений по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/history [get]
func (c *approvalController) History(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalchainhandler.Instance.History(spaceID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Согласовать текущий этап
// @Tags Заявки на согласование
// @Description Согласовать текущий этап заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Param	body				body		approvalapimodels.ApprovalDecisionData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/approve [put]
func (c *approvalController) Approve(ctx *fiber.Ctx) error {
	return c.actOnStep(ctx, models.DecisionApprove)
}

// @Summary Отклонить заявку
// @Tags Заявки на согласование
// @Description Отклонить заявку на текущем этапе, комментарий обязателен
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Param	body				body		approvalapimodels.ApprovalDecisionData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/reject [put]
func (c *approvalController) Reject(ctx *fiber.Ctx) error {
	return c.actOnStep(ctx, models.DecisionReject)
}

func (c *approvalController) actOnStep(ctx *fiber.Ctx, decision models.ApprovalDecision) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ApprovalDecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalchainhandler.Instance.ActOnStep(spaceID, userID, requestID, decision, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка применения решения по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить заявку
// @Tags Заявки на согласование
// @Description Отменить заявку, доступно только инициатору
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Param	body				body		approvalapimodels.ApprovalCancelData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/cancel [put]
func (c *approvalController) Cancel(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ApprovalCancelData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalchainhandler.Instance.Cancel(spaceID, userID, requestID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список файлов заявки
// @Tags Вложения
// @Description Список файлов, приложенных к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/files [get]
func (c *approvalController) ListFiles(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := filestorage.Instance.ListRequestFiles(spaceID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка файлов заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Приложить файл к заявке
// @Tags Вложения
// @Description Приложить файл (счёт, смету, договор, фото) к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  	true 	"approval request ID"
// @Param   file				formData	file 		true 	"файл"
// @Param   type				formData	string 		true 	"тип файла (request_invoice/request_estimate/request_contract/request_photo)"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/upload [post]
func (c *approvalController) UploadFile(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileType := dbmodels.FileType(ctx.FormValue("type"))
	buffer, err := file.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка при получении файла")
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка при чтении файла")
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)

	// файл можно приложить только к доступной пользователю заявке
	if _, err := approvalchainhandler.Instance.Get(spaceID, userID, requestID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	fileInfo := dbmodels.UploadFileInfo{
		SpaceID:     spaceID,
		RequestID:   requestID,
		FileName:    file.Filename,
		FileType:    fileType,
		ContentType: helpers.GetFileContentType(file),
	}
	id, err := filestorage.Instance.UploadFile(ctx.UserContext(), fileInfo, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения файла заявки")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Скачать файл заявки
// @Tags Вложения
// @Description Скачать файл, приложенный к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	file_id 		path 		string  true 	"file ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/file/{file_id} [get]
func (c *approvalController) DownloadFile(ctx *fiber.Ctx) error {
	fileID, err := c.GetIDByKey(ctx, "file_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	body, rec, err := filestorage.Instance.GetFile(ctx.UserContext(), spaceID, fileID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения файла заявки")
	}
	if rec != nil && rec.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, rec.ContentType)
		ctx.Set(fiber.HeaderContentDisposition, `inline; filename="`+rec.Name+`"`)
	}
	return ctx.Send(body)
}

// @Summary Удалить файл заявки
// @Tags Вложения
// @Description Удалить файл, приложенный к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	file_id 		path 		string  true 	"file ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/file/{file_id} [delete]
func (c *approvalController) DeleteFile(ctx *fiber.Ctx) error {
	fileID, err := c.GetIDByKey(ctx, "file_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = filestorage.Instance.DeleteFile(ctx.UserContext(), spaceID, fileID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления файла заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка реестра заявок
// @Tags Отчёты
// @Description Выгрузка реестра заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.ApprovalRequestFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/export/xls [post]
func (c *approvalController) ExportXls(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	list, err := approvalchainhandler.Instance.ExportList(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок для выгрузки")
	}
	buf, err := xlsexport.Instance.ExportApprovalRegistry(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования xlsx с реестром заявок")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="approval_requests.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// @Summary Лист согласования в PDF
// @Tags Отчёты
// @Description Печатный лист согласования заявки с историей решений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"approval request ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approval_request/{id}/export/pdf [get]
func (c *approvalController) ExportPdf(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	req, history, err := approvalchainhandler.Instance.GetForExport(spaceID, userID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки для выгрузки")
	}
	body, err := pdfexport.GenerateApprovalSheet(req, history)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования листа согласования")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="approval_sheet_%s.pdf"`, requestID))
	return ctx.Send(body)
}
