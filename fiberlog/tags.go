package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Теги полей записи лога запроса
const (
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagBody    = "body"
	TagResBody = "resBody"
	RequestID  = "requestId"
)

// FuncTag вычисляет значение поля записи по контексту запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

// data — состояние middleware между запросами: pid процесса и
// границы обработки текущего запроса
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// getFuncTagMap отбирает функции тегов, перечисленных в конфигурации
func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	all := map[string]FuncTag{
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Response().Body())
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, exist := all[tag]; exist {
			ftm[tag] = ft
		}
	}
	return ftm
}
