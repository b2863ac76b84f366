package handler

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"

	"travelapi/docs"
)

// swaggerMu guards docs.SwaggerInfo, which doc.json rendering reads.
var swaggerMu sync.Mutex

// SwaggerUI serves the Swagger UI with host and scheme taken from the request.
func SwaggerUI() fiber.Handler {
	serve := swagger.HandlerDefault
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		swaggerMu.Lock()
		defer swaggerMu.Unlock()
		docs.SwaggerInfo.Host = utils.CopyString(c.Get("Host"))
		docs.SwaggerInfo.Schemes = []string{utils.CopyString(scheme)}
		return serve(c)
	}
}
