package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ServerConfig configuración de Fiber para la API. X-Forwarded-For solo se lee cuando la
// conexión llega desde una IP o rango de trustedProxies; sin proxies confiables c.IP()
// es siempre la dirección remota.
func ServerConfig(appName string, trustedProxies []string) fiber.Config {
	return fiber.Config{
		AppName:                 appName,
		ReadTimeout:             time.Second * 10,
		WriteTimeout:            time.Second * 10,
		IdleTimeout:             time.Second * 60,
		ErrorHandler:            ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
		EnableIPValidation:      true,
	}
}
