package whatsapp

import (
	"net/http"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module exposes manual WhatsApp sends and gateway status over HTTP.
type Module struct {
	client *Client
	val    *validator.Validator
}

// NewModule creates the whatsapp module. client may be nil when the gateway
// is not configured; routes are still mounted and report accordingly.
func NewModule(client *Client, val *validator.Validator) *Module {
	return &Module{client: client, val: val}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "whatsapp"
}

// RegisterRoutes mounts whatsapp routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/whatsapp")
	group.POST("/send", m.send)
	group.GET("/status", m.status)
}

type sendMessageRequest struct {
	Phone   string `json:"phone" validate:"required,min=5,max=20"`
	Message string `json:"message" validate:"required,min=1,max=4096"`
}

func (m *Module) send(c *gin.Context) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if m.client == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "whatsapp gateway not configured", nil)
		return
	}

	if err := m.client.SendMessage(c.Request.Context(), req.Phone, req.Message); err != nil {
		httpkit.Error(c, http.StatusBadGateway, "whatsapp send failed", err.Error())
		return
	}

	httpkit.OK(c, gin.H{"status": "sent"})
}

func (m *Module) status(c *gin.Context) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return
	}

	status, err := m.client.Status(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "whatsapp status check failed", err.Error())
		return
	}

	httpkit.OK(c, status)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
