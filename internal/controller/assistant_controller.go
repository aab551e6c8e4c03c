// FILE: internal/controller/assistant_controller.go
package controller

import (
	"strconv"
	"time"

	"resolveia-be/internal/config"
	"resolveia-be/internal/dto"
	"resolveia-be/internal/pkg/logger"
	"resolveia-be/internal/pkg/serverutils"
	"resolveia-be/internal/repository/memory"
	"resolveia-be/internal/service"
	"resolveia-be/pkg/llm/factory"
	"resolveia-be/pkg/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistant service.IAssistantService
	sessions  *memory.SessionRepository
	backends  *factory.Set
	cfg       *config.Config
	logger    logger.ILogger
	validate  *validator.Validate
	startedAt time.Time
}

func NewAssistantController(
	assistant service.IAssistantService,
	sessions *memory.SessionRepository,
	backends *factory.Set,
	cfg *config.Config,
	sysLogger logger.ILogger,
) IAssistantController {
	return &assistantController{
		assistant: assistant,
		sessions:  sessions,
		backends:  backends,
		cfg:       cfg,
		logger:    sysLogger,
		validate:  validator.New(),
		startedAt: time.Now(),
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/ask", c.Ask)
	r.Get("/status", c.GetStatus)
	r.Get("/logs", c.GetLogs)
	r.Get("/logs/:id", c.GetLogDetail)
}

// Ask runs a text query through the full answering pipeline. It shares
// the per-chat session store with the voice front-end, so a phase set
// over Telegram carries over here and vice versa.
func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	sess := c.sessions.GetOrCreate(req.ChatID)
	if req.Phase != "" {
		sess.Phase = store.Phase(req.Phase)
	}
	if req.Priority != "" {
		sess.Priority = store.Priority(req.Priority)
	}
	sess.LastQuery = req.Query
	c.sessions.Save(sess)

	answer := c.assistant.Process(ctx.Context(), sess, req.Query)

	return ctx.JSON(serverutils.SuccessResponse("Answer produced", dto.AskResponse{
		Response: answer.Text,
		Source:   answer.Source,
	}))
}

func (c *assistantController) GetStatus(ctx *fiber.Ctx) error {
	resp := dto.StatusResponse{
		Environment:   c.cfg.App.Environment,
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		PrimaryBackend: dto.BackendStatus{
			Name:      c.backends.Primary.Name,
			Available: c.backends.Primary.Available,
			Reason:    c.backends.Primary.Reason,
		},
		SecondaryBackend: dto.BackendStatus{
			Name:      c.backends.Secondary.Name,
			Available: c.backends.Secondary.Available,
			Reason:    c.backends.Secondary.Reason,
		},
		DefaultPhase:    string(c.cfg.Session.DefaultPhase),
		DefaultPriority: string(c.cfg.Session.DefaultPriority),
	}
	return ctx.JSON(serverutils.SuccessResponse("Service status", resp))
}

func (c *assistantController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	logs, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *assistantController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // Log ID is a string (MD5 hash), not UUID

	l, err := c.logger.GetLogById(logId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
