package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/1broseidon/textviz/models"
	"github.com/1broseidon/textviz/orchestrator"
)

type sessionController struct {
	sessions   *SessionStore
	newSession func() *orchestrator.Orchestrator
	spawn      func(func())
	timeout    time.Duration
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Post(":id/generate", c.Generate)
	h.Get(":id/download", c.Download)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	session := &Session{
		ID:           uuid.New(),
		Orchestrator: c.newSession(),
		CreatedAt:    time.Now(),
	}
	c.sessions.Save(session)

	res := SuccessResponse("Success create session", &SessionResponse{ID: session.ID.String()})
	res.Code = fiber.StatusCreated
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(SuccessResponse("Success show session", snapshot(session)))
}

// Generate starts one cycle in the background. Blank input is passed through
// so the orchestrator reports it the same way the UI would.
func (c *sessionController) Generate(ctx *fiber.Ctx) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}

	var req GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	if err := ValidateRequest(req); err != nil {
		return err
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if !session.tryStart() {
		return fiber.NewError(fiber.StatusConflict, "A generation is already in progress")
	}

	c.spawn(func() {
		defer session.finish()
		runCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		_ = session.Orchestrator.Submit(runCtx, req.Input, category)
	})

	res := SuccessResponse("Generation started", snapshot(session))
	res.Code = fiber.StatusAccepted
	return ctx.Status(fiber.StatusAccepted).JSON(res)
}

func (c *sessionController) Download(ctx *fiber.Ctx) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}

	saver := &responseSaver{ctx: ctx}
	session.Orchestrator.Download(saver)
	if !saver.saved {
		return ctx.SendStatus(fiber.StatusNoContent)
	}
	return nil
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	session, err := c.session(ctx)
	if err != nil {
		return err
	}
	c.sessions.Delete(session.ID)
	return ctx.JSON(SuccessResponse[any]("Success delete session", nil))
}

func (c *sessionController) session(ctx *fiber.Ctx) (*Session, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	session, ok := c.sessions.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return session, nil
}

func snapshot(session *Session) *SnapshotResponse {
	return toSnapshotResponse(session.Orchestrator.Snapshot(), session.Busy())
}

// responseSaver writes the downloaded artifact as the HTTP response body.
type responseSaver struct {
	ctx   *fiber.Ctx
	saved bool
}

func (s *responseSaver) Save(name, mimeType string, data []byte) error {
	s.ctx.Set(fiber.HeaderContentType, mimeType)
	s.ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	s.saved = true
	return s.ctx.Send(data)
}
