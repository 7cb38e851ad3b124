package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"decision-framework-be/internal/dto"
	"decision-framework-be/internal/pkg/serverutils"
	"decision-framework-be/internal/service"
)

type IDecisionController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Report(ctx *fiber.Ctx) error
}

type decisionController struct {
	service service.IDecisionService
}

func NewDecisionController(service service.IDecisionService) IDecisionController {
	return &decisionController{service: service}
}

func (c *decisionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/decision/v1")
	h.Post("/analyze", c.Analyze)
	h.Get("/history", c.History)
	h.Get("/:id", c.Show)
	h.Get("/:id/report", c.Report)
}

func (c *decisionController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeSituationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Analyze(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze situation", res))
}

func (c *decisionController) History(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	res := c.service.History(limit)
	return ctx.JSON(serverutils.SuccessResponse("Success get decision history", res))
}

func (c *decisionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid decision id")
	}

	res, err := c.service.Get(id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show decision", res))
}

func (c *decisionController) Report(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid decision id")
	}

	md, err := c.service.Report(id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	ctx.Set("Content-Type", "text/markdown; charset=utf-8")
	return ctx.SendString(md)
}
