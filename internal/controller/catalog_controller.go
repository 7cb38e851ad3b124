package controller

import (
	"github.com/gofiber/fiber/v2"

	"decision-framework-be/internal/dto"
	"decision-framework-be/internal/pkg/serverutils"
	"decision-framework-be/pkg/catalog"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Principles(ctx *fiber.Ctx) error
	Sops(ctx *fiber.Ctx) error
	Values(ctx *fiber.Ctx) error
}

type catalogController struct {
	kb *catalog.KnowledgeBase
}

func NewCatalogController(kb *catalog.KnowledgeBase) ICatalogController {
	return &catalogController{kb: kb}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("/principles", c.Principles)
	h.Get("/sops", c.Sops)
	h.Get("/values", c.Values)
}

func (c *catalogController) Principles(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all principles", dto.ListPrinciplesResponse{
		Principles: c.kb.Principles(),
	}))
}

func (c *catalogController) Sops(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all sops", dto.ListSopsResponse{
		Sops: c.kb.Sops(),
	}))
}

func (c *catalogController) Values(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all values", dto.ListValuesResponse{
		Values: c.kb.Values(),
	}))
}
