package controllers

import (
	"log/slog"
	"net/http"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/domain"
)

type ContentController struct {
	Logger  *slog.Logger
	Service domain.ContentService
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{Logger: logger, Service: svc}
}

// Products godoc
// @Summary Shop products
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains products sorted by name"
// @Router /shop/products [get]
func (c *ContentController) Products(w http.ResponseWriter, r *http.Request) {
	products, err := c.Service.Products(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, products)
}

// Speakers godoc
// @Summary Speakers
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains speakers sorted by name"
// @Router /speakers [get]
func (c *ContentController) Speakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.Speakers(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// Site godoc
// @Summary Site settings
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the site setting"
// @Router /site [get]
func (c *ContentController) Site(w http.ResponseWriter, r *http.Request) {
	site, err := c.Service.SiteSetting(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, site)
}
