package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// CatalogHandler serves the preset cities and interpretation texts.
type CatalogHandler struct {
	cities       ports.LocationCatalog
	resolver     ports.InterpretationResolver
	defaultLimit int
	maxLimit     int
}

// CatalogHandlerConfig wires the catalog endpoints.
type CatalogHandlerConfig struct {
	Catalog  ports.LocationCatalog
	Resolver ports.InterpretationResolver

	// DefaultLimit and MaxLimit bound the page size of GET /locations.
	DefaultLimit int
	MaxLimit     int
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(cfg CatalogHandlerConfig) *CatalogHandler {
	h := &CatalogHandler{
		cities:       cfg.Catalog,
		resolver:     cfg.Resolver,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}

	if h.defaultLimit <= 0 {
		h.defaultLimit = dto.DefaultLimit
	}

	if h.maxLimit <= 0 {
		h.maxLimit = dto.MaxLimit
	}

	return h
}

var cityPager = dto.Pager[domain.City]{
	Field: "name",
	Key:   func(c domain.City) string { return c.Name },
}

// ListLocations handles GET /api/v1/locations.
// Cities come back in catalog order, optionally filtered by ?region=, one
// page at a time.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	var query dto.LocationsQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	all, err := h.cities.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	limit := query.LimitWithin(h.defaultLimit, h.maxLimit)

	page, err := dto.Paginate(catalog.InRegion(all, query.Region), &query.PaginationRequest, limit, cityPager, dto.NewCityResponse)
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetInterpretation handles GET /api/v1/interpretations/:body/:sign.
// body may also be Ascendant or Midheaven. Unknown names are a 404.
func (h *CatalogHandler) GetInterpretation(c *gin.Context) {
	subject, ok := catalog.CanonicalSubject(c.Param("body"))
	if !ok {
		dto.HandleError(c, domain.NewNotFoundError("body", c.Param("body")))
		return
	}

	sign, err := domain.ParseSign(c.Param("sign"))
	if err != nil {
		dto.HandleError(c, domain.NewNotFoundError("sign", c.Param("sign")))
		return
	}

	c.JSON(http.StatusOK, dto.InterpretationResponse{
		Subject: subject,
		Sign:    sign.String(),
		Text:    h.resolver.Lookup(subject, sign.String()),
	})
}

// RegisterCatalogRoutes registers the location and interpretation routes.
func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	if h.cities != nil {
		rg.GET("/locations", h.ListLocations)
	}

	if h.resolver != nil {
		rg.GET("/interpretations/:body/:sign", h.GetInterpretation)
	}
}
