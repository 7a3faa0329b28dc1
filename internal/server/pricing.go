package server

import (
	"github.com/gin-gonic/gin"
	pricingdomain "github.com/clubkitlabs/clubkit/internal/pricing/domain"
)

type upsertPriceCellRequest struct {
	PlanName   string  `json:"plan_name"`
	Role       string  `json:"role"`
	AgeGroupID string  `json:"age_group_id"`
	TermID     string  `json:"subscription_term_id"`
	Price      float64 `json:"price"`
	Active     *bool   `json:"active"`
}

func (s *Server) UpsertPriceCell(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req upsertPriceCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ageGroupID, err := parseID(req.AgeGroupID)
	if err != nil {
		AbortWithError(c, pricingdomain.ErrInvalidAgeGroup)
		return
	}
	termID, err := parseID(req.TermID)
	if err != nil {
		AbortWithError(c, pricingdomain.ErrInvalidTerm)
		return
	}

	cell, err := s.pricingSvc.UpsertCell(c.Request.Context(), pricingdomain.UpsertCellRequest{
		LocationID: locationID,
		PlanName:   req.PlanName,
		Role:       pricingdomain.Role(req.Role),
		AgeGroupID: ageGroupID,
		TermID:     termID,
		Price:      req.Price,
		Active:     req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := cell.Key().String()
	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "pricing.cell.upsert", "price_cell", &targetID, map[string]any{
		"plan_name": cell.PlanName,
		"role":      cell.Role,
		"price":     cell.Price,
	})

	respondData(c, cell)
}

func (s *Server) ListPriceCells(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if c.Query("view") == "grouped" {
		groups, err := s.pricingSvc.GroupedByPlan(c.Request.Context(), locationID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondList(c, groups)
		return
	}

	cells, err := s.pricingSvc.List(c.Request.Context(), locationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, cells)
}

type savePriceGridRequest struct {
	PlanName string                       `json:"plan_name"`
	Role     string                       `json:"role"`
	Grid     map[string]map[string]string `json:"grid"`
}

func (s *Server) SavePriceGrid(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req savePriceGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	grid := pricingdomain.Grid{}
	for rawAgeGroup, row := range req.Grid {
		ageGroupID, err := parseID(rawAgeGroup)
		if err != nil {
			AbortWithError(c, pricingdomain.ErrInvalidAgeGroup)
			return
		}
		entries := map[int64]string{}
		for rawTerm, value := range row {
			termID, err := parseID(rawTerm)
			if err != nil {
				AbortWithError(c, pricingdomain.ErrInvalidTerm)
				return
			}
			entries[termID] = value
		}
		grid[ageGroupID] = entries
	}

	cells, err := s.pricingSvc.SaveGrid(c.Request.Context(), pricingdomain.SaveGridRequest{
		LocationID: locationID,
		PlanName:   req.PlanName,
		Role:       pricingdomain.Role(req.Role),
		Grid:       grid,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "pricing.grid.save", "price_grid", nil, map[string]any{
		"plan_name": req.PlanName,
		"role":      req.Role,
		"cells":     len(cells),
	})

	respondList(c, cells)
}

type reclassifyRequest struct {
	PlanName   string `json:"plan_name"`
	Role       string `json:"role"`
	AgeGroupID string `json:"age_group_id"`
	NewRole    string `json:"new_role"`
}

func (s *Server) ReclassifyPriceRow(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req reclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ageGroupID, err := parseID(req.AgeGroupID)
	if err != nil {
		AbortWithError(c, pricingdomain.ErrInvalidAgeGroup)
		return
	}

	row := pricingdomain.RowID{
		PlanName:   req.PlanName,
		Role:       pricingdomain.Role(req.Role),
		AgeGroupID: ageGroupID,
	}
	cells, err := s.pricingSvc.ReclassifyRow(c.Request.Context(), pricingdomain.ReclassifyRequest{
		LocationID: locationID,
		Row:        row,
		NewRole:    pricingdomain.Role(req.NewRole),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := row.String()
	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "pricing.row.reclassify", "price_row", &targetID, map[string]any{
		"new_role": req.NewRole,
		"cells":    len(cells),
	})

	respondList(c, cells)
}

func (s *Server) RefreshPriceCells(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if err := s.pricingSvc.Refresh(c.Request.Context(), locationID); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"refreshed": true})
}

func actorFrom(c *gin.Context) string {
	// Auth lives in front of this service; it forwards the admin identity.
	return c.GetHeader("X-Admin-User")
}
