package server

import (
	"strings"

	"github.com/clubkitlabs/clubkit/internal/agegroup"
	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"github.com/clubkitlabs/clubkit/internal/location"
	"github.com/clubkitlabs/clubkit/internal/term"
	"github.com/gin-gonic/gin"
)

// Axis and catalog endpoints: uniform create-or-update with soft
// deactivation, no matrix semantics.

type upsertLocationRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Active   *bool  `json:"active"`
}

func (s *Server) UpsertLocation(c *gin.Context) {
	var req upsertLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	input := location.UpsertRequest{
		Name:     req.Name,
		Timezone: req.Timezone,
		Active:   req.Active,
	}
	if strings.TrimSpace(req.ID) != "" {
		id, err := parseID(req.ID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		input.ID = id
	}

	loc, err := s.locationSvc.Upsert(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, loc)
}

func (s *Server) ListLocations(c *gin.Context) {
	locations, err := s.locationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, locations)
}

type upsertAgeGroupRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge *int   `json:"max_age"`
	Active *bool  `json:"active"`
}

func (s *Server) UpsertAgeGroup(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req upsertAgeGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	input := agegroup.UpsertRequest{
		LocationID: locationID,
		Name:       req.Name,
		MinAge:     req.MinAge,
		MaxAge:     req.MaxAge,
		Active:     req.Active,
	}
	if strings.TrimSpace(req.ID) != "" {
		id, err := parseID(req.ID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		input.ID = id
	}

	group, err := s.agegroupSvc.Upsert(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, group)
}

func (s *Server) ListAgeGroups(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	groups, err := s.agegroupSvc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, groups)
}

type upsertTermRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Months int    `json:"months"`
	Active *bool  `json:"active"`
}

func (s *Server) UpsertTerm(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req upsertTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	input := term.UpsertRequest{
		LocationID: locationID,
		Name:       req.Name,
		Months:     req.Months,
		Active:     req.Active,
	}
	if strings.TrimSpace(req.ID) != "" {
		id, err := parseID(req.ID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		input.ID = id
	}

	t, err := s.termSvc.Upsert(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, t)
}

func (s *Server) ListTerms(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	terms, err := s.termSvc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, terms)
}

type upsertServiceRequest struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

func (s *Server) UpsertService(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req upsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	input := catalogdomain.UpsertRequest{
		LocationID: locationID,
		Code:       req.Code,
		Name:       req.Name,
		Active:     req.Active,
	}
	if strings.TrimSpace(req.ID) != "" {
		id, err := parseID(req.ID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		input.ID = id
	}

	svc, err := s.catalogSvc.Upsert(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, svc)
}

func (s *Server) ListServices(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	services, err := s.catalogSvc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, services)
}
