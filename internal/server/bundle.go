package server

import (
	"strings"

	bundledomain "github.com/clubkitlabs/clubkit/internal/bundle/domain"
	"github.com/gin-gonic/gin"
)

type membershipServiceInput struct {
	ID                  string  `json:"id"`
	LocationID          string  `json:"location_id"`
	MembershipProgramID string  `json:"membership_program_id"`
	ServiceID           string  `json:"service_id"`
	Included            bool    `json:"included"`
	UsageLimit          *string `json:"usage_limit"`
	Discount            *string `json:"discount"`
	PartOfBasePlan      bool    `json:"part_of_base_plan"`
	Active              *bool   `json:"active"`
}

type batchUpsertMembershipServicesRequest struct {
	Services []membershipServiceInput `json:"services"`
}

func (s *Server) BatchUpsertMembershipServices(c *gin.Context) {
	var req batchUpsertMembershipServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Services) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	reqs := make([]bundledomain.UpsertRequest, 0, len(req.Services))
	for _, in := range req.Services {
		locationID, err := parseID(in.LocationID)
		if err != nil {
			AbortWithError(c, bundledomain.ErrInvalidLocation)
			return
		}
		serviceID, err := parseID(in.ServiceID)
		if err != nil {
			AbortWithError(c, bundledomain.ErrInvalidService)
			return
		}

		item := bundledomain.UpsertRequest{
			LocationID:     locationID,
			ServiceID:      serviceID,
			Included:       in.Included,
			UsageLimit:     in.UsageLimit,
			Discount:       in.Discount,
			PartOfBasePlan: in.PartOfBasePlan,
			Active:         in.Active,
		}
		if strings.TrimSpace(in.ID) != "" {
			id, err := parseID(in.ID)
			if err != nil {
				AbortWithError(c, invalidRequestError())
				return
			}
			item.ID = id
		}
		// Absent program ID scopes the record to the location's base plan.
		if strings.TrimSpace(in.MembershipProgramID) != "" {
			programID, err := parseID(in.MembershipProgramID)
			if err != nil {
				AbortWithError(c, invalidRequestError())
				return
			}
			item.MembershipProgramID = &programID
		}
		reqs = append(reqs, item)
	}

	recs, err := s.bundleSvc.BatchUpsert(c.Request.Context(), reqs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "bundle.services.upsert", "membership_service", nil, map[string]any{
		"count": len(recs),
	})

	respondList(c, recs)
}

func (s *Server) ResolveMembershipServices(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var programID *int64
	if raw := strings.TrimSpace(c.Query("programId")); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		programID = &id
	}

	resolved, err := s.bundleSvc.Resolve(c.Request.Context(), locationID, programID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resolved)
}

func (s *Server) RemoveMembershipService(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rec, err := s.bundleSvc.Remove(c.Request.Context(), locationID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "bundle.service.remove", "membership_service", nil, map[string]any{
		"id": id,
	})

	respondData(c, rec)
}
