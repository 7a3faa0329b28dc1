package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clubkitlabs/clubkit/internal/agegroup"
	bundledomain "github.com/clubkitlabs/clubkit/internal/bundle/domain"
	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"github.com/clubkitlabs/clubkit/internal/location"
	membershipdomain "github.com/clubkitlabs/clubkit/internal/membership/domain"
	pricingdomain "github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/clubkitlabs/clubkit/internal/term"
	"github.com/gin-gonic/gin"
)

var errInvalidRequest = errors.New("invalid_request")

func invalidRequestError() error { return errInvalidRequest }

var badRequestErrors = []error{
	errInvalidRequest,
	pricingdomain.ErrInvalidLocation,
	pricingdomain.ErrInvalidPlanName,
	pricingdomain.ErrInvalidRole,
	pricingdomain.ErrInvalidAgeGroup,
	pricingdomain.ErrInvalidTerm,
	pricingdomain.ErrInvalidPrice,
	membershipdomain.ErrInvalidLocation,
	membershipdomain.ErrInvalidName,
	membershipdomain.ErrInvalidResult,
	membershipdomain.ErrInvalidFee,
	membershipdomain.ErrInvalidBound,
	bundledomain.ErrInvalidLocation,
	bundledomain.ErrInvalidService,
	catalogdomain.ErrInvalidLocation,
	catalogdomain.ErrInvalidName,
	agegroup.ErrInvalidLocation,
	agegroup.ErrInvalidName,
	agegroup.ErrInvalidAgeRange,
	term.ErrInvalidLocation,
	term.ErrInvalidName,
	term.ErrInvalidMonths,
	location.ErrInvalidName,
}

var notFoundErrors = []error{
	pricingdomain.ErrRowNotFound,
	membershipdomain.ErrProgramNotFound,
	membershipdomain.ErrCategoryNotFound,
	membershipdomain.ErrRuleNotFound,
	membershipdomain.ErrFeeNotFound,
	bundledomain.ErrNotFound,
	catalogdomain.ErrNotFound,
	agegroup.ErrNotFound,
	term.ErrNotFound,
	location.ErrNotFound,
}

// AbortWithError maps domain sentinels to HTTP statuses. Anything
// unrecognized is a 500 with the message withheld.
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	for _, candidate := range badRequestErrors {
		if errors.Is(err, candidate) {
			status = http.StatusBadRequest
			code = candidate.Error()
			break
		}
	}
	if status == http.StatusInternalServerError {
		for _, candidate := range notFoundErrors {
			if errors.Is(err, candidate) {
				status = http.StatusNotFound
				code = candidate.Error()
				break
			}
		}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code}})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidRequest
	}
	return id, nil
}
