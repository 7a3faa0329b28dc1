// Package seed loads a demo dataset for local development: one location
// with its axis catalogs, a starter price grid, and a membership program.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/clubkitlabs/clubkit/internal/agegroup"
	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"github.com/clubkitlabs/clubkit/internal/location"
	membershipdomain "github.com/clubkitlabs/clubkit/internal/membership/domain"
	pricingdomain "github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/clubkitlabs/clubkit/internal/term"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoLocationName = "Main Club"

// EnsureDemoData is idempotent: it creates the demo location and its
// dependent records only when the location does not exist yet.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing location.Location
		err := tx.Where("name = ?", demoLocationName).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		loc := location.Location{
			ID:        node.Generate().Int64(),
			Name:      demoLocationName,
			Timezone:  "UTC",
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&loc).Error; err != nil {
			return err
		}

		ageGroups, err := seedAgeGroups(tx, node, loc.ID, now)
		if err != nil {
			return err
		}
		terms, err := seedTerms(tx, node, loc.ID, now)
		if err != nil {
			return err
		}
		if err := seedServices(tx, node, loc.ID, now); err != nil {
			return err
		}
		if err := seedPriceGrid(tx, node, loc.ID, ageGroups, terms, now); err != nil {
			return err
		}
		return seedProgram(tx, node, loc.ID, now)
	})
}

func intp(v int) *int { return &v }

func seedAgeGroups(tx *gorm.DB, node *snowflake.Node, locationID int64, now time.Time) ([]agegroup.AgeGroup, error) {
	groups := []agegroup.AgeGroup{
		{Name: "Child", MinAge: 0, MaxAge: intp(12)},
		{Name: "Adult", MinAge: 13, MaxAge: intp(64)},
		{Name: "Senior", MinAge: 65},
	}
	for i := range groups {
		groups[i].ID = node.Generate().Int64()
		groups[i].LocationID = locationID
		groups[i].Active = true
		groups[i].CreatedAt = now
		groups[i].UpdatedAt = now
		if err := tx.Create(&groups[i]).Error; err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func seedTerms(tx *gorm.DB, node *snowflake.Node, locationID int64, now time.Time) ([]term.SubscriptionTerm, error) {
	terms := []term.SubscriptionTerm{
		{Name: "Monthly", Months: 1},
		{Name: "Annual", Months: 12},
	}
	for i := range terms {
		terms[i].ID = node.Generate().Int64()
		terms[i].LocationID = locationID
		terms[i].Active = true
		terms[i].CreatedAt = now
		terms[i].UpdatedAt = now
		if err := tx.Create(&terms[i]).Error; err != nil {
			return nil, err
		}
	}
	return terms, nil
}

func seedServices(tx *gorm.DB, node *snowflake.Node, locationID int64, now time.Time) error {
	for _, name := range []string{"Sauna", "Swim Lessons", "Personal Training"} {
		svc := catalogdomain.CatalogService{
			ID:         node.Generate().Int64(),
			LocationID: locationID,
			Code:       slug.Make(name),
			Name:       name,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedPriceGrid(tx *gorm.DB, node *snowflake.Node, locationID int64, ageGroups []agegroup.AgeGroup, terms []term.SubscriptionTerm, now time.Time) error {
	// A sparse starter grid: adults get both roles, children primary only,
	// seniors are left unpriced.
	type entry struct {
		ageGroup string
		role     pricingdomain.Role
		prices   map[string]float64
	}
	entries := []entry{
		{ageGroup: "Adult", role: pricingdomain.RolePrimary, prices: map[string]float64{"Monthly": 59, "Annual": 590}},
		{ageGroup: "Adult", role: pricingdomain.RoleAddOn, prices: map[string]float64{"Monthly": 39, "Annual": 390}},
		{ageGroup: "Child", role: pricingdomain.RolePrimary, prices: map[string]float64{"Monthly": 29}},
	}

	groupByName := map[string]int64{}
	for _, g := range ageGroups {
		groupByName[g.Name] = g.ID
	}
	termByName := map[string]int64{}
	for _, tm := range terms {
		termByName[tm.Name] = tm.ID
	}

	for _, e := range entries {
		for termName, price := range e.prices {
			cell := pricingdomain.PriceCell{
				ID:         node.Generate().Int64(),
				LocationID: locationID,
				PlanName:   "Standard",
				Role:       e.role,
				AgeGroupID: groupByName[e.ageGroup],
				TermID:     termByName[termName],
				Price:      price,
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&cell).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedProgram(tx *gorm.DB, node *snowflake.Node, locationID int64, now time.Time) error {
	program := membershipdomain.MembershipProgram{
		ID:         node.Generate().Int64(),
		LocationID: locationID,
		Name:       "Family Membership",
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	cat := membershipdomain.MembershipCategory{
		ID:                  node.Generate().Int64(),
		MembershipProgramID: program.ID,
		Name:                "Family",
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	cat.Fees = []membershipdomain.Fee{{
		ID:                   node.Generate().Int64(),
		MembershipCategoryID: cat.ID,
		FeeType:              membershipdomain.FeeTypeJoining,
		BillingCycle:         membershipdomain.BillingCycleOneTime,
		Amount:               50,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}}
	cat.Rules = []membershipdomain.EligibilityRule{
		{
			ID:                   node.Generate().Int64(),
			MembershipCategoryID: cat.ID,
			Priority:             1,
			Result:               membershipdomain.ResultAllow,
			Message:              "family of at least one adult and one child",
			Condition:            datatypes.NewJSONType(membershipdomain.Condition{MinAdult: intp(1), MinChild: intp(1)}),
			CreatedAt:            now,
			UpdatedAt:            now,
		},
		{
			ID:                   node.Generate().Int64(),
			MembershipCategoryID: cat.ID,
			Priority:             100,
			Result:               membershipdomain.ResultDeny,
			Message:              "household does not qualify for the family plan",
			CreatedAt:            now,
			UpdatedAt:            now,
		},
	}
	program.Categories = []membershipdomain.MembershipCategory{cat}

	return tx.Create(&program).Error
}
