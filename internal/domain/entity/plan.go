package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
)

// Plan is a purchasable credit package
type Plan struct {
	ID      string
	Credits int64
	Amount  int64 // price in major currency units
	Desc    string
}

var planCatalog = []Plan{
	{ID: "Basic", Credits: 100, Amount: 10, Desc: "Best for personal use."},
	{ID: "Advanced", Credits: 500, Amount: 50, Desc: "Best for business use."},
	{ID: "Business", Credits: 5000, Amount: 250, Desc: "Best for enterprise use."},
}

// Plans returns a copy of the plan catalog
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

// FindPlan looks up a plan by its exact ID
func FindPlan(id string) (Plan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Plan{}, errs.ErrMissingDetails
	}

	for _, p := range planCatalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("%w: %s", errs.ErrInvalidPlan, id)
}
