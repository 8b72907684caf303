package response

import (
	"time"

	"nest/internal/domain/entitlement"
	"nest/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Family  string    `json:"family"`
	Version int       `json:"version"`
	IsDemo  bool      `json:"demo"`
}

type FamilyResponse struct {
	Family         string `json:"family"`
	HighestVersion int    `json:"highest_version"`
	OwnsAny        bool   `json:"owns_any"`
	OwnsCurrent    bool   `json:"owns_current"`
	Subscribed     bool   `json:"subscribed"`
}

type ProductSetResponse struct {
	ProductIDs     []uuid.UUID `json:"product_ids"`
	OwnsAny        bool        `json:"owns_any"`
	HighestVersion *int        `json:"highest_version" copier:"-"`
}

type EntitlementResponse struct {
	Email             string              `json:"email"`
	UserID            uuid.UUID           `json:"user_id"`
	OwnsAnyPaid       bool                `json:"owns_any_paid"`
	EarliestOrderDate *time.Time          `json:"earliest_order_date"`
	Products          []ProductResponse   `json:"products"`
	Families          []FamilyResponse    `json:"families"`
	Family            *FamilyResponse     `json:"family,omitempty"`
	ProductSet        *ProductSetResponse `json:"product_set,omitempty"`
}

func FromEntitlementView(v *queries.EntitlementView) (*EntitlementResponse, error) {
	resp := &EntitlementResponse{
		Email:             v.Email,
		UserID:            v.Summary.UserID,
		OwnsAnyPaid:       v.Summary.OwnsAnyPaid,
		EarliestOrderDate: v.Summary.EarliestOrderDate,
		Products:          make([]ProductResponse, len(v.Summary.Products)),
	}
	for i, p := range v.Summary.Products {
		if err := copier.Copy(&resp.Products[i], p); err != nil {
			return nil, err
		}
	}
	families, err := fromFamilies(v.Summary.Families)
	if err != nil {
		return nil, err
	}
	resp.Families = families

	if v.Family != nil {
		resp.Family = &FamilyResponse{}
		if err := copier.Copy(resp.Family, v.Family); err != nil {
			return nil, err
		}
	}
	if v.Set != nil {
		resp.ProductSet = &ProductSetResponse{}
		if err := copier.Copy(resp.ProductSet, v.Set); err != nil {
			return nil, err
		}
		if v.Set.HasVersion {
			version := v.Set.HighestVersion
			resp.ProductSet.HighestVersion = &version
		}
	}
	return resp, nil
}

func fromFamilies(in []entitlement.FamilySummary) ([]FamilyResponse, error) {
	out := make([]FamilyResponse, 0, len(in))
	if err := copier.Copy(&out, in); err != nil {
		return nil, err
	}
	return out, nil
}
