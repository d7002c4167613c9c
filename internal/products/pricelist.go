package products

import (
	"context"
	"slices"
	"strings"
)

// Price list group keys, in display order.
const (
	GroupA     = "A"
	GroupB     = "B"
	GroupC     = "C"
	GroupOther = "OTHER"
)

var priceListOrder = []string{GroupA, GroupB, GroupC, GroupOther}

// PriceListDTO is the grouped price list.
type PriceListDTO struct {
	Groups []PriceGroupDTO `json:"groups"`
}

// PriceGroupDTO splits one group into vertical and horizontal tanks, each
// sorted by price ascending.
type PriceGroupDTO struct {
	Group      string       `json:"group"`
	Vertical   []ProductDTO `json:"vertical"`
	Horizontal []ProductDTO `json:"horizontal"`
}

func (s *service) PriceList(ctx context.Context, filter ListFilter) (*PriceListDTO, error) {
	list, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PriceListDTO{Groups: GroupPriceList(list)}, nil
}

// GroupPriceList buckets products by group key and orientation. Groups with no
// products are omitted.
func GroupPriceList(list []ProductDTO) []PriceGroupDTO {
	buckets := make(map[string]*PriceGroupDTO, len(priceListOrder))
	for _, key := range priceListOrder {
		buckets[key] = &PriceGroupDTO{Group: key, Vertical: []ProductDTO{}, Horizontal: []ProductDTO{}}
	}

	for _, p := range list {
		bucket := buckets[groupKey(p.Group)]
		if isHorizontal(p.Type) {
			bucket.Horizontal = append(bucket.Horizontal, p)
		} else {
			bucket.Vertical = append(bucket.Vertical, p)
		}
	}

	out := make([]PriceGroupDTO, 0, len(priceListOrder))
	for _, key := range priceListOrder {
		bucket := buckets[key]
		if len(bucket.Vertical) == 0 && len(bucket.Horizontal) == 0 {
			continue
		}
		sortByPrice(bucket.Vertical)
		sortByPrice(bucket.Horizontal)
		out = append(out, *bucket)
	}
	return out
}

func groupKey(group *string) string {
	if group == nil {
		return GroupOther
	}
	key := strings.ToUpper(strings.TrimSpace(*group))
	switch key {
	case GroupA, GroupB, GroupC:
		return key
	default:
		return GroupOther
	}
}

func isHorizontal(kind *string) bool {
	return kind != nil && strings.Contains(strings.ToLower(*kind), "horizontal")
}

func sortByPrice(list []ProductDTO) {
	slices.SortStableFunc(list, func(a, b ProductDTO) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		default:
			return 0
		}
	})
}
