package products

import "testing"

func priced(name string, price float64, group, kind string) ProductDTO {
	p := ProductDTO{Name: name, Price: price}
	if group != "" {
		p.Group = &group
	}
	if kind != "" {
		p.Type = &kind
	}
	return p
}

func TestGroupPriceList(t *testing.T) {
	groups := GroupPriceList([]ProductDTO{
		priced("a-1000", 1000, " a ", "Vertical"),
		priced("a-500", 500, "A", ""),
		priced("a-h", 700, "A", "HORIZONTAL tank"),
		priced("c-1", 300, "c", "vertical"),
		priced("odd", 50, "Z", ""),
		priced("none", 40, "", "Horizontal"),
		priced("a-500-second", 500, "A", "vertical"),
	})

	if len(groups) != 3 {
		t.Fatalf("expected A, C and OTHER, got %d groups", len(groups))
	}
	if groups[0].Group != GroupA || groups[1].Group != GroupC || groups[2].Group != GroupOther {
		t.Fatalf("unexpected group order %s %s %s", groups[0].Group, groups[1].Group, groups[2].Group)
	}

	a := groups[0]
	wantVertical := []string{"a-500", "a-500-second", "a-1000"}
	if len(a.Vertical) != len(wantVertical) {
		t.Fatalf("expected %d vertical, got %d", len(wantVertical), len(a.Vertical))
	}
	for i, name := range wantVertical {
		if a.Vertical[i].Name != name {
			t.Fatalf("vertical[%d]: expected %s got %s", i, name, a.Vertical[i].Name)
		}
	}
	if len(a.Horizontal) != 1 || a.Horizontal[0].Name != "a-h" {
		t.Fatalf("unexpected horizontal list %+v", a.Horizontal)
	}

	other := groups[2]
	if len(other.Vertical) != 1 || other.Vertical[0].Name != "odd" {
		t.Fatalf("unexpected OTHER vertical %+v", other.Vertical)
	}
	if len(other.Horizontal) != 1 || other.Horizontal[0].Name != "none" {
		t.Fatalf("unexpected OTHER horizontal %+v", other.Horizontal)
	}
}

func TestGroupPriceListEmpty(t *testing.T) {
	if groups := GroupPriceList(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
