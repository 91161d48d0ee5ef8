package game

type Resource string

const (
	ResourcePower    Resource = "power"
	ResourceScrap    Resource = "scrap"
	ResourceWater    Resource = "water"
	ResourceSeeds    Resource = "seeds"
	ResourceMycelium Resource = "mycelium"
)

var resourceOrder = []Resource{ResourcePower, ResourceScrap, ResourceWater, ResourceSeeds, ResourceMycelium}

// stock returns the counter backing a resource.
func (w *World) stock(r Resource) *int {
	switch r {
	case ResourcePower:
		return &w.Power
	case ResourceScrap:
		return &w.Scrap
	case ResourceWater:
		return &w.Water
	case ResourceSeeds:
		return &w.Seeds
	case ResourceMycelium:
		return &w.Mycelium
	}
	return nil
}

func (w *World) Amount(r Resource) int {
	if p := w.stock(r); p != nil {
		return *p
	}
	return 0
}

// Grant adds a non-negative amount.
func (w *World) Grant(r Resource, n int) {
	if p := w.stock(r); p != nil && n > 0 {
		*p += n
	}
}

// Spend deducts n when the stock covers it and reports whether it did.
func (w *World) Spend(r Resource, n int) bool {
	p := w.stock(r)
	if p == nil || n < 0 || *p < n {
		return false
	}
	*p -= n
	return true
}

// ResourceLabel names a resource the way the player sees it.
func (w *World) ResourceLabel(r Resource) string {
	if r == ResourceSeeds {
		return w.SeedLabel()
	}
	return string(r)
}

type Cost map[Resource]int

func (w *World) canAfford(c Cost) (Resource, bool) {
	for _, r := range resourceOrder {
		if need, ok := c[r]; ok && w.Amount(r) < need {
			return r, false
		}
	}
	return "", true
}

func (w *World) pay(c Cost) {
	for r, n := range c {
		w.Spend(r, n)
	}
}
