package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signalsfoundry/orrery/model"
)

var (
	// ErrInvalidElements wraps element-set validation failures.
	ErrInvalidElements = errors.New("invalid orbital elements")
	// ErrDuplicateBody is returned when two bodies share an ID.
	ErrDuplicateBody = errors.New("duplicate body")
	// ErrNoStar is returned when a catalog has no central star.
	ErrNoStar = errors.New("catalog has no star")
)

// innerBoundaryAU separates inner from outer planets by mean distance.
const innerBoundaryAU = 2.0

// Catalog is an immutable set of bodies. It is validated once at
// construction and safe for concurrent reads; accessors hand out copies.
type Catalog struct {
	bodies []model.Body
	index  map[string]int
	star   int
}

// New validates bodies and builds a catalog. Exactly one star is required;
// every other body must carry a valid elliptical element set.
func New(bodies ...model.Body) (*Catalog, error) {
	c := &Catalog{
		bodies: make([]model.Body, 0, len(bodies)),
		index:  make(map[string]int, len(bodies)),
		star:   -1,
	}
	for _, b := range bodies {
		if b.ID == "" {
			return nil, fmt.Errorf("body %q has an empty ID", b.DisplayName())
		}
		if _, exists := c.index[b.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBody, b.ID)
		}
		switch b.Kind {
		case model.BodyKindStar:
			if c.star >= 0 {
				return nil, fmt.Errorf("body %q: catalog already has star %q", b.ID, c.bodies[c.star].ID)
			}
			c.star = len(c.bodies)
		case model.BodyKindPlanet:
			if b.Elements == nil {
				return nil, fmt.Errorf("%w: body %q has no orbital elements", ErrInvalidElements, b.ID)
			}
			if err := b.Elements.Validate(); err != nil {
				return nil, fmt.Errorf("%w: body %q: %v", ErrInvalidElements, b.ID, err)
			}
		default:
			return nil, fmt.Errorf("body %q has unknown kind %q", b.ID, b.Kind)
		}
		c.index[b.ID] = len(c.bodies)
		c.bodies = append(c.bodies, cloneBody(b))
	}
	if c.star < 0 {
		return nil, ErrNoStar
	}
	return c, nil
}

// MustNew is New for static data known to be valid; it panics on error.
func MustNew(bodies ...model.Body) *Catalog {
	c, err := New(bodies...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of bodies, star included.
func (c *Catalog) Len() int {
	return len(c.bodies)
}

// Body returns the body with the given ID.
func (c *Catalog) Body(id string) (model.Body, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Body{}, false
	}
	return cloneBody(c.bodies[i]), true
}

// Star returns the central body.
func (c *Catalog) Star() model.Body {
	return cloneBody(c.bodies[c.star])
}

// Bodies returns every body in catalog order.
func (c *Catalog) Bodies() []model.Body {
	return c.filter(func(model.Body) bool { return true })
}

// Planets returns every orbiting body in catalog order.
func (c *Catalog) Planets() []model.Body {
	return c.filter(func(b model.Body) bool { return !b.IsStar() })
}

// Inner returns planets whose mean distance is within 2 AU.
func (c *Catalog) Inner() []model.Body {
	return c.filter(func(b model.Body) bool { return !b.IsStar() && b.DistanceFromSun <= innerBoundaryAU })
}

// Outer returns planets beyond 2 AU.
func (c *Catalog) Outer() []model.Body {
	return c.filter(func(b model.Body) bool { return !b.IsStar() && b.DistanceFromSun > innerBoundaryAU })
}

// WithMoons returns planets that have at least one named moon.
func (c *Catalog) WithMoons() []model.Body {
	return c.filter(func(b model.Body) bool { return len(b.Moons) > 0 })
}

// IDs returns body IDs sorted alphabetically.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.bodies))
	for _, b := range c.bodies {
		ids = append(ids, b.ID)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) filter(keep func(model.Body) bool) []model.Body {
	res := make([]model.Body, 0, len(c.bodies))
	for _, b := range c.bodies {
		if keep(b) {
			res = append(res, cloneBody(b))
		}
	}
	return res
}

// cloneBody copies the pointer and slice fields so callers cannot mutate
// catalog state through a returned body.
func cloneBody(b model.Body) model.Body {
	if b.Elements != nil {
		el := *b.Elements
		b.Elements = &el
	}
	if b.Moons != nil {
		b.Moons = append([]string(nil), b.Moons...)
	}
	return b
}
