package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/orrery/model"
)

func TestDefault_Contents(t *testing.T) {
	c := Default()

	assert.Equal(t, 9, c.Len())
	assert.Equal(t, "sun", c.Star().ID)
	assert.Len(t, c.Planets(), 8)

	earth, ok := c.Body("earth")
	require.True(t, ok)
	assert.Equal(t, "地球", earth.Name)
	assert.Equal(t, "Earth", earth.NameEn)
	assert.Equal(t, model.RotationModelGMST, earth.RotationModel)
	require.NotNil(t, earth.Elements)
	assert.Equal(t, 100.46691572, earth.Elements.MeanAnomalyAtEpoch)
	assert.Equal(t, 2451545.0, earth.Elements.Epoch)

	_, ok = c.Body("pluto")
	assert.False(t, ok)
}

func TestDefault_PlanetOrder(t *testing.T) {
	var ids []string
	for _, b := range Default().Planets() {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune"}, ids)
}

func TestDefault_Groups(t *testing.T) {
	c := Default()

	ids := func(bs []model.Body) []string {
		out := make([]string, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}

	assert.Equal(t, []string{"mercury", "venus", "earth", "mars"}, ids(c.Inner()))
	assert.Equal(t, []string{"jupiter", "saturn", "uranus", "neptune"}, ids(c.Outer()))
	assert.Equal(t, []string{"earth", "mars", "jupiter", "saturn", "uranus", "neptune"}, ids(c.WithMoons()))
}

func TestDefault_AllElementsValid(t *testing.T) {
	for _, b := range Default().Planets() {
		require.NotNil(t, b.Elements, b.ID)
		assert.NoError(t, b.Elements.Validate(), b.ID)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	earth, _ := c.Body("earth")
	earth.Elements.Eccentricity = 0.9
	earth.Moons[0] = "Luna"

	again, _ := c.Body("earth")
	assert.Equal(t, 0.01673163, again.Elements.Eccentricity)
	assert.Equal(t, []string{"Moon"}, again.Moons)
}

func TestNew_Validation(t *testing.T) {
	sun := model.Body{ID: "sun", Kind: model.BodyKindStar}
	good := model.Body{
		ID:   "x",
		Kind: model.BodyKindPlanet,
		Elements: &model.OrbitalElements{
			SemiMajorAxis: 1, Eccentricity: 0.1, MeanMotion: 1, Epoch: 2451545.0,
		},
	}

	_, err := New(sun, good)
	require.NoError(t, err)

	_, err = New(good)
	assert.ErrorIs(t, err, ErrNoStar)

	_, err = New(sun, good, good)
	assert.ErrorIs(t, err, ErrDuplicateBody)

	hyperbolic := good
	hyperbolic.ID = "h"
	hyperbolic.Elements = &model.OrbitalElements{SemiMajorAxis: 1, Eccentricity: 1.2}
	_, err = New(sun, hyperbolic)
	assert.ErrorIs(t, err, ErrInvalidElements)

	bare := model.Body{ID: "bare", Kind: model.BodyKindPlanet}
	_, err = New(sun, bare)
	assert.ErrorIs(t, err, ErrInvalidElements)

	_, err = New(sun, model.Body{ID: "sun2", Kind: model.BodyKindStar})
	assert.Error(t, err)

	_, err = New(sun, model.Body{ID: "comet", Kind: "comet"})
	assert.Error(t, err)

	_, err = New(sun, model.Body{Kind: model.BodyKindPlanet})
	assert.Error(t, err)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew() })
}

func TestIDs_Sorted(t *testing.T) {
	assert.Equal(t,
		[]string{"earth", "jupiter", "mars", "mercury", "neptune", "saturn", "sun", "uranus", "venus"},
		Default().IDs())
}
