package catalog

import "github.com/signalsfoundry/orrery/model"

const j2000 = 2451545.0

// Default returns the Sun and the eight planets with J2000.0 element sets.
// Each call builds a fresh catalog.
func Default() *Catalog {
	return MustNew(DefaultBodies()...)
}

// DefaultBodies returns the bodies behind Default, for callers that want to
// extend or replace some of them before building their own catalog.
func DefaultBodies() []model.Body {
	return []model.Body{
		{
			ID:          "sun",
			Name:        "太阳",
			NameEn:      "Sun",
			Kind:        model.BodyKindStar,
			Radius:      109.2,
			Mass:        333000,
			Color:       "#FDB813",
			Temperature: 5778,
			Luminosity:  1.0,
		},
		{
			ID:     "mercury",
			Name:   "水星",
			NameEn: "Mercury",
			Kind:   model.BodyKindPlanet,
			Radius: 0.383,
			Mass:   0.055,
			Color:  "#8C7853",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            0.38709843,
				Eccentricity:             0.20563661,
				Inclination:              7.00559432,
				LongitudeOfAscendingNode: 48.33961819,
				ArgumentOfPeriapsis:      77.45771895,
				MeanAnomalyAtEpoch:       252.25166724,
				MeanMotion:               4.09233445,
				Epoch:                    j2000,
			},
			RotationPeriod:  1407.6,
			OrbitalPeriod:   87.97,
			DistanceFromSun: 0.387,
			Moons:           []string{},
		},
		{
			ID:     "venus",
			Name:   "金星",
			NameEn: "Venus",
			Kind:   model.BodyKindPlanet,
			Radius: 0.949,
			Mass:   0.815,
			Color:  "#FF7F00",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            0.72332102,
				Eccentricity:             0.00676399,
				Inclination:              3.39777545,
				LongitudeOfAscendingNode: 76.67261496,
				ArgumentOfPeriapsis:      131.76755713,
				MeanAnomalyAtEpoch:       181.97970850,
				MeanMotion:               1.60213034,
				Epoch:                    j2000,
			},
			RotationPeriod:  5832.5,
			OrbitalPeriod:   224.70,
			DistanceFromSun: 0.723,
			Moons:           []string{},
		},
		{
			ID:     "earth",
			Name:   "地球",
			NameEn: "Earth",
			Kind:   model.BodyKindPlanet,
			Radius: 1.0,
			Mass:   1.0,
			Color:  "#6B93D6",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            1.00000018,
				Eccentricity:             0.01673163,
				Inclination:              -0.00054346,
				LongitudeOfAscendingNode: -11.26064000,
				ArgumentOfPeriapsis:      102.94719383,
				MeanAnomalyAtEpoch:       100.46691572,
				MeanMotion:               0.98560028,
				Epoch:                    j2000,
			},
			RotationPeriod:  24.0,
			RotationModel:   model.RotationModelGMST,
			OrbitalPeriod:   365.26,
			DistanceFromSun: 1.0,
			Moons:           []string{"Moon"},
		},
		{
			ID:     "mars",
			Name:   "火星",
			NameEn: "Mars",
			Kind:   model.BodyKindPlanet,
			Radius: 0.532,
			Mass:   0.107,
			Color:  "#CD5C5C",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            1.52371243,
				Eccentricity:             0.09336511,
				Inclination:              1.85181869,
				LongitudeOfAscendingNode: 49.71320984,
				ArgumentOfPeriapsis:      336.04084630,
				MeanAnomalyAtEpoch:       355.45332669,
				MeanMotion:               0.52403840,
				Epoch:                    j2000,
			},
			RotationPeriod:  24.6,
			OrbitalPeriod:   686.98,
			DistanceFromSun: 1.524,
			Moons:           []string{"Phobos", "Deimos"},
		},
		{
			ID:     "jupiter",
			Name:   "木星",
			NameEn: "Jupiter",
			Kind:   model.BodyKindPlanet,
			Radius: 11.21,
			Mass:   317.8,
			Color:  "#D8CA9D",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            5.20248019,
				Eccentricity:             0.04853590,
				Inclination:              1.29861416,
				LongitudeOfAscendingNode: 100.29282654,
				ArgumentOfPeriapsis:      14.27495244,
				MeanAnomalyAtEpoch:       34.33479152,
				MeanMotion:               0.08308529,
				Epoch:                    j2000,
			},
			RotationPeriod:  9.9,
			OrbitalPeriod:   4332.59,
			DistanceFromSun: 5.204,
			Moons:           []string{"Io", "Europa", "Ganymede", "Callisto"},
		},
		{
			ID:     "saturn",
			Name:   "土星",
			NameEn: "Saturn",
			Kind:   model.BodyKindPlanet,
			Radius: 9.45,
			Mass:   95.2,
			Color:  "#FAD5A5",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            9.54149883,
				Eccentricity:             0.05550825,
				Inclination:              2.49424102,
				LongitudeOfAscendingNode: 113.63998702,
				ArgumentOfPeriapsis:      92.86136063,
				MeanAnomalyAtEpoch:       50.07571329,
				MeanMotion:               0.03338414,
				Epoch:                    j2000,
			},
			RotationPeriod:  10.7,
			OrbitalPeriod:   10759.22,
			DistanceFromSun: 9.582,
			Moons:           []string{"Titan", "Enceladus", "Mimas", "Rhea"},
		},
		{
			ID:     "uranus",
			Name:   "天王星",
			NameEn: "Uranus",
			Kind:   model.BodyKindPlanet,
			Radius: 4.01,
			Mass:   14.5,
			Color:  "#4FD0E7",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            19.18797948,
				Eccentricity:             0.04685740,
				Inclination:              0.77298127,
				LongitudeOfAscendingNode: 73.96250215,
				ArgumentOfPeriapsis:      172.43404441,
				MeanAnomalyAtEpoch:       142.27771777,
				MeanMotion:               0.01172834,
				Epoch:                    j2000,
			},
			RotationPeriod:  17.2,
			OrbitalPeriod:   30688.5,
			DistanceFromSun: 19.201,
			Moons:           []string{"Miranda", "Ariel", "Umbriel", "Titania", "Oberon"},
		},
		{
			ID:     "neptune",
			Name:   "海王星",
			NameEn: "Neptune",
			Kind:   model.BodyKindPlanet,
			Radius: 3.88,
			Mass:   17.1,
			Color:  "#4B70DD",
			Elements: &model.OrbitalElements{
				SemiMajorAxis:            30.06952752,
				Eccentricity:             0.00895439,
				Inclination:              1.77005520,
				LongitudeOfAscendingNode: 131.78635853,
				ArgumentOfPeriapsis:      9.96476630,
				MeanAnomalyAtEpoch:       267.76773249,
				MeanMotion:               0.00598103,
				Epoch:                    j2000,
			},
			RotationPeriod:  16.1,
			OrbitalPeriod:   60182.0,
			DistanceFromSun: 30.047,
			Moons:           []string{"Triton"},
		},
	}
}
