package core

import (
	"context"
	"time"

	"github.com/signalsfoundry/orrery/model"
)

// MotionModel yields a body's scaled heliocentric position for a given
// simulation time.
type MotionModel interface {
	Position(ctx context.Context, simTime time.Time, scale float64) Vec3
}

// StaticMotionModel pins a body to the origin.
type StaticMotionModel struct{}

// Position for static motion is always the origin.
func (m *StaticMotionModel) Position(context.Context, time.Time, float64) Vec3 {
	return Vec3{}
}

// KeplerianMotionModel propagates a body along its fixed element set.
type KeplerianMotionModel struct {
	body       model.Body
	propagator *Propagator
}

// NewKeplerianMotionModel binds body to a propagator. A nil propagator uses
// the package defaults.
func NewKeplerianMotionModel(body model.Body, p *Propagator) *KeplerianMotionModel {
	if p == nil {
		p = defaultPropagator
	}
	return &KeplerianMotionModel{body: body, propagator: p}
}

// Position propagates the body to simTime.
func (m *KeplerianMotionModel) Position(ctx context.Context, simTime time.Time, scale float64) Vec3 {
	return m.propagator.PositionAt(ctx, m.body, simTime, scale)
}

// NewMotionModel chooses the motion model for a body: the star never moves,
// everything else follows its Keplerian elements.
func NewMotionModel(body model.Body, p *Propagator) MotionModel {
	if body.IsStar() {
		return &StaticMotionModel{}
	}
	return NewKeplerianMotionModel(body, p)
}
