package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// ParticleSystemController enables emission inside [emitStart, emitStop).
type ParticleSystemController struct {
	base
	emitStart float32
	emitStop  float32
}

var _ Controller = &ParticleSystemController{}

// NewParticleSystemController builds a ParticleSystemController from its record.
func NewParticleSystemController(rec *nif.ParticleSystemController) *ParticleSystemController {
	c := &ParticleSystemController{
		base:      newBase(&rec.Controller),
		emitStart: rec.StartTime,
		emitStop:  rec.StopTime,
	}
	c.source = SourceLegacy
	return c
}

func (c *ParticleSystemController) Kind() Kind { return KindParticleSystem }

func (c *ParticleSystemController) Capability() Capability { return CapabilityParticleProcessor }

func (c *ParticleSystemController) Precedence() int { return PrecedenceDefault }

func (c *ParticleSystemController) Clone() Controller {
	dup := *c
	return &dup
}

// EmitWindow returns the emission window.
func (c *ParticleSystemController) EmitWindow() (start, stop float32) {
	return c.emitStart, c.emitStop
}

// Apply runs the particle system while an input is bound and freezes it otherwise.
func (c *ParticleSystemController) Apply(target any, v Visit) {
	if node, ok := target.(ParticleProcessorTarget); ok {
		ps := node.ParticleSystem()
		if c.HasInput() {
			t := c.InputValue(v)
			if ps != nil {
				ps.SetFrozen(false)
			}
			node.SetEnabled(t >= c.emitStart && t < c.emitStop)
		} else if ps != nil {
			ps.SetFrozen(true)
		}
	}
	v.Traverse()
}
