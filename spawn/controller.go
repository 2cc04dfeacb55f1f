// Package spawn drives a timed spawner: it instantiates random templates in a
// rectangular area on a fixed cadence, counts them against a limit (or runs
// forever) and tears everything down again on request.
//
// The controller is single-threaded. Every method, and every callback it
// hands to the Scheduler, must run on the same goroutine.
package spawn

import (
	"image/color"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var areaColor = color.NRGBA{G: 255, A: 255}

type Controller struct {
	cfg   Config
	host  SceneHost
	sched Scheduler
	rng   *rand.Rand
	log   logrus.FieldLogger

	session *Session
	pending Timer
	started bool
	failed  bool
}

// NewController wires a controller. rng and log may be nil, in which case a
// source seeded from cfg.Seed and the standard logrus logger are used.
func NewController(cfg Config, host SceneHost, sched Scheduler, rng *rand.Rand, log logrus.FieldLogger) *Controller {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg.Templates = append([]string(nil), cfg.Templates...)
	return &Controller{
		cfg:     cfg,
		host:    host,
		sched:   sched,
		rng:     rng,
		log:     log.WithField("component", "spawner"),
		session: newSession(),
	}
}

func (c *Controller) Config() Config {
	return c.cfg
}

// Session returns a copy of the current run state.
func (c *Controller) Session() Session {
	return c.session.clone()
}

func (c *Controller) Mode() Mode {
	switch {
	case !c.started || c.failed:
		return ModeIdle
	case c.cfg.Infinite:
		return ModeUnlimited
	case c.session.ResetAllowed:
		return ModeExhausted
	default:
		return ModeCounting
	}
}

// Start begins the run. Without templates it logs once, stays idle for good
// and returns ErrNoTemplates. Calling Start again is a no-op.
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	c.started = true

	if len(c.cfg.Templates) == 0 {
		c.failed = true
		c.log.WithError(ErrNoTemplates).Error("no objects to spawn")
		return ErrNoTemplates
	}

	c.log.WithFields(logrus.Fields{
		"run_id":    c.session.RunID,
		"templates": len(c.cfg.Templates),
		"target":    c.cfg.TargetCount,
		"infinite":  c.cfg.Infinite,
	}).Debug("spawn run started")

	if !c.cfg.Infinite && c.session.Spawned >= c.cfg.TargetCount {
		c.checkLimit()
		return nil
	}
	c.spawnRandom()
	return nil
}

// PollInput is fed once per tick with whether the reset key went down.
func (c *Controller) PollInput(resetPressed bool) {
	if !resetPressed || !c.started || c.failed {
		return
	}
	if c.session.ResetAllowed || c.cfg.Infinite {
		c.Reset()
	}
}

// Reset cancels the pending spawn, destroys every live instance and restarts
// the cadence from zero.
func (c *Controller) Reset() {
	if !c.started || c.failed {
		return
	}
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}

	live := c.session.restart()
	destroyed := 0
	for _, h := range live {
		if c.host.Alive(h) {
			c.host.Destroy(h)
			destroyed++
		}
	}

	c.log.WithFields(logrus.Fields{
		"run_id":    c.session.RunID,
		"destroyed": destroyed,
	}).Debug("spawner reset")

	if c.cfg.Infinite {
		c.scheduleNext()
		return
	}
	c.checkLimit()
}

func (c *Controller) spawnRandom() {
	c.spawnOne(c.rng.IntN(len(c.cfg.Templates)))
}

func (c *Controller) spawnOne(index int) {
	if c.session.ResetAllowed && !c.cfg.Infinite {
		return
	}

	template := c.cfg.Templates[index]
	pos := c.randomPosition()

	h, err := c.host.Instantiate(template, pos)
	if err != nil {
		c.log.WithError(err).WithField("template", template).Error("instantiate template")
		c.scheduleNext()
		return
	}

	if c.cfg.RandomColor {
		c.host.SetColor(h, randomColorHSV(c.rng))
	}
	if !c.cfg.DefaultScale {
		c.host.SetScale(h, c.randomScale())
	}
	if c.cfg.UsePhysics && !c.host.HasPhysicsBody(h) {
		if err := c.host.AddPhysicsBody(h); err != nil {
			c.log.WithError(err).WithField("template", template).Warn("attach physics body")
		}
	}

	c.session.Live = append(c.session.Live, h)

	c.log.WithFields(logrus.Fields{
		"run_id":   c.session.RunID,
		"template": template,
		"x":        pos.X,
		"z":        pos.Z,
	}).Debug("spawned")

	if c.cfg.Infinite {
		c.scheduleNext()
		return
	}
	c.session.Spawned++
	c.checkLimit()
}

func (c *Controller) checkLimit() {
	if c.session.Spawned >= c.cfg.TargetCount {
		c.session.ResetAllowed = true
		c.log.WithFields(logrus.Fields{
			"run_id": c.session.RunID,
			"limit":  c.cfg.TargetCount,
		}).Infof("reached the max amount of spawnable objects: %d", c.cfg.TargetCount)
		return
	}
	c.scheduleNext()
}

func (c *Controller) scheduleNext() {
	var t Timer
	t = c.sched.After(c.cfg.DelayDuration(), func() {
		if c.pending == t {
			c.pending = nil
		}
		c.spawnRandom()
	})
	c.pending = t
}

func (c *Controller) randomPosition() Vec3 {
	return Vec3{
		X: uniform(c.rng, -c.cfg.RangeX, c.cfg.RangeX),
		Y: SpawnHeight,
		Z: uniform(c.rng, -c.cfg.RangeZ, c.cfg.RangeZ),
	}
}

func (c *Controller) randomScale() Vec3 {
	return Vec3{
		X: uniform(c.rng, 0, c.cfg.Scale.X),
		Y: uniform(c.rng, 0, c.cfg.Scale.Y),
		Z: uniform(c.rng, 0, c.cfg.Scale.Z),
	}
}

// DebugDrawArea outlines the spawn rectangle at height zero, centered on the
// origin.
func (c *Controller) DebugDrawArea(d AreaDrawer) {
	if d == nil {
		return
	}
	x, z := c.cfg.RangeX, c.cfg.RangeZ
	corners := [4]Vec3{
		{X: -x, Z: -z},
		{X: x, Z: -z},
		{X: x, Z: z},
		{X: -x, Z: z},
	}
	for i := range corners {
		d.DrawLine(corners[i], corners[(i+1)%len(corners)], areaColor)
	}
}
