package spawn

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstance struct {
	template string
	pos      Vec3
	scale    *Vec3
	color    color.Color
	body     bool
	alive    bool
}

type fakeHost struct {
	next       Handle
	instances  map[Handle]*fakeInstance
	order      []Handle
	destroyed  []Handle
	bodyAdds   int
	withBody   map[string]bool
	failFor    map[string]bool
	colorCalls int
	scaleCalls int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		instances: make(map[Handle]*fakeInstance),
		withBody:  make(map[string]bool),
		failFor:   make(map[string]bool),
	}
}

func (h *fakeHost) Instantiate(template string, pos Vec3) (Handle, error) {
	if h.failFor[template] {
		return 0, errors.New("broken prefab")
	}
	h.next++
	h.instances[h.next] = &fakeInstance{template: template, pos: pos, alive: true, body: h.withBody[template]}
	h.order = append(h.order, h.next)
	return h.next, nil
}

func (h *fakeHost) Destroy(id Handle) {
	if inst, ok := h.instances[id]; ok && inst.alive {
		inst.alive = false
		h.destroyed = append(h.destroyed, id)
	}
}

func (h *fakeHost) Alive(id Handle) bool {
	inst, ok := h.instances[id]
	return ok && inst.alive
}

func (h *fakeHost) SetColor(id Handle, c color.Color) {
	h.colorCalls++
	h.instances[id].color = c
}

func (h *fakeHost) SetScale(id Handle, s Vec3) {
	h.scaleCalls++
	h.instances[id].scale = &s
}

func (h *fakeHost) HasPhysicsBody(id Handle) bool {
	return h.instances[id].body
}

func (h *fakeHost) AddPhysicsBody(id Handle) error {
	h.bodyAdds++
	h.instances[id].body = true
	return nil
}

func (h *fakeHost) spawned() int {
	return len(h.order)
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) After(delay time.Duration, fn func()) Timer {
	t := &manualTimer{delay: delay, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) pending() []*manualTimer {
	var out []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the oldest pending timer and reports whether there was one.
func (s *manualScheduler) fire() bool {
	p := s.pending()
	if len(p) == 0 {
		return false
	}
	p[0].fired = true
	p[0].fn()
	return true
}

func newTestController(t *testing.T, cfg Config) (*Controller, *fakeHost, *manualScheduler, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	host := newFakeHost()
	sched := &manualScheduler{}
	c := NewController(cfg, host, sched, NewRand(42), logger)
	return c, host, sched, hook
}

func entriesAt(hook *test.Hook, level logrus.Level) []*logrus.Entry {
	var out []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func baseConfig() Config {
	return Config{
		Templates:   []string{"cube", "sphere"},
		TargetCount: 3,
		Delay:       0.1,
		RangeX:      5,
		RangeZ:      3,
		Scale:       Vec3{X: 2, Y: 3, Z: 4},
		RandomColor: true,
	}
}

func TestFiniteRunStopsAtTarget(t *testing.T) {
	c, host, sched, hook := newTestController(t, baseConfig())

	require.NoError(t, c.Start())
	assert.Equal(t, 1, host.spawned(), "first spawn happens without delay")
	require.Len(t, sched.pending(), 1)
	assert.Equal(t, 100*time.Millisecond, sched.pending()[0].delay)

	for i := 0; i < 3; i++ {
		sched.fire()
	}

	s := c.Session()
	assert.Equal(t, 3, s.Spawned)
	assert.True(t, s.ResetAllowed)
	assert.Equal(t, 3, host.spawned(), "no fourth spawn")
	assert.Empty(t, sched.pending())
	assert.Equal(t, ModeExhausted, c.Mode())

	infos := entriesAt(hook, logrus.InfoLevel)
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].Message, "3")
	assert.Equal(t, 3, infos[0].Data["limit"])
}

func TestSpawnedNeverExceedsTarget(t *testing.T) {
	for target := 1; target <= 6; target++ {
		cfg := baseConfig()
		cfg.TargetCount = target
		c, _, sched, _ := newTestController(t, cfg)
		require.NoError(t, c.Start())

		for i := 0; i < target+5; i++ {
			s := c.Session()
			require.LessOrEqual(t, s.Spawned, target)
			assert.Equal(t, s.Spawned == target, s.ResetAllowed, "target=%d step=%d", target, i)
			sched.fire()
		}
		assert.Equal(t, target, c.Session().Spawned)
	}
}

func TestSpawnPositionsAndScalesInBounds(t *testing.T) {
	cfg := baseConfig()
	cfg.Infinite = true
	c, host, sched, _ := newTestController(t, cfg)
	require.NoError(t, c.Start())
	for i := 0; i < 500; i++ {
		sched.fire()
	}

	require.Equal(t, 501, host.spawned())
	for _, id := range host.order {
		inst := host.instances[id]
		assert.GreaterOrEqual(t, inst.pos.X, -cfg.RangeX)
		assert.LessOrEqual(t, inst.pos.X, cfg.RangeX)
		assert.GreaterOrEqual(t, inst.pos.Z, -cfg.RangeZ)
		assert.LessOrEqual(t, inst.pos.Z, cfg.RangeZ)
		assert.Equal(t, 2.0, inst.pos.Y)

		require.NotNil(t, inst.scale)
		assert.True(t, inst.scale.X >= 0 && inst.scale.X <= cfg.Scale.X)
		assert.True(t, inst.scale.Y >= 0 && inst.scale.Y <= cfg.Scale.Y)
		assert.True(t, inst.scale.Z >= 0 && inst.scale.Z <= cfg.Scale.Z)

		require.NotNil(t, inst.color)
		_, _, _, a := inst.color.RGBA()
		assert.Equal(t, uint32(0xffff), a)
		assert.Contains(t, cfg.Templates, inst.template)
	}
}

func TestEmptyTemplatesStayIdle(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"finite", Config{TargetCount: 3, Delay: 0.1}},
		{"infinite", Config{Infinite: true, Delay: 0.1, UsePhysics: true}},
		{"zero_target", Config{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, host, sched, hook := newTestController(t, tc.cfg)

			err := c.Start()
			require.ErrorIs(t, err, ErrNoTemplates)
			c.PollInput(true)
			c.Reset()
			require.NoError(t, c.Start())

			assert.Zero(t, host.spawned())
			assert.Empty(t, sched.timers)
			assert.Len(t, entriesAt(hook, logrus.ErrorLevel), 1)
			assert.Equal(t, ModeIdle, c.Mode())
		})
	}
}

func TestResetClearsAndRestartsFiniteRun(t *testing.T) {
	c, host, sched, _ := newTestController(t, baseConfig())
	require.NoError(t, c.Start())

	// below the limit the key is ignored
	c.PollInput(true)
	assert.Equal(t, 1, c.Session().Spawned)
	assert.Empty(t, host.destroyed)

	sched.fire()
	sched.fire()
	require.True(t, c.Session().ResetAllowed)
	runID := c.Session().RunID

	c.PollInput(false)
	assert.True(t, c.Session().ResetAllowed)

	c.PollInput(true)
	s := c.Session()
	assert.Zero(t, s.Spawned)
	assert.False(t, s.ResetAllowed)
	assert.Empty(t, s.Live)
	assert.NotEqual(t, runID, s.RunID)
	assert.ElementsMatch(t, host.order, host.destroyed)

	require.Len(t, sched.pending(), 1, "cadence restarts from zero")
	sched.fire()
	assert.Equal(t, 1, c.Session().Spawned)
	assert.Len(t, c.Session().Live, 1)
}

func TestResetSkipsAlreadyDestroyed(t *testing.T) {
	c, host, sched, _ := newTestController(t, baseConfig())
	require.NoError(t, c.Start())
	sched.fire()
	sched.fire()

	gone := host.order[1]
	host.Destroy(gone)
	host.destroyed = nil

	c.Reset()
	assert.ElementsMatch(t, []Handle{host.order[0], host.order[2]}, host.destroyed)
	assert.Empty(t, c.Session().Live)
}

func TestInfiniteRunResetsAnyTime(t *testing.T) {
	cfg := baseConfig()
	cfg.Infinite = true
	c, host, sched, hook := newTestController(t, cfg)
	require.NoError(t, c.Start())
	for i := 0; i < 5; i++ {
		sched.fire()
	}
	require.Equal(t, 6, host.spawned())
	assert.Zero(t, c.Session().Spawned, "infinite runs do not count")

	before := sched.pending()
	require.Len(t, before, 1)

	c.PollInput(true)
	assert.True(t, before[0].stopped, "pending spawn is cancelled on reset")
	assert.Empty(t, c.Session().Live)
	assert.Len(t, host.destroyed, 6)

	after := sched.pending()
	require.Len(t, after, 1, "cadence resumes with a fresh timer")
	sched.fire()
	assert.Equal(t, 7, host.spawned())
	assert.False(t, c.Session().ResetAllowed)
	assert.Equal(t, ModeUnlimited, c.Mode())
	assert.Empty(t, entriesAt(hook, logrus.InfoLevel))
}

func TestResetBeforeTimerFiresDoesNotDoubleSpawn(t *testing.T) {
	cfg := baseConfig()
	cfg.Infinite = true
	c, host, sched, _ := newTestController(t, cfg)
	require.NoError(t, c.Start())

	c.PollInput(true)
	c.PollInput(true)
	require.Len(t, sched.pending(), 1)

	for i := 0; i < 3; i++ {
		sched.fire()
	}
	assert.Equal(t, 4, host.spawned())
	assert.Len(t, sched.pending(), 1)
	assert.Len(t, c.Session().Live, 3)
}

func TestPhysicsAttachedOnlyWhenMissing(t *testing.T) {
	cfg := baseConfig()
	cfg.Templates = []string{"crate"}
	cfg.UsePhysics = true
	c, host, sched, _ := newTestController(t, cfg)
	host.withBody["crate"] = true
	require.NoError(t, c.Start())
	sched.fire()
	assert.Zero(t, host.bodyAdds)

	cfg.Templates = []string{"cube"}
	c, host, sched, _ = newTestController(t, cfg)
	require.NoError(t, c.Start())
	sched.fire()
	assert.Equal(t, 2, host.bodyAdds)

	cfg.UsePhysics = false
	c, host, _, _ = newTestController(t, cfg)
	require.NoError(t, c.Start())
	assert.Zero(t, host.bodyAdds)
}

func TestDefaultScaleAndColorLeaveTemplateAlone(t *testing.T) {
	cfg := baseConfig()
	cfg.DefaultScale = true
	cfg.RandomColor = false
	c, host, sched, _ := newTestController(t, cfg)
	require.NoError(t, c.Start())
	sched.fire()
	sched.fire()

	assert.Zero(t, host.scaleCalls)
	assert.Zero(t, host.colorCalls)
}

func TestZeroTargetIsExhaustedImmediately(t *testing.T) {
	cfg := baseConfig()
	cfg.TargetCount = 0
	c, host, sched, hook := newTestController(t, cfg)
	require.NoError(t, c.Start())

	assert.Zero(t, host.spawned())
	assert.True(t, c.Session().ResetAllowed)
	assert.Empty(t, sched.pending())
	assert.Len(t, entriesAt(hook, logrus.InfoLevel), 1)
}

func TestInstantiateFailureKeepsCadence(t *testing.T) {
	cfg := baseConfig()
	cfg.Templates = []string{"broken"}
	c, host, sched, hook := newTestController(t, cfg)
	host.failFor["broken"] = true

	require.NoError(t, c.Start())
	assert.Zero(t, c.Session().Spawned)
	assert.Empty(t, c.Session().Live)
	assert.Len(t, sched.pending(), 1)
	assert.Len(t, entriesAt(hook, logrus.ErrorLevel), 1)
}

func TestSameSeedSameSequence(t *testing.T) {
	run := func() []Vec3 {
		cfg := baseConfig()
		cfg.Infinite = true
		host := newFakeHost()
		sched := &manualScheduler{}
		c := NewController(cfg, host, sched, NewRand(7), logrus.New())
		require.NoError(t, c.Start())
		for i := 0; i < 10; i++ {
			sched.fire()
		}
		out := make([]Vec3, 0, len(host.order))
		for _, id := range host.order {
			out = append(out, host.instances[id].pos)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

type recordingDrawer struct {
	lines [][2]Vec3
}

func (d *recordingDrawer) DrawLine(from, to Vec3, _ color.Color) {
	d.lines = append(d.lines, [2]Vec3{from, to})
}

func TestDebugDrawAreaOutlinesRange(t *testing.T) {
	c, _, _, _ := newTestController(t, baseConfig())
	d := &recordingDrawer{}
	c.DebugDrawArea(d)

	require.Len(t, d.lines, 4)
	minX, maxX, minZ, maxZ := 0.0, 0.0, 0.0, 0.0
	for i, l := range d.lines {
		assert.Zero(t, l[0].Y)
		assert.Equal(t, d.lines[(i+1)%4][0], l[1], "outline is closed")
		minX = min(minX, l[0].X)
		maxX = max(maxX, l[0].X)
		minZ = min(minZ, l[0].Z)
		maxZ = max(maxZ, l[0].Z)
	}
	assert.Equal(t, 10.0, maxX-minX)
	assert.Equal(t, 6.0, maxZ-minZ)
}
