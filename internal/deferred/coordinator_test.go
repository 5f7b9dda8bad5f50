package deferred

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/lumen/internal/result"
	"github.com/billie-coop/lumen/internal/tui/events"
)

type stubProvider struct {
	name string
	icon string
	err  error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) IconPath() (string, error) {
	return p.icon, p.err
}

// recordingUI stands in for the window. It is only touched from flush.
type recordingUI struct {
	renders [][]result.Item
	hides   int
}

func (u *recordingUI) Render(items []result.Item) {
	u.renders = append(u.renders, items)
}

func (u *recordingUI) HideAndClearInput() {
	u.hides++
}

// countingAction records Run calls.
type countingAction struct {
	runs atomic.Int32
	open bool
	err  error
}

func (a *countingAction) Run(UI) error {
	a.runs.Add(1)
	return a.err
}

func (a *countingAction) KeepOpen() bool { return a.open }

type fixture struct {
	ui    *recordingUI
	queue *events.IdleQueue
	clock *fakeScheduler
	coord *Coordinator
}

func newFixture() *fixture {
	f := &fixture{
		ui:    &recordingUI{},
		queue: events.NewIdleQueue(),
		clock: &fakeScheduler{},
	}
	f.coord = New(f.ui, f.queue, WithScheduler(f.clock))
	return f
}

// flush plays the UI goroutine: run everything posted so far.
func (f *fixture) flush() {
	for _, fn := range f.queue.Drain() {
		fn()
	}
}

// respond hands resp to the coordinator and reports whether it matched.
func (f *fixture) respond(t *testing.T, resp Response) bool {
	t.Helper()
	handled, err := f.coord.HandleResponse(resp)
	require.NoError(t, err)
	return handled
}

func TestSubmit_ReturnsDoNothing(t *testing.T) {
	f := newFixture()
	p := &stubProvider{name: "calc", icon: "/icons/calc.svg"}

	action := f.coord.Submit(NewEvent("1+1"), p)

	assert.IsType(t, DoNothing{}, action)
	assert.True(t, action.KeepOpen())
	assert.NoError(t, action.Run(f.ui))
	f.flush()
	assert.Empty(t, f.ui.renders)

	got, ok := f.coord.ActiveProvider()
	assert.True(t, ok)
	assert.Same(t, p, got)
}

func TestHandleResponse_DropsSupersededRequest(t *testing.T) {
	f := newFixture()
	e1, p1 := NewEvent("g"), &stubProvider{name: "shortcuts"}
	e2, p2 := NewEvent("go"), &stubProvider{name: "calc"}
	action := &countingAction{open: false}

	f.coord.Submit(e1, p1)
	f.coord.Submit(e2, p2)
	assert.False(t, f.respond(t, Response{Event: e1, Provider: p1, Action: action}))
	f.flush()

	assert.Zero(t, action.runs.Load())
	assert.Empty(t, f.ui.renders)
	assert.Zero(t, f.ui.hides)
}

func TestHandleResponse_IdentityNotFields(t *testing.T) {
	f := newFixture()
	e1 := NewEvent("wiki go")
	p1 := &stubProvider{name: "shortcuts"}
	lookalikeEvent := *e1
	lookalikeProvider := *p1
	action := &countingAction{}

	f.coord.Submit(e1, p1)

	assert.False(t, f.respond(t, Response{Event: &lookalikeEvent, Provider: p1, Action: action}))
	assert.False(t, f.respond(t, Response{Event: e1, Provider: &lookalikeProvider, Action: action}))
	assert.Zero(t, action.runs.Load())

	assert.True(t, f.respond(t, Response{Event: e1, Provider: p1, Action: action}))
	assert.Equal(t, int32(1), action.runs.Load())
}

func TestHandleResponse_RunsOnceAndHidesUnlessKeptOpen(t *testing.T) {
	tests := []struct {
		name      string
		keepOpen  bool
		wantHides int
	}{
		{name: "closes", keepOpen: false, wantHides: 1},
		{name: "keeps_open", keepOpen: true, wantHides: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			e, p := NewEvent("q"), &stubProvider{name: "ext"}
			action := &countingAction{open: tt.keepOpen}

			f.coord.Submit(e, p)
			assert.True(t, f.respond(t, Response{Event: e, Provider: p, Action: action}))
			f.flush()

			assert.Equal(t, int32(1), action.runs.Load())
			assert.Equal(t, tt.wantHides, f.ui.hides)
		})
	}
}

func TestHandleResponse_ItemsBecomeRenderList(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("so go"), &stubProvider{name: "shortcuts"}
	items := []result.Item{
		result.New("Stack Overflow", "Search *go*", "/icons/so.svg"),
		result.New("Google Search", "", "/icons/g.png"),
	}

	f.coord.Submit(e, p)
	assert.True(t, f.respond(t, Response{Event: e, Provider: p, Items: items}))
	f.flush()

	require.Len(t, f.ui.renders, 1)
	assert.Equal(t, items, f.ui.renders[0])
	assert.Zero(t, f.ui.hides, "render lists keep the window open")
}

func TestOnQueryChanged_DropsPendingResponse(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("wiki"), &stubProvider{name: "shortcuts", icon: "/icons/wiki.png"}
	action := &countingAction{open: false}

	f.coord.Submit(e, p)
	f.coord.OnQueryChanged()
	assert.False(t, f.respond(t, Response{Event: e, Provider: p, Action: action}))
	f.clock.Advance(time.Second)
	f.flush()

	assert.Zero(t, action.runs.Load())
	assert.Empty(t, f.ui.renders)
	assert.Zero(t, f.ui.hides)
	assert.Zero(t, f.clock.live())

	_, ok := f.coord.ActiveProvider()
	assert.False(t, ok)
}

func TestPlaceholder_RenderedAfterDelayThenReplaced(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("slow"), &stubProvider{name: "slow", icon: "/icons/slow.png"}

	f.coord.Submit(e, p)
	f.clock.Advance(400 * time.Millisecond)
	f.flush()

	require.Len(t, f.ui.renders, 1)
	require.Len(t, f.ui.renders[0], 1)
	placeholder := f.ui.renders[0][0]
	assert.Equal(t, result.Loading, placeholder.Name)
	assert.Equal(t, "/icons/slow.png", placeholder.Icon)
	assert.False(t, placeholder.Highlightable)

	answer := []result.Item{result.New("done", "", "")}
	assert.True(t, f.respond(t, Response{Event: e, Provider: p, Items: answer}))
	f.flush()

	require.Len(t, f.ui.renders, 2)
	assert.Equal(t, answer, f.ui.renders[1], "the answer replaces the placeholder list")
}

func TestPlaceholder_SecondSubmitCancelsFirst(t *testing.T) {
	f := newFixture()
	p1 := &stubProvider{name: "first", icon: "/icons/first.png"}
	p2 := &stubProvider{name: "second", icon: "/icons/second.png"}

	f.coord.Submit(NewEvent("a"), p1)
	first := f.clock.last()
	f.clock.Advance(200 * time.Millisecond)
	f.coord.Submit(NewEvent("ab"), p2)
	f.clock.Advance(200 * time.Millisecond)
	f.flush()

	assert.True(t, first.stopped)
	assert.Empty(t, f.ui.renders, "first placeholder must never show")

	f.clock.Advance(150 * time.Millisecond)
	f.flush()

	require.Len(t, f.ui.renders, 1)
	assert.Equal(t, "/icons/second.png", f.ui.renders[0][0].Icon)
}

func TestScenario_FastResponseNeverShowsPlaceholder(t *testing.T) {
	f := newFixture()
	e1, p1 := NewEvent("2*3"), &stubProvider{name: "calc", icon: "/icons/calc.png"}
	action := &countingAction{open: false}

	f.coord.Submit(e1, p1)
	timer := f.clock.last()
	f.clock.Advance(100 * time.Millisecond)
	assert.True(t, f.respond(t, Response{Event: e1, Provider: p1, Action: action}))
	f.clock.Advance(time.Second)
	f.flush()

	assert.True(t, timer.stopped, "timer cancelled")
	assert.False(t, timer.fired)
	assert.Equal(t, int32(1), action.runs.Load())
	assert.Equal(t, 1, f.ui.hides)
	assert.Empty(t, f.ui.renders, "no placeholder ever rendered")
}

func TestScenario_SlowResponseShowsOnePlaceholder(t *testing.T) {
	f := newFixture()
	e1, p1 := NewEvent("wiki go"), &stubProvider{name: "shortcuts", icon: "/icons/wiki.png"}

	f.coord.Submit(e1, p1)
	f.clock.Advance(400 * time.Millisecond)
	f.flush()

	require.Len(t, f.ui.renders, 1)
	assert.Equal(t, "/icons/wiki.png", f.ui.renders[0][0].Icon)
	assert.True(t, f.clock.last().fired)
	assert.Zero(t, f.clock.live())

	f.coord.mu.Lock()
	assert.Nil(t, f.coord.pending, "timer retired itself")
	assert.NotNil(t, f.coord.active, "request still pending")
	f.coord.mu.Unlock()
}

func TestPlaceholder_MissingIconDegrades(t *testing.T) {
	f := newFixture()
	p := &stubProvider{name: "broken", err: errors.New("no manifest icon")}

	f.coord.Submit(NewEvent("x"), p)
	f.clock.Advance(LoadingDelay)
	f.flush()

	require.Len(t, f.ui.renders, 1)
	assert.Equal(t, result.Loading, f.ui.renders[0][0].Name)
	assert.Empty(t, f.ui.renders[0][0].Icon)
}

func TestPlaceholder_LateFireAfterCancelIsIgnored(t *testing.T) {
	f := newFixture()
	e := NewEvent("race")
	p := &stubProvider{name: "ext"}

	f.coord.Submit(e, p)
	timer := f.clock.last()
	f.coord.OnQueryChanged()

	// The callback was already on its way when Stop ran.
	timer.f()
	f.flush()

	assert.Empty(t, f.ui.renders)
}

func TestHandleResponse_ActionErrorPropagatesWithoutHide(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("open"), &stubProvider{name: "ext"}
	boom := errors.New("xdg-open failed")
	action := &countingAction{open: false, err: boom}

	f.coord.Submit(e, p)
	handled, err := f.coord.HandleResponse(Response{Event: e, Provider: p, Action: action})
	f.flush()

	assert.True(t, handled)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, f.ui.hides)
}

func TestHandleResponse_DuplicateAfterMatchDropped(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("dup"), &stubProvider{name: "ext"}
	action := &countingAction{open: true}

	f.coord.Submit(e, p)
	assert.True(t, f.respond(t, Response{Event: e, Provider: p, Action: action}))
	assert.False(t, f.respond(t, Response{Event: e, Provider: p, Action: action}))

	assert.Equal(t, int32(1), action.runs.Load())

	got, ok := f.coord.ActiveProvider()
	assert.True(t, ok, "provider stays routable after the answer")
	assert.Same(t, p, got)
}

func TestHandleResponse_WithoutActiveRequest(t *testing.T) {
	f := newFixture()
	action := &countingAction{}

	assert.False(t, f.respond(t, Response{Event: NewEvent("x"), Provider: &stubProvider{}, Action: action}))
	assert.Zero(t, action.runs.Load())
}

func TestHandleResponse_ConcurrentWorkersOnlyMatchRuns(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("q"), &stubProvider{name: "ext"}
	f.coord.Submit(e, p)

	matching := &countingAction{open: true}
	stale := &countingAction{open: true}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = f.coord.HandleResponse(Response{Event: e, Provider: p, Action: matching})
		}()
		go func() {
			defer wg.Done()
			_, _ = f.coord.HandleResponse(Response{Event: NewEvent("q"), Provider: p, Action: stale})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), matching.runs.Load())
	assert.Zero(t, stale.runs.Load())
}

func TestCoordinator_RealClockPlaceholder(t *testing.T) {
	ui := &recordingUI{}
	queue := events.NewIdleQueue()
	coord := New(ui, queue, WithDelay(20*time.Millisecond))

	coord.Submit(NewEvent("slow"), &stubProvider{name: "slow", icon: "/i.png"})

	assert.Eventually(t, func() bool { return queue.Len() == 1 }, time.Second, 5*time.Millisecond)
	for _, fn := range queue.Drain() {
		fn()
	}
	require.Len(t, ui.renders, 1)
	assert.Equal(t, result.Loading, ui.renders[0][0].Name)
}

func TestPlaceholder_QueuedThenQueryChangedNeverRenders(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("slow"), &stubProvider{name: "slow", icon: "/i.png"}

	f.coord.Submit(e, p)
	f.clock.Advance(400 * time.Millisecond)
	require.Equal(t, 1, f.queue.Len(), "placeholder posted")

	f.coord.OnQueryChanged()
	f.flush()

	assert.Empty(t, f.ui.renders)
}

func TestHandleResponse_QueuedRenderDroppedAfterQueryChange(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("old"), &stubProvider{name: "ext"}

	f.coord.Submit(e, p)
	assert.True(t, f.respond(t, Response{Event: e, Provider: p, Items: []result.Item{result.New("old", "", "")}}))
	require.Equal(t, 1, f.queue.Len(), "render posted")

	f.coord.OnQueryChanged()
	f.flush()

	assert.Empty(t, f.ui.renders)
}

func TestHandleResponse_QueuedHideDroppedAfterNewSubmit(t *testing.T) {
	f := newFixture()
	e1, p1 := NewEvent("a"), &stubProvider{name: "first"}
	e2, p2 := NewEvent("ab"), &stubProvider{name: "second"}
	action := &countingAction{open: false}

	f.coord.Submit(e1, p1)
	assert.True(t, f.respond(t, Response{Event: e1, Provider: p1, Action: action}))
	f.coord.Submit(e2, p2)
	f.flush()

	assert.Equal(t, int32(1), action.runs.Load())
	assert.Zero(t, f.ui.hides)
}

func TestHandleResponse_FuncRendersOnlyWhileCurrent(t *testing.T) {
	f := newFixture()
	e, p := NewEvent("q"), &stubProvider{name: "ext"}
	var ui UI
	action := Func{Open: true, Fn: func(u UI) error {
		ui = u
		u.Render([]result.Item{result.New("first", "", "")})
		return nil
	}}

	f.coord.Submit(e, p)
	assert.True(t, f.respond(t, Response{Event: e, Provider: p, Action: action}))
	f.flush()
	require.Len(t, f.ui.renders, 1)

	// A late render from the same action after the query moved on.
	f.coord.OnQueryChanged()
	ui.Render([]result.Item{result.New("late", "", "")})
	f.flush()

	assert.Len(t, f.ui.renders, 1)
}
