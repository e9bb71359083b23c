package container

import (
	"context"
	"fmt"
	"sync"
)

type pathKey struct{}

type step struct {
	c  *Container
	id string
}

func (s step) String() string {
	return fmt.Sprintf("%s@%s", s.id, s.c.location)
}

// chain identifies one line of creation, from the outermost Get down
// through every constructor it triggers.
type chain struct {
	waiting *step // guarded by waits.mutex
}

type trail struct {
	steps []step
	chain *chain
}

func trailFrom(ctx context.Context) *trail {
	t, _ := ctx.Value(pathKey{}).(*trail)
	return t
}

// enter records that id of c is being created and fails when it already is
// somewhere up the chain.
func enter(ctx context.Context, c *Container, id string) (context.Context, error) {
	cur := step{c: c, id: id}
	prev := trailFrom(ctx)
	if prev == nil {
		prev = &trail{chain: &chain{}}
	}
	for i, s := range prev.steps {
		if s == cur {
			return ctx, &CircularReferenceError{Path: stepNames(append(prev.steps[i:len(prev.steps):len(prev.steps)], cur))}
		}
	}
	next := &trail{steps: make([]step, len(prev.steps), len(prev.steps)+1), chain: prev.chain}
	copy(next.steps, prev.steps)
	next.steps = append(next.steps, cur)
	return context.WithValue(ctx, pathKey{}, next), nil
}

func stepNames(steps []step) []string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.String())
	}
	return names
}

// waitGraph tracks which chain is creating which component and which
// component each chain is blocked on. Two chains creating opposite ends of
// a cycle would otherwise wait on each other forever.
type waitGraph struct {
	mutex  sync.Mutex
	owners map[step]*chain
}

var waits = &waitGraph{owners: make(map[step]*chain)}

// wait records that the chain of ctx is about to block on target. It fails
// when the chain creating target is itself blocked, directly or through
// other chains, on a component this chain is creating.
func (g *waitGraph) wait(ctx context.Context, target step) error {
	t := trailFrom(ctx)

	g.mutex.Lock()
	defer g.mutex.Unlock()

	path := append([]step(nil), t.steps...)
	cur := target
	for n := len(g.owners); n > 0; n-- {
		owner, ok := g.owners[cur]
		if !ok || owner == t.chain || owner.waiting == nil {
			break
		}
		cur = *owner.waiting
		path = append(path, cur)
		if g.owners[cur] == t.chain {
			return &CircularReferenceError{Path: stepNames(path)}
		}
	}
	t.chain.waiting = &target
	return nil
}

// own marks the chain of ctx as the creator of s until the returned func
// is called.
func (g *waitGraph) own(ctx context.Context, s step) func() {
	t := trailFrom(ctx)

	g.mutex.Lock()
	g.owners[s] = t.chain
	t.chain.waiting = nil
	g.mutex.Unlock()

	return func() {
		g.mutex.Lock()
		if g.owners[s] == t.chain {
			delete(g.owners, s)
		}
		g.mutex.Unlock()
	}
}

// done clears the wait recorded for the chain of ctx.
func (g *waitGraph) done(ctx context.Context) {
	t := trailFrom(ctx)

	g.mutex.Lock()
	t.chain.waiting = nil
	g.mutex.Unlock()
}
