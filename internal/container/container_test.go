package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/modlink/internal/binding"
	"github.com/specialistvlad/modlink/internal/kinds"
	"github.com/specialistvlad/modlink/internal/ref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type greeter interface{ Greet() string }

type staticGreeter struct {
	text   string
	closed *[]string
}

func (g *staticGreeter) Greet() string { return g.text }

func (g *staticGreeter) Close() error {
	if g.closed != nil {
		*g.closed = append(*g.closed, g.text)
	}
	return nil
}

// greeterKind returns a kind producing a greeter with the given text and
// counting constructor calls.
func greeterKind(text string, calls *atomic.Int32, closed *[]string) *kinds.Kind {
	return &kinds.Kind{
		Type: ref.TypeOf[greeter](),
		New: func(context.Context, kinds.Resolver, any) (any, error) {
			if calls != nil {
				calls.Add(1)
			}
			return &staticGreeter{text: text, closed: closed}, nil
		},
	}
}

// dependentKind returns a kind whose constructor resolves dep first.
func dependentKind(dep string) *kinds.Kind {
	return &kinds.Kind{
		Type: ref.TypeOf[greeter](),
		New: func(ctx context.Context, r kinds.Resolver, _ any) (any, error) {
			v, err := r.Get(ctx, dep)
			if err != nil {
				return nil, err
			}
			return &staticGreeter{text: "via " + v.(greeter).Greet()}, nil
		},
	}
}

func TestContainer_GetCreatesOnce(t *testing.T) {
	var calls atomic.Int32
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "hello", Kind: greeterKind("hi", &calls, nil)}))

	var g errgroup.Group
	results := make([]any, 8)
	for i := range results {
		i := i
		g.Go(func() error {
			v, err := c.Get(context.Background(), "hello")
			results[i] = v
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestContainer_Errors(t *testing.T) {
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "hello", Kind: greeterKind("hi", nil, nil)}))

	var dup *DuplicateComponentError
	require.ErrorAs(t, c.Define(&Definition{Name: "hello", Kind: greeterKind("again", nil, nil)}), &dup)
	assert.Equal(t, "hello", dup.ID)

	require.ErrorAs(t, c.Import("hello", NewRoot("root").Lookup("hello", nil)), &dup)

	assert.Error(t, c.Define(&Definition{Name: "nokind"}))

	_, err := c.Get(context.Background(), "missing")
	var noSuch *NoSuchComponentError
	require.ErrorAs(t, err, &noSuch)
	assert.Equal(t, "a.hcl", noSuch.Location)
}

func TestContainer_CreationErrorIsNotCached(t *testing.T) {
	var attempts atomic.Int32
	boom := errors.New("boom")
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "flaky", Kind: &kinds.Kind{
		New: func(context.Context, kinds.Resolver, any) (any, error) {
			if attempts.Add(1) == 1 {
				return nil, boom
			}
			return "ok", nil
		},
	}}))

	_, err := c.Get(context.Background(), "flaky")
	require.ErrorIs(t, err, boom)
	var creation *CreationError
	require.ErrorAs(t, err, &creation)
	assert.Equal(t, "flaky", creation.ID)

	v, err := c.Get(context.Background(), "flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestContainer_CircularReference(t *testing.T) {
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "a", Kind: dependentKind("b")}))
	require.NoError(t, c.Define(&Definition{Name: "b", Kind: dependentKind("a")}))

	_, err := c.Get(context.Background(), "a")
	var circular *CircularReferenceError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"a@a.hcl", "b@a.hcl", "a@a.hcl"}, circular.Path)
}

func TestContainer_InstantiateSkipsLazy(t *testing.T) {
	var eager, lazy atomic.Int32
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "eager", Kind: greeterKind("e", &eager, nil)}))
	require.NoError(t, c.Define(&Definition{Name: "lazy", Kind: greeterKind("l", &lazy, nil), Lazy: true}))

	require.NoError(t, c.Instantiate(context.Background()))
	assert.Equal(t, int32(1), eager.Load())
	assert.Equal(t, int32(0), lazy.Load())
	assert.Equal(t, []string{"eager", "lazy"}, c.Names())
}

func TestContainer_CloseInReverseCreationOrder(t *testing.T) {
	var closed []string
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "first", Kind: greeterKind("first", nil, &closed)}))
	require.NoError(t, c.Define(&Definition{Name: "second", Kind: greeterKind("second", nil, &closed)}))
	require.NoError(t, c.Instantiate(context.Background()))

	require.NoError(t, c.Close())
	assert.Equal(t, []string{"second", "first"}, closed)

	_, err := c.Get(context.Background(), "first")
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, c.Close(), "closing twice is a no-op")
}

func TestContainer_TypeOf(t *testing.T) {
	root := NewRoot(DefaultRootName)
	c := New("a.hcl")
	require.NoError(t, c.Define(&Definition{Name: "hello", Kind: greeterKind("hi", nil, nil)}))
	require.NoError(t, c.Import("reader", root.Lookup("reader", ref.TypeOf[io.Reader]())))

	typ, ok := c.TypeOf("hello")
	require.True(t, ok)
	assert.Equal(t, ref.TypeOf[greeter](), typ)

	typ, ok = c.TypeOf("reader")
	require.True(t, ok)
	assert.Equal(t, ref.TypeOf[io.Reader](), typ)

	_, ok = c.TypeOf("missing")
	assert.False(t, ok)
}

func TestContainers_CrossModuleThroughRoot(t *testing.T) {
	ctx := context.Background()
	root := NewRoot(DefaultRootName)

	provider := New("provider.hcl")
	require.NoError(t, provider.Define(&Definition{Name: "impl", Kind: greeterKind("world", nil, nil)}))
	root.Export(ctx, "greeting", binding.NewExport("impl", ref.TypeOf[greeter](), provider))

	consumer := New("consumer.hcl")
	require.NoError(t, consumer.Import("greeting", root.Lookup("greeting", ref.TypeOf[greeter]())))
	require.NoError(t, consumer.Define(&Definition{Name: "user", Kind: dependentKind("greeting")}))

	v, err := consumer.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "via world", v.(greeter).Greet())
}

func TestContainers_CrossModuleCycleIsReported(t *testing.T) {
	ctx := context.Background()
	root := NewRoot(DefaultRootName)

	a := New("a.hcl")
	b := New("b.hcl")
	require.NoError(t, a.Import("y", root.Lookup("y", nil)))
	require.NoError(t, a.Define(&Definition{Name: "x", Kind: dependentKind("y")}))
	require.NoError(t, b.Import("x", root.Lookup("x", nil)))
	require.NoError(t, b.Define(&Definition{Name: "y", Kind: dependentKind("x")}))
	root.Export(ctx, "x", binding.NewExport("x", nil, a))
	root.Export(ctx, "y", binding.NewExport("y", nil, b))

	_, err := a.Get(ctx, "x")
	var circular *CircularReferenceError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, "x@a.hcl", circular.Path[0])
}

// gatedKind returns a kind whose constructor waits until every gated
// constructor has started and then resolves dep.
func gatedKind(dep string, gate *sync.WaitGroup) *kinds.Kind {
	return &kinds.Kind{
		Type: ref.TypeOf[greeter](),
		New: func(ctx context.Context, r kinds.Resolver, _ any) (any, error) {
			gate.Done()
			gate.Wait()
			v, err := r.Get(ctx, dep)
			if err != nil {
				return nil, err
			}
			return &staticGreeter{text: "via " + v.(greeter).Greet()}, nil
		},
	}
}

func TestContainers_ConcurrentCrossModuleCycleIsReported(t *testing.T) {
	ctx := context.Background()
	root := NewRoot(DefaultRootName)

	var gate sync.WaitGroup
	gate.Add(2)

	a := New("a.hcl")
	b := New("b.hcl")
	require.NoError(t, a.Import("y", root.Lookup("y", nil)))
	require.NoError(t, a.Define(&Definition{Name: "x", Kind: gatedKind("y", &gate)}))
	require.NoError(t, b.Import("x", root.Lookup("x", nil)))
	require.NoError(t, b.Define(&Definition{Name: "y", Kind: gatedKind("x", &gate)}))
	root.Export(ctx, "x", binding.NewExport("x", nil, a))
	root.Export(ctx, "y", binding.NewExport("y", nil, b))

	errs := make(chan error, 2)
	go func() {
		_, err := a.Get(ctx, "x")
		errs <- err
	}()
	go func() {
		_, err := b.Get(ctx, "y")
		errs <- err
	}()

	for n := 0; n < 2; n++ {
		select {
		case err := <-errs:
			var circular *CircularReferenceError
			require.ErrorAs(t, err, &circular)
			assert.Len(t, circular.Path, 3)
		case <-time.After(5 * time.Second):
			t.Fatal("resolving both ends of a cycle concurrently did not finish")
		}
	}

	waits.mutex.Lock()
	defer waits.mutex.Unlock()
	assert.Empty(t, waits.owners)
}

func TestRoot_FirstExportWins(t *testing.T) {
	ctx := context.Background()
	root := NewRoot("custom")
	assert.Equal(t, "custom", root.Name())

	first := binding.NewExport("one", nil, New("a.hcl"))
	second := binding.NewExport("two", nil, New("b.hcl"))

	assert.True(t, root.Export(ctx, "svc", first))
	assert.False(t, root.Export(ctx, "svc", second))

	got, ok := root.ExportBinding(binding.ExportID("svc"))
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, []*binding.ExportBinding{first}, root.Bindings())

	lookup := root.Lookup("svc", nil)
	assert.Equal(t, binding.ExportID("svc"), lookup.ExportID())
	assert.Equal(t, fmt.Sprint(lookup), lookup.String())
}
