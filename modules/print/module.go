// Package print provides component kinds that produce and print text.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/kinds"
	"go.uber.org/zap"
)

// Module implements the kinds.Module interface for this package.
type Module struct {
	// Out is where printers write. Nil means os.Stdout.
	Out io.Writer
}

// MessageInput defines the arguments of the `message` kind.
type MessageInput struct {
	Text string `modlink:"text,required"`
}

// PrinterInput defines the arguments of the `print` kind.
type PrinterInput struct {
	Source string `modlink:"source,required"`
	Format string `modlink:"format"`
}

// Message is a fixed piece of text.
type Message struct {
	Text string
}

func (m *Message) String() string {
	return m.Text
}

// Printer holds the line it printed when it was created.
type Printer struct {
	Line string
}

func (p *Printer) String() string {
	return p.Line
}

// NewMessage creates a Message.
func NewMessage(_ context.Context, _ kinds.Resolver, input any) (any, error) {
	return &Message{Text: input.(*MessageInput).Text}, nil
}

// NewPrinter resolves its source and prints it once.
func (m *Module) NewPrinter(ctx context.Context, r kinds.Resolver, input any) (any, error) {
	in := input.(*PrinterInput)
	logger := ctxlog.FromContext(ctx)

	src, err := r.Get(ctx, in.Source)
	if err != nil {
		return nil, err
	}

	format := in.Format
	if format == "" {
		format = "%s"
	}
	line := fmt.Sprintf(format, src)

	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	logger.Info("Printing component.", zap.String("source", in.Source))
	if _, err := fmt.Fprintln(out, line); err != nil {
		return nil, err
	}
	return &Printer{Line: line}, nil
}

// Register registers the kinds and interfaces with the catalog.
func (m *Module) Register(c *kinds.Catalog) {
	c.RegisterInterface("fmt.Stringer", reflect.TypeOf((*fmt.Stringer)(nil)).Elem())
	c.RegisterKind("message", &kinds.Kind{
		Input: func() any { return new(MessageInput) },
		Type:  reflect.TypeOf((*Message)(nil)),
		New:   NewMessage,
	})
	c.RegisterKind("print", &kinds.Kind{
		Input: func() any { return new(PrinterInput) },
		Type:  reflect.TypeOf((*Printer)(nil)),
		New:   m.NewPrinter,
	})
}
