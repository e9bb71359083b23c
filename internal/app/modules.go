package app

import (
	"reflect"

	"github.com/specialistvlad/modlink/internal/config"
	"github.com/specialistvlad/modlink/internal/hcl"
	"github.com/specialistvlad/modlink/internal/kinds"
	"github.com/specialistvlad/modlink/internal/yaml"
	"github.com/specialistvlad/modlink/modules/env"
	"github.com/specialistvlad/modlink/modules/print"
)

// coreModules is the definitive list of all modules that are compiled into
// the modlink binary.
var coreModules = []kinds.Module{
	&env.Module{},
	&print.Module{},
}

// builtins registers the interfaces every catalog knows.
type builtins struct{}

func (builtins) Register(c *kinds.Catalog) {
	c.RegisterInterface("any", reflect.TypeOf((*any)(nil)).Elem())
}

// NewLoader returns the loader for every supported declaration format.
func NewLoader() *config.MultiLoader {
	l := config.NewMultiLoader()
	l.Register(hcl.NewLoader(), hcl.Extension)
	l.Register(yaml.NewLoader(), yaml.Extensions...)
	return l
}
