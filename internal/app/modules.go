package app

import (
	"github.com/vk/traitdexgo/internal/registry"
	"github.com/vk/traitdexgo/modules/corelib"
)

// coreModules is the definitive list of producer modules that are compiled
// into the traitdex binary.
var coreModules = []registry.Module{
	&corelib.Module{},
}
