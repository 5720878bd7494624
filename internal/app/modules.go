package app

import (
	"io/fs"

	"github.com/vk/xenoarch/internal/registry"
	"github.com/vk/xenoarch/modules/effects"
	"github.com/vk/xenoarch/modules/triggers"
)

// coreModules is the definitive list of all capability modules that are
// compiled into the xenoarch binary.
var coreModules = []registry.Module{
	&triggers.Module{},
	&effects.Module{},
}

// stockCatalogs are the descriptor catalogs shipped alongside coreModules.
var stockCatalogs = []fs.FS{
	triggers.Catalog,
	effects.Catalog,
}
