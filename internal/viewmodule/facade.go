package viewmodule

import (
	"sync"

	"github.com/nfrund/golfjourneys/internal/bundle"
)

// Default returns the process-wide module backed by the embedded bundle.
var Default = sync.OnceValue(func() *Module {
	return New(bundle.Default())
})

// ModuleBundle returns the resource bundle of the default module.
func ModuleBundle() *bundle.Bundle {
	return Default().Bundle()
}

// ViewClassForIdentifier resolves an identifier using the default module.
func ViewClassForIdentifier(id string) (*ViewClass, bool) {
	return Default().ViewClass(id)
}
