package core

import (
	"reflect"

	"github.com/encodeous/adcn/state"
)

func Get[T state.AdcnModule](s *state.State) T {
	t := reflect.TypeFor[T]()
	return s.Modules[t.String()].(T)
}
