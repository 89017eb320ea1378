package difactory_test

import "sync/atomic"

// Shared fixture graph: a Car depends on an Engine and a Screw; the Engine
// depends on the same Screw. Serial numbers make instance identity visible.

var screwSerial atomic.Int64

type IScrew interface {
	ScrewSerial() int64
}

type Screw struct {
	Serial int64
}

func NewScrew() *Screw { return &Screw{Serial: screwSerial.Add(1)} }
func (s *Screw) ScrewSerial() int64 { return s.Serial }

type IEngine interface {
	Volume() float64
}

type Engine struct {
	Screw *Screw
}

func NewEngine(screw *Screw) *Engine { return &Engine{Screw: screw} }
func (e *Engine) Volume() float64 { return 10.5 }

type Car struct {
	Engine *Engine
	Screw  *Screw
}

func NewCar(engine *Engine, screw *Screw) *Car {
	return &Car{Engine: engine, Screw: screw}
}

// Widget counts its constructions, for singleton lifetime tests.

var widgetBuilds atomic.Int64

type Widget struct {
	Build int64
}

func NewWidget() *Widget { return &Widget{Build: widgetBuilds.Add(1)} }

// Mutually dependent pair for cycle tests.

type IA interface{ A() }
type IB interface{ B() }

type AImpl struct{ b IB }

func NewA(b IB) *AImpl { return &AImpl{b: b} }
func (*AImpl) A() {}

type BImpl struct{ a IA }

func NewB(a IA) *BImpl { return &BImpl{a: a} }
func (*BImpl) B() {}

// Looper depends on the interface it implements itself, the smallest
// possible cycle.

type ILooper interface{ Loop() }

type Looper struct{ self ILooper }

func NewLooper(self ILooper) *Looper { return &Looper{self: self} }
func (*Looper) Loop() {}
