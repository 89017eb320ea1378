package difactory_test

import (
	"errors"
	"fmt"
	"testing"

	difactory "github.com/bbvch/go-difactory"
)

// ── per request ──────────────────────────────────────────────────────────────

func TestPerRequest_SharedWithinOneCall(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterPerRequest[Screw](f, NewScrew)
	difactory.MustRegisterClass[Engine](f, NewEngine)
	difactory.MustRegisterClass[Car](f, NewCar)

	car := difactory.MustGetInstance[*Car](f)

	if car.Screw != car.Engine.Screw {
		t.Errorf("car screw #%d and engine screw #%d should be the same instance",
			car.Screw.Serial, car.Engine.Screw.Serial)
	}
}

func TestPerRequest_IsolatedAcrossCalls(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterPerRequest[Screw](f, NewScrew)
	difactory.MustRegisterClass[Engine](f, NewEngine)
	difactory.MustRegisterClass[Car](f, NewCar)

	first := difactory.MustGetInstance[*Car](f)
	second := difactory.MustGetInstance[*Car](f)

	if first.Screw == second.Screw {
		t.Error("two top-level calls should not share a per-request instance")
	}
	if second.Screw != second.Engine.Screw {
		t.Error("sharing within the second call should still hold")
	}
}

func TestPerRequest_DirectResolution(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterPerRequest[Screw](f, NewScrew)

	first := difactory.MustGetInstance[*Screw](f)
	second := difactory.MustGetInstance[*Screw](f)

	if first == second {
		t.Error("each top-level call is its own request scope")
	}
}

// ── interface alias ──────────────────────────────────────────────────────────

func TestAlias_DelegatesToImplementation(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterClass[Screw](f, NewScrew)
	difactory.MustRegisterClass[Engine](f, NewEngine).
		WithInterfaces(difactory.KeyOf[IEngine]())

	engine := difactory.MustGetInstance[IEngine](f)
	if engine.Volume() != 10.5 {
		t.Errorf("Volume(): got %v, want 10.5", engine.Volume())
	}
}

func TestAlias_SharesRequestCacheWithTarget(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterPerRequest[Screw](f, NewScrew).
		WithInterfaces(difactory.KeyOf[IScrew]())

	type pair struct {
		Direct  *Screw
		Aliased IScrew
	}
	ctor := func(direct *Screw, aliased IScrew) *pair {
		return &pair{Direct: direct, Aliased: aliased}
	}
	difactory.MustRegisterClass[pair](f, ctor)

	p := difactory.MustGetInstance[*pair](f)
	if IScrew(p.Direct) != p.Aliased {
		t.Error("alias and direct resolution should hit the same per-request instance")
	}
}

func TestRegisterInterface(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterClass[Screw](f, NewScrew)
	difactory.MustRegisterClass[Engine](f, NewEngine)
	difactory.MustRegisterInterface[IEngine, Engine](f)

	if _, err := difactory.GetInstance[IEngine](f); err != nil {
		t.Fatalf("resolve via RegisterInterface: %v", err)
	}
}

// ── provided values ──────────────────────────────────────────────────────────

func TestProvided_SeededValueIsUsed(t *testing.T) {
	f := difactory.New()
	difactory.RegisterProvided[*Screw](f)
	difactory.MustRegisterClass[Engine](f, NewEngine)

	screw := &Screw{Serial: 7}
	engine := difactory.MustGetInstance[*Engine](f, screw)

	if engine.Screw != screw {
		t.Error("engine should be built with the supplied screw")
	}
}

func TestProvided_MissingValueFails(t *testing.T) {
	f := difactory.New()
	difactory.RegisterProvided[*Screw](f)
	difactory.MustRegisterClass[Engine](f, NewEngine)

	_, err := difactory.GetInstance[*Engine](f)

	var missing *difactory.MissingProvidedInstanceError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingProvidedInstanceError", err)
	}
	if missing.Key != difactory.KeyOf[Screw]() {
		t.Errorf("error key: got %v, want %v", missing.Key, difactory.KeyOf[Screw]())
	}
}

func TestProvided_InterfaceKeySatisfiedByConcreteValue(t *testing.T) {
	f := difactory.New()
	difactory.RegisterProvided[IScrew](f)

	screw := &Screw{Serial: 3}
	got := difactory.MustGetInstance[IScrew](f, screw)

	if got.ScrewSerial() != 3 {
		t.Errorf("serial: got %d, want 3", got.ScrewSerial())
	}
}

func TestProvided_SuppliedValueCannotPreemptPerRequestBinding(t *testing.T) {
	f := difactory.New()
	difactory.MustRegisterPerRequest[Screw](f, NewScrew)
	difactory.MustRegisterClass[Engine](f, NewEngine)

	outside := &Screw{Serial: -1}
	engine := difactory.MustGetInstance[*Engine](f, outside)

	if engine.Screw == outside {
		t.Error("a supplied value must not stand in for a per-request binding")
	}
	if engine.Screw.Serial <= 0 {
		t.Errorf("per-request screw should be constructed, got serial %d", engine.Screw.Serial)
	}

	direct := difactory.MustGetInstance[*Screw](f, outside)
	if direct == outside {
		t.Error("direct resolution of a per-request type must also ignore the supplied value")
	}
}

func TestProvided_LaterValueWinsOnAmbiguousSupply(t *testing.T) {
	f := difactory.New()
	difactory.RegisterProvided[*Screw](f)

	first := &Screw{Serial: 1}
	second := &Screw{Serial: 2}
	got := difactory.MustGetInstance[*Screw](f, first, second)

	if got != second {
		t.Errorf("got serial %d, want the later supplied value", got.Serial)
	}
}

// ── constructor failures ─────────────────────────────────────────────────────

func TestConstructorErrorPropagates(t *testing.T) {
	f := difactory.New()
	boom := errors.New("boom")
	ctor := func() (*Screw, error) { return nil, boom }
	difactory.MustRegisterClass[Screw](f, ctor)
	difactory.MustRegisterClass[Engine](f, NewEngine)

	tests := []struct {
		name    string
		resolve func() error
	}{
		{"direct", func() error { _, err := difactory.GetInstance[*Screw](f); return err }},
		{"as dependency", func() error { _, err := difactory.GetInstance[*Engine](f); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.resolve(); !errors.Is(err, boom) {
				t.Errorf("got %v, want the constructor error", err)
			}
		})
	}
}

func TestConstructorErrorDoesNotPoisonLaterCalls(t *testing.T) {
	f := difactory.New()
	calls := 0
	ctor := func() (*Screw, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("transient failure")
		}
		return NewScrew(), nil
	}
	difactory.MustRegisterPerRequest[Screw](f, ctor)

	if _, err := difactory.GetInstance[*Screw](f); err == nil {
		t.Fatal("first call should fail")
	}
	if _, err := difactory.GetInstance[*Screw](f); err != nil {
		t.Fatalf("second call should succeed, got %v", err)
	}
}
