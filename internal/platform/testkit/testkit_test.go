package testkit

import (
	"fmt"
	"testing"
)

var clock = func() string { return "real" }

func TestSwap(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		Swap(t, &clock, func() string { return "fake" })
		if clock() != "fake" {
			t.Fatalf("swap not applied")
		}
	})
	if clock() != "real" {
		t.Fatalf("swap not restored")
	}
}

func TestMustPanic(t *testing.T) {
	v := MustPanic(t, func() { panic("requires a non nil Repo") })
	if fmt.Sprint(v) != "requires a non nil Repo" {
		t.Fatalf("recovered %v", v)
	}
}

func TestSerial(t *testing.T) {
	order := make(chan int, 2)
	for i := range 2 {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			t.Parallel()
			Serial(t)
			order <- i
		})
	}
	t.Cleanup(func() {
		if len(order) != 2 {
			t.Fatalf("both subtests should have run, got %d", len(order))
		}
	})
}

func TestMustContain(t *testing.T) {
	MustContain(t, `{"component":"activity"}`, "activity")
}
