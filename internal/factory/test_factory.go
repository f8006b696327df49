package factory

import (
	"time"

	"github.com/BlackWLN/seafight/internal/dependencies/mocks"
	"github.com/BlackWLN/seafight/internal/dependencies/random"
	"github.com/BlackWLN/seafight/internal/storage/memory"
	"github.com/BlackWLN/seafight/internal/testutil"
)

// TestApp bundles an App with its mockable dependencies
type TestApp struct {
	*App
	Clock *mocks.MockClock
}

// NewForTest wires an App on in-memory storage with a fixed clock.
// Randomness stays real so ship placement always succeeds.
func NewForTest() *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	app := newWithDependencies(store, clk, random.New(), testutil.NopLogger())

	return &TestApp{App: app, Clock: clk}
}
