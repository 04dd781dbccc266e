package window

import (
	"math/rand/v2"

	"github.com/oklog/ulid/v2"

	"github.com/atomicstack/trailsim/internal/director"
	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/factory"
)

// Env is the per-run context handed to every window. It replaces a global
// simulation singleton: one Env exists per run and is threaded through the
// stack into each window it creates.
type Env struct {
	RunID    ulid.ULID
	Forms    *factory.Factory[FormKind, Form]
	Director *director.Director
	Entities *entity.Registry
	Rand     *rand.Rand
	// World is content-owned simulation state; the core never inspects it.
	World any
}
