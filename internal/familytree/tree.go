package familytree

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/familytree/internal/person"
	"github.com/louisbranch/familytree/internal/platform/logging"
	"github.com/louisbranch/familytree/internal/random"
)

var tracer = otel.Tracer("github.com/louisbranch/familytree/internal/familytree")

// partnerAgeGap bounds how far a synthesized partner's birth year may be from
// the individual's, in either direction.
const partnerAgeGap = 10

// ErrAlreadyGenerated is returned by a second call to Generate.
var ErrAlreadyGenerated = errors.New("tree already generated")

// Rates supplies the decade rates that drive partnering and child counts.
type Rates interface {
	MarriageRate(year int) (float64, error)
	BirthRate(year int) (float64, error)
}

// Synthesizer creates individuals.
type Synthesizer interface {
	Synthesize(birthYear int, lastName string) (*person.Individual, error)
	DeathYear(birthYear int) (int, error)
}

// FounderSpec fixes the identity of a founder.
type FounderSpec struct {
	FirstName string
	LastName  string
	Gender    person.Gender
}

// Config holds the generation parameters.
type Config struct {
	// HorizonYear is the last birth year at which individuals are created.
	HorizonYear int
	// FounderYear is the founders' shared birth year.
	FounderYear int
	Founders    [2]FounderSpec
}

// DefaultConfig returns the Jones founders born in 1950 with a 2120 horizon.
func DefaultConfig() Config {
	return Config{
		HorizonYear: 2120,
		FounderYear: 1950,
		Founders: [2]FounderSpec{
			{FirstName: "Desmond", LastName: "Jones", Gender: person.Male},
			{FirstName: "Molly", LastName: "Jones", Gender: person.Female},
		},
	}
}

// Tree owns the population and the work queue.
type Tree struct {
	cfg    Config
	rates  Rates
	people Synthesizer
	rng    *rand.Rand
	logger *zap.Logger

	population []*person.Individual
	// queue holds population indexes; head is the next one to process.
	queue     []int
	head      int
	generated bool
}

// New creates an empty tree. A nil logger discards log output.
func New(cfg Config, rates Rates, people Synthesizer, rng *rand.Rand, logger *zap.Logger) *Tree {
	return &Tree{
		cfg:    cfg,
		rates:  rates,
		people: people,
		rng:    rng,
		logger: logging.OrNop(logger),
	}
}

// Generate grows the tree from the founders. It may be called once.
//
// The run ends when the queue drains, when an individual born after the
// horizon is dequeued (anything still queued is abandoned), or when ctx is
// cancelled. Reference lookup failures abort the run.
func (t *Tree) Generate(ctx context.Context) (err error) {
	if t.generated {
		return ErrAlreadyGenerated
	}
	t.generated = true

	ctx, span := tracer.Start(ctx, "familytree.Generate", trace.WithAttributes(
		attribute.Int("familytree.horizon_year", t.cfg.HorizonYear),
		attribute.Int("familytree.founder_year", t.cfg.FounderYear),
	))
	defer func() {
		span.SetAttributes(attribute.Int("familytree.population", len(t.population)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generate tree")
		}
		span.End()
	}()

	if err := t.addFounders(); err != nil {
		return err
	}

	for t.head < len(t.queue) {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := t.population[t.queue[t.head]]
		t.head++

		if p.BirthYear > t.cfg.HorizonYear {
			t.logger.Debug("horizon reached",
				zap.Stringer("individual", p),
				zap.Int("abandoned", len(t.queue)-t.head))
			break
		}
		if p.ChildrenGenerated() {
			continue
		}
		if err := t.expand(p); err != nil {
			return fmt.Errorf("expand %s: %w", p, err)
		}
	}

	t.logger.Info("tree generated",
		zap.Int("population", len(t.population)),
		zap.Int("processed", t.head))
	return nil
}

func (t *Tree) addFounders() error {
	var founders [2]*person.Individual
	for i, spec := range t.cfg.Founders {
		died, err := t.people.DeathYear(t.cfg.FounderYear)
		if err != nil {
			return fmt.Errorf("founder %s %s: %w", spec.FirstName, spec.LastName, err)
		}
		founders[i] = person.NewIndividual(spec.FirstName, spec.LastName, spec.Gender, t.cfg.FounderYear, died)
	}
	if err := person.Pair(founders[0], founders[1]); err != nil {
		return err
	}
	for _, f := range founders {
		t.enqueue(t.add(f))
	}
	return nil
}

// expand settles p's partner and children. It does nothing when p's family
// already has its children.
func (t *Tree) expand(p *person.Individual) error {
	if p.ChildrenGenerated() {
		return nil
	}
	partnered, err := t.ensurePartner(p)
	if err != nil {
		return err
	}

	family := p.Family()
	elder := family.ElderBirthYear()
	count, err := t.childCount(elder)
	if err != nil {
		return err
	}

	years := ChildBirthYears(elder, count)
	children := make([]*person.Individual, 0, len(years))
	for _, year := range years {
		if year > t.cfg.HorizonYear {
			continue
		}
		child, err := t.people.Synthesize(year, p.LastName)
		if err != nil {
			return err
		}
		children = append(children, child)
	}
	if err := family.AssignChildren(children); err != nil {
		return err
	}
	for _, child := range children {
		t.enqueue(t.add(child))
	}

	t.logger.Debug("family expanded",
		zap.Stringer("individual", p),
		zap.Bool("new_partner", partnered),
		zap.Int("elder_year", elder),
		zap.Int("children", len(children)),
		zap.Int("dropped", len(years)-len(children)))
	return nil
}

// ensurePartner gives an unpartnered p a partner with the decade's marriage
// probability. A partner who would be born after the horizon is not created.
// It reports whether a partner was created.
func (t *Tree) ensurePartner(p *person.Individual) (bool, error) {
	if p.Partner() != nil {
		return false, nil
	}
	rate, err := t.rates.MarriageRate(p.BirthYear)
	if err != nil {
		return false, err
	}
	if t.rng.Float64() >= rate {
		return false, nil
	}

	year := random.IntBetween(t.rng, p.BirthYear-partnerAgeGap, p.BirthYear+partnerAgeGap)
	if year > t.cfg.HorizonYear {
		return false, nil
	}
	partner, err := t.people.Synthesize(year, "")
	if err != nil {
		return false, err
	}
	if err := person.Pair(p, partner); err != nil {
		return false, err
	}
	t.add(partner)
	return true, nil
}

// childCount draws uniformly from ChildCountRange for the elder parent's
// decade. A negative draw means no children.
func (t *Tree) childCount(elderYear int) (int, error) {
	rate, err := t.rates.BirthRate(elderYear)
	if err != nil {
		return 0, err
	}
	lo, hi := ChildCountRange(rate)
	return max(random.IntBetween(t.rng, lo, hi), 0), nil
}

func (t *Tree) add(p *person.Individual) int {
	t.population = append(t.population, p)
	return len(t.population) - 1
}

func (t *Tree) enqueue(idx int) {
	t.queue = append(t.queue, idx)
}
