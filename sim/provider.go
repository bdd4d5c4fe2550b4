package sim

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// Provider is the pluggable construction capability for one sport.
type Provider interface {
	Sport() string
	Graph() *EventGraph
	NewPlayer(name string) *Player
	NewTeam(name string, players []*Player) (*Team, error)
	NewGame(home, away *Team, when time.Time) (*Game, error)
}

// GraphProvider is a Provider backed by a single event graph.
type GraphProvider struct {
	graph *EventGraph
}

// NewGraphProvider returns a provider for graph. The graph is validated so a
// broken transition table fails at registration rather than mid-match.
func NewGraphProvider(graph *EventGraph) (*GraphProvider, error) {
	if graph == nil {
		return nil, fmt.Errorf("provider needs an event graph")
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return &GraphProvider{graph: graph}, nil
}

func (p *GraphProvider) Sport() string      { return p.graph.Sport }
func (p *GraphProvider) Graph() *EventGraph { return p.graph }

func (p *GraphProvider) NewPlayer(name string) *Player {
	return NewPlayer(strings.TrimSpace(name))
}

func (p *GraphProvider) NewTeam(name string, players []*Player) (*Team, error) {
	return NewTeam(name, players)
}

func (p *GraphProvider) NewGame(home, away *Team, when time.Time) (*Game, error) {
	return Schedule(p.graph, home, away, when)
}

var (
	discoveredMu sync.Mutex
	discovered   []Provider
)

// RegisterSport adds p to the set returned by DiscoverProviders.
// Sport packages call it from init(); it panics on a duplicate key since that
// can only be a wiring mistake.
func RegisterSport(p Provider) {
	discoveredMu.Lock()
	defer discoveredMu.Unlock()
	fold := cases.Fold()
	for _, existing := range discovered {
		if fold.String(existing.Sport()) == fold.String(p.Sport()) {
			panic(fmt.Sprintf("sport %q registered twice", p.Sport()))
		}
	}
	discovered = append(discovered, p)
}

// DiscoverProviders returns every provider registered so far, in
// registration order.
func DiscoverProviders() []Provider {
	discoveredMu.Lock()
	defer discoveredMu.Unlock()
	return append([]Provider(nil), discovered...)
}

// Registry resolves sport keys to providers. It remembers the most recently
// resolved provider and returns it directly while the key matches.
// Safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	providers []Provider
	last      Provider
	fold      cases.Caser
}

// NewRegistry creates a registry over the given providers.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{
		providers: append([]Provider(nil), providers...),
		fold:      cases.Fold(),
	}
}

// NewDefaultRegistry creates a registry over DiscoverProviders.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DiscoverProviders()...)
}

// Sports returns the keys of every provider in the registry.
func (r *Registry) Sports() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.providers))
	for i, p := range r.providers {
		keys[i] = p.Sport()
	}
	return keys
}

// GetProvider returns the provider whose key matches sport, ignoring case.
func (r *Registry) GetProvider(sport string) (Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last != nil && r.last.Sport() == sport {
		return r.last, nil
	}
	want := r.fold.String(sport)
	for _, p := range r.providers {
		if r.fold.String(p.Sport()) == want {
			r.last = p
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w for sport %q", ErrProviderNotFound, sport)
}

// CreatePlayer builds a player through the sport's provider.
func (r *Registry) CreatePlayer(sport, name string) (*Player, error) {
	p, err := r.GetProvider(sport)
	if err != nil {
		return nil, err
	}
	return p.NewPlayer(name), nil
}

// CreateTeam builds a team through the sport's provider.
func (r *Registry) CreateTeam(sport, name string, players []*Player) (*Team, error) {
	p, err := r.GetProvider(sport)
	if err != nil {
		return nil, err
	}
	return p.NewTeam(strings.TrimSpace(name), players)
}

// CreateGame schedules a game through the sport's provider.
func (r *Registry) CreateGame(sport string, home, away *Team, when time.Time) (*Game, error) {
	p, err := r.GetProvider(sport)
	if err != nil {
		return nil, err
	}
	return p.NewGame(home, away, when)
}
