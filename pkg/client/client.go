package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cellforge/metabol/internal/metab"
)

// CatalogBuilder provides a fluent API for building pathway catalogs.
// Use it to define metabolite pools, enzyme parameter sets, and the
// reactions that link them, then apply the result to a metabol server.
type CatalogBuilder struct {
	name            string
	defaultCapacity float64
	metabolites     []metab.MetaboliteConfig
	enzymes         []*EnzymeBuilder
	reactions       []*ReactionBuilder
	pathway         []string
}

// NewCatalog creates a new catalog builder with the given name.
func NewCatalog(name string) *CatalogBuilder {
	return &CatalogBuilder{
		name:        name,
		metabolites: make([]metab.MetaboliteConfig, 0),
		enzymes:     make([]*EnzymeBuilder, 0),
		reactions:   make([]*ReactionBuilder, 0),
	}
}

// DefaultCapacity sets the capacity used for metabolite pools created on
// the fly as reaction products. Zero keeps the engine default.
func (cb *CatalogBuilder) DefaultCapacity(capacity float64) *CatalogBuilder {
	cb.defaultCapacity = capacity
	return cb
}

// Metabolite registers a metabolite pool with an initial quantity and an
// upper bound. The unit is optional; pass "" for the engine default.
func (cb *CatalogBuilder) Metabolite(name string, quantity, maxQuantity float64, unit string) *CatalogBuilder {
	cb.metabolites = append(cb.metabolites, metab.MetaboliteConfig{
		Name:        name,
		Quantity:    quantity,
		MaxQuantity: maxQuantity,
		Unit:        unit,
	})
	return cb
}

// Enzyme adds an enzyme definition to the catalog.
func (cb *CatalogBuilder) Enzyme(eb *EnzymeBuilder) *CatalogBuilder {
	cb.enzymes = append(cb.enzymes, eb)
	return cb
}

// Reaction adds a reaction definition to the catalog.
func (cb *CatalogBuilder) Reaction(rb *ReactionBuilder) *CatalogBuilder {
	cb.reactions = append(cb.reactions, rb)
	return cb
}

// Pathway sets an explicit execution order for the reactions. When not
// called, reactions execute in declaration order.
func (cb *CatalogBuilder) Pathway(reactionNames ...string) *CatalogBuilder {
	cb.pathway = append(cb.pathway, reactionNames...)
	return cb
}

// Build converts the builder to a CatalogConfig that can be used with
// Client.ApplyCatalog or fed to the engine directly.
func (cb *CatalogBuilder) Build() metab.CatalogConfig {
	enzymes := make([]metab.EnzymeConfig, 0, len(cb.enzymes))
	for _, eb := range cb.enzymes {
		enzymes = append(enzymes, eb.Build())
	}
	reactions := make([]metab.ReactionConfig, 0, len(cb.reactions))
	for _, rb := range cb.reactions {
		reactions = append(reactions, rb.Build())
	}

	return metab.CatalogConfig{
		Name:            cb.name,
		DefaultCapacity: cb.defaultCapacity,
		Metabolites:     cb.metabolites,
		Enzymes:         enzymes,
		Reactions:       reactions,
		Pathway:         cb.pathway,
	}
}

// EnzymeBuilder provides a fluent API for building enzyme parameter sets:
// turnover rate, per-substrate Michaelis constants, cooperativity, and
// allosteric regulation.
type EnzymeBuilder struct {
	name       string
	kCat       float64
	km         map[string]float64
	hill       map[string]float64
	inhibitors map[string]metab.Inhibition
	activators map[string]float64
	active     *bool
	downstream []string
}

// NewEnzyme creates a new enzyme builder with the given name and turnover
// rate. Substrate Km values are added with the Km method.
func NewEnzyme(name string, kCat float64) *EnzymeBuilder {
	return &EnzymeBuilder{
		name: name,
		kCat: kCat,
		km:   make(map[string]float64),
	}
}

// Km sets the Michaelis constant for one substrate.
func (eb *EnzymeBuilder) Km(substrate string, km float64) *EnzymeBuilder {
	eb.km[substrate] = km
	return eb
}

// Hill sets the cooperativity coefficient for one substrate. Substrates
// without a Hill entry use a coefficient of 1.
func (eb *EnzymeBuilder) Hill(substrate string, coefficient float64) *EnzymeBuilder {
	if eb.hill == nil {
		eb.hill = make(map[string]float64)
	}
	eb.hill[substrate] = coefficient
	return eb
}

// Inhibitor registers an inhibitor with its binding mode and constant.
func (eb *EnzymeBuilder) Inhibitor(metabolite string, mode metab.InhibitionMode, ki float64) *EnzymeBuilder {
	if eb.inhibitors == nil {
		eb.inhibitors = make(map[string]metab.Inhibition)
	}
	eb.inhibitors[metabolite] = metab.Inhibition{Mode: mode, Ki: ki}
	return eb
}

// Activator registers an allosteric activator with its constant.
func (eb *EnzymeBuilder) Activator(metabolite string, ka float64) *EnzymeBuilder {
	if eb.activators == nil {
		eb.activators = make(map[string]float64)
	}
	eb.activators[metabolite] = ka
	return eb
}

// Inactive marks the enzyme as initially inactive. Inactive enzymes
// contribute a zero rate until activated, typically by a cascade.
func (eb *EnzymeBuilder) Inactive() *EnzymeBuilder {
	inactive := false
	eb.active = &inactive
	return eb
}

// Downstream links this enzyme to the enzymes it activates when one of
// its reactions executes.
func (eb *EnzymeBuilder) Downstream(enzymeNames ...string) *EnzymeBuilder {
	eb.downstream = append(eb.downstream, enzymeNames...)
	return eb
}

// Build converts the builder to an EnzymeConfig.
func (eb *EnzymeBuilder) Build() metab.EnzymeConfig {
	return metab.EnzymeConfig{
		Name:       eb.name,
		KCat:       eb.kCat,
		KM:         eb.km,
		Hill:       eb.hill,
		Inhibitors: eb.inhibitors,
		Activators: eb.activators,
		Active:     eb.active,
		Downstream: eb.downstream,
	}
}

// ReactionBuilder provides a fluent API for building reaction
// configurations: the catalyzing enzyme plus the stoichiometry.
type ReactionBuilder struct {
	name       string
	enzyme     string
	substrates map[string]float64
	products   map[string]float64
	reversible bool
}

// NewReaction creates a new reaction builder with the given name,
// catalyzed by the named enzyme.
func NewReaction(name, enzyme string) *ReactionBuilder {
	return &ReactionBuilder{
		name:       name,
		enzyme:     enzyme,
		substrates: make(map[string]float64),
		products:   make(map[string]float64),
	}
}

// Substrate adds a consumed metabolite with its stoichiometric coefficient.
func (rb *ReactionBuilder) Substrate(metabolite string, coefficient float64) *ReactionBuilder {
	rb.substrates[metabolite] = coefficient
	return rb
}

// Product adds a produced metabolite with its stoichiometric coefficient.
func (rb *ReactionBuilder) Product(metabolite string, coefficient float64) *ReactionBuilder {
	rb.products[metabolite] = coefficient
	return rb
}

// Reversible marks the reaction as thermodynamically reversible. The
// engine treats this as metadata; define the reverse direction as its own
// reaction when it should actually execute.
func (rb *ReactionBuilder) Reversible() *ReactionBuilder {
	rb.reversible = true
	return rb
}

// Build converts the builder to a ReactionConfig.
func (rb *ReactionBuilder) Build() metab.ReactionConfig {
	return metab.ReactionConfig{
		Name:       rb.name,
		Enzyme:     rb.enzyme,
		Substrates: rb.substrates,
		Products:   rb.products,
		Reversible: rb.reversible,
	}
}

// Client talks to a metabol server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL
// (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// ApplyCatalog builds the catalog and installs it into the named
// environment, creating the environment when it does not exist.
func (c *Client) ApplyCatalog(ctx context.Context, envID string, catalog *CatalogBuilder) error {
	cfg := catalog.Build()
	return c.post(ctx, []string{"env", envID, "catalog"}, cfg, nil)
}

// Seed registers or tops up metabolite pools in the named environment.
func (c *Client) Seed(ctx context.Context, envID string, metabolites ...metab.MetaboliteConfig) error {
	seed := metab.SeedConfig{Metabolites: metabolites}
	return c.post(ctx, []string{"env", envID, "seed"}, seed, nil)
}

// StepResult is one reaction outcome within a step response.
type StepResult struct {
	Reaction           string  `json:"reaction"`
	Extent             float64 `json:"extent"`
	Blocked            bool    `json:"blocked"`
	Reason             string  `json:"reason,omitempty"`
	CascadeActivations int     `json:"cascade_activations,omitempty"`
}

// StepResponse is the server's response to a step request.
type StepResponse struct {
	Time    int64        `json:"time"`
	Results []StepResult `json:"results"`
}

// Step advances the named environment by one time step.
func (c *Client) Step(ctx context.Context, envID string) (StepResponse, error) {
	var resp StepResponse
	err := c.post(ctx, []string{"env", envID, "step"}, nil, &resp)
	return resp, err
}

// Start begins continuous stepping at the given interval (a Go duration
// string such as "1s") and returns the run ID.
func (c *Client) Start(ctx context.Context, envID, interval string) (string, error) {
	u, err := url.JoinPath(c.baseURL, "env", envID, "start")
	if err != nil {
		return "", fmt.Errorf("building url: %w", err)
	}
	if interval != "" {
		u += "?interval=" + url.QueryEscape(interval)
	}
	var resp struct {
		RunID string `json:"run_id"`
	}
	if err := c.do(ctx, http.MethodPost, u, nil, &resp); err != nil {
		return "", err
	}
	return resp.RunID, nil
}

// Stop halts continuous stepping in the named environment.
func (c *Client) Stop(ctx context.Context, envID string) error {
	return c.post(ctx, []string{"env", envID, "stop"}, nil, nil)
}

// Metabolites returns the current metabolite pools of the environment.
func (c *Client) Metabolites(ctx context.Context, envID string) ([]metab.Metabolite, error) {
	var resp struct {
		Metabolites []metab.Metabolite `json:"metabolites"`
	}
	if err := c.get(ctx, []string{"env", envID, "metabolites"}, &resp); err != nil {
		return nil, err
	}
	return resp.Metabolites, nil
}

// Snapshot returns the environment's current state as a snapshot.
func (c *Client) Snapshot(ctx context.Context, envID string) (metab.Snapshot, error) {
	var snap metab.Snapshot
	err := c.get(ctx, []string{"env", envID, "snapshot"}, &snap)
	return snap, err
}

// SaveSnapshot asks the server to persist the environment state and
// returns the written file path.
func (c *Client) SaveSnapshot(ctx context.Context, envID string) (string, error) {
	var resp struct {
		Path string `json:"path"`
	}
	if err := c.post(ctx, []string{"env", envID, "snapshot"}, nil, &resp); err != nil {
		return "", err
	}
	return resp.Path, nil
}

// RegisterWebhook registers a webhook notifier that receives reaction
// events as JSON POSTs.
func (c *Client) RegisterWebhook(ctx context.Context, id, webhookURL string) error {
	body := map[string]string{"id": id, "type": "webhook", "url": webhookURL}
	return c.post(ctx, []string{"notifiers"}, body, nil)
}

// DeleteEnvironment removes the named environment from the server.
func (c *Client) DeleteEnvironment(ctx context.Context, envID string) error {
	u, err := url.JoinPath(c.baseURL, "env", envID)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}
	return c.do(ctx, http.MethodDelete, u, nil, nil)
}

func (c *Client) post(ctx context.Context, parts []string, body, out any) error {
	u, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}
	return c.do(ctx, http.MethodPost, u, body, out)
}

func (c *Client) get(ctx context.Context, parts []string, out any) error {
	u, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}
	return c.do(ctx, http.MethodGet, u, nil, out)
}

func (c *Client) do(ctx context.Context, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
