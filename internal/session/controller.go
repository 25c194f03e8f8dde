package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/aggregate"
	"github.com/dmitrijs2005/finanzas/internal/authevents"
	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/logging"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Ready
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Provisioner resolves and updates profiles.
type Provisioner interface {
	ResolveProfile(ctx context.Context, id models.Identity) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profileID, email, displayName string) (*models.Profile, error)
}

// Ledger reads and writes one profile's movements and categories.
type Ledger interface {
	Load(ctx context.Context, ownerProfileID string) (*services.Snapshot, error)
	CreateMovement(ctx context.Context, draft models.Movement, cachedTypes []models.CategoryType) (*models.Movement, error)
	UpdateMovement(ctx context.Context, m models.Movement, cachedTypes []models.CategoryType) (*models.Movement, error)
	DeleteMovement(ctx context.Context, id, ownerProfileID string) error
	CreateCategoryTypes(ctx context.Context, cs []models.CategoryType) ([]models.CategoryType, error)
}

// TokenParser turns a provider access token into an Identity.
type TokenParser func(token string) (models.Identity, error)

type Options struct {
	// LoadTimeout bounds one ledger load; zero means no extra bound.
	LoadTimeout time.Duration

	// Location is the calendar used for filters; nil means time.Local.
	Location *time.Location

	ParseToken TokenParser
	Now        func() time.Time
	NewID      func() string
	Logger     logging.Logger
}

// Controller is the session state machine. It is safe for concurrent use;
// mutations are serialized.
type Controller struct {
	provisioner Provisioner
	ledger      Ledger
	parseToken  TokenParser
	loadTimeout time.Duration
	now         func() time.Time
	newID       func() string
	log         logging.Logger
	loc         *time.Location

	// opMu serializes mutations so each runs to completion before the next.
	opMu sync.Mutex

	mu         sync.Mutex
	state      State
	demo       bool
	profile    *models.Profile
	types      []models.CategoryType
	movements  []models.Movement
	filter     aggregate.Filter
	generation uint64
	// ledgerVersion changes with every committed mutation.
	ledgerVersion uint64
	lastErr       error

	listenersMu sync.Mutex
	nextID      int
	listeners   map[int]func()
}

func NewController(p Provisioner, l Ledger, opts Options) *Controller {
	c := &Controller{
		provisioner: p,
		ledger:      l,
		parseToken:  opts.ParseToken,
		loadTimeout: opts.LoadTimeout,
		now:         opts.Now,
		newID:       opts.NewID,
		log:         opts.Logger,
		listeners:   make(map[int]func()),
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	c.log = c.log.With("module", "session")

	c.loc = opts.Location
	if c.loc == nil {
		c.loc = time.Local
	}
	c.filter = aggregate.DefaultFilter(c.now().In(c.loc))
	return c
}

// Subscribe registers fn to be called after every state, ledger or filter
// change. The returned function removes it.
func (c *Controller) Subscribe(fn func()) (unsubscribe func()) {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

func (c *Controller) notify() {
	c.listenersMu.Lock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsDemo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.demo
}

// Profile returns a copy of the current profile, or nil when not Ready.
func (c *Controller) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return nil
	}
	p := *c.profile
	return &p
}

func (c *Controller) CategoryTypes() []models.CategoryType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.types)
}

func (c *Controller) Movements() []models.Movement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.movements)
}

func (c *Controller) Filter() aggregate.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// LastError is the most recent failure that changed or blocked the session.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Summary computes every derived view for the current filter.
func (c *Controller) Summary() aggregate.Summary {
	c.mu.Lock()
	movements := slices.Clone(c.movements)
	f := c.filter
	c.mu.Unlock()
	return aggregate.Summarize(movements, f)
}

// HandleEvent applies an auth event. It matches authevents.Handler.
func (c *Controller) HandleEvent(ctx context.Context, e authevents.Event) error {
	switch e.Kind {
	case authevents.SignedOut:
		c.SignOut()
		return nil

	case authevents.SignedIn:
		id, err := c.identity(e)
		if err != nil {
			c.signOut(err)
			return err
		}
		return c.SignIn(ctx, id)

	case authevents.TokenRefreshed:
		id, err := c.identity(e)
		if err != nil {
			c.signOut(err)
			return err
		}
		c.mu.Lock()
		same := c.state == Ready && !c.demo && c.profile != nil && c.profile.ExternalAuthID == id.Subject
		c.mu.Unlock()
		if same {
			return nil
		}
		return c.SignIn(ctx, id)
	}
	return fmt.Errorf("%w: unknown auth event %s", common.ErrInvalidArgument, e.Kind)
}

func (c *Controller) identity(e authevents.Event) (models.Identity, error) {
	if e.Identity != nil {
		return *e.Identity, nil
	}
	if e.Token == "" {
		return models.Identity{}, fmt.Errorf("%w: %s event without identity", common.ErrorUnauthorized, e.Kind)
	}
	if c.parseToken == nil {
		return models.Identity{}, fmt.Errorf("%w: no token parser configured", common.ErrorUnauthorized)
	}
	return c.parseToken(e.Token)
}

// SignIn resolves the profile for id and loads its ledger. The session is
// Ready only if provisioning succeeds; a failed ledger load leaves it Ready
// with an empty ledger and returns the error.
func (c *Controller) SignIn(ctx context.Context, id models.Identity) error {
	c.mu.Lock()
	if c.demo {
		c.mu.Unlock()
		return common.ErrDemoSignIn
	}
	c.generation++
	gen := c.generation
	c.clearLocked()
	c.state = Authenticating
	c.lastErr = nil
	c.mu.Unlock()
	c.notify()

	profile, err := c.provisioner.ResolveProfile(ctx, id)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return common.ErrStaleLoad
	}
	if err != nil {
		c.state = Unauthenticated
		c.lastErr = err
		c.mu.Unlock()
		c.log.Warn(ctx, "profile resolution failed", "subject", id.Subject, "error", err)
		c.notify()
		return fmt.Errorf("error resolving profile: %w", err)
	}
	c.profile = profile
	c.state = Ready
	c.mu.Unlock()

	c.log.Info(ctx, "signed in", "profile_id", profile.ID)
	c.notify()

	return c.Reload(ctx)
}

// SignOut clears the profile and all ledger state. It also leaves demo mode.
func (c *Controller) SignOut() {
	c.signOut(nil)
}

func (c *Controller) signOut(cause error) {
	c.mu.Lock()
	c.resetLocked(cause)
	c.mu.Unlock()
	c.notify()
}

// InvalidateSession signs out an authenticated session after a failed
// session check and records cause. Demo and signed-out sessions are left
// alone.
func (c *Controller) InvalidateSession(cause error) {
	c.mu.Lock()
	if c.demo || c.state == Unauthenticated {
		c.mu.Unlock()
		return
	}
	c.resetLocked(cause)
	c.mu.Unlock()
	c.log.Warn(context.Background(), "session invalidated", "error", cause)
	c.notify()
}

func (c *Controller) resetLocked(cause error) {
	c.generation++
	c.clearLocked()
	c.demo = false
	c.state = Unauthenticated
	c.lastErr = cause
}

func (c *Controller) clearLocked() {
	c.profile = nil
	c.types = nil
	c.movements = nil
	c.filter.CategoryTypeID = ""
}

// StartDemo replaces the session with the demo fixture and enters Ready
// without contacting provisioning or storage.
func (c *Controller) StartDemo() {
	now := c.now()
	profile, types, movements := DemoFixture(now)

	c.mu.Lock()
	c.generation++
	c.clearLocked()
	c.demo = true
	c.profile = &profile
	c.types = types
	c.movements = movements
	c.filter = aggregate.DefaultFilter(now.In(c.loc))
	c.state = Ready
	c.lastErr = nil
	c.mu.Unlock()
	c.notify()
}

// ready captures what a mutation or load needs from a Ready session.
type ready struct {
	gen     uint64
	version uint64
	demo    bool
	profile models.Profile
	types   []models.CategoryType
}

func (c *Controller) readyLocked() (ready, error) {
	if c.state != Ready || c.profile == nil {
		return ready{}, common.ErrNotReady
	}
	return ready{
		gen:     c.generation,
		version: c.ledgerVersion,
		demo:    c.demo,
		profile: *c.profile,
		types:   slices.Clone(c.types),
	}, nil
}

func (c *Controller) snapshot() (ready, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readyLocked()
}

// maxReloadAttempts bounds how often Reload starts over because a mutation
// was committed while a load was in flight.
const maxReloadAttempts = 3

// Reload fetches the ledger for the current profile. Results for a profile
// or session that is no longer current are discarded with ErrStaleLoad. A
// load that overlaps a committed mutation is repeated.
func (c *Controller) Reload(ctx context.Context) error {
	if c.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.loadTimeout)
		defer cancel()
	}

	for attempt := 1; ; attempt++ {
		err := c.reloadOnce(ctx)
		if !errors.Is(err, errLedgerChanged) {
			return err
		}
		if attempt == maxReloadAttempts {
			return common.ErrStaleLoad
		}
		c.log.Debug(ctx, "ledger changed during load, reloading", "attempt", attempt)
	}
}

var errLedgerChanged = errors.New("ledger changed during load")

func (c *Controller) reloadOnce(ctx context.Context) error {
	r, err := c.snapshot()
	if err != nil {
		return err
	}
	if r.demo {
		return nil
	}

	snap, err := c.ledger.Load(ctx, r.profile.ID)

	c.mu.Lock()
	if r.gen != c.generation || c.profile == nil || c.profile.ID != r.profile.ID {
		c.mu.Unlock()
		c.log.Debug(ctx, "discarding stale ledger load", "profile_id", r.profile.ID)
		return common.ErrStaleLoad
	}
	if r.version != c.ledgerVersion {
		c.mu.Unlock()
		return errLedgerChanged
	}
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		c.notify()
		return fmt.Errorf("error loading ledger: %w", err)
	}
	c.types = snap.CategoryTypes
	c.movements = snap.Movements
	c.lastErr = nil
	c.mu.Unlock()

	c.notify()
	return nil
}

// commit applies fn under the state lock if the session that started the
// mutation is still current.
func (c *Controller) commit(r ready, fn func()) error {
	c.mu.Lock()
	if r.gen != c.generation {
		c.mu.Unlock()
		return common.ErrStaleLoad
	}
	fn()
	c.ledgerVersion++
	c.mu.Unlock()
	c.notify()
	return nil
}

// AddMovement stores draft for the current profile and inserts the joined
// result into the ledger.
func (c *Controller) AddMovement(ctx context.Context, draft models.Movement) (*models.Movement, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	r, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	draft.OwnerProfileID = r.profile.ID

	var created models.Movement
	if r.demo {
		if err := draft.Validate(); err != nil {
			return nil, err
		}
		if !hasType(r.types, draft.CategoryTypeID) {
			return nil, fmt.Errorf("%w: unknown category %s", common.ErrInvalidArgument, draft.CategoryTypeID)
		}
		draft.ID = c.newID()
		draft.CreatedAt = c.now()
		created = models.JoinOne(draft, r.types)
	} else {
		m, err := c.ledger.CreateMovement(ctx, draft, r.types)
		if err != nil {
			return nil, err
		}
		created = *m
	}

	err = c.commit(r, func() {
		c.movements = insertByDate(c.movements, created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMovement replaces a stored movement of the current profile.
func (c *Controller) UpdateMovement(ctx context.Context, m models.Movement) (*models.Movement, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if m.ID == "" {
		return nil, fmt.Errorf("%w: movement id is required for update", common.ErrInvalidArgument)
	}

	r, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	m.OwnerProfileID = r.profile.ID

	var updated models.Movement
	if r.demo {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if !hasType(r.types, m.CategoryTypeID) {
			return nil, fmt.Errorf("%w: unknown category %s", common.ErrInvalidArgument, m.CategoryTypeID)
		}
		c.mu.Lock()
		i := indexOf(c.movements, m.ID)
		if i >= 0 {
			m.CreatedAt = c.movements[i].CreatedAt
		}
		c.mu.Unlock()
		if i < 0 {
			return nil, fmt.Errorf("movement %s: %w", m.ID, common.ErrorNotFound)
		}
		updated = models.JoinOne(m, r.types)
	} else {
		out, err := c.ledger.UpdateMovement(ctx, m, r.types)
		if err != nil {
			return nil, err
		}
		updated = *out
	}

	err = c.commit(r, func() {
		if i := indexOf(c.movements, updated.ID); i >= 0 {
			c.movements = slices.Delete(c.movements, i, i+1)
		}
		c.movements = insertByDate(c.movements, updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMovement removes a movement of the current profile.
func (c *Controller) DeleteMovement(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	r, err := c.snapshot()
	if err != nil {
		return err
	}

	if r.demo {
		c.mu.Lock()
		found := indexOf(c.movements, id) >= 0
		c.mu.Unlock()
		if !found {
			return fmt.Errorf("movement %s: %w", id, common.ErrorNotFound)
		}
	} else if err := c.ledger.DeleteMovement(ctx, id, r.profile.ID); err != nil {
		return err
	}

	return c.commit(r, func() {
		if i := indexOf(c.movements, id); i >= 0 {
			c.movements = slices.Delete(c.movements, i, i+1)
		}
	})
}

// AddCategoryType creates a category for the current profile.
func (c *Controller) AddCategoryType(ctx context.Context, name string, goal decimal.Decimal) (*models.CategoryType, error) {
	created, err := c.addCategoryTypes(ctx, []models.CategoryType{{Name: strings.TrimSpace(name), GoalAmount: goal}})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// SeedStandardCategories creates the standard categories the profile does
// not have yet, matched by name. It returns the ones created.
func (c *Controller) SeedStandardCategories(ctx context.Context) ([]models.CategoryType, error) {
	c.mu.Lock()
	have := make(map[string]bool, len(c.types))
	for _, t := range c.types {
		have[t.Name] = true
	}
	c.mu.Unlock()

	var missing []models.CategoryType
	for _, t := range models.StandardCategories() {
		if !have[t.Name] {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	return c.addCategoryTypes(ctx, missing)
}

func (c *Controller) addCategoryTypes(ctx context.Context, cs []models.CategoryType) ([]models.CategoryType, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	r, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	for i := range cs {
		cs[i].OwnerProfileID = r.profile.ID
	}

	var created []models.CategoryType
	if r.demo {
		now := c.now()
		for i, t := range cs {
			if err := t.Validate(); err != nil {
				return nil, err
			}
			t.ID = c.newID()
			t.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
			created = append(created, t)
		}
	} else {
		created, err = c.ledger.CreateCategoryTypes(ctx, cs)
		if err != nil {
			return nil, err
		}
	}

	err = c.commit(r, func() {
		c.types = append(c.types, created...)
		c.movements = models.Join(c.movements, c.types)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProfile changes the current profile's email and display name.
func (c *Controller) UpdateProfile(ctx context.Context, email, displayName string) (*models.Profile, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	r, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	var updated models.Profile
	if r.demo {
		if strings.TrimSpace(email) == "" {
			return nil, fmt.Errorf("%w: email is required", common.ErrInvalidArgument)
		}
		updated = r.profile
		updated.Email = email
		updated.DisplayName = displayName
	} else {
		p, err := c.provisioner.UpdateProfile(ctx, r.profile.ID, email, displayName)
		if err != nil {
			return nil, err
		}
		updated = *p
	}

	err = c.commit(r, func() {
		p := updated
		c.profile = &p
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetYear selects a calendar year.
func (c *Controller) SetYear(year int) {
	c.updateFilter(func(f *aggregate.Filter) { f.Year = year })
}

// SetMonth narrows the filter to one month; zero selects the whole year.
func (c *Controller) SetMonth(month time.Month) error {
	if month < 0 || month > time.December {
		return fmt.Errorf("%w: month %d", common.ErrInvalidArgument, month)
	}
	c.updateFilter(func(f *aggregate.Filter) { f.Month = month })
	return nil
}

// SetCategory narrows the filter to one category; empty selects all.
func (c *Controller) SetCategory(categoryTypeID string) {
	c.updateFilter(func(f *aggregate.Filter) { f.CategoryTypeID = categoryTypeID })
}

// ResetFilters clears month and category, keeping the year.
func (c *Controller) ResetFilters() {
	c.updateFilter(func(f *aggregate.Filter) { *f = f.Reset() })
}

func (c *Controller) updateFilter(fn func(*aggregate.Filter)) {
	c.mu.Lock()
	fn(&c.filter)
	c.mu.Unlock()
	c.notify()
}

func hasType(types []models.CategoryType, id string) bool {
	return slices.ContainsFunc(types, func(t models.CategoryType) bool { return t.ID == id })
}

func indexOf(ms []models.Movement, id string) int {
	return slices.IndexFunc(ms, func(m models.Movement) bool { return m.ID == id })
}

// insertByDate inserts m ahead of every movement not newer than it, keeping
// the list newest first.
func insertByDate(ms []models.Movement, m models.Movement) []models.Movement {
	i := slices.IndexFunc(ms, func(o models.Movement) bool { return !o.Date.After(m.Date) })
	if i < 0 {
		i = len(ms)
	}
	return slices.Insert(slices.Clone(ms), i, m)
}

func sortByDateDesc(ms []models.Movement) {
	slices.SortStableFunc(ms, func(a, b models.Movement) int {
		return b.Date.Compare(a.Date)
	})
}
