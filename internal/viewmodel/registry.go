package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"clinic-portal/internal/ui"
	"clinic-portal/pkg/metrics"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

type entry struct {
	mu     sync.Mutex
	page   Page
	owner  int
	closed bool
}

// Registry holds the mounted pages. Idle pages expire after the TTL and
// are unmounted on eviction.
type Registry struct {
	log     *logrus.Logger
	deps    *Deps
	specs   map[Kind]spec
	ttl     time.Duration
	pages   *gocache.Cache
	metrics *metrics.Metrics
}

func NewRegistry(deps *Deps, ttl time.Duration, log *logrus.Logger, m *metrics.Metrics) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	r := &Registry{
		log:     log,
		deps:    deps,
		specs:   defaultSpecs(),
		ttl:     ttl,
		pages:   gocache.New(ttl, ttl/2),
		metrics: m,
	}
	r.pages.OnEvicted(r.evicted)
	return r
}

func (r *Registry) evicted(id string, v interface{}) {
	e, ok := v.(*entry)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.page.Unmount()
	if r.metrics != nil {
		r.metrics.MountedPages.Dec()
	}
	r.log.WithFields(logrus.Fields{"page_id": id, "kind": e.page.Kind()}).Debug("Page unmounted")
}

// Mount creates a page of kind for s and returns its id and first view.
func (r *Registry) Mount(ctx context.Context, kind Kind, s Session) (string, interface{}, error) {
	sp, ok := r.specs[kind]
	if !ok {
		return "", nil, ErrUnknownKind
	}
	if !s.Authenticated() {
		if !sp.anonymous {
			return "", nil, ErrUnauthorized
		}
		s = Session{AppointmentID: s.AppointmentID}
	} else if !sp.allows(s.Role) {
		return "", nil, ErrForbidden
	}

	page := sp.build(r.deps)
	if err := page.Mount(ctx, s); err != nil {
		page.Unmount()
		return "", nil, err
	}

	id := uuid.NewString()
	r.pages.Set(id, &entry{page: page, owner: s.UserID}, r.ttl)
	if r.metrics != nil {
		r.metrics.MountedPages.Inc()
	}
	r.log.WithFields(logrus.Fields{"page_id": id, "kind": kind, "user_id": s.UserID}).Debug("Page mounted")
	return id, page.View(), nil
}

// lookup returns the live page of userID and pushes its expiry back.
func (r *Registry) lookup(id string, userID int) (*entry, error) {
	v, found := r.pages.Get(id)
	if !found {
		return nil, ErrPageNotFound
	}
	e := v.(*entry)
	if e.owner != userID {
		return nil, ErrPageNotFound
	}
	_ = r.pages.Replace(id, e, r.ttl)
	return e, nil
}

// with runs fn under the page lock.
func (r *Registry) with(id string, userID int, fn func(Page) error) (interface{}, error) {
	e, err := r.lookup(id, userID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrPageNotFound
	}
	if err := fn(e.page); err != nil {
		return nil, err
	}
	return e.page.View(), nil
}

func (r *Registry) View(id string, userID int) (interface{}, error) {
	return r.with(id, userID, func(Page) error { return nil })
}

// Dispatch runs action on the page and returns the resulting view.
func (r *Registry) Dispatch(ctx context.Context, id string, userID int, action string, payload json.RawMessage) (interface{}, error) {
	var kind Kind
	view, err := r.with(id, userID, func(p Page) error {
		kind = p.Kind()
		return p.Dispatch(ctx, action, payload)
	})
	if kind != "" && r.metrics != nil {
		label, result := action, "ok"
		if errors.Is(err, ErrUnknownAction) {
			label = "unknown"
		}
		if err != nil {
			result = "error"
		}
		r.metrics.PageActions.WithLabelValues(string(kind), label, result).Inc()
	}
	return view, err
}

func (r *Registry) Event(id string, userID int, e ui.Event) (interface{}, error) {
	return r.with(id, userID, func(p Page) error {
		p.Event(e)
		return nil
	})
}

func (r *Registry) Unmount(id string, userID int) error {
	if _, err := r.lookup(id, userID); err != nil {
		return err
	}
	r.pages.Delete(id)
	return nil
}

func (r *Registry) Len() int { return r.pages.ItemCount() }

// Close unmounts every page.
func (r *Registry) Close() {
	for id := range r.pages.Items() {
		r.pages.Delete(id)
	}
}
