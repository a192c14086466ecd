package host

import (
	"context"
	"sort"
	"sync"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/internal/errors"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"github.com/uber/zeta-note-client/src/zn/model"
)

//go:generate mockgen -destination=hostmock/host_mock.go -package=hostmock . Repository

// Repository stores the editor hosts currently connected to the daemon.
type Repository interface {
	Get(context.Context, uuid.UUID) (*entity.Host, error)
	GetFromContext(ctx context.Context) (*entity.Host, error)
	GetAll(ctx context.Context) ([]*entity.Host, error)
	Set(context.Context, *entity.Host) error
	Delete(ctx context.Context, id uuid.UUID) error
	HostCount(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*model.Host
	stats    tally.Scope
}

// New returns a repository to a key-value Host data store.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]*model.Host),
		stats:    stats.SubScope("hosts"),
	}
}

// Get returns the Host associated with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Host, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return mapper.ModelToHost(h)
}

// GetFromContext returns the Host whose UUID the context carries.
func (r *repository) GetFromContext(ctx context.Context) (*entity.Host, error) {
	id, err := mapper.ContextToHostUUID(ctx)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// GetAll returns every connected Host ordered by UUID.
func (r *repository) GetAll(ctx context.Context) ([]*entity.Host, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make([]*entity.Host, 0, len(r.memstore))
	for _, m := range r.memstore {
		h, err := mapper.ModelToHost(m)
		if err == nil {
			found = append(found, h)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].UUID.String() < found[j].UUID.String()
	})
	return found, nil
}

// Set stores the Host under its UUID.
func (r *repository) Set(ctx context.Context, h *entity.Host) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h == nil {
		return errors.New("can't save nil host")
	}
	r.memstore[h.UUID] = mapper.HostToModel(h)
	r.stats.Gauge("active_connections").Update(float64(len(r.memstore)))
	return nil
}

// Delete removes the Host associated with the given id.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.stats.Gauge("active_connections").Update(float64(len(r.memstore)))
	return nil
}

// HostCount returns the number of connected hosts.
func (r *repository) HostCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}
