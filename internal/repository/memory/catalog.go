package memory

import (
	"context"
	"sort"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

type SpeakerRepo struct{ s *Store }

func (r *SpeakerRepo) Create(ctx context.Context, sp *model.Speaker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.speakers[sp.ID] = *sp
	return nil
}

func (r *SpeakerRepo) GetByID(ctx context.Context, id string) (model.Speaker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sp, ok := r.s.speakers[id]
	if !ok {
		return model.Speaker{}, repository.ErrNotFound
	}
	return sp, nil
}

func (r *SpeakerRepo) List(ctx context.Context) ([]model.Speaker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	speakers := make([]model.Speaker, 0, len(r.s.speakers))
	for _, sp := range r.s.speakers {
		speakers = append(speakers, sp)
	}
	sort.Slice(speakers, func(i, j int) bool { return speakers[i].Name < speakers[j].Name })
	return speakers, nil
}

func (r *SpeakerRepo) Update(ctx context.Context, sp *model.Speaker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.speakers[sp.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.speakers[sp.ID] = *sp
	return nil
}

func (r *SpeakerRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.speakers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.speakers, id)
	for eid, ev := range r.s.schedule {
		ev.SpeakerIDs = removeString(ev.SpeakerIDs, id)
		r.s.schedule[eid] = ev
	}
	return nil
}

type LocationRepo struct{ s *Store }

func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	locations := make([]model.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		locations = append(locations, l)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (r *LocationRepo) Update(ctx context.Context, l *model.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[l.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.locations[l.ID] = *l
	return nil
}

// Delete drops the location and detaches it from schedule events, the
// same way the SQLite ON DELETE SET NULL does.
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.locations, id)
	for eid, ev := range r.s.schedule {
		if ev.LocationID != nil && *ev.LocationID == id {
			ev.LocationID = nil
			r.s.schedule[eid] = ev
		}
	}
	return nil
}

type ScheduleRepo struct{ s *Store }

func (r *ScheduleRepo) Create(ctx context.Context, ev *model.ScheduleEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.validateRefsLocked(ev); err != nil {
		return err
	}
	r.s.schedule[ev.ID] = cloneEvent(*ev)
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (model.ScheduleEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ev, ok := r.s.schedule[id]
	if !ok {
		return model.ScheduleEvent{}, repository.ErrNotFound
	}
	return cloneEvent(ev), nil
}

func (r *ScheduleRepo) List(ctx context.Context) ([]model.ScheduleEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := make([]model.ScheduleEvent, 0, len(r.s.schedule))
	for _, ev := range r.s.schedule {
		events = append(events, cloneEvent(ev))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, ev *model.ScheduleEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedule[ev.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.validateRefsLocked(ev); err != nil {
		return err
	}
	r.s.schedule[ev.ID] = cloneEvent(*ev)
	return nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedule[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.schedule, id)
	return nil
}

func (r *ScheduleRepo) validateRefsLocked(ev *model.ScheduleEvent) error {
	if ev.LocationID != nil {
		if _, ok := r.s.locations[*ev.LocationID]; !ok {
			return repository.ErrNotFound
		}
	}
	for _, sid := range ev.SpeakerIDs {
		if _, ok := r.s.speakers[sid]; !ok {
			return repository.ErrNotFound
		}
	}
	return nil
}

type ExhibitorRepo struct{ s *Store }

func (r *ExhibitorRepo) Create(ctx context.Context, ex *model.Exhibitor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.exhibitors[ex.ID] = *ex
	return nil
}

func (r *ExhibitorRepo) GetByID(ctx context.Context, id string) (model.Exhibitor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ex, ok := r.s.exhibitors[id]
	if !ok {
		return model.Exhibitor{}, repository.ErrNotFound
	}
	return ex, nil
}

func (r *ExhibitorRepo) List(ctx context.Context) ([]model.Exhibitor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exhibitors := make([]model.Exhibitor, 0, len(r.s.exhibitors))
	for _, ex := range r.s.exhibitors {
		exhibitors = append(exhibitors, ex)
	}
	sort.Slice(exhibitors, func(i, j int) bool { return exhibitors[i].Name < exhibitors[j].Name })
	return exhibitors, nil
}

func (r *ExhibitorRepo) Update(ctx context.Context, ex *model.Exhibitor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.exhibitors[ex.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.exhibitors[ex.ID] = *ex
	return nil
}

func (r *ExhibitorRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.exhibitors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.exhibitors, id)
	return nil
}

func removeString(ss []string, target string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
