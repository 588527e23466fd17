package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

type PollRepo struct{ s *Store }

func (r *PollRepo) Create(ctx context.Context, p *model.Poll) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.polls[p.ID] = clonePoll(*p)
	return nil
}

func (r *PollRepo) GetByID(ctx context.Context, id string) (model.Poll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.polls[id]
	if !ok {
		return model.Poll{}, repository.ErrNotFound
	}
	return clonePoll(p), nil
}

func (r *PollRepo) List(ctx context.Context) ([]model.Poll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	polls := make([]model.Poll, 0, len(r.s.polls))
	for _, p := range r.s.polls {
		polls = append(polls, clonePoll(p))
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].CreatedAt.After(polls[j].CreatedAt) })
	return polls, nil
}

func (r *PollRepo) SetOpen(ctx context.Context, id string, open bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.polls[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsOpen = open
	r.s.polls[id] = p
	return nil
}

func (r *PollRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.polls[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.polls, id)
	for k := range r.s.votes {
		if k.pollID == id {
			delete(r.s.votes, k)
		}
	}
	return nil
}

func (r *PollRepo) Vote(ctx context.Context, userID, pollID, optionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.polls[pollID]
	if !ok {
		return repository.ErrNotFound
	}
	key := voteKey{userID: userID, pollID: pollID}
	if _, voted := r.s.votes[key]; voted {
		return repository.ErrAlreadyVoted
	}
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			p.Options[i].Votes++
			r.s.polls[pollID] = p
			r.s.votes[key] = optionID
			return nil
		}
	}
	return repository.ErrNotFound
}

// SettingsRepo holds the singleton settings value.
type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.settings, nil
}

func (r *SettingsRepo) Update(ctx context.Context, settings model.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	settings.UpdatedAt = time.Now().UTC()
	r.s.settings = settings
	return nil
}
