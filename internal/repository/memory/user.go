package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// UserRepo is the map-backed twin of the SQLite user repository. The
// email uniqueness and cascade-delete semantics match it exactly.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if r.emailTakenLocked(u.Email, "") {
		return repository.ErrEmailExists
	}
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if r.emailTakenLocked(u.Email, u.ID) {
		return repository.ErrEmailExists
	}
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

// Delete removes the user and, mirroring the SQLite foreign keys,
// their tickets, votes and refresh tokens.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	for tid, t := range r.s.tickets {
		if t.UserID == id {
			delete(r.s.tickets, tid)
		}
	}
	for k := range r.s.votes {
		if k.userID == id {
			delete(r.s.votes, k)
		}
	}
	for hash, tok := range r.s.tokens {
		if tok.UserID == id {
			delete(r.s.tokens, hash)
		}
	}
	return nil
}

func (r *UserRepo) emailTakenLocked(email, exceptID string) bool {
	for _, u := range r.s.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

// TokenRepo mirrors the refresh_tokens table.
type TokenRepo struct{ s *Store }

func (r *TokenRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tokens[tokenHash] = model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tok, ok := r.s.tokens[tokenHash]
	if !ok || tok.RevokedAt != nil || time.Now().UTC().After(tok.ExpiresAt) {
		return "", repository.ErrNotFound
	}
	return tok.UserID, nil
}

func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if tok, ok := r.s.tokens[tokenHash]; ok && tok.RevokedAt == nil {
		now := time.Now().UTC()
		tok.RevokedAt = &now
		r.s.tokens[tokenHash] = tok
	}
	return nil
}

func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	for hash, tok := range r.s.tokens {
		if tok.UserID == userID && tok.RevokedAt == nil {
			tok.RevokedAt = &now
			r.s.tokens[hash] = tok
		}
	}
	return nil
}
