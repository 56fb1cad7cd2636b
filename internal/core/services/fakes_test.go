package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type fakeBuildingRepo struct {
	mu        sync.RWMutex
	buildings map[uuid.UUID]domain.Building
	failing   bool
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{buildings: make(map[uuid.UUID]domain.Building)}
}

func (r *fakeBuildingRepo) put(b domain.Building) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buildings[b.ID] = b
}

func (r *fakeBuildingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Building, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failing {
		return nil, errors.New("storage unavailable")
	}
	b, ok := r.buildings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBuildingRepo) ExistsWithManager(_ context.Context, buildingID, managerID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failing {
		return false, errors.New("storage unavailable")
	}
	b, ok := r.buildings[buildingID]
	return ok && b.ManagerID == managerID, nil
}

type fakeUnitRepo struct {
	mu    sync.RWMutex
	units map[uuid.UUID]domain.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[uuid.UUID]domain.Unit)}
}

func (r *fakeUnitRepo) put(u domain.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[u.ID] = u
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUnitRepo) ExistsResponsibleInBuilding(_ context.Context, buildingID, userID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.units {
		if u.BuildingID == buildingID && u.ResponsibleUserID != nil && *u.ResponsibleUserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakePollRepo struct {
	mu    sync.RWMutex
	polls map[uuid.UUID]domain.Poll
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]domain.Poll)}
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polls[poll.ID] = *poll
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return &p, nil
}

func (r *fakePollRepo) ListByBuilding(_ context.Context, buildingID uuid.UUID, filter ports.PollFilter, now time.Time) ([]*domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Poll
	for _, p := range r.polls {
		if p.BuildingID != buildingID {
			continue
		}
		switch filter {
		case ports.FilterActive:
			if !p.Active || now.Before(p.StartAt) || now.After(p.EndAt) {
				continue
			}
		case ports.FilterHistory:
			if p.Active && !now.After(p.EndAt) {
				continue
			}
		}
		p := p
		out = append(out, &p)
	}
	// created_at DESC, mirroring the SQL ordering
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type fakeVoteRepo struct {
	mu    sync.Mutex
	votes map[string]domain.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[string]domain.Vote)}
}

func voteKey(pollID, unitID uuid.UUID) string {
	return pollID.String() + "/" + unitID.String()
}

func (r *fakeVoteRepo) Upsert(_ context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey(vote.PollID, vote.UnitID)
	if existing, ok := r.votes[key]; ok {
		existing.OptionID = vote.OptionID
		existing.UserID = vote.UserID
		existing.VotedAt = time.Now()
		r.votes[key] = existing
		*vote = existing
		return nil
	}
	vote.VotedAt = time.Now()
	r.votes[key] = *vote
	return nil
}

func (r *fakeVoteRepo) CountByOption(_ context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for _, v := range r.votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}

func (r *fakeVoteRepo) FindVotedOption(_ context.Context, pollID, userID uuid.UUID) (*uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Vote
	for _, v := range r.votes {
		if v.PollID != pollID || v.UserID != userID {
			continue
		}
		v := v
		if latest == nil || v.VotedAt.After(latest.VotedAt) {
			latest = &v
		}
	}
	if latest == nil {
		return nil, nil
	}
	optionID := latest.OptionID
	return &optionID, nil
}

func (r *fakeVoteRepo) all() []domain.Vote {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Vote, 0, len(r.votes))
	for _, v := range r.votes {
		out = append(out, v)
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

type fakeRevocationRepo struct {
	mu        sync.Mutex
	entries   []domain.RevocationEntry
	appendErr error
}

func newFakeRevocationRepo() *fakeRevocationRepo {
	return &fakeRevocationRepo{}
}

func (r *fakeRevocationRepo) Append(_ context.Context, entry domain.RevocationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRevocationRepo) DeleteOlderThan(_ context.Context, threshold int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.RevokedAt >= threshold {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeRevocationRepo) LoadAll(_ context.Context) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make(map[uuid.UUID]int64)
	for _, e := range r.entries {
		if e.RevokedAt > snapshot[e.UserID] {
			snapshot[e.UserID] = e.RevokedAt
		}
	}
	return snapshot, nil
}
