package identitytest

import (
	"context"
	"sort"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
)

// ReadModel returns a contracts.ReadModel that answers from the store.
// Locked is set for any stored lock, expired or not.
func (s *Store) ReadModel() contracts.ReadModel { return readModel{s} }

type readModel struct{ s *Store }

func (r readModel) ListUsers(_ context.Context, filter contracts.UserFilter) ([]*contracts.UserDTO, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*contracts.UserDTO, 0, len(r.s.users))
	for id, u := range r.s.users {
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		dto := &contracts.UserDTO{
			UserID:   id,
			Username: u.Username,
			Email:    u.Email,
			FullName: u.FullName,
			Role:     string(u.Role),
			Active:   u.Active,
		}
		if a, ok := r.s.attempts[id]; ok && a.LockedUntil != nil {
			dto.Locked = true
		}
		out = append(out, dto)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })

	if filter.Offset >= int64(len(out)) {
		return []*contracts.UserDTO{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < int64(len(out)) {
		out = out[:filter.Limit]
	}
	return out, nil
}
