package policy

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// Resolver holds one snapshot of the configuration for the lifetime of a
// batch. Role policies are resolved on first use and reused after that.
type Resolver struct {
	values   map[string]string
	settings Settings

	mu    sync.Mutex
	roles map[string]attendance.RolePolicy
}

func NewResolver(values map[string]string) *Resolver {
	if values == nil {
		values = map[string]string{}
	}
	return &Resolver{
		values:   values,
		settings: ResolveSettings(values),
		roles:    make(map[string]attendance.RolePolicy),
	}
}

// LoadResolver snapshots the settings held by repo.
func LoadResolver(ctx context.Context, repo attendance.SettingRepository) (*Resolver, error) {
	values, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load system settings: %w", err)
	}
	return NewResolver(values), nil
}

func (r *Resolver) Settings() Settings {
	return r.settings
}

// Role returns the lateness rule for roleName.
func (r *Resolver) Role(roleName string) attendance.RolePolicy {
	key := strings.ToUpper(strings.TrimSpace(roleName))

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.roles[key]; ok {
		return p
	}
	p := ResolveRolePolicy(key, r.values)
	r.roles[key] = p
	return p
}

// Shift returns assigned, or the default shift when there is no assignment.
// An assigned shift without working hours takes the default nominal hours.
func (r *Resolver) Shift(assigned *attendance.ShiftPolicy) attendance.ShiftPolicy {
	if assigned == nil {
		return r.settings.DefaultShift
	}
	shift := *assigned
	if shift.WorkingHours <= 0 {
		shift.WorkingHours = r.settings.DefaultShift.WorkingHours
	}
	return shift
}
