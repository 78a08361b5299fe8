// Package testutil provides in-memory fakes for testing the application layer.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	acusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	billingusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

// --- logger ---

// MockLogger records log entries for assertions.
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

type LogEntry struct {
	Level   string
	Message string
}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }
func (m *MockLogger) Fatal(msg string, args ...any) { m.log("FATAL", msg) }

func (m *MockLogger) With(args ...any) logger.Interface { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, kv ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, kv ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, kv ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, kv ...interface{}) { m.log("ERROR", msg) }
func (m *MockLogger) Fatalw(msg string, kv ...interface{}) { m.log("FATAL", msg) }

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

// Entries returns a copy of all recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// --- transactions ---

// MockTransactor runs the function directly; Calls counts invocations.
type MockTransactor struct {
	mu    sync.Mutex
	Calls int
	// FailFirst makes the first N invocations return the wrapped error
	// after running fn, simulating a commit failure.
	FailFirst int
	FailErr   error
}

func NewMockTransactor() *MockTransactor { return &MockTransactor{} }

func (m *MockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	call := m.Calls
	m.mu.Unlock()
	if err := fn(ctx); err != nil {
		return err
	}
	if call <= m.FailFirst && m.FailErr != nil {
		return m.FailErr
	}
	return nil
}

// --- identity repositories ---

type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*identity.User
	nextID uint

	GetError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uint]*identity.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*identity.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

type MockMembershipRepository struct {
	mu          sync.RWMutex
	memberships map[uint]*identity.Membership
	nextID      uint

	GetError error
}

func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{memberships: make(map[uint]*identity.Membership)}
}

func (m *MockMembershipRepository) Create(ctx context.Context, ms *identity.Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.memberships {
		if existing.UserID() == ms.UserID() && existing.TenantID() == ms.TenantID() {
			return identity.ErrMembershipExists
		}
	}
	m.nextID++
	if err := ms.SetID(m.nextID); err != nil {
		return err
	}
	m.memberships[ms.ID()] = ms
	return nil
}

func (m *MockMembershipRepository) GetByUserAndTenant(ctx context.Context, userID, tenantID uint) (*identity.Membership, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ms := range m.memberships {
		if ms.UserID() == userID && ms.TenantID() == tenantID {
			return ms, nil
		}
	}
	return nil, nil
}

func (m *MockMembershipRepository) GetByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*identity.Membership, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*identity.Membership
	for _, ms := range m.memberships {
		if ms.TenantID() == tenantID {
			out = append(out, ms)
		}
	}
	return out, int64(len(out)), nil
}

func (m *MockMembershipRepository) Update(ctx context.Context, ms *identity.Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memberships[ms.ID()] = ms
	return nil
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.memberships, id)
	return nil
}

func (m *MockMembershipRepository) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	_, n, err := m.GetByTenant(ctx, tenantID, 1, 0)
	return n, err
}

func (m *MockMembershipRepository) ClearRoleAssignments(ctx context.Context, tenantID, roleID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ms := range m.memberships {
		if ms.TenantID() == tenantID && ms.RoleID() != nil && *ms.RoleID() == roleID {
			ms.ClearRole()
		}
	}
	return nil
}

type MockTenantRepository struct {
	mu      sync.RWMutex
	tenants map[uint]*identity.Tenant
	nextID  uint
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{tenants: make(map[uint]*identity.Tenant)}
}

func (m *MockTenantRepository) Create(ctx context.Context, t *identity.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := t.SetID(m.nextID); err != nil {
		return err
	}
	m.tenants[t.ID()] = t
	return nil
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uint) (*identity.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, identity.ErrTenantNotFound
	}
	return t, nil
}

func (m *MockTenantRepository) GetBySID(ctx context.Context, sid string) (*identity.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tenants {
		if t.SID() == sid {
			return t, nil
		}
	}
	return nil, identity.ErrTenantNotFound
}

func (m *MockTenantRepository) Update(ctx context.Context, t *identity.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[t.ID()]; !ok {
		return identity.ErrTenantNotFound
	}
	m.tenants[t.ID()] = t
	return nil
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tenants, id)
	return nil
}

func (m *MockTenantRepository) List(ctx context.Context, filter identity.TenantFilter) ([]*identity.Tenant, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*identity.Tenant
	for _, t := range m.tenants {
		if filter.PartnerID != nil && (t.PartnerID() == nil || *t.PartnerID() != *filter.PartnerID) {
			continue
		}
		if filter.Status != nil && string(t.Status()) != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

type MockPartnerRepository struct {
	mu       sync.RWMutex
	partners map[uint]*identity.Partner
	nextID   uint

	// ConflictSlugs forces Create to reject these slugs once, simulating
	// a unique-index collision.
	ConflictSlugs map[string]bool
	// ConflictNext rejects the next N creates regardless of slug. Random
	// slugs make per-slug injection impossible for fresh partners.
	ConflictNext int
}

func NewMockPartnerRepository() *MockPartnerRepository {
	return &MockPartnerRepository{
		partners:      make(map[uint]*identity.Partner),
		ConflictSlugs: make(map[string]bool),
	}
}

func (m *MockPartnerRepository) Create(ctx context.Context, p *identity.Partner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConflictNext > 0 {
		m.ConflictNext--
		return identity.ErrPartnerSlugExists
	}
	if m.ConflictSlugs[p.Slug()] {
		delete(m.ConflictSlugs, p.Slug())
		return identity.ErrPartnerSlugExists
	}
	for _, existing := range m.partners {
		if existing.Slug() == p.Slug() {
			return identity.ErrPartnerSlugExists
		}
	}
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.partners[p.ID()] = p
	return nil
}

func (m *MockPartnerRepository) GetByID(ctx context.Context, id uint) (*identity.Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.partners[id]
	if !ok {
		return nil, identity.ErrPartnerNotFound
	}
	return p, nil
}

func (m *MockPartnerRepository) GetBySlug(ctx context.Context, slug string) (*identity.Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.partners {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return nil, identity.ErrPartnerNotFound
}

func (m *MockPartnerRepository) GetByReferralCode(ctx context.Context, code string) (*identity.Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.partners {
		if p.ReferralCode() == code {
			return p, nil
		}
	}
	return nil, identity.ErrPartnerNotFound
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *identity.Partner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partners[p.ID()] = p
	return nil
}

func (m *MockPartnerRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ConflictSlugs[slug] {
		return true, nil
	}
	for _, p := range m.partners {
		if p.Slug() == slug {
			return true, nil
		}
	}
	return false, nil
}

// --- accesscontrol repositories ---

type MockRoleRepository struct {
	mu     sync.RWMutex
	roles  map[uint]*accesscontrol.Role
	nextID uint

	GetError error
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{roles: make(map[uint]*accesscontrol.Role)}
}

func (m *MockRoleRepository) Create(ctx context.Context, r *accesscontrol.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := r.SetID(m.nextID); err != nil {
		return err
	}
	m.roles[r.ID()] = r
	return nil
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id uint) (*accesscontrol.Role, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roles[id], nil
}

func (m *MockRoleRepository) GetSystemRoleByCode(ctx context.Context, code string) (*accesscontrol.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.roles {
		if r.IsSystem() && r.Code() == code {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockRoleRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*accesscontrol.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*accesscontrol.Role
	for _, r := range m.roles {
		if !r.IsSystem() && r.TenantID() != nil && *r.TenantID() == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRoleRepository) ListSystemRoles(ctx context.Context) ([]*accesscontrol.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*accesscontrol.Role
	for _, r := range m.roles {
		if r.IsSystem() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRoleRepository) Update(ctx context.Context, r *accesscontrol.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[r.ID()] = r
	return nil
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.roles, id)
	return nil
}

func (m *MockRoleRepository) ExistsByName(ctx context.Context, tenantID uint, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.roles {
		if !r.IsSystem() && r.TenantID() != nil && *r.TenantID() == tenantID && r.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

type MockPermissionRepository struct {
	mu     sync.RWMutex
	perms  map[string]*accesscontrol.Permission
	nextID uint
}

func NewMockPermissionRepository() *MockPermissionRepository {
	return &MockPermissionRepository{perms: make(map[string]*accesscontrol.Permission)}
}

func (m *MockPermissionRepository) Create(ctx context.Context, p *accesscontrol.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.perms[p.Code()] = p
	return nil
}

func (m *MockPermissionRepository) GetByCode(ctx context.Context, code string) (*accesscontrol.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.perms[code], nil
}

func (m *MockPermissionRepository) ListAll(ctx context.Context) ([]*accesscontrol.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*accesscontrol.Permission, 0, len(m.perms))
	for _, p := range m.perms {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockPermissionRepository) ListByCategory(ctx context.Context, category string) ([]*accesscontrol.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*accesscontrol.Permission
	for _, p := range m.perms {
		if p.Category() == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockPermissionCache records cache traffic for assertions.
type MockPermissionCache struct {
	mu                 sync.Mutex
	entries            map[string]acusecases.CachedPermissions
	InvalidatedTenants []uint
	Hits               int
	Misses             int
	Sets               int
}

func NewMockPermissionCache() *MockPermissionCache {
	return &MockPermissionCache{entries: make(map[string]acusecases.CachedPermissions)}
}

func cacheKey(userID, tenantID uint) string {
	return fmt.Sprintf("%d:%d", userID, tenantID)
}

func (m *MockPermissionCache) Get(ctx context.Context, userID, tenantID uint) (*acusecases.CachedPermissions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[cacheKey(userID, tenantID)]
	if !ok {
		m.Misses++
		return nil, nil
	}
	m.Hits++
	return &entry, nil
}

func (m *MockPermissionCache) Set(ctx context.Context, userID, tenantID uint, perms acusecases.CachedPermissions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.entries[cacheKey(userID, tenantID)] = perms
	return nil
}

func (m *MockPermissionCache) InvalidateTenant(ctx context.Context, tenantID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidatedTenants = append(m.InvalidatedTenants, tenantID)
	for key := range m.entries {
		var u, t uint
		fmt.Sscanf(key, "%d:%d", &u, &t)
		if t == tenantID {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *MockPermissionCache) InvalidateUser(ctx context.Context, userID, tenantID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, cacheKey(userID, tenantID))
	return nil
}

// --- subscription repositories ---

type MockPlanRepository struct {
	mu     sync.RWMutex
	plans  map[uint]*subscription.Plan
	nextID uint
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{plans: make(map[uint]*subscription.Plan)}
}

func (m *MockPlanRepository) Create(ctx context.Context, p *subscription.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.plans[p.ID()] = p
	return nil
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, subscription.ErrPlanNotFound
	}
	return p, nil
}

func (m *MockPlanRepository) GetByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.plans {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, subscription.ErrPlanNotFound
}

func (m *MockPlanRepository) Update(ctx context.Context, p *subscription.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[p.ID()] = p
	return nil
}

func (m *MockPlanRepository) List(ctx context.Context, publicOnly bool) ([]*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*subscription.Plan
	for _, p := range m.plans {
		if publicOnly && !p.IsPublic() {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type MockPlanFeatureRepository struct {
	mu       sync.RWMutex
	features map[uint]*subscription.PlanFeature
	nextID   uint
}

func NewMockPlanFeatureRepository() *MockPlanFeatureRepository {
	return &MockPlanFeatureRepository{features: make(map[uint]*subscription.PlanFeature)}
}

func (m *MockPlanFeatureRepository) Create(ctx context.Context, f *subscription.PlanFeature) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := f.SetID(m.nextID); err != nil {
		return err
	}
	m.features[f.ID()] = f
	return nil
}

func (m *MockPlanFeatureRepository) GetByPlanAndCode(ctx context.Context, planID uint, featureCode string) (*subscription.PlanFeature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.features {
		if f.PlanID() == planID && f.FeatureCode() == featureCode {
			return f, nil
		}
	}
	return nil, nil
}

func (m *MockPlanFeatureRepository) ListByPlanID(ctx context.Context, planID uint) ([]*subscription.PlanFeature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*subscription.PlanFeature
	for _, f := range m.features {
		if f.PlanID() == planID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MockPlanFeatureRepository) Update(ctx context.Context, f *subscription.PlanFeature) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.features[f.ID()] = f
	return nil
}

func (m *MockPlanFeatureRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.features, id)
	return nil
}

type MockSubscriptionRepository struct {
	mu     sync.RWMutex
	subs   map[uint]*subscription.Subscription
	nextID uint
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{subs: make(map[uint]*subscription.Subscription)}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := s.SetID(m.nextID); err != nil {
		return err
	}
	m.subs[s.ID()] = s
	return nil
}

// Seed inserts a reconstructed subscription keeping its existing ID.
func (m *MockSubscriptionRepository) Seed(s *subscription.Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID() > m.nextID {
		m.nextID = s.ID()
	}
	m.subs[s.ID()] = s
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subs[id]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return s, nil
}

func (m *MockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subs {
		if s.SID() == sid {
			return s, nil
		}
	}
	return nil, subscription.ErrSubscriptionNotFound
}

func (m *MockSubscriptionRepository) GetCurrentByTenantID(ctx context.Context, tenantID uint) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *subscription.Subscription
	for _, s := range m.subs {
		if s.TenantID() != tenantID {
			continue
		}
		if latest == nil || s.ID() > latest.ID() {
			latest = s
		}
	}
	if latest == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return latest, nil
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[s.ID()]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	m.subs[s.ID()] = s
	return nil
}

func (m *MockSubscriptionRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*subscription.Subscription
	for _, s := range m.subs {
		if s.Status().String() == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepository) ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*subscription.Subscription
	for _, s := range m.subs {
		end := s.TrialEndsAt()
		if end == nil {
			continue
		}
		if !end.Before(from) && end.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

// MockUsageRepository implements the atomic check-and-increment contract with
// a mutex standing in for the database's conditional UPDATE.
type MockUsageRepository struct {
	mu     sync.Mutex
	rows   map[string]*usageRow
	nextID uint
}

type usageRow struct {
	id          uint
	count       int64
	periodStart time.Time
	periodEnd   time.Time
}

func NewMockUsageRepository() *MockUsageRepository {
	return &MockUsageRepository{rows: make(map[string]*usageRow)}
}

func usageKey(subscriptionID uint, featureCode string, periodStart time.Time) string {
	return fmt.Sprintf("%d:%s:%d", subscriptionID, featureCode, periodStart.Unix())
}

func (m *MockUsageRepository) CheckAndIncrement(ctx context.Context, subscriptionID uint, featureCode string, periodStart, periodEnd time.Time, limit int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := usageKey(subscriptionID, featureCode, periodStart)
	row, ok := m.rows[key]
	if !ok {
		m.nextID++
		row = &usageRow{id: m.nextID, periodStart: periodStart, periodEnd: periodEnd}
		m.rows[key] = row
	}
	if limit > 0 && row.count >= limit {
		return row.count, subscription.ErrQuotaExceeded
	}
	row.count++
	return row.count, nil
}

func (m *MockUsageRepository) Decrement(ctx context.Context, subscriptionID uint, featureCode string, periodStart time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[usageKey(subscriptionID, featureCode, periodStart)]
	if !ok || row.count == 0 {
		return nil
	}
	row.count--
	return nil
}

func (m *MockUsageRepository) Get(ctx context.Context, subscriptionID uint, featureCode string, periodStart time.Time) (*subscription.SubscriptionUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[usageKey(subscriptionID, featureCode, periodStart)]
	if !ok {
		return nil, nil
	}
	u := subscription.ReconstructSubscriptionUsage(row.id, subscriptionID, featureCode, row.periodStart, row.periodEnd, row.count, nil, row.periodStart, row.periodStart)
	return u, nil
}

func (m *MockUsageRepository) ListBySubscription(ctx context.Context, subscriptionID uint, periodStart time.Time) ([]*subscription.SubscriptionUsage, error) {
	return nil, nil
}

// --- billing repositories ---

type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[uint]*billing.Invoice
	nextID   uint

	// ConflictNumbers forces Create to reject these invoice numbers,
	// simulating a unique-index collision.
	ConflictNumbers map[string]bool
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices:        make(map[uint]*billing.Invoice),
		ConflictNumbers: make(map[string]bool),
	}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *billing.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConflictNumbers[inv.InvoiceNumber()] {
		delete(m.ConflictNumbers, inv.InvoiceNumber())
		return billing.ErrInvoiceNumberConflict
	}
	for _, existing := range m.invoices {
		if existing.InvoiceNumber() == inv.InvoiceNumber() {
			return billing.ErrInvoiceNumberConflict
		}
	}
	m.nextID++
	if err := inv.SetID(m.nextID); err != nil {
		return err
	}
	m.invoices[inv.ID()] = inv
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invoices[id]
	if !ok {
		return nil, billing.ErrInvoiceNotFound
	}
	return inv, nil
}

func (m *MockInvoiceRepository) GetBySID(ctx context.Context, sid string) (*billing.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.SID() == sid {
			return inv, nil
		}
	}
	return nil, billing.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.InvoiceNumber() == invoiceNumber {
			return inv, nil
		}
	}
	return nil, billing.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *billing.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID()] = inv
	return nil
}

func (m *MockInvoiceRepository) ListByTenantID(ctx context.Context, tenantID uint, limit, offset int) ([]*billing.Invoice, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*billing.Invoice
	for _, inv := range m.invoices {
		if inv.TenantID() == tenantID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

// MockInvoiceSequenceRepository serializes NextValue with a mutex, matching
// the row-lock behavior of the real implementation.
type MockInvoiceSequenceRepository struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewMockInvoiceSequenceRepository() *MockInvoiceSequenceRepository {
	return &MockInvoiceSequenceRepository{seqs: make(map[string]int64)}
}

func (m *MockInvoiceSequenceRepository) NextValue(ctx context.Context, year int, month time.Month) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fmt.Sprintf("%04d-%02d", year, month)
	m.seqs[key]++
	return m.seqs[key], nil
}

type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[uint]*billing.Payment
	nextID   uint
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[uint]*billing.Payment)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *billing.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.payments[p.ID()] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uint) (*billing.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, billing.ErrPaymentNotFound
	}
	return p, nil
}

func (m *MockPaymentRepository) GetBySID(ctx context.Context, sid string) (*billing.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, billing.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*billing.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.GatewayPaymentID() != nil && *p.GatewayPaymentID() == gatewayPaymentID {
			return p, nil
		}
	}
	return nil, billing.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*billing.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.GatewayOrderID() != nil && *p.GatewayOrderID() == gatewayOrderID {
			return p, nil
		}
	}
	return nil, billing.ErrPaymentNotFound
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *billing.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID()] = p
	return nil
}

func (m *MockPaymentRepository) ListByInvoiceID(ctx context.Context, invoiceID uint) ([]*billing.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*billing.Payment
	for _, p := range m.payments {
		if p.InvoiceID() == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockPaymentGateway implements the billing gateway with deterministic ids.
// Signatures produced by MockSignature verify; everything else is rejected.
type MockPaymentGateway struct {
	mu           sync.Mutex
	orderSeq     int
	refundSeq    int
	Orders       []string
	Refunds      map[string]int64
	FailOrders   bool
	FailRefunds  bool
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{Refunds: make(map[string]int64)}
}

// MockSignature is the signature MockPaymentGateway accepts for a given
// order/payment pair.
func MockSignature(orderID, paymentID string) string {
	return "sig:" + orderID + ":" + paymentID
}

func (g *MockPaymentGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*billingusecases.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailOrders {
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.orderSeq++
	orderID := fmt.Sprintf("order_%06d", g.orderSeq)
	g.Orders = append(g.Orders, orderID)
	return &billingusecases.GatewayOrder{OrderID: orderID, Method: "card"}, nil
}

func (g *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == MockSignature(orderID, paymentID)
}

func (g *MockPaymentGateway) Refund(ctx context.Context, gatewayPaymentID string, amountMinor int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailRefunds {
		return "", fmt.Errorf("refund rejected by gateway")
	}
	g.refundSeq++
	g.Refunds[gatewayPaymentID] += amountMinor
	return fmt.Sprintf("rfnd_%06d", g.refundSeq), nil
}
