// Package sandbox is an in-memory FileService for local development and
// end-to-end tests of the client. It keeps every entity, version and grant in
// maps and forgets them when the process exits.
package sandbox

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/fileengine/pkg/fileservice"
)

// DefaultCapacity is the storage quota of every tenant.
const DefaultCapacity int64 = 1 << 30

// Identity is the caller of a store operation.
type Identity struct {
	User   string
	Tenant string
	Roles  []string
}

// privileged reports whether the caller bypasses permission grants.
func (id Identity) privileged() bool {
	if id.User == "root" {
		return true
	}
	return slices.Contains(id.Roles, "superuser") || slices.Contains(id.Roles, "admin")
}

// principals are the names a grant may be addressed to.
func (id Identity) principals() []string {
	return append([]string{id.User}, id.Roles...)
}

type version struct {
	ts       string
	data     []byte
	metadata map[string]string
}

type entity struct {
	uid      string
	name     string
	typ      fileservice.FileType
	parent   string // "" is the tenant root
	owner    string
	tenant   string
	created  time.Time
	modified time.Time
	deleted  bool
	versions []version // newest first
	metadata map[string]string
}

func (e *entity) size() int64 {
	if len(e.versions) == 0 {
		return 0
	}
	return int64(len(e.versions[0].data))
}

func (e *entity) version(ts string) (*version, bool) {
	for i := range e.versions {
		if e.versions[i].ts == ts {
			return &e.versions[i], true
		}
	}
	return nil, false
}

type permSet map[fileservice.Permission]struct{}

// Store holds the sandbox state. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	entities map[string]*entity
	grants   map[string]map[string]permSet // resource -> principal -> perms
	capacity int64
	now      func() time.Time
	lastTS   time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCapacity sets the per-tenant quota reported by Usage.
func WithCapacity(bytes int64) StoreOption {
	return func(s *Store) { s.capacity = bytes }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entities: make(map[string]*entity),
		grants:   make(map[string]map[string]permSet),
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Lookups (callers hold s.mu)
// ============================================================================

// lookup returns the live entity uid of the caller's tenant.
func (s *Store) lookup(id Identity, uid string) (*entity, error) {
	e, err := s.lookupAny(id, uid)
	if err != nil {
		return nil, err
	}
	if e.deleted {
		return nil, storeErr(ErrNotFound, "entity %s not found", uid)
	}
	return e, nil
}

// lookupAny is lookup including soft-deleted entities.
func (s *Store) lookupAny(id Identity, uid string) (*entity, error) {
	if uid == "" {
		return nil, storeErr(ErrInvalidArgument, "uid is required")
	}
	e, ok := s.entities[uid]
	if !ok || e.tenant != id.Tenant {
		return nil, storeErr(ErrNotFound, "entity %s not found", uid)
	}
	return e, nil
}

// directory resolves a parent uid; "" is the tenant root.
func (s *Store) directory(id Identity, uid string) error {
	if uid == "" {
		return nil
	}
	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	if e.typ != fileservice.FileTypeDirectory {
		return storeErr(ErrNotDirectory, "entity %s is not a directory", uid)
	}
	return nil
}

// children returns the entities under parent, sorted by name.
func (s *Store) children(tenant, parent string, withDeleted bool) []*entity {
	var out []*entity
	for _, e := range s.entities {
		if e.tenant != tenant || e.parent != parent {
			continue
		}
		if e.deleted && !withDeleted {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].name != out[j].name {
			return out[i].name < out[j].name
		}
		return out[i].uid < out[j].uid
	})
	return out
}

// nameTaken reports whether a live sibling other than self is called name.
func (s *Store) nameTaken(tenant, parent, name, self string) bool {
	for _, e := range s.children(tenant, parent, false) {
		if e.name == name && e.uid != self {
			return true
		}
	}
	return false
}

// isAncestor reports whether ancestor is uid or one of its parents.
func (s *Store) isAncestor(ancestor, uid string) bool {
	for uid != "" {
		if uid == ancestor {
			return true
		}
		e, ok := s.entities[uid]
		if !ok {
			return false
		}
		uid = e.parent
	}
	return false
}

// nextVersion returns a version marker strictly after the previous one, as
// unix seconds with microseconds.
func (s *Store) nextVersion() (string, time.Time) {
	now := s.now().Truncate(time.Microsecond)
	if !now.After(s.lastTS) {
		now = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = now
	return fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000), now
}

// ============================================================================
// Entities
// ============================================================================

// Create adds a directory or an empty file named name under parent.
func (s *Store) Create(ctx context.Context, id Identity, parent, name string, typ fileservice.FileType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		return "", storeErr(ErrInvalidArgument, "name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.directory(id, parent); err != nil {
		return "", err
	}
	if s.nameTaken(id.Tenant, parent, name, "") {
		return "", storeErr(ErrAlreadyExists, "%q already exists", name)
	}

	now := s.now()
	e := &entity{
		uid:      uuid.NewString(),
		name:     name,
		typ:      typ,
		parent:   parent,
		owner:    id.User,
		tenant:   id.Tenant,
		created:  now,
		modified: now,
		metadata: make(map[string]string),
	}
	s.entities[e.uid] = e
	return e.uid, nil
}

// Remove soft-deletes uid, which must be of type typ.
func (s *Store) Remove(ctx context.Context, id Identity, uid string, typ fileservice.FileType) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	switch {
	case typ == fileservice.FileTypeDirectory && e.typ != fileservice.FileTypeDirectory:
		return storeErr(ErrNotDirectory, "entity %s is not a directory", uid)
	case typ != fileservice.FileTypeDirectory && e.typ == fileservice.FileTypeDirectory:
		return storeErr(ErrIsDirectory, "entity %s is a directory", uid)
	}
	e.deleted = true
	e.modified = s.now()
	return nil
}

// Undelete restores a soft-deleted uid.
func (s *Store) Undelete(ctx context.Context, id Identity, uid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookupAny(id, uid)
	if err != nil {
		return err
	}
	if !e.deleted {
		return storeErr(ErrNotDeleted, "entity %s is not deleted", uid)
	}
	if s.nameTaken(e.tenant, e.parent, e.name, e.uid) {
		return storeErr(ErrAlreadyExists, "%q already exists", e.name)
	}
	e.deleted = false
	e.modified = s.now()
	return nil
}

// List returns the children of the directory uid ("" for the tenant root).
func (s *Store) List(ctx context.Context, id Identity, uid string, withDeleted bool) ([]*fileservice.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.directory(id, uid); err != nil {
		return nil, err
	}
	children := s.children(id.Tenant, uid, withDeleted)
	entries := make([]*fileservice.DirectoryEntry, len(children))
	for i, e := range children {
		entries[i] = &fileservice.DirectoryEntry{
			UID:     e.uid,
			Name:    e.name,
			Type:    e.typ,
			Size:    e.size(),
			Deleted: e.deleted,
		}
	}
	return entries, nil
}

// Stat describes the live entity uid.
func (s *Store) Stat(ctx context.Context, id Identity, uid string) (*fileservice.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return nil, err
	}
	info := &fileservice.FileInfo{
		UID:         e.uid,
		Name:        e.name,
		Type:        e.typ,
		Size:        e.size(),
		CreatedAt:   e.created.Unix(),
		ModifiedAt:  e.modified.Unix(),
		Owner:       e.owner,
		Permissions: 0o644,
		ParentUID:   e.parent,
	}
	if e.typ == fileservice.FileTypeDirectory {
		info.Permissions = 0o755
	}
	if len(e.versions) > 0 {
		info.Version = e.versions[0].ts
	}
	return info, nil
}

// Exists reports whether uid is a live entity of the caller's tenant.
func (s *Store) Exists(ctx context.Context, id Identity, uid string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.lookup(id, uid)
	return err == nil, nil
}

// Rename changes the name of uid.
func (s *Store) Rename(ctx context.Context, id Identity, uid, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return storeErr(ErrInvalidArgument, "new name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	if s.nameTaken(e.tenant, e.parent, name, e.uid) {
		return storeErr(ErrAlreadyExists, "%q already exists", name)
	}
	e.name = name
	e.modified = s.now()
	return nil
}

// Move reparents uid under dst.
func (s *Store) Move(ctx context.Context, id Identity, uid, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	if err := s.directory(id, dst); err != nil {
		return err
	}
	if s.isAncestor(uid, dst) {
		return storeErr(ErrInvalidArgument, "cannot move %s into itself", uid)
	}
	if s.nameTaken(e.tenant, dst, e.name, e.uid) {
		return storeErr(ErrAlreadyExists, "%q already exists", e.name)
	}
	e.parent = dst
	e.modified = s.now()
	return nil
}

// Copy duplicates the subtree rooted at uid under dst. Copies get new uids
// and are owned by the caller.
func (s *Store) Copy(ctx context.Context, id Identity, uid, dst string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return "", err
	}
	if err := s.directory(id, dst); err != nil {
		return "", err
	}
	if s.isAncestor(uid, dst) {
		return "", storeErr(ErrInvalidArgument, "cannot copy %s into itself", uid)
	}
	if s.nameTaken(e.tenant, dst, e.name, "") {
		return "", storeErr(ErrAlreadyExists, "%q already exists", e.name)
	}
	return s.copyTree(e, dst, id.User, s.now()), nil
}

func (s *Store) copyTree(src *entity, parent, owner string, now time.Time) string {
	dup := &entity{
		uid:      uuid.NewString(),
		name:     src.name,
		typ:      src.typ,
		parent:   parent,
		owner:    owner,
		tenant:   src.tenant,
		created:  now,
		modified: now,
		metadata: maps.Clone(src.metadata),
		versions: make([]version, len(src.versions)),
	}
	for i, v := range src.versions {
		dup.versions[i] = version{ts: v.ts, data: slices.Clone(v.data), metadata: maps.Clone(v.metadata)}
	}
	// children are collected before the copy is inserted
	children := s.children(src.tenant, src.uid, false)
	s.entities[dup.uid] = dup
	for _, c := range children {
		s.copyTree(c, dup.uid, owner, now)
	}
	return dup.uid
}

// ============================================================================
// Versions
// ============================================================================

// Put stores data as the newest version of the file uid and returns its
// version marker. The version snapshots the file's current metadata.
func (s *Store) Put(ctx context.Context, id Identity, uid string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return "", err
	}
	if e.typ == fileservice.FileTypeDirectory {
		return "", storeErr(ErrIsDirectory, "entity %s is a directory", uid)
	}
	if used := s.used(e.tenant); used+int64(len(data)) > s.capacity {
		return "", storeErr(ErrInvalidArgument, "storage quota of tenant %q exceeded", e.tenant)
	}

	ts, now := s.nextVersion()
	v := version{ts: ts, data: slices.Clone(data), metadata: maps.Clone(e.metadata)}
	e.versions = append([]version{v}, e.versions...)
	e.modified = now
	return ts, nil
}

// Versions lists the version markers of uid, newest first.
func (s *Store) Versions(ctx context.Context, id Identity, uid string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(e.versions))
	for i, v := range e.versions {
		out[i] = v.ts
	}
	return out, nil
}

// GetVersion returns the content of version ts of uid.
func (s *Store) GetVersion(ctx context.Context, id Identity, uid, ts string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err := s.versionOf(id, uid, ts)
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.data), nil
}

func (s *Store) versionOf(id Identity, uid, ts string) (*version, error) {
	e, err := s.lookup(id, uid)
	if err != nil {
		return nil, err
	}
	v, ok := e.version(ts)
	if !ok {
		return nil, storeErr(ErrNotFound, "version %q of %s not found", ts, uid)
	}
	return v, nil
}

// Restore writes the content of version ts of uid as a new version and
// returns the new marker.
func (s *Store) Restore(ctx context.Context, id Identity, uid, ts string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.versionOf(id, uid, ts)
	if err != nil {
		return "", err
	}
	restored := version{data: slices.Clone(old.data), metadata: maps.Clone(old.metadata)}

	e := s.entities[uid]
	var now time.Time
	restored.ts, now = s.nextVersion()
	e.versions = append([]version{restored}, e.versions...)
	e.modified = now
	return restored.ts, nil
}

// Purge drops all but the newest keep versions of uid.
func (s *Store) Purge(ctx context.Context, id Identity, uid string, keep int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if keep < 0 {
		return storeErr(ErrInvalidArgument, "keep count must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	if len(e.versions) > keep {
		e.versions = slices.Clone(e.versions[:keep])
	}
	return nil
}

// ============================================================================
// Metadata
// ============================================================================

// SetMetadata sets key on uid. Existing versions keep their snapshot.
func (s *Store) SetMetadata(ctx context.Context, id Identity, uid, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return storeErr(ErrInvalidArgument, "metadata key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	e.metadata[key] = value
	return nil
}

// GetMetadata returns the value of key on uid.
func (s *Store) GetMetadata(ctx context.Context, id Identity, uid, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return "", err
	}
	return metadataValue(e.metadata, uid, key)
}

// AllMetadata returns a copy of the metadata of uid.
func (s *Store) AllMetadata(ctx context.Context, id Identity, uid string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return nil, err
	}
	return maps.Clone(e.metadata), nil
}

// DeleteMetadata removes key from uid.
func (s *Store) DeleteMetadata(ctx context.Context, id Identity, uid, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id, uid)
	if err != nil {
		return err
	}
	if _, ok := e.metadata[key]; !ok {
		return storeErr(ErrNotFound, "metadata key %q not found on %s", key, uid)
	}
	delete(e.metadata, key)
	return nil
}

// VersionMetadata returns key from the metadata snapshot of version ts.
func (s *Store) VersionMetadata(ctx context.Context, id Identity, uid, ts, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err := s.versionOf(id, uid, ts)
	if err != nil {
		return "", err
	}
	return metadataValue(v.metadata, uid, key)
}

// AllVersionMetadata returns a copy of the metadata snapshot of version ts.
func (s *Store) AllVersionMetadata(ctx context.Context, id Identity, uid, ts string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err := s.versionOf(id, uid, ts)
	if err != nil {
		return nil, err
	}
	if v.metadata == nil {
		return map[string]string{}, nil
	}
	return maps.Clone(v.metadata), nil
}

func metadataValue(m map[string]string, uid, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", storeErr(ErrNotFound, "metadata key %q not found on %s", key, uid)
	}
	return v, nil
}

// ============================================================================
// Permissions
// ============================================================================

// Grant gives principal perm on resource.
func (s *Store) Grant(ctx context.Context, id Identity, resource, principal string, perm fileservice.Permission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if principal == "" {
		return storeErr(ErrInvalidArgument, "principal is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id, resource); err != nil {
		return err
	}
	byPrincipal, ok := s.grants[resource]
	if !ok {
		byPrincipal = make(map[string]permSet)
		s.grants[resource] = byPrincipal
	}
	perms, ok := byPrincipal[principal]
	if !ok {
		perms = make(permSet)
		byPrincipal[principal] = perms
	}
	perms[perm] = struct{}{}
	return nil
}

// Revoke removes perm of principal on resource. Revoking a permission that
// was never granted succeeds.
func (s *Store) Revoke(ctx context.Context, id Identity, resource, principal string, perm fileservice.Permission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id, resource); err != nil {
		return err
	}
	if perms, ok := s.grants[resource][principal]; ok {
		delete(perms, perm)
		if len(perms) == 0 {
			delete(s.grants[resource], principal)
		}
	}
	return nil
}

// Check reports whether the caller holds perm on resource, either as a
// privileged identity or through a grant to its user or one of its roles.
func (s *Store) Check(ctx context.Context, id Identity, resource string, perm fileservice.Permission) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.lookup(id, resource); err != nil {
		return false, err
	}
	if id.privileged() {
		return true, nil
	}
	for _, p := range id.principals() {
		if _, ok := s.grants[resource][p][perm]; ok {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================================
// Storage
// ============================================================================

// Usage is the storage accounting of one tenant.
type Usage struct {
	Total int64
	Used  int64
}

// Available returns the unused part of the quota.
func (u Usage) Available() int64 {
	return max(u.Total-u.Used, 0)
}

// Percentage returns Used as a percentage of Total.
func (u Usage) Percentage() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Used) / float64(u.Total) * 100
}

// Usage returns the accounting of tenant. Every stored version counts,
// including those of soft-deleted files.
func (s *Store) Usage(ctx context.Context, tenant string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Usage{Total: s.capacity, Used: s.used(tenant)}, nil
}

func (s *Store) used(tenant string) int64 {
	var n int64
	for _, e := range s.entities {
		if e.tenant != tenant {
			continue
		}
		for _, v := range e.versions {
			n += int64(len(v.data))
		}
	}
	return n
}
