package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
)

// Memory is a map-backed implementation of every repository, sharing the
// gorm implementation's semantics (sentinel errors, uniqueness rules,
// ordering). It backs the test suites and works as a throwaway backend
// for local experiments.
type Memory struct {
	mu          sync.Mutex
	users       map[uuid.UUID]models.User
	folders     map[uuid.UUID]models.Folder
	notes       map[uuid.UUID]models.Note
	shares      map[uuid.UUID]models.FolderShare
	permissions map[uuid.UUID]models.Permission
	requests    map[uuid.UUID]models.EditRequest
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[uuid.UUID]models.User),
		folders:     make(map[uuid.UUID]models.Folder),
		notes:       make(map[uuid.UUID]models.Note),
		shares:      make(map[uuid.UUID]models.FolderShare),
		permissions: make(map[uuid.UUID]models.Permission),
		requests:    make(map[uuid.UUID]models.EditRequest),
	}
}

// Registry returns repositories bound to this store.
func (m *Memory) Registry() Registry {
	return Registry{
		Users:        &memUsers{m},
		Folders:      &memFolders{m},
		Notes:        &memNotes{m},
		Shares:       &memShares{m},
		Permissions:  &memPermissions{m},
		EditRequests: &memEditRequests{m},
	}
}

// TxManager returns a transaction manager that snapshots the store before
// fn and restores it if fn fails, mirroring a database rollback.
func (m *Memory) TxManager() TxManager {
	return &memTxManager{m}
}

type memTxManager struct {
	m *Memory
}

func (t *memTxManager) Do(ctx context.Context, fn func(reg Registry) error) error {
	snap := t.m.snapshot()
	if err := fn(t.m.Registry()); err != nil {
		t.m.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	users       map[uuid.UUID]models.User
	folders     map[uuid.UUID]models.Folder
	notes       map[uuid.UUID]models.Note
	shares      map[uuid.UUID]models.FolderShare
	permissions map[uuid.UUID]models.Permission
	requests    map[uuid.UUID]models.EditRequest
}

func (m *Memory) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := memSnapshot{
		users:       make(map[uuid.UUID]models.User, len(m.users)),
		folders:     make(map[uuid.UUID]models.Folder, len(m.folders)),
		notes:       make(map[uuid.UUID]models.Note, len(m.notes)),
		shares:      make(map[uuid.UUID]models.FolderShare, len(m.shares)),
		permissions: make(map[uuid.UUID]models.Permission, len(m.permissions)),
		requests:    make(map[uuid.UUID]models.EditRequest, len(m.requests)),
	}
	for k, v := range m.users {
		snap.users[k] = v
	}
	for k, v := range m.folders {
		snap.folders[k] = v
	}
	for k, v := range m.notes {
		v.Anexos = append([]models.Attachment(nil), v.Anexos...)
		snap.notes[k] = v
	}
	for k, v := range m.shares {
		snap.shares[k] = v
	}
	for k, v := range m.permissions {
		snap.permissions[k] = v
	}
	for k, v := range m.requests {
		snap.requests[k] = v
	}
	return snap
}

func (m *Memory) restore(snap memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = snap.users
	m.folders = snap.folders
	m.notes = snap.notes
	m.shares = snap.shares
	m.permissions = snap.permissions
	m.requests = snap.requests
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func ensureTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

type memUsers struct {
	m *Memory
}

func (r *memUsers) Create(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return ErrConflict
		}
	}
	user.ID = ensureID(user.ID)
	user.CreatedAt = ensureTime(user.CreatedAt)
	r.m.users[user.ID] = *user
	return nil
}

func (r *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

type memFolders struct {
	m *Memory
}

func (r *memFolders) withOwner(f models.Folder) models.Folder {
	if owner, ok := r.m.users[f.OwnerID]; ok {
		f.Owner = owner
	}
	return f
}

func (r *memFolders) Create(ctx context.Context, folder *models.Folder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	folder.ID = ensureID(folder.ID)
	folder.CreatedAt = ensureTime(folder.CreatedAt)
	folder.UpdatedAt = folder.CreatedAt
	r.m.folders[folder.ID] = *folder
	return nil
}

func (r *memFolders) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.folders[id]
	if !ok {
		return nil, ErrNotFound
	}
	f = r.withOwner(f)
	return &f, nil
}

func (r *memFolders) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Folder
	for _, f := range r.m.folders {
		if f.OwnerID == ownerID {
			out = append(out, r.withOwner(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memFolders) ListPublic(ctx context.Context, search string) ([]models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	needle := strings.ToLower(search)
	var out []models.Folder
	for _, f := range r.m.folders {
		if !f.IsPublic {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(f.Nome), needle) {
			continue
		}
		out = append(out, r.withOwner(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memFolders) Update(ctx context.Context, folder *models.Folder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.folders[folder.ID]; !ok {
		return ErrNotFound
	}
	folder.UpdatedAt = time.Now()
	stored := *folder
	stored.Owner = models.User{}
	r.m.folders[folder.ID] = stored
	return nil
}

func (r *memFolders) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.folders, id)
	return nil
}

type memNotes struct {
	m *Memory
}

func (r *memNotes) Create(ctx context.Context, note *models.Note) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	note.ID = ensureID(note.ID)
	note.CreatedAt = ensureTime(note.CreatedAt)
	note.UpdatedAt = note.CreatedAt
	r.m.notes[note.ID] = *note
	return nil
}

func (r *memNotes) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n, ok := r.m.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	n.Anexos = append([]models.Attachment(nil), n.Anexos...)
	return &n, nil
}

func (r *memNotes) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]models.Note, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Note
	for _, n := range r.m.notes {
		if n.FolderID == folderID {
			n.Anexos = append([]models.Attachment(nil), n.Anexos...)
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *memNotes) Update(ctx context.Context, note *models.Note) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.notes[note.ID]
	if !ok {
		return ErrNotFound
	}
	note.UpdatedAt = time.Now()
	updated := *note
	updated.Anexos = stored.Anexos
	r.m.notes[note.ID] = updated
	return nil
}

func (r *memNotes) ReplaceAttachments(ctx context.Context, noteID uuid.UUID, anexos []models.Attachment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n, ok := r.m.notes[noteID]
	if !ok {
		return ErrNotFound
	}
	copied := make([]models.Attachment, len(anexos))
	for i, a := range anexos {
		a.ID = uuid.New()
		a.NoteID = noteID
		a.Position = i
		copied[i] = a
	}
	n.Anexos = copied
	r.m.notes[noteID] = n
	return nil
}

func (r *memNotes) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.notes, id)
	return nil
}

func (r *memNotes) DeleteByFolder(ctx context.Context, folderID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, n := range r.m.notes {
		if n.FolderID == folderID {
			delete(r.m.notes, id)
		}
	}
	return nil
}

type memShares struct {
	m *Memory
}

func (r *memShares) Create(ctx context.Context, share *models.FolderShare) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.shares {
		if s.FolderID == share.FolderID && s.UserID == share.UserID {
			return ErrConflict
		}
	}
	share.ID = ensureID(share.ID)
	share.CreatedAt = ensureTime(share.CreatedAt)
	share.UpdatedAt = share.CreatedAt
	r.m.shares[share.ID] = *share
	return nil
}

func (r *memShares) GetByID(ctx context.Context, id uuid.UUID) (*models.FolderShare, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.shares[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *memShares) GetByFolderAndUser(ctx context.Context, folderID, userID uuid.UUID) (*models.FolderShare, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.shares {
		if s.FolderID == folderID && s.UserID == userID {
			s := s
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memShares) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]models.FolderShare, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.FolderShare
	for _, s := range r.m.shares {
		if s.FolderID != folderID {
			continue
		}
		if u, ok := r.m.users[s.UserID]; ok {
			s.User = u
		}
		if p, ok := r.m.permissions[s.PermissionID]; ok {
			s.Permission = p
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memShares) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FolderShare, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.FolderShare
	for _, s := range r.m.shares {
		if s.UserID != userID {
			continue
		}
		if f, ok := r.m.folders[s.FolderID]; ok {
			if owner, ok := r.m.users[f.OwnerID]; ok {
				f.Owner = owner
			}
			s.Folder = f
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *memShares) UpdatePermission(ctx context.Context, id, permissionID uuid.UUID) (*models.FolderShare, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.shares[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.PermissionID = permissionID
	s.UpdatedAt = time.Now()
	r.m.shares[id] = s
	return &s, nil
}

func (r *memShares) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.shares, id)
	return nil
}

func (r *memShares) DeleteByFolder(ctx context.Context, folderID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, s := range r.m.shares {
		if s.FolderID == folderID {
			delete(r.m.shares, id)
		}
	}
	return nil
}

type memPermissions struct {
	m *Memory
}

func (r *memPermissions) Create(ctx context.Context, permission *models.Permission) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.permissions {
		if p.Nome == permission.Nome {
			return ErrConflict
		}
	}
	permission.ID = ensureID(permission.ID)
	permission.CreatedAt = ensureTime(permission.CreatedAt)
	r.m.permissions[permission.ID] = *permission
	return nil
}

func (r *memPermissions) GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.permissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *memPermissions) GetByName(ctx context.Context, name string) (*models.Permission, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.permissions {
		if p.Nome == name {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memPermissions) List(ctx context.Context) ([]models.Permission, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Permission, 0, len(r.m.permissions))
	for _, p := range r.m.permissions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *memPermissions) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.permissions[id]; !ok {
		return ErrNotFound
	}
	delete(r.m.permissions, id)
	return nil
}

type memEditRequests struct {
	m *Memory
}

func (r *memEditRequests) Create(ctx context.Context, request *models.EditRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	request.ID = ensureID(request.ID)
	request.CreatedAt = ensureTime(request.CreatedAt)
	request.UpdatedAt = request.CreatedAt
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	r.m.requests[request.ID] = *request
	return nil
}

func (r *memEditRequests) GetByID(ctx context.Context, id uuid.UUID) (*models.EditRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
}

func (r *memEditRequests) FindPending(ctx context.Context, folderID, requesterID uuid.UUID) (*models.EditRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, req := range r.m.requests {
		if req.FolderID == folderID && req.RequesterID == requesterID && req.Status == models.RequestPending {
			req := req
			return &req, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memEditRequests) ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.EditRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.EditRequest
	for _, req := range r.m.requests {
		if req.OwnerID != ownerID || req.Status != models.RequestPending {
			continue
		}
		if u, ok := r.m.users[req.RequesterID]; ok {
			req.Requester = u
		}
		if f, ok := r.m.folders[req.FolderID]; ok {
			req.Folder = f
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memEditRequests) Update(ctx context.Context, request *models.EditRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.requests[request.ID]; !ok {
		return ErrNotFound
	}
	request.UpdatedAt = time.Now()
	stored := *request
	stored.Requester = models.User{}
	stored.Folder = models.Folder{}
	r.m.requests[request.ID] = stored
	return nil
}

func (r *memEditRequests) DeleteByFolder(ctx context.Context, folderID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, req := range r.m.requests {
		if req.FolderID == folderID {
			delete(r.m.requests, id)
		}
	}
	return nil
}
