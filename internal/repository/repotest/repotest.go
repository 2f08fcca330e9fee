// Package repotest provides in-memory repository fakes for use case tests.
// Each store honors the interface contracts (nil-on-missing lookups, atomic
// increments) and exposes error hooks so tests can force a particular write
// to fail.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

/* ───────── BlogStore ───────── */

// BlogStore is an in-memory repository.BlogRepository. Err fails every call;
// IncrementErr and DeleteErr fail only the corresponding write, which is how
// tests force the second half of a paired unit to break.
type BlogStore struct {
	mu      sync.Mutex
	Data    map[int64]*entity.Blog
	Authors map[int64]repository.Author // keyed by owner ID
	Saved   map[int64][]int64           // user ID -> saved blog IDs, newest first

	Err          error
	CreateErr    error
	IncrementErr error
	DeleteErr    error

	nextID int64
}

func NewBlogStore() *BlogStore {
	return &BlogStore{
		Data:    map[int64]*entity.Blog{},
		Authors: map[int64]repository.Author{},
		Saved:   map[int64][]int64{},
		nextID:  1,
	}
}

// Seed inserts a blog directly, bypassing error hooks.
func (s *BlogStore) Seed(b *entity.Blog) *entity.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.nextID
		s.nextID++
	} else if b.ID >= s.nextID {
		s.nextID = b.ID + 1
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	s.Data[b.ID] = b
	return b
}

func (s *BlogStore) Create(_ context.Context, b *entity.Blog) error {
	if s.Err != nil {
		return s.Err
	}
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID
	s.nextID++
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	s.Data[b.ID] = b
	return nil
}

func (s *BlogStore) Get(_ context.Context, id int64) (*entity.Blog, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Data[id], nil
}

func (s *BlogStore) GetWithAuthor(ctx context.Context, id int64) (*repository.BlogWithAuthor, error) {
	b, err := s.Get(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	return &repository.BlogWithAuthor{Blog: b, Author: s.author(b.OwnerID)}, nil
}

func (s *BlogStore) Exists(ctx context.Context, id int64) (bool, error) {
	b, err := s.Get(ctx, id)
	return b != nil, err
}

func (s *BlogStore) ListLatest(_ context.Context, offset, limit int) ([]repository.BlogWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return paginate(s.sorted(func(*entity.Blog) bool { return true }), offset, limit), nil
}

func (s *BlogStore) CountBlogs(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.Data)), nil
}

func (s *BlogStore) ListByOwner(_ context.Context, ownerID int64, offset, limit int) ([]repository.BlogWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return paginate(s.sorted(func(b *entity.Blog) bool { return b.OwnerID == ownerID }), offset, limit), nil
}

func (s *BlogStore) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.Data {
		if b.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *BlogStore) ListRecentByOwnerExcluding(_ context.Context, ownerID, excludeID int64, limit int) ([]repository.BlogWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	all := s.sorted(func(b *entity.Blog) bool { return b.OwnerID == ownerID && b.ID != excludeID })
	return paginate(all, 0, limit), nil
}

func (s *BlogStore) ListSaved(_ context.Context, userID int64, offset, limit int) ([]repository.BlogWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.BlogWithAuthor
	for _, id := range s.Saved[userID] {
		if b := s.Data[id]; b != nil {
			out = append(out, repository.BlogWithAuthor{Blog: b, Author: s.Authors[b.OwnerID]})
		}
	}
	return paginate(out, offset, limit), nil
}

func (s *BlogStore) CountSaved(_ context.Context, userID int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.Saved[userID])), nil
}

func (s *BlogStore) UpdateContent(_ context.Context, b *entity.Blog) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.Data[b.ID]
	if !ok {
		return fmt.Errorf("blog %d not found", b.ID)
	}
	cur.Title = b.Title
	cur.Content = b.Content
	cur.Banner = b.Banner
	cur.ReadingTime = b.ReadingTime
	cur.UpdatedAt = time.Now()
	return nil
}

func (s *BlogStore) IncrementReaction(_ context.Context, id, delta int64) error {
	return s.increment(id, func(b *entity.Blog) { b.Reaction += delta })
}

func (s *BlogStore) IncrementBookmark(_ context.Context, id, delta int64) error {
	return s.increment(id, func(b *entity.Blog) { b.TotalBookmark += delta })
}

func (s *BlogStore) IncrementVisit(_ context.Context, id, delta int64) error {
	return s.increment(id, func(b *entity.Blog) { b.TotalVisit += delta })
}

func (s *BlogStore) Delete(_ context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data, id)
	return nil
}

func (s *BlogStore) DeleteByOwner(_ context.Context, ownerID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range s.Data {
		if b.OwnerID == ownerID {
			delete(s.Data, id)
		}
	}
	return nil
}

func (s *BlogStore) increment(id int64, apply func(*entity.Blog)) error {
	if s.Err != nil {
		return s.Err
	}
	if s.IncrementErr != nil {
		return s.IncrementErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Data[id]
	if !ok {
		return fmt.Errorf("blog %d not found", id)
	}
	apply(b)
	return nil
}

func (s *BlogStore) author(ownerID int64) repository.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Authors[ownerID]
}

func (s *BlogStore) sorted(keep func(*entity.Blog) bool) []repository.BlogWithAuthor {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.BlogWithAuthor
	for _, b := range s.Data {
		if keep(b) {
			out = append(out, repository.BlogWithAuthor{Blog: b, Author: s.Authors[b.OwnerID]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Blog.CreatedAt.Equal(out[j].Blog.CreatedAt) {
			return out[i].Blog.CreatedAt.After(out[j].Blog.CreatedAt)
		}
		return out[i].Blog.ID > out[j].Blog.ID
	})
	return out
}

func paginate(all []repository.BlogWithAuthor, offset, limit int) []repository.BlogWithAuthor {
	if offset >= len(all) {
		return []repository.BlogWithAuthor{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

/* ───────── UserStore ───────── */

// UserStore is an in-memory repository.UserRepository. AdjustErr fails only
// AdjustAggregates; MembershipErr fails the Add/Remove membership writes.
type UserStore struct {
	mu      sync.Mutex
	Data    map[int64]*entity.User
	Reacted map[int64]map[int64]bool // user ID -> blog ID set
	Saved   map[int64]map[int64]bool

	Err           error
	AdjustErr     error
	MembershipErr error

	computed map[int64]Computed
	nextID   int64

	// AdjustCalls counts AdjustAggregates invocations so tests can assert the
	// owner row was written exactly once.
	AdjustCalls int
}

func NewUserStore() *UserStore {
	return &UserStore{
		Data:    map[int64]*entity.User{},
		Reacted: map[int64]map[int64]bool{},
		Saved:   map[int64]map[int64]bool{},
		nextID:  1,
	}
}

// Seed inserts a user directly, bypassing error hooks.
func (s *UserStore) Seed(u *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextID
		s.nextID++
	} else if u.ID >= s.nextID {
		s.nextID = u.ID + 1
	}
	s.Data[u.ID] = u
	return u
}

func (s *UserStore) Create(_ context.Context, u *entity.User) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.Data[u.ID] = u
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Data[id], nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.Username == username })
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.Email == email })
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := s.GetByUsername(ctx, username)
	return u != nil, err
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := s.GetByEmail(ctx, email)
	return u != nil, err
}

func (s *UserStore) UpdateProfile(_ context.Context, u *entity.User) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.Data[u.ID]
	if !ok {
		return fmt.Errorf("user %d not found", u.ID)
	}
	cur.Name = u.Name
	cur.Username = u.Username
	cur.Email = u.Email
	cur.Bio = u.Bio
	cur.ProfilePhoto = u.ProfilePhoto
	cur.UpdatedAt = time.Now()
	return nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Data[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.PasswordHash = hash
	return nil
}

func (s *UserStore) Delete(_ context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data, id)
	delete(s.Reacted, id)
	delete(s.Saved, id)
	return nil
}

func (s *UserStore) HasReacted(_ context.Context, userID, blogID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reacted[userID][blogID], nil
}

func (s *UserStore) AddReacted(_ context.Context, userID, blogID int64) error {
	return s.setMembership(s.Reacted, userID, blogID, true)
}

func (s *UserStore) RemoveReacted(_ context.Context, userID, blogID int64) error {
	return s.setMembership(s.Reacted, userID, blogID, false)
}

func (s *UserStore) HasSaved(_ context.Context, userID, blogID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Saved[userID][blogID], nil
}

func (s *UserStore) AddSaved(_ context.Context, userID, blogID int64) error {
	return s.setMembership(s.Saved, userID, blogID, true)
}

func (s *UserStore) RemoveSaved(_ context.Context, userID, blogID int64) error {
	return s.setMembership(s.Saved, userID, blogID, false)
}

func (s *UserStore) AdjustAggregates(_ context.Context, userID, publishedDelta, visitsDelta, reactionsDelta int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.AdjustErr != nil {
		return s.AdjustErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AdjustCalls++
	u, ok := s.Data[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.BlogPublished += publishedDelta
	u.TotalVisits += visitsDelta
	u.TotalReactions += reactionsDelta
	return nil
}

func (s *UserStore) ListIDs(_ context.Context) ([]int64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.Data))
	for id := range s.Data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Computed holds per-user live sums for ComputedAggregates; tests set it to
// whatever the blogs table would yield.
type Computed struct {
	Published, Visits, Reactions int64
}

func (s *UserStore) ComputedAggregates(_ context.Context, userID int64) (int64, int64, int64, error) {
	if s.Err != nil {
		return 0, 0, 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.computed[userID]
	return c.Published, c.Visits, c.Reactions, nil
}

// SetComputed fixes the live sums ComputedAggregates reports for a user.
func (s *UserStore) SetComputed(userID int64, c Computed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.computed == nil {
		s.computed = map[int64]Computed{}
	}
	s.computed[userID] = c
}

func (s *UserStore) SetAggregates(_ context.Context, userID, published, visits, reactions int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Data[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.BlogPublished = published
	u.TotalVisits = visits
	u.TotalReactions = reactions
	return nil
}

func (s *UserStore) find(match func(*entity.User) bool) (*entity.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Data {
		if match(u) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) setMembership(set map[int64]map[int64]bool, userID, blogID int64, present bool) error {
	if s.Err != nil {
		return s.Err
	}
	if s.MembershipErr != nil {
		return s.MembershipErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if set[userID] == nil {
		set[userID] = map[int64]bool{}
	}
	if present {
		set[userID][blogID] = true
	} else {
		delete(set[userID], blogID)
	}
	return nil
}

/* ───────── SessionStore ───────── */

// SessionStore is an in-memory repository.SessionRepository.
type SessionStore struct {
	mu   sync.Mutex
	Data map[string]*repository.Session
	Err  error
}

func NewSessionStore() *SessionStore {
	return &SessionStore{Data: map[string]*repository.Session{}}
}

func (s *SessionStore) Create(_ context.Context, sess *repository.Session) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.Data[sess.ID] = &cp
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*repository.Session, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.Data[id]
	if sess == nil || time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *SessionStore) UpdateMirror(_ context.Context, userID int64, name, username, photoURL string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.Data {
		if sess.UserID == userID {
			sess.Name, sess.Username, sess.PhotoURL = name, username, photoURL
		}
	}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data, id)
	return nil
}

func (s *SessionStore) DeleteByUser(_ context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.Data {
		if sess.UserID == userID {
			delete(s.Data, id)
		}
	}
	return nil
}

func (s *SessionStore) DeleteExpired(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := time.Now()
	for id, sess := range s.Data {
		if now.After(sess.ExpiresAt) {
			delete(s.Data, id)
			n++
		}
	}
	return n, nil
}

/* ───────── RepairStore ───────── */

// RepairStore is an in-memory repository.RepairRepository.
type RepairStore struct {
	mu   sync.Mutex
	Data []*repository.CounterRepair
	Err  error

	nextID int64
}

func NewRepairStore() *RepairStore {
	return &RepairStore{nextID: 1}
}

func (s *RepairStore) Create(_ context.Context, r *repository.CounterRepair) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	r.CreatedAt = time.Now()
	s.Data = append(s.Data, r)
	return nil
}

func (s *RepairStore) ListUnresolved(_ context.Context, limit int) ([]*repository.CounterRepair, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*repository.CounterRepair
	for _, r := range s.Data {
		if r.ResolvedAt == nil {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *RepairStore) Resolve(_ context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.Data {
		if r.ID == id {
			now := time.Now()
			r.ResolvedAt = &now
			return nil
		}
	}
	return fmt.Errorf("repair %d not found", id)
}
