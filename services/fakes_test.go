package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/proa/teiacultural/models"
)

// In-memory stand-ins for the gorm repositories and the S3 store. They
// reproduce the two gorm sentinels the services rely on
// (ErrRecordNotFound, ErrDuplicatedKey) and record side effects for
// assertions.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
	pubs  *fakePublicationRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.NationalID == user.NationalID {
			return gorm.ErrDuplicatedKey
		}
		if user.Username != nil && u.Username != nil && *u.Username == *user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username != nil && *u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	var users []models.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) GetByCategory(category string) ([]models.User, error) {
	var users []models.User
	for _, u := range r.users {
		if strings.Contains(u.Category, category) {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, u := range r.users {
		if u.ID == user.ID {
			continue
		}
		if user.Username != nil && u.Username != nil && *u.Username == *user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) DeleteWithPublications(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.pubs != nil {
		r.pubs.deleteByUser(user.ID)
	}
	delete(r.users, user.ID)
	return nil
}

type fakeRoleRepo struct {
	roles map[string]*models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[string]*models.Role)}
	for _, role := range models.SeedRoles() {
		clone := role
		r.roles[strings.ToUpper(role.Name)] = &clone
	}
	return r
}

func (r *fakeRoleRepo) GetByName(name string) (*models.Role, error) {
	role, ok := r.roles[strings.ToUpper(name)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *fakeRoleRepo) Ensure(role models.Role) error {
	if _, ok := r.roles[strings.ToUpper(role.Name)]; !ok {
		r.roles[strings.ToUpper(role.Name)] = &role
	}
	return nil
}

type fakePublicationRepo struct {
	pubs    map[uint]*models.Publication
	nextID  uint
	users   *fakeUserRepo
	deleted int
}

func newFakePublicationRepo(users *fakeUserRepo) *fakePublicationRepo {
	r := &fakePublicationRepo{pubs: make(map[uint]*models.Publication), nextID: 1, users: users}
	if users != nil {
		users.pubs = r
	}
	return r
}

func (r *fakePublicationRepo) Create(publication *models.Publication) error {
	publication.ID = r.nextID
	r.nextID++
	if publication.CreatedAt.IsZero() {
		publication.CreatedAt = time.Now()
	}
	clone := *publication
	r.pubs[publication.ID] = &clone
	return nil
}

func (r *fakePublicationRepo) GetByID(id uint) (*models.Publication, error) {
	publication, ok := r.pubs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *publication
	r.attachOwner(&clone)
	return &clone, nil
}

func (r *fakePublicationRepo) GetByUser(userID uuid.UUID) ([]models.Publication, error) {
	var publications []models.Publication
	for _, p := range r.pubs {
		if p.UserID == userID {
			publications = append(publications, *p)
		}
	}
	sortNewestFirst(publications)
	return publications, nil
}

func (r *fakePublicationRepo) Update(publication *models.Publication) error {
	if _, ok := r.pubs[publication.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *publication
	r.pubs[publication.ID] = &clone
	return nil
}

func (r *fakePublicationRepo) Delete(id uint) error {
	if _, ok := r.pubs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.pubs, id)
	r.deleted++
	return nil
}

func (r *fakePublicationRepo) GetFeed(page, pageSize int) ([]models.Publication, int64, error) {
	return r.paged(r.all(), page, pageSize)
}

func (r *fakePublicationRepo) GetFeedByUsername(username string, page, pageSize int) ([]models.Publication, int64, error) {
	var matched []models.Publication
	for _, p := range r.all() {
		if p.User.Username != nil && *p.User.Username == username {
			matched = append(matched, p)
		}
	}
	return r.paged(matched, page, pageSize)
}

func (r *fakePublicationRepo) GetFeedByCategory(category string, page, pageSize int) ([]models.Publication, int64, error) {
	var matched []models.Publication
	for _, p := range r.all() {
		if strings.Contains(p.User.Category, category) {
			matched = append(matched, p)
		}
	}
	return r.paged(matched, page, pageSize)
}

func (r *fakePublicationRepo) all() []models.Publication {
	var publications []models.Publication
	for _, p := range r.pubs {
		clone := *p
		r.attachOwner(&clone)
		publications = append(publications, clone)
	}
	return publications
}

func (r *fakePublicationRepo) paged(publications []models.Publication, page, pageSize int) ([]models.Publication, int64, error) {
	sortNewestFirst(publications)
	total := int64(len(publications))

	start := page * pageSize
	if start >= len(publications) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(publications) {
		end = len(publications)
	}
	return publications[start:end], total, nil
}

func (r *fakePublicationRepo) attachOwner(publication *models.Publication) {
	if r.users == nil {
		return
	}
	if owner, ok := r.users.users[publication.UserID]; ok {
		publication.User = *owner
	}
}

func (r *fakePublicationRepo) deleteByUser(userID uuid.UUID) {
	for id, p := range r.pubs {
		if p.UserID == userID {
			delete(r.pubs, id)
			r.deleted++
		}
	}
}

func sortNewestFirst(publications []models.Publication) {
	sort.Slice(publications, func(i, j int) bool {
		return publications[i].CreatedAt.After(publications[j].CreatedAt)
	})
}

type fakeObjectStore struct {
	uploads   map[string]string // key -> content type
	deleted   []string
	swept     []string
	deleteErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: make(map[string]string)}
}

func (s *fakeObjectStore) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	s.uploads[key] = contentType
	return "https://s3.test/media/" + key, nil
}

func (s *fakeObjectStore) Delete(_ context.Context, ref string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, ref)
	return nil
}

func (s *fakeObjectStore) DeleteByPrefix(_ context.Context, prefix string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.swept = append(s.swept, prefix)
	return nil
}
