package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/repository"
)

// In-memory stand-ins for the SQL repositories. They mirror the
// constraints the schema enforces (unique usernames and emails,
// one edge per pair, one rating per pair) so the services can be
// exercised without a database.

type fakeUserStore struct {
	users  map[uint64]model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}, nextID: 1}
}

func (f *fakeUserStore) add(username, email, hash, role string) model.User {
	u := model.User{
		ID:           f.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUserStore) Create(_ context.Context, username, email, passwordHash string, roleID uint8) (uint64, error) {
	for _, u := range f.users {
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	u := f.add(username, email, passwordHash, model.RoleUser)
	u.RoleID = roleID
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakeRoleStore struct {
	roles map[string]model.Role
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{roles: map[string]model.Role{
		model.RoleUser:       {ID: 1, Name: model.RoleUser},
		model.RoleAdmin:      {ID: 2, Name: model.RoleAdmin},
		model.RoleSuperAdmin: {ID: 3, Name: model.RoleSuperAdmin},
	}}
}

func (f *fakeRoleStore) GetByName(_ context.Context, name string) (model.Role, error) {
	r, ok := f.roles[name]
	if !ok {
		return model.Role{}, sql.ErrNoRows
	}
	return r, nil
}

type fakeRevocationStore struct {
	revoked map[string]time.Time
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: map[string]time.Time{}}
}

func (f *fakeRevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	// INSERT IGNORE semantics: the first expiry sticks.
	if _, ok := f.revoked[token]; !ok {
		f.revoked[token] = expiresAt
	}
	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := f.revoked[token]
	return ok, nil
}

type edge struct{ a, b uint64 }

type fakeFollowStore struct {
	edges map[edge]bool
	users *fakeUserStore
}

func newFakeFollowStore(users *fakeUserStore) *fakeFollowStore {
	return &fakeFollowStore{edges: map[edge]bool{}, users: users}
}

func (f *fakeFollowStore) Insert(_ context.Context, followerID, followeeID uint64) error {
	e := edge{followerID, followeeID}
	if f.edges[e] {
		return repository.ErrAlreadyFollowing
	}
	f.edges[e] = true
	return nil
}

func (f *fakeFollowStore) Delete(_ context.Context, followerID, followeeID uint64) error {
	e := edge{followerID, followeeID}
	if !f.edges[e] {
		return repository.ErrNotFollowing
	}
	delete(f.edges, e)
	return nil
}

func (f *fakeFollowStore) Followers(_ context.Context, userID uint64, limit, offset int) ([]model.User, error) {
	var out []model.User
	for e := range f.edges {
		if e.b == userID {
			out = append(out, f.users.users[e.a])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFollowStore) Following(_ context.Context, userID uint64, limit, offset int) ([]model.User, error) {
	var out []model.User
	for e := range f.edges {
		if e.a == userID {
			out = append(out, f.users.users[e.b])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeLikeStore struct {
	likes map[edge]bool
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: map[edge]bool{}}
}

func (f *fakeLikeStore) Toggle(_ context.Context, userID, recipeID uint64) (bool, error) {
	e := edge{userID, recipeID}
	if f.likes[e] {
		delete(f.likes, e)
		return false, nil
	}
	f.likes[e] = true
	return true, nil
}

func (f *fakeLikeStore) Exists(_ context.Context, userID, recipeID uint64) (bool, error) {
	return f.likes[edge{userID, recipeID}], nil
}

type fakeRatingStore struct {
	ratings map[edge]model.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: map[edge]model.Rating{}}
}

func (f *fakeRatingStore) Upsert(_ context.Context, userID, recipeID uint64, score int, ratedAt time.Time) error {
	f.ratings[edge{userID, recipeID}] = model.Rating{
		UserID: userID, RecipeID: recipeID, Score: score, RatedAt: ratedAt,
	}
	return nil
}

type fakeCommentStore struct {
	comments map[uint64]model.Comment
	nextID   uint64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[uint64]model.Comment{}, nextID: 1}
}

func (f *fakeCommentStore) Create(_ context.Context, userID, recipeID uint64, text string) (uint64, error) {
	c := model.Comment{ID: f.nextID, UserID: userID, RecipeID: recipeID, Text: text, CreatedAt: time.Now()}
	f.comments[c.ID] = c
	f.nextID++
	return c.ID, nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id uint64) (model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return model.Comment{}, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCommentStore) ListByRecipe(_ context.Context, recipeID uint64, limit, offset int) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range f.comments {
		if c.RecipeID == recipeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.comments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.comments, id)
	return nil
}

type fakeRecipeStore struct {
	recipes map[uint64]model.Recipe
}

func newFakeRecipeStore() *fakeRecipeStore {
	return &fakeRecipeStore{recipes: map[uint64]model.Recipe{}}
}

func (f *fakeRecipeStore) add(id, authorID uint64, title string) model.Recipe {
	r := model.Recipe{ID: id, AuthorID: authorID, Title: title, CreatedAt: time.Now()}
	f.recipes[id] = r
	return r
}

func (f *fakeRecipeStore) GetByID(_ context.Context, id uint64) (model.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return model.Recipe{}, sql.ErrNoRows
	}
	return r, nil
}

type fakeNotificationStore struct {
	rows   map[uint64]model.Notification
	nextID uint64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{rows: map[uint64]model.Notification{}, nextID: 1}
}

func (f *fakeNotificationStore) Create(_ context.Context, n *model.Notification) (uint64, error) {
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.rows[n.ID] = *n
	f.nextID++
	return n.ID, nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id uint64) (model.Notification, error) {
	n, ok := f.rows[id]
	if !ok {
		return model.Notification{}, sql.ErrNoRows
	}
	return n, nil
}

func (f *fakeNotificationStore) ListByRecipient(_ context.Context, recipientID uint64, limit, offset int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.rows {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id uint64) error {
	n, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	n.Read = true
	f.rows[id] = n
	return nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

// recordingNotifier captures events instead of writing rows, so the
// mutator tests can assert exactly which notifications would be sent.
type recordingNotifier struct {
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev Event) {
	r.events = append(r.events, ev)
}
