package services

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"goboard/config"
	"goboard/internal/domain/attachment"
	"goboard/internal/domain/board"
	"goboard/internal/domain/user"
	"goboard/internal/storage"
	board_errors "goboard/pkg/errors"
	"goboard/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memPart is an in-memory upload part.
type memPart struct {
	name        string
	contentType string
	data        []byte
	sizeHint    int64
	openErr     error
}

func (p memPart) Filename() string    { return p.name }
func (p memPart) ContentType() string { return p.contentType }

func (p memPart) Size() int64 {
	if p.sizeHint != 0 {
		return p.sizeHint
	}
	return int64(len(p.data))
}

func (p memPart) Open() (io.ReadCloser, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	return io.NopCloser(bytes.NewReader(p.data)), nil
}

// memAttachmentRepo keeps attachments in memory, preserving insertion
// order and enforcing the unique stored name constraint.
type memAttachmentRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]attachment.Attachment
	order     []uuid.UUID
	createErr error
	deleteErr error
}

func newMemAttachmentRepo() *memAttachmentRepo {
	return &memAttachmentRepo{items: make(map[uuid.UUID]attachment.Attachment)}
}

func (r *memAttachmentRepo) Create(ctx context.Context, a *attachment.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.items {
		if existing.StoredName == a.StoredName {
			return board_errors.ErrAlreadyExists
		}
	}
	r.items[a.ID] = *a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *memAttachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (attachment.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return attachment.Attachment{}, board_errors.ErrNotFound
	}
	return a, nil
}

func (r *memAttachmentRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]attachment.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attachment.Attachment
	for _, id := range r.order {
		if a, ok := r.items[id]; ok && a.BoardID == boardID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAttachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return board_errors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memAttachmentRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// memBoardRepo keeps posts in memory and records the last List call.
type memBoardRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]board.Board
	order []uuid.UUID

	lastQuery string
	lastPage  int
	lastLimit int
}

func newMemBoardRepo() *memBoardRepo {
	return &memBoardRepo{items: make(map[uuid.UUID]board.Board)}
}

func (r *memBoardRepo) Create(ctx context.Context, b *board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = *b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *memBoardRepo) GetByID(ctx context.Context, id uuid.UUID) (board.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return board.Board{}, board_errors.ErrNotFound
	}
	return b, nil
}

func (r *memBoardRepo) Update(ctx context.Context, b board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return board_errors.ErrNotFound
	}
	r.items[b.ID] = b
	return nil
}

func (r *memBoardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return board_errors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memBoardRepo) List(ctx context.Context, query string, page, limit int) ([]board.Board, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = query
	r.lastPage = page
	r.lastLimit = limit

	var out []board.Board
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, int64(len(out)), nil
}

// memUserRepo keeps users and sessions in memory.
type memUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]user.User
	sessions map[uuid.UUID]user.UserSession
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:    make(map[uuid.UUID]user.User),
		sessions: make(map[uuid.UUID]user.UserSession),
	}
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return board_errors.ErrAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, board_errors.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, board_errors.ErrNotFound
}

func (r *memUserRepo) CreateSession(ctx context.Context, s *user.UserSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *memUserRepo) GetSessionByID(ctx context.Context, id uuid.UUID) (user.UserSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return user.UserSession{}, board_errors.ErrNotFound
	}
	return s, nil
}

func (r *memUserRepo) RevokeSession(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return board_errors.ErrNotFound
	}
	s.IsRevoked = true
	r.sessions[id] = s
	return nil
}

func testUser(t *testing.T, repo *memUserRepo, username, displayName string) uuid.UUID {
	t.Helper()
	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "irrelevant",
		DisplayName:  displayName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u.ID
}

func testUploadConfig(t *testing.T) config.UploadConfig {
	t.Helper()
	root := t.TempDir()
	return config.UploadConfig{
		RootPath:      root,
		FilesPath:     filepath.Join(root, "files"),
		ImagesPath:    filepath.Join(root, "images"),
		WebImagesPath: "/upload/images",
		AllowedFiles:  []string{".txt", ".pdf", ".zip"},
		AllowedImages: []string{".jpg", ".png", ".gif"},
		MaxFileSize:   1 << 20,
		MaxImageSize:  512 << 10,
		BufferSize:    64,
	}
}

func testStorage(t *testing.T, cfg config.UploadConfig) (*storage.Policy, *storage.Resolver) {
	t.Helper()
	resolver, err := storage.NewResolver(cfg)
	require.NoError(t, err)
	return storage.NewPolicy(cfg), resolver
}

func testLogger() *logger.Logger {
	return logger.New(logger.DevelopmentMode)
}
