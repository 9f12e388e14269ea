package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNoteRepo 内存实现，排序逻辑与线上一致
type fakeNoteRepo struct {
	notes  map[uint64]*model.Note
	nextID uint64
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uint64]*model.Note), nextID: 1}
}

func (f *fakeNoteRepo) ListPublic(_ context.Context, q repository.NoteQuery) ([]*repository.NoteRow, int64, error) {
	filtered := make([]*model.Note, 0)
	for _, n := range f.notes {
		if n.Visibility != model.VisibilityPublic {
			continue
		}
		if q.AuthorID > 0 && n.AuthorID != q.AuthorID {
			continue
		}
		filtered = append(filtered, n)
	}

	switch q.SortType {
	case "latest":
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	case "hot":
		sort.Slice(filtered, func(i, j int) bool {
			if filtered[i].LikeCount != filtered[j].LikeCount {
				return filtered[i].LikeCount > filtered[j].LikeCount
			}
			return filtered[i].ViewCount > filtered[j].ViewCount
		})
	default:
		score := func(n *model.Note) int {
			return n.LikeCount*2 + n.CollectCount*3 + n.ViewCount
		}
		sort.Slice(filtered, func(i, j int) bool {
			if score(filtered[i]) != score(filtered[j]) {
				return score(filtered[i]) > score(filtered[j])
			}
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	total := int64(len(filtered))
	start := q.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	rows := make([]*repository.NoteRow, 0)
	for _, n := range filtered[start:end] {
		rows = append(rows, &repository.NoteRow{Note: *n, AuthorName: "author"})
	}
	return rows, total, nil
}

func (f *fakeNoteRepo) GetNoteById(_ context.Context, id uint64) (*model.Note, error) {
	if n, ok := f.notes[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeNoteRepo) GetNoteRowById(_ context.Context, id uint64) (*repository.NoteRow, error) {
	if n, ok := f.notes[id]; ok {
		return &repository.NoteRow{Note: *n, AuthorName: "author"}, nil
	}
	return nil, nil
}

func (f *fakeNoteRepo) CreateNote(_ context.Context, note *model.Note) error {
	note.ID = f.nextID
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	f.nextID++
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) UpdateNote(_ context.Context, note *model.Note) error {
	if stored, ok := f.notes[note.ID]; ok {
		stored.Title = note.Title
		stored.Content = note.Content
		stored.CoverMedia = note.CoverMedia
		stored.Images = note.Images
		stored.Visibility = note.Visibility
	}
	return nil
}

func (f *fakeNoteRepo) DeleteNote(_ context.Context, id uint64) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeNoteRepo) IncrementViewCount(_ context.Context, id uint64) error {
	if n, ok := f.notes[id]; ok {
		n.ViewCount++
	}
	return nil
}

// fakeNoteActionRepo 点赞/收藏的内存实现
type fakeNoteActionRepo struct {
	notes    *fakeNoteRepo
	likes    map[[2]uint64]bool // [noteID, userID]
	collects map[[2]uint64]bool
}

func newFakeNoteActionRepo(notes *fakeNoteRepo) *fakeNoteActionRepo {
	return &fakeNoteActionRepo{
		notes:    notes,
		likes:    make(map[[2]uint64]bool),
		collects: make(map[[2]uint64]bool),
	}
}

func (f *fakeNoteActionRepo) ToggleLike(_ context.Context, noteID, userID uint64) (bool, error) {
	key := [2]uint64{noteID, userID}
	n := f.notes.notes[noteID]
	if f.likes[key] {
		delete(f.likes, key)
		if n != nil && n.LikeCount > 0 {
			n.LikeCount--
		}
		return false, nil
	}
	f.likes[key] = true
	if n != nil {
		n.LikeCount++
	}
	return true, nil
}

func (f *fakeNoteActionRepo) ToggleCollect(_ context.Context, noteID, userID uint64) (bool, error) {
	key := [2]uint64{noteID, userID}
	n := f.notes.notes[noteID]
	if f.collects[key] {
		delete(f.collects, key)
		if n != nil && n.CollectCount > 0 {
			n.CollectCount--
		}
		return false, nil
	}
	f.collects[key] = true
	if n != nil {
		n.CollectCount++
	}
	return true, nil
}

func (f *fakeNoteActionRepo) GetLikedNoteIDs(_ context.Context, userID uint64, noteIDs []uint64) ([]uint64, error) {
	var ids []uint64
	for _, id := range noteIDs {
		if f.likes[[2]uint64{id, userID}] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeNoteActionRepo) GetCollectedNoteIDs(_ context.Context, userID uint64, noteIDs []uint64) ([]uint64, error) {
	var ids []uint64
	for _, id := range noteIDs {
		if f.collects[[2]uint64{id, userID}] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeNoteActionRepo) GetNoteCounters(_ context.Context, noteID uint64) (int, int, error) {
	if n, ok := f.notes.notes[noteID]; ok {
		return n.LikeCount, n.CollectCount, nil
	}
	return 0, 0, nil
}

func newNoteServices() (NoteService, NoteActionService, *fakeNoteRepo, *fakeNoteActionRepo) {
	noteRepo := newFakeNoteRepo()
	actionRepo := newFakeNoteActionRepo(noteRepo)
	return NewNoteService(noteRepo, actionRepo), NewNoteActionService(noteRepo, actionRepo), noteRepo, actionRepo
}

func createNote(t *testing.T, svc NoteService, authorID uint64, title string) *dto.NoteDTO {
	t.Helper()
	note, err := svc.CreateNote(context.Background(), authorID, &dto.NoteCreateDTO{Title: title, Content: "body"})
	require.NoError(t, err)
	return note
}

func TestCreateNote(t *testing.T) {
	svc, _, _, _ := newNoteServices()

	note := createNote(t, svc, 1, "first")
	assert.Equal(t, "first", note.Title)
	assert.Equal(t, "public", note.Visibility)
	assert.Equal(t, "1", note.AuthorID)

	_, err := svc.CreateNote(context.Background(), 1, &dto.NoteCreateDTO{Content: "no title"})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestCreateNote_VisibilityNormalized(t *testing.T) {
	svc, _, _, _ := newNoteServices()
	note, err := svc.CreateNote(context.Background(), 1, &dto.NoteCreateDTO{Title: "t", Visibility: "friends-only"})
	require.NoError(t, err)
	assert.Equal(t, "public", note.Visibility)

	note, err = svc.CreateNote(context.Background(), 1, &dto.NoteCreateDTO{Title: "t", Visibility: "private"})
	require.NoError(t, err)
	assert.Equal(t, "private", note.Visibility)
}

func TestGetNoteById_IncrementsViewFirst(t *testing.T) {
	svc, _, _, _ := newNoteServices()
	createNote(t, svc, 1, "seen")

	note, err := svc.GetNoteById(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, note.ViewCount)

	note, err = svc.GetNoteById(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, note.ViewCount)

	// 不存在的笔记仍走一次计数再返回 404
	_, err = svc.GetNoteById(context.Background(), 0, 999)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUpdateNote_Permission(t *testing.T) {
	svc, _, _, _ := newNoteServices()
	createNote(t, svc, 1, "mine")

	// 不存在时 404 优先于 403
	_, err := svc.UpdateNote(context.Background(), 2, 999, &dto.NoteCreateDTO{Title: "x"})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	_, err = svc.UpdateNote(context.Background(), 2, 1, &dto.NoteCreateDTO{Title: "x"})
	assert.ErrorIs(t, err, ErrNoteNoPermission)

	note, err := svc.UpdateNote(context.Background(), 1, 1, &dto.NoteCreateDTO{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", note.Title)
}

func TestDeleteNote_Permission(t *testing.T) {
	svc, _, _, _ := newNoteServices()
	createNote(t, svc, 1, "mine")

	assert.ErrorIs(t, svc.DeleteNote(context.Background(), 2, 999), ErrNoteNotFound)
	assert.ErrorIs(t, svc.DeleteNote(context.Background(), 2, 1), ErrNoteNoPermission)
	require.NoError(t, svc.DeleteNote(context.Background(), 1, 1))
	assert.ErrorIs(t, svc.DeleteNote(context.Background(), 1, 1), ErrNoteNotFound)
}

func TestToggleLike_Pairs(t *testing.T) {
	noteSvc, actionSvc, _, _ := newNoteServices()
	createNote(t, noteSvc, 1, "likeable")

	state, err := actionSvc.ToggleLike(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)
	assert.Equal(t, 1, state.LikeCount)

	// 二次切换回到原状态
	state, err = actionSvc.ToggleLike(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Equal(t, 0, state.LikeCount)

	_, err = actionSvc.ToggleLike(context.Background(), 2, 999)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestToggleCollect_Pairs(t *testing.T) {
	noteSvc, actionSvc, _, _ := newNoteServices()
	createNote(t, noteSvc, 1, "collectable")

	state, err := actionSvc.ToggleCollect(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, state.IsCollected)
	assert.Equal(t, 1, state.CollectCount)

	state, err = actionSvc.ToggleCollect(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, state.IsCollected)
	assert.Equal(t, 0, state.CollectCount)
}

func TestGetNotes_ViewerFlags(t *testing.T) {
	noteSvc, actionSvc, _, _ := newNoteServices()
	createNote(t, noteSvc, 1, "a")
	createNote(t, noteSvc, 1, "b")

	_, err := actionSvc.ToggleLike(context.Background(), 2, 1)
	require.NoError(t, err)
	_, err = actionSvc.ToggleCollect(context.Background(), 2, 2)
	require.NoError(t, err)

	page, err := noteSvc.GetNotes(context.Background(), 2, &dto.NoteQueryDTO{Page: 1, PageSize: 10, SortType: "latest"})
	require.NoError(t, err)
	notes := page.List.([]*dto.NoteDTO)
	require.Len(t, notes, 2)

	byID := make(map[string]*dto.NoteDTO)
	for _, n := range notes {
		byID[n.ID] = n
	}
	assert.True(t, byID["1"].IsLiked)
	assert.False(t, byID["1"].IsCollected)
	assert.True(t, byID["2"].IsCollected)
	assert.False(t, byID["2"].IsLiked)

	// 未登录时全部为 false
	page, err = noteSvc.GetNotes(context.Background(), 0, &dto.NoteQueryDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	for _, n := range page.List.([]*dto.NoteDTO) {
		assert.False(t, n.IsLiked)
		assert.False(t, n.IsCollected)
	}
}

func TestGetNotes_RecommendOrder(t *testing.T) {
	noteSvc, actionSvc, _, _ := newNoteServices()
	createNote(t, noteSvc, 1, "plain")
	createNote(t, noteSvc, 1, "popular")

	// popular: 1 like + 1 collect = 2*1 + 3*1 = 5 分
	_, err := actionSvc.ToggleLike(context.Background(), 2, 2)
	require.NoError(t, err)
	_, err = actionSvc.ToggleCollect(context.Background(), 2, 2)
	require.NoError(t, err)

	page, err := noteSvc.GetNotes(context.Background(), 0, &dto.NoteQueryDTO{Page: 1, PageSize: 10, SortType: "recommend"})
	require.NoError(t, err)
	notes := page.List.([]*dto.NoteDTO)
	require.Len(t, notes, 2)
	assert.Equal(t, "popular", notes[0].Title)
}

func TestGetNotes_FirstCoverOnly(t *testing.T) {
	noteSvc, _, _, _ := newNoteServices()
	_, err := noteSvc.CreateNote(context.Background(), 1, &dto.NoteCreateDTO{
		Title: "multi-cover",
		CoverMedia: []dto.MediaRefDTO{
			{URL: "http://example.com/1.jpg", Type: "image"},
			{URL: "http://example.com/2.jpg", Type: "image"},
		},
	})
	require.NoError(t, err)

	// 列表只带首张封面
	page, err := noteSvc.GetNotes(context.Background(), 0, &dto.NoteQueryDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	notes := page.List.([]*dto.NoteDTO)
	require.Len(t, notes, 1)
	require.Len(t, notes[0].CoverMedia, 1)
	assert.Equal(t, "http://example.com/1.jpg", notes[0].CoverMedia[0].URL)

	// 详情返回完整封面列表
	note, err := noteSvc.GetNoteById(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Len(t, note.CoverMedia, 2)
}

func TestGetNotes_PrivateExcluded(t *testing.T) {
	noteSvc, _, _, _ := newNoteServices()
	createNote(t, noteSvc, 1, "open")
	_, err := noteSvc.CreateNote(context.Background(), 1, &dto.NoteCreateDTO{Title: "hidden", Visibility: "private"})
	require.NoError(t, err)

	page, err := noteSvc.GetNotes(context.Background(), 0, &dto.NoteQueryDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	notes := page.List.([]*dto.NoteDTO)
	require.Len(t, notes, 1)
	assert.Equal(t, "open", notes[0].Title)
	assert.Equal(t, int64(1), page.Total)
}
