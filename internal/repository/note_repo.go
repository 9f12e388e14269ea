package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// NoteRow 带作者信息的笔记行
type NoteRow struct {
	model.Note
	AuthorName   string
	AuthorAvatar string
}

// NoteQuery 列表查询条件，零值字段不参与过滤
type NoteQuery struct {
	AuthorID    uint64
	FollowingOf uint64 // 只看该用户关注的作者
	CollectedBy uint64 // 只看该用户收藏的笔记
	SortType    string // latest / hot / recommend
	Limit       int
	Offset      int
}

type NoteRepo interface {
	ListPublic(ctx context.Context, q NoteQuery) ([]*NoteRow, int64, error)
	GetNoteById(ctx context.Context, id uint64) (*model.Note, error)
	GetNoteRowById(ctx context.Context, id uint64) (*NoteRow, error)
	CreateNote(ctx context.Context, note *model.Note) error
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id uint64) error
	IncrementViewCount(ctx context.Context, id uint64) error
}

type NoteRepoImpl struct {
	db *gorm.DB
}

func NewNoteRepo(db *gorm.DB) NoteRepo {
	return &NoteRepoImpl{db: db}
}

func (s *NoteRepoImpl) baseQuery(ctx context.Context, q NoteQuery) *gorm.DB {
	tx := s.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("notes.visibility = ?", model.VisibilityPublic)

	if q.AuthorID > 0 {
		tx = tx.Where("notes.author_id = ?", q.AuthorID)
	}
	if q.FollowingOf > 0 {
		tx = tx.Where("notes.author_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", q.FollowingOf)
	}
	if q.CollectedBy > 0 {
		tx = tx.Where("notes.id IN (SELECT note_id FROM note_collects WHERE user_id = ?)", q.CollectedBy)
	}
	return tx
}

// ListPublic 过滤条件一致的总数查询 + 排序分页查询
func (s *NoteRepoImpl) ListPublic(ctx context.Context, q NoteQuery) ([]*NoteRow, int64, error) {
	var total int64
	if err := s.baseQuery(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := s.baseQuery(ctx, q).
		Select("notes.*, u.username AS author_name, u.avatar AS author_avatar").
		Joins("LEFT JOIN users u ON notes.author_id = u.id")

	switch q.SortType {
	case "latest":
		tx = tx.Order("notes.created_at DESC")
	case "hot":
		tx = tx.Order("notes.like_count DESC, notes.view_count DESC")
	default:
		// recommend - 综合排序
		tx = tx.Order("notes.like_count * 2 + notes.collect_count * 3 + notes.view_count DESC, notes.created_at DESC")
	}

	rows := make([]*NoteRow, 0)
	if err := tx.Limit(q.Limit).Offset(q.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *NoteRepoImpl) GetNoteById(ctx context.Context, id uint64) (*model.Note, error) {
	note := &model.Note{}
	result := s.db.WithContext(ctx).First(note, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return note, nil
}

func (s *NoteRepoImpl) GetNoteRowById(ctx context.Context, id uint64) (*NoteRow, error) {
	row := &NoteRow{}
	result := s.db.WithContext(ctx).
		Model(&model.Note{}).
		Select("notes.*, u.username AS author_name, u.avatar AS author_avatar").
		Joins("LEFT JOIN users u ON notes.author_id = u.id").
		Where("notes.id = ?", id).
		First(row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return row, nil
}

func (s *NoteRepoImpl) CreateNote(ctx context.Context, note *model.Note) error {
	return s.db.WithContext(ctx).Create(note).Error
}

// UpdateNote 覆盖标题、正文、媒体与可见性
func (s *NoteRepoImpl) UpdateNote(ctx context.Context, note *model.Note) error {
	return s.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":       note.Title,
			"content":     note.Content,
			"cover_media": note.CoverMedia,
			"images":      note.Images,
			"visibility":  note.Visibility,
		}).Error
}

func (s *NoteRepoImpl) DeleteNote(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

// IncrementViewCount 浏览即计数，同一用户重复浏览也累加
func (s *NoteRepoImpl) IncrementViewCount(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}
