package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"time"
)

type NoteService interface {
	GetNotes(ctx context.Context, viewerID uint64, queryDTO *dto.NoteQueryDTO) (*dto.PageDTO, error)
	GetNoteById(ctx context.Context, viewerID, noteID uint64) (*dto.NoteDTO, error)
	CreateNote(ctx context.Context, authorID uint64, createDTO *dto.NoteCreateDTO) (*dto.NoteDTO, error)
	UpdateNote(ctx context.Context, operatorID, noteID uint64, updateDTO *dto.NoteCreateDTO) (*dto.NoteDTO, error)
	DeleteNote(ctx context.Context, operatorID, noteID uint64) error
}

type NoteServiceImpl struct {
	noteRepo   repository.NoteRepo
	actionRepo repository.NoteActionRepo
}

func NewNoteService(noteRepo repository.NoteRepo, actionRepo repository.NoteActionRepo) NoteService {
	return &NoteServiceImpl{
		noteRepo:   noteRepo,
		actionRepo: actionRepo,
	}
}

func toMediaRefDTOs(list model.MediaList) []dto.MediaRefDTO {
	result := make([]dto.MediaRefDTO, 0, len(list))
	for _, m := range list {
		result = append(result, dto.MediaRefDTO{
			URL:      m.URL,
			Type:     m.Type,
			Width:    m.Width,
			Height:   m.Height,
			Duration: m.Duration,
		})
	}
	return result
}

func toMediaList(refs []dto.MediaRefDTO) model.MediaList {
	result := make(model.MediaList, 0, len(refs))
	for _, m := range refs {
		result = append(result, model.MediaRef{
			URL:      m.URL,
			Type:     m.Type,
			Width:    m.Width,
			Height:   m.Height,
			Duration: m.Duration,
		})
	}
	return result
}

func toNoteDTO(row *repository.NoteRow) *dto.NoteDTO {
	images := row.Images
	if images == nil {
		images = model.StringList{}
	}
	return &dto.NoteDTO{
		ID:           strconv.FormatUint(row.ID, 10),
		Title:        row.Title,
		Content:      row.Content,
		CoverMedia:   toMediaRefDTOs(row.CoverMedia),
		Images:       images,
		AuthorID:     strconv.FormatUint(row.AuthorID, 10),
		AuthorName:   row.AuthorName,
		AuthorAvatar: row.AuthorAvatar,
		Visibility:   row.Visibility,
		LikeCount:    row.LikeCount,
		CollectCount: row.CollectCount,
		CommentCount: row.CommentCount,
		ViewCount:    row.ViewCount,
		CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    row.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *NoteServiceImpl) GetNotes(ctx context.Context, viewerID uint64, queryDTO *dto.NoteQueryDTO) (*dto.PageDTO, error) {
	page := queryDTO.Page
	if page < 1 {
		page = 1
	}
	pageSize := queryDTO.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := repository.NoteQuery{
		SortType: queryDTO.SortType,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
	if queryDTO.AuthorID != "" {
		authorID, err := strconv.ParseUint(queryDTO.AuthorID, 10, 64)
		if err != nil {
			return nil, ErrParamInvalid
		}
		q.AuthorID = authorID
	}
	// isFollowing / isCollected 过滤依赖登录态，未登录时忽略
	if queryDTO.IsFollowing == "true" && viewerID > 0 {
		q.FollowingOf = viewerID
	}
	if queryDTO.IsCollected == "true" && viewerID > 0 {
		q.CollectedBy = viewerID
	}

	rows, total, err := s.noteRepo.ListPublic(ctx, q)
	if err != nil {
		return nil, err
	}

	noteDTOs := make([]*dto.NoteDTO, 0, len(rows))
	noteIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		noteDTO := toNoteDTO(row)
		// 列表只带首张封面，完整封面列表走详情接口
		if len(noteDTO.CoverMedia) > 1 {
			noteDTO.CoverMedia = noteDTO.CoverMedia[:1]
		}
		noteDTOs = append(noteDTOs, noteDTO)
		noteIDs = append(noteIDs, row.ID)
	}

	if err = s.fillViewerStates(ctx, viewerID, noteIDs, noteDTOs); err != nil {
		return nil, err
	}

	return &dto.PageDTO{
		List:     noteDTOs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// fillViewerStates 批量补齐 isLiked/isCollected，各一条 IN 查询
func (s *NoteServiceImpl) fillViewerStates(ctx context.Context, viewerID uint64, noteIDs []uint64, noteDTOs []*dto.NoteDTO) error {
	if viewerID == 0 || len(noteIDs) == 0 {
		return nil
	}

	likedIDs, err := s.actionRepo.GetLikedNoteIDs(ctx, viewerID, noteIDs)
	if err != nil {
		return err
	}
	collectedIDs, err := s.actionRepo.GetCollectedNoteIDs(ctx, viewerID, noteIDs)
	if err != nil {
		return err
	}

	liked := make(map[uint64]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}
	collected := make(map[uint64]bool, len(collectedIDs))
	for _, id := range collectedIDs {
		collected[id] = true
	}
	for i, id := range noteIDs {
		noteDTOs[i].IsLiked = liked[id]
		noteDTOs[i].IsCollected = collected[id]
	}
	return nil
}

// GetNoteById 先无条件累加浏览数再查详情，与线上行为保持一致
func (s *NoteServiceImpl) GetNoteById(ctx context.Context, viewerID, noteID uint64) (*dto.NoteDTO, error) {
	if err := s.noteRepo.IncrementViewCount(ctx, noteID); err != nil {
		return nil, err
	}

	row, err := s.noteRepo.GetNoteRowById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNoteNotFound
	}

	noteDTO := toNoteDTO(row)
	if err = s.fillViewerStates(ctx, viewerID, []uint64{noteID}, []*dto.NoteDTO{noteDTO}); err != nil {
		return nil, err
	}
	return noteDTO, nil
}

func (s *NoteServiceImpl) CreateNote(ctx context.Context, authorID uint64, createDTO *dto.NoteCreateDTO) (*dto.NoteDTO, error) {
	if createDTO.Title == "" {
		return nil, ErrTitleRequired
	}

	visibility := createDTO.Visibility
	if visibility != model.VisibilityPrivate {
		visibility = model.VisibilityPublic
	}

	note := &model.Note{
		Title:      createDTO.Title,
		Content:    createDTO.Content,
		CoverMedia: toMediaList(createDTO.CoverMedia),
		Images:     createDTO.Images,
		AuthorID:   authorID,
		Visibility: visibility,
	}
	if err := s.noteRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	row, err := s.noteRepo.GetNoteRowById(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	return toNoteDTO(row), nil
}

func (s *NoteServiceImpl) UpdateNote(ctx context.Context, operatorID, noteID uint64, updateDTO *dto.NoteCreateDTO) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	// 先判存在再判归属
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if note.AuthorID != operatorID {
		return nil, ErrNoteNoPermission
	}
	if updateDTO.Title == "" {
		return nil, ErrTitleRequired
	}

	visibility := updateDTO.Visibility
	if visibility != model.VisibilityPrivate {
		visibility = model.VisibilityPublic
	}

	note.Title = updateDTO.Title
	note.Content = updateDTO.Content
	note.CoverMedia = toMediaList(updateDTO.CoverMedia)
	note.Images = updateDTO.Images
	note.Visibility = visibility
	if err = s.noteRepo.UpdateNote(ctx, note); err != nil {
		return nil, err
	}

	row, err := s.noteRepo.GetNoteRowById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return toNoteDTO(row), nil
}

func (s *NoteServiceImpl) DeleteNote(ctx context.Context, operatorID, noteID uint64) error {
	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if note.AuthorID != operatorID {
		return ErrNoteNoPermission
	}
	return s.noteRepo.DeleteNote(ctx, noteID)
}
