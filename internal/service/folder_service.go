package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"time"
)

type FolderService interface {
	GetFolders(ctx context.Context, userID uint64) ([]*dto.FolderDTO, error)
	CreateFolder(ctx context.Context, userID uint64, createDTO *dto.FolderCreateDTO) (*dto.FolderDTO, error)
	RenameFolder(ctx context.Context, userID, folderID uint64, createDTO *dto.FolderCreateDTO) (*dto.FolderDTO, error)
	DeleteFolder(ctx context.Context, userID, folderID uint64) error
	AddNote(ctx context.Context, userID, folderID, noteID uint64) error
	RemoveNote(ctx context.Context, userID, folderID, noteID uint64) error
	GetFolderNotes(ctx context.Context, userID, folderID uint64, page, pageSize int) (*dto.PageDTO, error)
}

type FolderServiceImpl struct {
	folderRepo repository.FolderRepo
	noteRepo   repository.NoteRepo
}

func NewFolderService(folderRepo repository.FolderRepo, noteRepo repository.NoteRepo) FolderService {
	return &FolderServiceImpl{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
	}
}

func toFolderDTO(folder *model.Folder) *dto.FolderDTO {
	return &dto.FolderDTO{
		ID:        strconv.FormatUint(folder.ID, 10),
		Name:      folder.Name,
		NoteCount: folder.NoteCount,
		CreatedAt: folder.CreatedAt.Format(time.RFC3339),
		UpdatedAt: folder.UpdatedAt.Format(time.RFC3339),
	}
}

// ownedFolder 先判存在再判归属
func (s *FolderServiceImpl) ownedFolder(ctx context.Context, userID, folderID uint64) (*model.Folder, error) {
	folder, err := s.folderRepo.GetFolderById(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}
	if folder.UserID != userID {
		return nil, ErrFolderNoPermission
	}
	return folder, nil
}

func (s *FolderServiceImpl) GetFolders(ctx context.Context, userID uint64) ([]*dto.FolderDTO, error) {
	folders, err := s.folderRepo.GetFoldersByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.FolderDTO, 0, len(folders))
	for _, folder := range folders {
		result = append(result, toFolderDTO(folder))
	}
	return result, nil
}

func (s *FolderServiceImpl) CreateFolder(ctx context.Context, userID uint64, createDTO *dto.FolderCreateDTO) (*dto.FolderDTO, error) {
	if createDTO.Name == "" {
		return nil, ErrFolderNameRequired
	}

	folder := &model.Folder{
		Name:   createDTO.Name,
		UserID: userID,
	}
	if err := s.folderRepo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return toFolderDTO(folder), nil
}

func (s *FolderServiceImpl) RenameFolder(ctx context.Context, userID, folderID uint64, createDTO *dto.FolderCreateDTO) (*dto.FolderDTO, error) {
	if createDTO.Name == "" {
		return nil, ErrFolderNameRequired
	}

	if _, err := s.ownedFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}
	if err := s.folderRepo.UpdateFolder(ctx, folderID, createDTO.Name); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetFolderById(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return toFolderDTO(folder), nil
}

func (s *FolderServiceImpl) DeleteFolder(ctx context.Context, userID, folderID uint64) error {
	if _, err := s.ownedFolder(ctx, userID, folderID); err != nil {
		return err
	}
	return s.folderRepo.DeleteFolder(ctx, folderID)
}

func (s *FolderServiceImpl) AddNote(ctx context.Context, userID, folderID, noteID uint64) error {
	if _, err := s.ownedFolder(ctx, userID, folderID); err != nil {
		return err
	}

	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	exists, err := s.folderRepo.HasNote(ctx, folderID, noteID)
	if err != nil {
		return err
	}
	if exists {
		return ErrNoteAlreadyInFolder
	}
	if err = s.folderRepo.AddNote(ctx, folderID, noteID); err != nil {
		if isDuplicateError(err) {
			return ErrNoteAlreadyInFolder
		}
		return err
	}
	return nil
}

func (s *FolderServiceImpl) RemoveNote(ctx context.Context, userID, folderID, noteID uint64) error {
	if _, err := s.ownedFolder(ctx, userID, folderID); err != nil {
		return err
	}

	exists, err := s.folderRepo.HasNote(ctx, folderID, noteID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoteNotInFolder
	}
	return s.folderRepo.RemoveNote(ctx, folderID, noteID)
}

func (s *FolderServiceImpl) GetFolderNotes(ctx context.Context, userID, folderID uint64, page, pageSize int) (*dto.PageDTO, error) {
	if _, err := s.ownedFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.folderRepo.ListNotes(ctx, folderID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.FolderNoteDTO, 0, len(rows))
	for _, row := range rows {
		cover := row.CoverMedia
		if len(cover) > 1 {
			cover = cover[:1]
		}
		list = append(list, &dto.FolderNoteDTO{
			ID:           strconv.FormatUint(row.ID, 10),
			Title:        row.Title,
			CoverMedia:   toMediaRefDTOs(cover),
			LikeCount:    row.LikeCount,
			CollectCount: row.CollectCount,
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.PageDTO{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
