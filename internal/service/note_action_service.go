package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/repository"
	"context"
)

type NoteActionService interface {
	ToggleLike(ctx context.Context, userID, noteID uint64) (*dto.LikeStateDTO, error)
	ToggleCollect(ctx context.Context, userID, noteID uint64) (*dto.CollectStateDTO, error)
}

type NoteActionServiceImpl struct {
	noteRepo   repository.NoteRepo
	actionRepo repository.NoteActionRepo
}

func NewNoteActionService(noteRepo repository.NoteRepo, actionRepo repository.NoteActionRepo) NoteActionService {
	return &NoteActionServiceImpl{
		noteRepo:   noteRepo,
		actionRepo: actionRepo,
	}
}

func (s *NoteActionServiceImpl) ToggleLike(ctx context.Context, userID, noteID uint64) (*dto.LikeStateDTO, error) {
	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	liked, err := s.actionRepo.ToggleLike(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	// 计数从存储回读，避免并发下返回过期值
	likeCount, _, err := s.actionRepo.GetNoteCounters(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStateDTO{
		IsLiked:   liked,
		LikeCount: likeCount,
	}, nil
}

func (s *NoteActionServiceImpl) ToggleCollect(ctx context.Context, userID, noteID uint64) (*dto.CollectStateDTO, error) {
	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	collected, err := s.actionRepo.ToggleCollect(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	_, collectCount, err := s.actionRepo.GetNoteCounters(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return &dto.CollectStateDTO{
		IsCollected:  collected,
		CollectCount: collectCount,
	}, nil
}
