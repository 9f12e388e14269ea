package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"time"
)

type SocialService interface {
	ToggleFollow(ctx context.Context, userID, targetID uint64) (*dto.FollowStateDTO, error)
	GetFollowing(ctx context.Context, viewerID, userID uint64, page, pageSize int) (*dto.PageDTO, error)
	GetFollowers(ctx context.Context, viewerID, userID uint64, page, pageSize int) (*dto.PageDTO, error)
	CreateComment(ctx context.Context, userID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetComments(ctx context.Context, viewerID, noteID uint64, page, pageSize int) (*dto.PageDTO, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.LikeStateDTO, error)
}

type SocialServiceImpl struct {
	followRepo  repository.FollowRepo
	commentRepo repository.CommentRepo
	userRepo    repository.UserRepo
	noteRepo    repository.NoteRepo
}

func NewSocialService(
	followRepo repository.FollowRepo,
	commentRepo repository.CommentRepo,
	userRepo repository.UserRepo,
	noteRepo repository.NoteRepo,
) SocialService {
	return &SocialServiceImpl{
		followRepo:  followRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
	}
}

func (s *SocialServiceImpl) ToggleFollow(ctx context.Context, userID, targetID uint64) (*dto.FollowStateDTO, error) {
	if userID == targetID {
		return nil, ErrFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	following, err := s.followRepo.Toggle(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStateDTO{IsFollowing: following}, nil
}

func (s *SocialServiceImpl) toFollowUserDTOs(ctx context.Context, viewerID uint64, rows []*repository.FollowUserRow) ([]*dto.FollowUserDTO, error) {
	userIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.ID)
	}

	followingSet := make(map[uint64]bool)
	if viewerID > 0 {
		ids, err := s.followRepo.GetFollowingIDs(ctx, viewerID, userIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			followingSet[id] = true
		}
	}

	result := make([]*dto.FollowUserDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.FollowUserDTO{
			ID:             strconv.FormatUint(row.ID, 10),
			Username:       row.Username,
			Nickname:       row.Nickname,
			Avatar:         row.Avatar,
			Bio:            row.Bio,
			FollowingCount: int64(row.FollowingCount),
			FollowersCount: int64(row.FollowerCount),
			LikeCount:      int64(row.LikeCount),
			IsFollowing:    followingSet[row.ID],
		})
	}
	return result, nil
}

func (s *SocialServiceImpl) GetFollowing(ctx context.Context, viewerID, userID uint64, page, pageSize int) (*dto.PageDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.followRepo.ListFollowing(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	list, err := s.toFollowUserDTOs(ctx, viewerID, rows)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *SocialServiceImpl) GetFollowers(ctx context.Context, viewerID, userID uint64, page, pageSize int) (*dto.PageDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.followRepo.ListFollowers(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	list, err := s.toFollowUserDTOs(ctx, viewerID, rows)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *SocialServiceImpl) CreateComment(ctx context.Context, userID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if createDTO.NoteID == "" || createDTO.Content == "" {
		return nil, ErrCommentFieldsEmpty
	}
	noteID, err := strconv.ParseUint(createDTO.NoteID, 10, 64)
	if err != nil {
		return nil, ErrCommentFieldsEmpty
	}

	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	var replyTo *uint64
	var replyToUser *string
	if createDTO.ReplyTo != "" {
		replyID, err := strconv.ParseUint(createDTO.ReplyTo, 10, 64)
		if err != nil {
			return nil, ErrReplyToInvalid
		}
		parent, err := s.commentRepo.GetCommentById(ctx, replyID)
		if err != nil {
			return nil, err
		}
		// 被回复的评论必须属于同一篇笔记
		if parent == nil || parent.NoteID != noteID {
			return nil, ErrReplyToInvalid
		}
		replyTo = &replyID

		parentUser, err := s.userRepo.GetUserById(ctx, parent.UserID)
		if err != nil {
			return nil, err
		}
		if parentUser != nil {
			replyToUser = &parentUser.Username
		}
	}

	comment := &model.Comment{
		NoteID:  noteID,
		UserID:  userID,
		Content: createDTO.Content,
		ReplyTo: replyTo,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}

	commentDTO := &dto.CommentDTO{
		ID:          strconv.FormatUint(comment.ID, 10),
		NoteID:      createDTO.NoteID,
		UserID:      strconv.FormatUint(userID, 10),
		Content:     comment.Content,
		ReplyToUser: replyToUser,
		CreatedAt:   comment.CreatedAt.Format(time.RFC3339),
	}
	if replyTo != nil {
		replyStr := strconv.FormatUint(*replyTo, 10)
		commentDTO.ReplyTo = &replyStr
	}
	if user != nil {
		commentDTO.Username = user.Username
		commentDTO.UserAvatar = user.Avatar
	}
	return commentDTO, nil
}

// GetComments 按时间倒序返回评论，登录用户带 isLiked 标记
func (s *SocialServiceImpl) GetComments(ctx context.Context, viewerID, noteID uint64, page, pageSize int) (*dto.PageDTO, error) {
	note, err := s.noteRepo.GetNoteById(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.commentRepo.ListByNote(ctx, noteID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		commentIDs = append(commentIDs, row.ID)
	}

	likedSet := make(map[uint64]bool)
	if viewerID > 0 {
		likedIDs, err := s.commentRepo.GetLikedCommentIDs(ctx, viewerID, commentIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			likedSet[id] = true
		}
	}

	list := make([]*dto.CommentDTO, 0, len(rows))
	for _, row := range rows {
		commentDTO := &dto.CommentDTO{
			ID:          strconv.FormatUint(row.ID, 10),
			NoteID:      strconv.FormatUint(row.NoteID, 10),
			UserID:      strconv.FormatUint(row.UserID, 10),
			Username:    row.Username,
			UserAvatar:  row.Avatar,
			Content:     row.Content,
			LikeCount:   row.LikeCount,
			IsLiked:     likedSet[row.ID],
			ReplyToUser: row.ReplyToUsername,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		}
		if row.ReplyTo != nil {
			replyStr := strconv.FormatUint(*row.ReplyTo, 10)
			commentDTO.ReplyTo = &replyStr
		}
		list = append(list, commentDTO)
	}

	return &dto.PageDTO{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *SocialServiceImpl) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.LikeStateDTO, error) {
	comment, err := s.commentRepo.GetCommentById(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	liked, err := s.commentRepo.ToggleLike(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.commentRepo.GetCommentCounters(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStateDTO{
		IsLiked:   liked,
		LikeCount: likeCount,
	}, nil
}
