package dto

// ToggleFollowDTO 关注/取消关注请求
type ToggleFollowDTO struct {
	UserID string `json:"userId"`
}

// FollowStateDTO 关注切换结果
type FollowStateDTO struct {
	IsFollowing bool `json:"isFollowing"`
}

// FollowUserDTO 关注/粉丝列表中的用户，附带三项统计与互关标记
type FollowUserDTO struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Nickname       string `json:"nickname"`
	Avatar         string `json:"avatar"`
	Bio            string `json:"bio"`
	FollowingCount int64  `json:"followingCount"`
	FollowersCount int64  `json:"followersCount"`
	LikeCount      int64  `json:"likeCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// CommentCreateDTO 发表评论请求
type CommentCreateDTO struct {
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
	ReplyTo string `json:"replyTo"`
}

// CommentLikeDTO 点赞评论请求
type CommentLikeDTO struct {
	CommentID string `json:"commentId"`
}

// CommentDTO 评论详情
type CommentDTO struct {
	ID          string  `json:"id"`
	NoteID      string  `json:"noteId"`
	UserID      string  `json:"userId"`
	Username    string  `json:"username"`
	UserAvatar  string  `json:"userAvatar"`
	Content     string  `json:"content"`
	LikeCount   int     `json:"likeCount"`
	IsLiked     bool    `json:"isLiked"`
	ReplyTo     *string `json:"replyTo"`
	ReplyToUser *string `json:"replyToUser"`
	CreatedAt   string  `json:"createdAt"`
}
