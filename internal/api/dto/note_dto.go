package dto

// MediaRefDTO 媒体引用
type MediaRefDTO struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// NoteCreateDTO 创建/更新笔记请求
type NoteCreateDTO struct {
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	CoverMedia []MediaRefDTO `json:"coverMedia"`
	Images     []string      `json:"images"`
	Visibility string        `json:"visibility"`
}

// NoteQueryDTO 笔记列表查询参数
type NoteQueryDTO struct {
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"pageSize,default=20"`
	SortType    string `form:"sortType,default=recommend"`
	AuthorID    string `form:"authorId"`
	IsFollowing string `form:"isFollowing"`
	IsCollected string `form:"isCollected"`
}

// NoteDTO 笔记详情
type NoteDTO struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	CoverMedia   []MediaRefDTO `json:"coverMedia"`
	Images       []string      `json:"images"`
	AuthorID     string        `json:"authorId"`
	AuthorName   string        `json:"authorName"`
	AuthorAvatar string        `json:"authorAvatar"`
	Visibility   string        `json:"visibility"`
	LikeCount    int           `json:"likeCount"`
	CollectCount int           `json:"collectCount"`
	CommentCount int           `json:"commentCount"`
	ViewCount    int           `json:"viewCount"`
	IsLiked      bool          `json:"isLiked"`
	IsCollected  bool          `json:"isCollected"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// LikeStateDTO 点赞切换结果
type LikeStateDTO struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likeCount"`
}

// CollectStateDTO 收藏切换结果
type CollectStateDTO struct {
	IsCollected  bool `json:"isCollected"`
	CollectCount int  `json:"collectCount"`
}
