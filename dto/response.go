package dto

type MemberResponse struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	ProfileFileName string `json:"profileFileName"`
}

type GroupResponse struct {
	ID                uint64 `json:"id"`
	GroupName         string `json:"groupName"`
	GroupIntroduction string `json:"groupIntroduction"`
	CreatedByID       uint64 `json:"createdById"`
	MemberCount       int    `json:"memberCount"`
}

type ExpenseResponse struct {
	ID      uint64 `json:"id"`
	Content string `json:"content"`
	Price   int64  `json:"price"`
	PaidAt  string `json:"paidAt"`
}

type BudgetResponse struct {
	ID          uint64            `json:"id"`
	GroupID     uint64            `json:"groupId"`
	TotalBudget int64             `json:"totalBudget"`
	Spent       int64             `json:"spent"`
	Remaining   int64             `json:"remaining"`
	Expenses    []ExpenseResponse `json:"expenses"`
}

type PeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

type PostGroupResponse struct {
	ID       uint64              `json:"id"`
	GroupID  uint64              `json:"groupId"`
	Title    string              `json:"title"`
	Region   string              `json:"region"`
	Period   PeriodResponse      `json:"period"`
	Season   string              `json:"season"`
	Timezone string              `json:"timezone"`
	Stories  []StoryListResponse `json:"stories,omitempty"`
}

type StoryListResponse struct {
	ID           uint64         `json:"id"`
	PostGroupID  uint64         `json:"postGroupId"`
	Title        string         `json:"title"`
	Region       string         `json:"region"`
	Period       PeriodResponse `json:"period"`
	WriterID     uint64         `json:"writerId"`
	WriterName   string         `json:"writerName"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	LikeCount    int64          `json:"likeCount"`
	CreatedAt    int64          `json:"createdAt"`
}

type FileResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ThumbURL string `json:"thumbUrl"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

type PostResponseDto struct {
	ID          uint64         `json:"id"`
	PostGroupID uint64         `json:"postGroupId"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Region      string         `json:"region"`
	Period      PeriodResponse `json:"period"`
	Writer      MemberResponse `json:"writer"`
	Files       []FileResponse `json:"files"`
	LikeCount   int64          `json:"likeCount"`
	Liked       bool           `json:"liked"`
	CreatedAt   int64          `json:"createdAt"`
	UpdatedAt   int64          `json:"updatedAt"`
}

type LoginResponse struct {
	Member MemberResponse `json:"member"`
	Token  string         `json:"token,omitempty"`
}

type TotpResponse struct {
	URL string `json:"url"`
}
