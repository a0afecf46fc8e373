package dto

// Request bodies. The `msg` tag holds the message returned when validation
// of that field fails.

type SignUpRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email" msg:"이메일을 입력해주세요."`
	Password        string `json:"password" form:"password" binding:"required,min=4" msg:"비밀번호는 4자 이상이어야 합니다."`
	Name            string `json:"name" form:"name" binding:"notblank" msg:"이름을 입력해주세요."`
	ProfileFileName string `json:"profileFileName" form:"profileFileName"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	OTP      string `json:"otp" form:"otp"`
}

type GroupCreateRequest struct {
	GroupName         string `json:"groupName" binding:"notblank" msg:"그룹 이름을 입력해주세요."`
	GroupIntroduction string `json:"groupIntroduction" binding:"notblank" msg:"그룹 정보를 입력해주세요."`
}

type GroupUpdateDto struct {
	GroupName         string `json:"groupName" binding:"notblank" msg:"그룹 이름을 입력해주세요."`
	GroupIntroduction string `json:"groupIntroduction" binding:"notblank" msg:"그룹 정보를 입력해주세요."`
}

type GroupMemberRequest struct {
	Email string `json:"email" binding:"required"`
}

type BudgetCreateRequest struct {
	Budget int64 `json:"budget" binding:"min=0" msg:"예산은 0 이상이어야 합니다."`
}

type BudgetUpdateDto struct {
	Budget int64 `json:"budget" binding:"min=0" msg:"예산은 0 이상이어야 합니다."`
}

type ExpenseRequest struct {
	Content string `json:"content" binding:"notblank" msg:"지출 내용을 입력해주세요."`
	Price   int64  `json:"price" binding:"min=0" msg:"금액은 0 이상이어야 합니다."`
	PaidAt  string `json:"paidAt"` // 2006-01-02, today when empty
}

type PostGroupRequest struct {
	Title       string   `json:"title" binding:"notblank" msg:"제목을 입력해주세요."`
	Region      string   `json:"region" binding:"notblank" msg:"지역을 입력해주세요."`
	PeriodStart string   `json:"periodStart" binding:"required" msg:"시작일을 입력해주세요."` // 2006-01-02
	PeriodEnd   string   `json:"periodEnd" binding:"required" msg:"종료일을 입력해주세요."`
	GpsLat      *float64 `json:"gpsLat"`
	GpsLong     *float64 `json:"gpsLong"`
}

type PostRequestDto struct {
	Title   string `json:"title" binding:"notblank" msg:"제목을 입력해주세요."`
	Content string `json:"content" binding:"notblank" msg:"내용을 입력해주세요."`
}

// SearchCondition filters the story list, empty fields are not applied
type SearchCondition struct {
	Name   string // writer name
	Region string
	Title  string
}
