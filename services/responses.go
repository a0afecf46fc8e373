package services

import (
	"time"

	"palette/dto"
	"palette/models"
	"palette/utils"
)

// URLResolver turns a stored object path into a link clients can fetch
type URLResolver interface {
	URL(path string) string
}

func ToMemberResponse(m *models.Member) dto.MemberResponse {
	if m == nil {
		return dto.MemberResponse{}
	}
	return dto.MemberResponse{
		ID:              m.ID,
		Name:            m.Name,
		ProfileFileName: m.ProfileFileName,
	}
}

func ToPeriodResponse(p models.Period) dto.PeriodResponse {
	return dto.PeriodResponse{
		Start: p.StartDate(),
		End:   p.EndDate(),
		Text:  utils.GetDatesString(p.Start, p.End),
	}
}

func ToGroupResponse(g *models.Group) dto.GroupResponse {
	r := dto.GroupResponse{
		ID:                g.ID,
		GroupName:         g.GroupName,
		GroupIntroduction: g.GroupIntroduction,
		MemberCount:       len(g.MemberGroups),
	}
	if g.CreatedByID != nil {
		r.CreatedByID = *g.CreatedByID
	}
	return r
}

func ToExpenseResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:      e.ID,
		Content: e.Content,
		Price:   e.Price,
		PaidAt:  models.FormatDate(e.PaidAt),
	}
}

func ToBudgetResponse(b *models.Budget) dto.BudgetResponse {
	expenses := make([]dto.ExpenseResponse, 0, len(b.Expenses))
	for i := range b.Expenses {
		expenses = append(expenses, ToExpenseResponse(&b.Expenses[i]))
	}
	return dto.BudgetResponse{
		ID:          b.ID,
		GroupID:     b.GroupID,
		TotalBudget: b.TotalBudget,
		Spent:       b.Spent(),
		Remaining:   b.Remaining(),
		Expenses:    expenses,
	}
}

func ToPostGroupResponse(pg *models.PostGroup, stories []dto.StoryListResponse) dto.PostGroupResponse {
	r := dto.PostGroupResponse{
		ID:       pg.ID,
		GroupID:  pg.GroupID,
		Title:    pg.Title,
		Region:   pg.Region,
		Period:   ToPeriodResponse(pg.Period),
		Timezone: pg.Timezone,
		Stories:  stories,
	}
	if pg.Period.Start != 0 {
		r.Season = utils.GetSeason(time.Unix(pg.Period.Start, 0).UTC().Month(), pg.GpsLat)
	}
	return r
}

func (s *PostService) toStoryListResponse(p *models.Post) dto.StoryListResponse {
	r := dto.StoryListResponse{
		ID:          p.ID,
		PostGroupID: p.PostGroupID,
		Title:       p.Title,
		Region:      p.Region,
		Period:      ToPeriodResponse(p.Period),
		WriterID:    p.MemberID,
		LikeCount:   p.LikeCount,
		CreatedAt:   p.CreatedAt,
	}
	if p.Member != nil {
		r.WriterName = p.Member.Name
	}
	if thumb := p.Thumbnail(); thumb != nil {
		path := thumb.ThumbFileName
		if path == "" {
			path = thumb.StoreFileName
		}
		r.ThumbnailURL = s.urls.URL(path)
	}
	return r
}

func (s *PostService) toFileResponse(f *models.MyFile) dto.FileResponse {
	return dto.FileResponse{
		ID:       f.ID,
		Name:     f.OriginalFileName,
		URL:      s.urls.URL(f.StoreFileName),
		ThumbURL: s.urls.URL(f.ThumbFileName),
		MimeType: f.MimeType,
		Size:     f.Size,
	}
}

func (s *PostService) toPostResponse(p *models.Post, liked bool) dto.PostResponseDto {
	files := make([]dto.FileResponse, 0, len(p.Files))
	for i := range p.Files {
		files = append(files, s.toFileResponse(&p.Files[i]))
	}
	return dto.PostResponseDto{
		ID:          p.ID,
		PostGroupID: p.PostGroupID,
		Title:       p.Title,
		Content:     p.Content,
		Region:      p.Region,
		Period:      ToPeriodResponse(p.Period),
		Writer:      ToMemberResponse(p.Member),
		Files:       files,
		LikeCount:   p.LikeCount,
		Liked:       liked,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
