package models

import (
	"fmt"
	"testing"
	"time"

	"palette/db"
	"palette/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(fmt.Sprintf("file:models_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return conn
}

func TestMemberGroupMembership(t *testing.T) {
	tx := openTestDB(t)

	members := []Member{
		NewMember("wltn@palette.test", "1234", "wltn", "wltnfile"),
		NewMember("skfk@palette.test", "1234", "skfk", "skfkfile"),
		NewMember("wogns@palette.test", "1234", "wogns", "wognsfile"),
		NewMember("ruddls@palette.test", "1234", "ruddls", "ruddlsfile"),
	}
	for i := range members {
		require.NoError(t, tx.Create(&members[i]).Error)
	}
	group1 := NewGroup("그룹1", "테스트 그룹 1입니다.", nil)
	require.NoError(t, tx.Create(&group1).Error)
	group2 := NewGroup("그룹2", "테스트 그룹 2입니다", nil)
	require.NoError(t, tx.Create(&group2).Error)

	link := func(group *Group, member *Member) {
		memberGroup := MemberGroup{}
		require.NoError(t, tx.Create(&memberGroup).Error)
		assert.False(t, memberGroup.IsLinked())
		memberGroup.AddMemberGroup(group, member)
		require.NoError(t, tx.Omit(clause.Associations).Save(&memberGroup).Error)
	}
	link(&group1, &members[0])
	link(&group1, &members[1])
	link(&group2, &members[2])
	link(&group2, &members[3])

	// in memory, both sides see the link right away
	assert.Equal(t, group1.ID, members[0].Groups()[0].ID)
	assert.Len(t, group1.Members(), 2)

	var found []Member
	require.NoError(t, tx.Preload("MemberGroups.Group").Order("id").Find(&found).Error)
	require.Len(t, found, 4)
	want := []uint64{group1.ID, group1.ID, group2.ID, group2.ID}
	for i, m := range found {
		require.Len(t, m.MemberGroups, 1, m.Name)
		assert.Equal(t, want[i], m.MemberGroups[0].Group.ID, m.Name)
	}

	// and the other way around
	var groups []Group
	require.NoError(t, tx.Preload("MemberGroups.Member").Order("id").Find(&groups).Error)
	require.Len(t, groups, 2)
	assert.ElementsMatch(t, []string{"wltn", "skfk"}, memberNames(groups[0].Members()))
	assert.ElementsMatch(t, []string{"wogns", "ruddls"}, memberNames(groups[1].Members()))
}

func memberNames(members []*Member) (names []string) {
	for _, m := range members {
		names = append(names, m.Name)
	}
	return
}

func TestBudgetUpdateOnlyChangesTotal(t *testing.T) {
	group := Group{ID: 3}
	budget := NewBudget(&group, 1000)
	budget.ID = 9
	budget.CreatedAt = 100
	budget.AddExpense(Expense{ID: 1, Content: "taxi", Price: 300})
	before := budget

	budget.Update(dto.BudgetUpdateDto{Budget: 5000})

	assert.Equal(t, int64(5000), budget.TotalBudget)
	before.TotalBudget = 5000
	assert.Equal(t, before, budget)
}

func TestBudgetRemoveExpense(t *testing.T) {
	budget := Budget{ID: 1, TotalBudget: 1000}
	budget.AddExpense(Expense{ID: 1, Price: 100})
	budget.AddExpense(Expense{ID: 2, Price: 250})
	assert.Equal(t, int64(350), budget.Spent())
	assert.Equal(t, int64(650), budget.Remaining())

	removed := budget.RemoveExpense(1)
	require.NotNil(t, removed)
	assert.Equal(t, uint64(1), removed.ID)
	assert.Len(t, budget.Expenses, 1)
	assert.Nil(t, budget.RemoveExpense(42))
}

func TestNewPostCopiesRegionAndPeriod(t *testing.T) {
	period, err := ParsePeriod("2022-01-10", "2022-01-12")
	require.NoError(t, err)
	pg := NewPostGroup(1, "제주 여행", "jeju", period, nil, nil)
	pg.ID = 5
	member := Member{ID: 2, Name: "wltn"}

	post := NewPost("day 1", "sunny", &member, &pg)
	assert.Equal(t, "jeju", post.Region)
	assert.Equal(t, period, post.Period)
	assert.Equal(t, uint64(5), post.PostGroupID)
	assert.True(t, post.IsWrittenBy(2))
	assert.False(t, post.IsWrittenBy(3))
	assert.Equal(t, 3, post.Period.Days())
}

func TestParsePeriod(t *testing.T) {
	_, err := ParsePeriod("2022-01-12", "2022-01-10")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = ParsePeriod("yesterday", "2022-01-10")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	p, err := ParsePeriod("2022-01-10", "2022-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2022-01-10", p.StartDate())
	assert.Equal(t, 1, p.Days())
}

func TestPostGroupTimezoneFromCoordinates(t *testing.T) {
	lat, long := 37.5665, 126.9780
	pg := NewPostGroup(1, "서울", "seoul", Period{}, &lat, &long)
	assert.Equal(t, "Asia/Seoul", pg.Timezone)

	pg = NewPostGroup(1, "somewhere", "?", Period{}, nil, nil)
	assert.Empty(t, pg.Timezone)
}

func TestPostThumbnailPicksFirstImage(t *testing.T) {
	post := Post{Files: []MyFile{
		{ID: 1, MimeType: "application/pdf"},
		{ID: 2, MimeType: "image/png"},
		{ID: 3, MimeType: "image/jpeg"},
	}}
	require.NotNil(t, post.Thumbnail())
	assert.Equal(t, uint64(2), post.Thumbnail().ID)
	assert.Nil(t, (&Post{}).Thumbnail())
}
