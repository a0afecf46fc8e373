package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"palette/db"
	"palette/dto"
	"palette/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testURLs struct{}

func (testURLs) URL(path string) string {
	if path == "" {
		return ""
	}
	return "/files/" + path
}

type fixture struct {
	db         *gorm.DB
	ctx        context.Context
	members    *MemberService
	groups     *GroupService
	budgets    *BudgetService
	postGroups *PostGroupService
	posts      *PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := db.Open(fmt.Sprintf("file:services_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, models.Migrate(conn))
	return &fixture{
		db:         conn,
		ctx:        context.Background(),
		members:    NewMemberService(conn),
		groups:     NewGroupService(conn),
		budgets:    NewBudgetService(conn),
		postGroups: NewPostGroupService(conn),
		posts:      NewPostService(conn, testURLs{}, 2),
	}
}

func (f *fixture) member(t *testing.T, name string) *models.Member {
	t.Helper()
	m, err := f.members.SignUp(f.ctx, dto.SignUpRequest{
		Email:    name + "@palette.test",
		Password: "1234",
		Name:     name,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) group(t *testing.T, creator *models.Member, name string) *models.Group {
	t.Helper()
	g, err := f.groups.Create(f.ctx, creator, dto.GroupCreateRequest{GroupName: name, GroupIntroduction: name + " 소개"})
	require.NoError(t, err)
	return g
}

func (f *fixture) postGroup(t *testing.T, groupID uint64, member *models.Member, region string) *models.PostGroup {
	t.Helper()
	pg, err := f.postGroups.Create(f.ctx, groupID, member, dto.PostGroupRequest{
		Title:       region + " trip",
		Region:      region,
		PeriodStart: "2022-01-10",
		PeriodEnd:   "2022-01-12",
	})
	require.NoError(t, err)
	return pg
}

func (f *fixture) post(t *testing.T, pg *models.PostGroup, member *models.Member, title string, files ...models.MyFile) *models.Post {
	t.Helper()
	post := models.NewPost(title, title+" content", member, pg)
	saved, err := f.posts.Write(f.ctx, &post, pg, files)
	require.NoError(t, err)
	return saved
}

// beforeNextCreate runs competing before the next insert into T, standing in
// for a concurrent request that wins the race after the existence checks
func beforeNextCreate[T any](t *testing.T, f *fixture, competing func(tx *gorm.DB)) {
	t.Helper()
	done := false
	err := f.db.Callback().Create().Before("gorm:create").Register("test:competing_create", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*T); !ok || done {
			return
		}
		done = true
		competing(tx.Session(&gorm.Session{NewDB: true}))
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = f.db.Callback().Create().Remove("test:competing_create")
	})
}
