package services

import (
	"testing"

	"palette/dto"
	"palette/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGroupMembershipIsSymmetric(t *testing.T) {
	f := newFixture(t)
	wltn, skfk := f.member(t, "wltn"), f.member(t, "skfk")
	wogns, ruddls := f.member(t, "wogns"), f.member(t, "ruddls")

	group1 := f.group(t, wltn, "그룹1")
	group2 := f.group(t, wogns, "그룹2")
	_, err := f.groups.AddMember(f.ctx, group1.ID, wltn, skfk.Email)
	require.NoError(t, err)
	_, err = f.groups.AddMember(f.ctx, group2.ID, wogns, ruddls.Email)
	require.NoError(t, err)

	members, err := f.groups.Members(f.ctx, group1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"wltn", "skfk"}, []string{members[0].Name, members[1].Name})

	for _, m := range []*models.Member{wltn, skfk} {
		groups, err := f.groups.ListForMember(f.ctx, m.ID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, group1.ID, groups[0].ID)
		assert.Len(t, groups[0].MemberGroups, 2)
	}
	for _, m := range []*models.Member{wogns, ruddls} {
		groups, err := f.groups.ListForMember(f.ctx, m.ID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, group2.ID, groups[0].ID)
	}

	ids, err := f.groups.MemberIDs(f.ctx, group2.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{wogns.ID, ruddls.ID}, ids)
}

func TestAddMemberRules(t *testing.T) {
	f := newFixture(t)
	owner, friend, outsider := f.member(t, "owner"), f.member(t, "friend"), f.member(t, "outsider")
	group := f.group(t, owner, "travel")

	_, err := f.groups.AddMember(f.ctx, group.ID, outsider, friend.Email)
	assert.ErrorIs(t, err, ErrNotGroupMember)

	_, err = f.groups.AddMember(f.ctx, group.ID, owner, "ghost@palette.test")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.groups.AddMember(f.ctx, group.ID, owner, friend.Email)
	require.NoError(t, err)
	_, err = f.groups.AddMember(f.ctx, group.ID, owner, friend.Email)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = f.groups.AddMember(f.ctx, 404, owner, friend.Email)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGroupNameMustBeUnique(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "wltn")
	f.group(t, m, "same")
	_, err := f.groups.Create(f.ctx, m, dto.GroupCreateRequest{GroupName: "same", GroupIntroduction: "x"})
	assert.ErrorIs(t, err, ErrGroupNameTaken)
}

func TestUpdateGroup(t *testing.T) {
	f := newFixture(t)
	owner, outsider := f.member(t, "owner"), f.member(t, "outsider")
	group := f.group(t, owner, "before")
	f.group(t, owner, "taken")

	updated, err := f.groups.Update(f.ctx, group.ID, owner, dto.GroupUpdateDto{GroupName: " after ", GroupIntroduction: "new intro"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.GroupName)

	stored, err := f.groups.FindByID(f.ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.GroupName)
	assert.Equal(t, "new intro", stored.GroupIntroduction)
	assert.Len(t, stored.MemberGroups, 1)

	_, err = f.groups.Update(f.ctx, group.ID, owner, dto.GroupUpdateDto{GroupName: "taken", GroupIntroduction: "x"})
	assert.ErrorIs(t, err, ErrGroupNameTaken)
	_, err = f.groups.Update(f.ctx, group.ID, outsider, dto.GroupUpdateDto{GroupName: "mine", GroupIntroduction: "x"})
	assert.ErrorIs(t, err, ErrNotGroupMember)
}

func TestDeleteGroupRemovesEverything(t *testing.T) {
	f := newFixture(t)
	owner, friend := f.member(t, "owner"), f.member(t, "friend")
	group := f.group(t, owner, "gone")
	_, err := f.groups.AddMember(f.ctx, group.ID, owner, friend.Email)
	require.NoError(t, err)
	pg := f.postGroup(t, group.ID, owner, "jeju")
	post := f.post(t, pg, owner, "day 1", models.MyFile{StoreFileName: "post/a.jpg", MimeType: "image/jpeg"})
	_, err = f.budgets.Create(f.ctx, group.ID, owner, dto.BudgetCreateRequest{Budget: 1000})
	require.NoError(t, err)
	_, err = f.budgets.AddExpense(f.ctx, group.ID, owner, dto.ExpenseRequest{Content: "taxi", Price: 100})
	require.NoError(t, err)

	_, err = f.groups.Delete(f.ctx, group.ID, friend)
	assert.ErrorIs(t, err, ErrNotGroupCreator)

	removed, err := f.groups.Delete(f.ctx, group.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint64{post.ID}, removed.PostIDs)
	require.Len(t, removed.Files, 1)
	assert.Equal(t, "post/a.jpg", removed.Files[0].StoreFileName)

	for _, model := range []any{&models.Group{}, &models.MemberGroup{}, &models.PostGroup{}, &models.Post{}, &models.MyFile{}, &models.Budget{}, &models.Expense{}} {
		var count int64
		require.NoError(t, f.db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}
}

func TestConcurrentAddMemberIsRejected(t *testing.T) {
	f := newFixture(t)
	wltn, skfk := f.member(t, "wltn"), f.member(t, "skfk")
	group := f.group(t, wltn, "그룹1")
	beforeNextCreate[models.MemberGroup](t, f, func(tx *gorm.DB) {
		require.NoError(t, tx.Exec("INSERT INTO member_groups (created_at, member_id, group_id) VALUES (0, ?, ?)", skfk.ID, group.ID).Error)
	})

	_, err := f.groups.AddMember(f.ctx, group.ID, wltn, skfk.Email)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	members, err := f.groups.Members(f.ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
