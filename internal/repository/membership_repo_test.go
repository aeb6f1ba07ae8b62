package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/testutil"
)

func TestMembershipRepository_PlanCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMembershipRepository(db)

	plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 40)

	found, err := repo.GetByID(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipGold, found.Name)

	exists, err := repo.ExistsByName(model.MembershipGold)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(model.MembershipDiamond)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMembershipRepository_ListOrdersByPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMembershipRepository(db)

	testutil.TestMembershipPlan(t, db, model.MembershipDiamond, 399, 100)
	testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 40)
	testutil.TestMembershipPlan(t, db, model.MembershipPlatinum, 299, 70)

	plans, err := repo.List()
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, model.MembershipGold, plans[0].Name)
	assert.Equal(t, model.MembershipDiamond, plans[2].Name)
}

func TestMembershipRepository_GetByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMembershipRepository(db)

	student := testutil.TestUser(t, db)
	plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 40)
	testutil.TestUserMembership(t, db, student.ID, plan.ID)

	um, err := repo.GetByUserID(student.ID)
	require.NoError(t, err)
	require.NotNil(t, um.Membership)
	assert.Equal(t, model.MembershipGold, um.Membership.Name)

	_, err = repo.GetByUserID(99999)
	assert.Error(t, err)
}

func TestMembershipRepository_CountActiveReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMembershipRepository(db)

	plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 40)

	active := testutil.TestUser(t, db)
	testutil.TestUserMembership(t, db, active.ID, plan.ID)

	lapsed := testutil.TestUser(t, db)
	testutil.TestUserMembership(t, db, lapsed.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, -1)))

	// 只统计未到期的活跃引用
	count, err := repo.CountActiveReferences(plan.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMembershipRepository_MarkExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMembershipRepository(db)

	plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 40)

	lapsed := testutil.TestUser(t, db)
	testutil.TestUserMembership(t, db, lapsed.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, -1)))

	current := testutil.TestUser(t, db)
	testutil.TestUserMembership(t, db, current.ID, plan.ID)

	already := testutil.TestUser(t, db)
	testutil.TestUserMembership(t, db, already.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, -5)),
		testutil.WithStatus(model.UserMembershipExpired))

	// 只处理到期且仍标记 active 的记录
	n, err := repo.MarkExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var um model.UserMembership
	require.NoError(t, db.Where("user_id = ?", lapsed.ID).First(&um).Error)
	assert.Equal(t, model.UserMembershipExpired, um.Status)

	require.NoError(t, db.Where("user_id = ?", current.ID).First(&um).Error)
	assert.Equal(t, model.UserMembershipActive, um.Status)
}
