package services

import (
	"context"
	"testing"

	"affiliatenest/internal/models"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type referralFixture struct {
	links     *memoryLinkRepo
	referrals *memoryReferralRepo
	service   ReferralService
}

func newReferralFixture(t *testing.T) (*referralFixture, *models.AffiliateLink) {
	t.Helper()

	links := newMemoryLinkRepo()
	referrals := newMemoryReferralRepo()
	service := NewReferralService(links, referrals, logger.NewNopLogger())

	link := &models.AffiliateLink{
		OwnerID:   primitive.NewObjectID(),
		ProgramID: primitive.NewObjectID(),
		Token:     "program1-xyzw5678",
	}
	require.NoError(t, links.Create(context.Background(), link))

	return &referralFixture{links: links, referrals: referrals, service: service}, link
}

func TestRecordVisitCreatesPendingReferral(t *testing.T) {
	f, link := newReferralFixture(t)

	referral, err := f.service.RecordVisit(context.Background(), link.Token)
	require.NoError(t, err)
	require.Equal(t, link.ID, referral.LinkID)
	require.Equal(t, link.OwnerID, referral.OwnerID)
	require.Equal(t, link.ProgramID, referral.ProgramID)
	require.Equal(t, models.ReferralStatusPending, referral.Status)
	require.Nil(t, referral.ReferredUserID)
	require.Zero(t, referral.Commission)
}

func TestRecordVisitDoesNotDeduplicate(t *testing.T) {
	f, link := newReferralFixture(t)

	// Every visit is its own funnel event.
	for i := 0; i < 3; i++ {
		_, err := f.service.RecordVisit(context.Background(), link.Token)
		require.NoError(t, err)
	}
	require.Len(t, f.referrals.all(), 3)
}

func TestRecordVisitAcceptsFullLinkURL(t *testing.T) {
	f, link := newReferralFixture(t)

	referral, err := f.service.RecordVisit(context.Background(), "https://links.example.com/ref/"+link.Token)
	require.NoError(t, err)
	require.Equal(t, link.ID, referral.LinkID)
}

func TestRecordVisitUnknownLink(t *testing.T) {
	f, _ := newReferralFixture(t)

	_, err := f.service.RecordVisit(context.Background(), "missing-token")
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.ErrCodeNotFound))

	_, err = f.service.RecordVisit(context.Background(), "")
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.ErrCodeNotFound))
}

func TestRecordSignupAttributesUser(t *testing.T) {
	f, link := newReferralFixture(t)
	userID := primitive.NewObjectID()

	referral, err := f.service.RecordSignup(context.Background(), link.Token, userID)
	require.NoError(t, err)
	require.NotNil(t, referral.ReferredUserID)
	require.Equal(t, userID, *referral.ReferredUserID)
	require.Equal(t, models.ReferralStatusPending, referral.Status)
}

func TestRecordSignupIsIdempotentPerUser(t *testing.T) {
	f, link := newReferralFixture(t)
	userID := primitive.NewObjectID()

	first, err := f.service.RecordSignup(context.Background(), link.Token, userID)
	require.NoError(t, err)

	// A retried registration request must not attribute twice.
	second, err := f.service.RecordSignup(context.Background(), link.Token, userID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, f.referrals.all(), 1)
}

func TestListByOwnerFiltersReferrals(t *testing.T) {
	f, link := newReferralFixture(t)

	_, err := f.service.RecordVisit(context.Background(), link.Token)
	require.NoError(t, err)

	referrals, err := f.service.ListByOwner(context.Background(), link.OwnerID)
	require.NoError(t, err)
	require.Len(t, referrals, 1)

	referrals, err = f.service.ListByOwner(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.Empty(t, referrals)
}
