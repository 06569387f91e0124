package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"cityhelp-be/errs"
	"cityhelp-be/mocks"
	"cityhelp-be/models"
	"cityhelp-be/services"
)

var _ = Describe("StatsService", func() {
	var (
		ctx    context.Context
		ctrl   *gomock.Controller
		issues *mocks.MockIssueStore
		users  *mocks.MockUserStore
		cache  *recordingCache
		svc    *services.StatsService
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		issues = mocks.NewMockIssueStore(ctrl)
		users = mocks.NewMockUserStore(ctrl)
		cache = &recordingCache{}
		svc = services.NewStatsService(issues, users, cache)
	})

	Describe("Leaderboard", func() {
		It("orders by points descending and truncates to the limit", func() {
			a := models.User{ID: primitive.NewObjectID(), Name: "a", Points: 50}
			b := models.User{ID: primitive.NewObjectID(), Name: "b", Points: 10}
			c := models.User{ID: primitive.NewObjectID(), Name: "c", Points: 30}
			users.EXPECT().TopByPoints(gomock.Any(), int64(2)).Return([]models.User{a, b, c}, nil)
			issues.EXPECT().CountByReporter(gomock.Any(), gomock.Any(), models.IssueStatus("")).Return(int64(5), nil).Times(2)
			issues.EXPECT().CountByReporter(gomock.Any(), gomock.Any(), models.Resolved).Return(int64(2), nil).Times(2)

			entries, err := svc.Leaderboard(ctx, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Points).To(Equal(50))
			Expect(entries[1].Points).To(Equal(30))
			Expect(entries[0].IssuesReported).To(Equal(int64(5)))
			Expect(entries[0].IssuesResolved).To(Equal(int64(2)))
		})

		It("defaults the limit", func() {
			users.EXPECT().TopByPoints(gomock.Any(), int64(10)).Return(nil, nil)

			entries, err := svc.Leaderboard(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("UserStats", func() {
		var user *models.User

		BeforeEach(func() {
			user = &models.User{ID: primitive.NewObjectID(), Name: "Asha", Points: 40, IsActive: true}
		})

		expectCounts := func(total, pending, resolved int64) {
			issues.EXPECT().CountByReporter(gomock.Any(), user.ID, models.IssueStatus("")).Return(total, nil)
			issues.EXPECT().CountByReporter(gomock.Any(), user.ID, models.Pending).Return(pending, nil)
			issues.EXPECT().CountByReporter(gomock.Any(), user.ID, models.Resolved).Return(resolved, nil)
		}

		It("ranks by users with strictly more points", func() {
			users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
			users.EXPECT().CountActiveWithPointsAbove(gomock.Any(), 40).Return(int64(3), nil)
			expectCounts(4, 2, 1)

			stats, err := svc.UserStats(ctx, user.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.User.Rank).To(Equal(int64(4)))
			Expect(stats.User.Points).To(Equal(40))
			Expect(stats.Stats.TotalIssues).To(Equal(int64(4)))
			Expect(stats.Stats.PendingIssues).To(Equal(int64(2)))
			Expect(stats.Stats.ResolutionRate).To(Equal(25.0))
		})

		It("reports a zero rate with no issues", func() {
			users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
			users.EXPECT().CountActiveWithPointsAbove(gomock.Any(), 40).Return(int64(0), nil)
			expectCounts(0, 0, 0)

			stats, err := svc.UserStats(ctx, user.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.User.Rank).To(Equal(int64(1)))
			Expect(stats.Stats.ResolutionRate).To(BeZero())
		})

		It("is not found for unknown users", func() {
			users.EXPECT().FindByID(gomock.Any(), user.ID).Return(nil, errs.NotFound("User not found"))

			_, err := svc.UserStats(ctx, user.ID)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("GlobalStats", func() {
		It("aggregates counts and caches the result", func() {
			issues.EXPECT().CountByStatus(gomock.Any()).Return(map[models.IssueStatus]int64{
				models.Pending: 3, models.InProgress: 2, models.Resolved: 4, models.Closed: 1,
			}, nil)
			issues.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{"Infrastructure": 6, "Environment": 4}, nil)
			issues.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(7)

			stats, err := svc.GlobalStats(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(Equal(int64(10)))
			Expect(stats.OpenIssues).To(Equal(int64(5)))
			Expect(stats.Closed).To(Equal(int64(1)))
			Expect(stats.Categories).To(HaveKeyWithValue("Infrastructure", int64(6)))
			Expect(stats.Last7Days).To(HaveLen(7))
			Expect(cache.stats).To(BeIdenticalTo(stats))

			again, err := svc.GlobalStats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(BeIdenticalTo(stats))
		})

		It("surfaces store failures as persistence errors", func() {
			issues.EXPECT().CountByStatus(gomock.Any()).Return(nil, errors.New("boom"))

			_, err := svc.GlobalStats(ctx)
			Expect(errs.HTTPStatus(err)).To(Equal(500))
			Expect(cache.stats).To(BeNil())
		})
	})
})

var _ = DescribeTable("ResolutionRate",
	func(resolved, total int64, want float64) {
		Expect(services.ResolutionRate(resolved, total)).To(Equal(want))
	},
	Entry("no issues", int64(0), int64(0), 0.0),
	Entry("one of four", int64(1), int64(4), 25.0),
	Entry("one of three", int64(1), int64(3), 33.3),
	Entry("all", int64(7), int64(7), 100.0),
)
