package services_test

import (
	"context"
	"errors"
	"io"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"cityhelp-be/authz"
	"cityhelp-be/classifier"
	"cityhelp-be/errs"
	"cityhelp-be/mocks"
	"cityhelp-be/models"
	"cityhelp-be/services"
	"cityhelp-be/storage"
)

type stubClassifier struct {
	category string
	err      error
	calls    int
}

func (s *stubClassifier) ClassifyText(context.Context, string) string { return s.category }

func (s *stubClassifier) ClassifyImage(context.Context, []byte, string) (string, error) {
	s.calls++
	return s.category, s.err
}

type recordingCache struct {
	stats       *models.GlobalStats
	invalidated int
}

func (c *recordingCache) Get(context.Context) (*models.GlobalStats, bool) {
	return c.stats, c.stats != nil
}
func (c *recordingCache) Set(_ context.Context, s *models.GlobalStats) { c.stats = s }
func (c *recordingCache) Invalidate(context.Context)                  { c.stats = nil; c.invalidated++ }

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func ptr[T any](v T) *T { return &v }

var _ = Describe("IssueService", func() {
	var (
		ctx      context.Context
		ctrl     *gomock.Controller
		issues   *mocks.MockIssueStore
		users    *mocks.MockUserStore
		votes    *mocks.MockVoteStore
		images   *storage.LocalStore
		cache    *recordingCache
		az       *authz.Authorizer
		svc      *services.IssueService
		citizen  *models.User
		admin    *models.User
		stranger *models.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		issues = mocks.NewMockIssueStore(ctrl)
		users = mocks.NewMockUserStore(ctrl)
		votes = mocks.NewMockVoteStore(ctrl)
		cache = &recordingCache{stats: &models.GlobalStats{}}

		var err error
		images, err = storage.NewLocalStore(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		az, err = authz.New()
		Expect(err).NotTo(HaveOccurred())

		svc = services.NewIssueService(issues, users, votes, classifier.New(classifier.Config{}, nil), images, az, cache)

		citizen = &models.User{ID: primitive.NewObjectID(), Name: "Asha", Role: models.RoleCitizen, IsActive: true}
		admin = &models.User{ID: primitive.NewObjectID(), Name: "Ravi", Role: models.RoleAdmin, IsActive: true}
		stranger = &models.User{ID: primitive.NewObjectID(), Name: "Mo", Role: models.RoleCitizen, IsActive: true}
	})

	Describe("SubmitReport", func() {
		It("classifies a text report by keywords and awards points", func() {
			var stored *models.Issue
			issues.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, i *models.Issue) error {
				stored = i
				return nil
			})
			users.EXPECT().IncrementPoints(gomock.Any(), citizen.ID, services.PointsPerReport).Return(nil)

			res, err := svc.SubmitReport(ctx, services.ReportInput{
				Title:       "Pothole",
				Description: "pothole on main street",
				Location:    "Main St",
			}, citizen.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Category).To(Equal("Infrastructure"))
			Expect(res.Department).To(Equal("Public Works"))
			Expect(res.Status).To(Equal(models.Pending))
			Expect(res.PointsAwarded).To(Equal(services.PointsPerReport))
			Expect(res.ReportedBy).To(Equal(citizen.ID))
			Expect(stored).To(BeIdenticalTo(res.Issue))
			Expect(cache.invalidated).To(Equal(1))
		})

		It("does not award points when the issue write fails", func() {
			issues.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			users.EXPECT().IncrementPoints(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := svc.SubmitReport(ctx, services.ReportInput{
				Title: "Trash", Description: "garbage everywhere", Location: "Park",
			}, citizen.ID)

			Expect(errors.Is(err, errs.ErrPersistence)).To(BeTrue())
			Expect(cache.invalidated).To(BeZero())
		})

		It("keeps the issue when awarding points fails", func() {
			issues.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			users.EXPECT().IncrementPoints(gomock.Any(), citizen.ID, services.PointsPerReport).Return(errors.New("timeout"))

			res, err := svc.SubmitReport(ctx, services.ReportInput{
				Title: "Lamp", Description: "street lamp is dark", Location: "5th Ave",
			}, citizen.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.PointsAwarded).To(BeZero())
		})

		DescribeTable("rejects invalid input without touching the store",
			func(in services.ReportInput, msg string) {
				_, err := svc.SubmitReport(ctx, in, citizen.ID)
				Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
				Expect(errs.PublicMessage(err)).To(Equal(msg))
			},
			Entry("missing title", services.ReportInput{Description: "d", Location: "l"}, "title is required"),
			Entry("blank description", services.ReportInput{Title: "t", Description: "   ", Location: "l"}, "description is required"),
			Entry("no location", services.ReportInput{Title: "t", Description: "d"}, "location is required"),
			Entry("half a coordinate", services.ReportInput{Title: "t", Description: "d", Latitude: ptr(12.9)},
				"latitude and longitude must be provided together"),
			Entry("latitude out of range", services.ReportInput{Title: "t", Description: "d", Latitude: ptr(91.0), Longitude: ptr(0.0)},
				"latitude is out of range"),
		)

		It("stores coordinates as a GeoJSON point", func() {
			issues.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			users.EXPECT().IncrementPoints(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			res, err := svc.SubmitReport(ctx, services.ReportInput{
				Title: "Flood", Description: "water everywhere", Latitude: ptr(12.97), Longitude: ptr(77.59),
			}, citizen.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Geo.Coordinates).To(Equal([]float64{77.59, 12.97}))
		})

		Context("with an image", func() {
			var cls *stubClassifier

			BeforeEach(func() {
				cls = &stubClassifier{category: "garbage"}
				svc = services.NewIssueService(issues, users, votes, cls, images, az, cache)
			})

			It("classifies the image and stores it by path", func() {
				issues.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				users.EXPECT().IncrementPoints(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

				res, err := svc.SubmitReport(ctx, services.ReportInput{
					Title: "Dump", Description: "see photo", Location: "Lake Rd",
					Image: &storage.Upload{Data: pngHeader, Filename: "dump.png", ContentType: "image/png"},
				}, citizen.ID)

				Expect(err).NotTo(HaveOccurred())
				Expect(cls.calls).To(Equal(1))
				Expect(res.Category).To(Equal("garbage"))
				Expect(res.Department).To(Equal("Sanitation"))
				Expect(res.ImageContentType).To(Equal("image/png"))
				Expect(res.ImagePath).To(BeAnExistingFile())
			})

			It("fails without persisting when image classification is unavailable", func() {
				cls.err = errs.ClassificationUnavailable(errors.New("503"))

				_, err := svc.SubmitReport(ctx, services.ReportInput{
					Title: "Dump", Description: "see photo", Location: "Lake Rd",
					Image: &storage.Upload{Data: pngHeader, Filename: "dump.png"},
				}, citizen.ID)

				Expect(errs.HTTPStatus(err)).To(Equal(503))
			})

			It("removes the saved image when the issue write fails", func() {
				var path string
				issues.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, i *models.Issue) error {
					path = i.ImagePath
					return errors.New("write failed")
				})

				_, err := svc.SubmitReport(ctx, services.ReportInput{
					Title: "Dump", Description: "see photo", Location: "Lake Rd",
					Image: &storage.Upload{Data: pngHeader, Filename: "dump.png"},
				}, citizen.ID)

				Expect(err).To(HaveOccurred())
				Expect(path).NotTo(BeEmpty())
				_, statErr := os.Stat(path)
				Expect(os.IsNotExist(statErr)).To(BeTrue())
			})
		})
	})

	Describe("ListIssues", func() {
		It("matches a lowercase status filter to the canonical status", func() {
			issue := models.Issue{ID: primitive.NewObjectID(), Status: models.Pending, ReportedBy: citizen.ID}
			issues.EXPECT().List(gomock.Any(), models.IssueFilter{Status: models.Pending}, int64(0), int64(10)).
				Return([]models.Issue{issue}, int64(1), nil)
			votes.EXPECT().CountForIssues(gomock.Any(), []primitive.ObjectID{issue.ID}).
				Return(map[primitive.ObjectID]int64{issue.ID: 3}, nil)
			users.EXPECT().FindByIDs(gomock.Any(), []primitive.ObjectID{citizen.ID}).
				Return(map[primitive.ObjectID]models.User{citizen.ID: *citizen}, nil)

			page, err := svc.ListIssues(ctx, services.ListFilter{Status: "pending"}, 0, 0, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))
			Expect(page.TotalPages).To(Equal(1))
			Expect(page.CurrentPage).To(Equal(1))
			Expect(page.Issues).To(HaveLen(1))
			Expect(page.Issues[0].Votes).To(Equal(int64(3)))
			Expect(page.Issues[0].Reporter.Name).To(Equal("Asha"))
			Expect(page.Issues[0].UserHasVoted).To(BeFalse())
		})

		It("normalizes the category filter and computes paging", func() {
			issues.EXPECT().List(gomock.Any(), models.IssueFilter{Category: "public works"}, int64(40), int64(20)).
				Return(nil, int64(45), nil)

			page, err := svc.ListIssues(ctx, services.ListFilter{Status: "all", Category: "  Public   Works "}, 3, 20, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalPages).To(Equal(3))
			Expect(page.Issues).To(BeEmpty())
		})

		It("marks issues the viewer voted for", func() {
			issue := models.Issue{ID: primitive.NewObjectID(), ReportedBy: citizen.ID}
			issues.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.Issue{issue}, int64(1), nil)
			votes.EXPECT().CountForIssues(gomock.Any(), gomock.Any()).Return(map[primitive.ObjectID]int64{issue.ID: 1}, nil)
			users.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return(map[primitive.ObjectID]models.User{}, nil)
			votes.EXPECT().VotedBy(gomock.Any(), stranger.ID, []primitive.ObjectID{issue.ID}).
				Return(map[primitive.ObjectID]bool{issue.ID: true}, nil)

			page, err := svc.ListIssues(ctx, services.ListFilter{}, 1, 10, stranger)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Issues[0].UserHasVoted).To(BeTrue())
			Expect(page.Issues[0].Reporter).To(BeNil())
		})

		It("rejects an unknown status filter", func() {
			_, err := svc.ListIssues(ctx, services.ListFilter{Status: "archived"}, 1, 10, nil)
			Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
		})

		It("requires admin for the admin listing", func() {
			_, err := svc.AdminListIssues(ctx, citizen, services.ListFilter{}, 1, 10)
			Expect(errors.Is(err, errs.ErrForbidden)).To(BeTrue())
		})
	})

	Describe("UpdateStatus", func() {
		It("is forbidden for citizens and leaves the issue alone", func() {
			issues.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := svc.UpdateStatus(ctx, primitive.NewObjectID(), "Resolved", citizen)

			Expect(errors.Is(err, errs.ErrForbidden)).To(BeTrue())
			Expect(errs.PublicMessage(err)).To(Equal("Access denied. Admin role required."))
		})

		It("rejects unknown statuses", func() {
			_, err := svc.UpdateStatus(ctx, primitive.NewObjectID(), "done", admin)
			Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
		})

		It("persists the canonical status and invalidates stats", func() {
			id := primitive.NewObjectID()
			issues.EXPECT().SetStatus(gomock.Any(), id, models.InProgress).
				Return(&models.Issue{ID: id, Status: models.InProgress}, nil)

			issue, err := svc.UpdateStatus(ctx, id, "in_progress", admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(issue.Status).To(Equal(models.InProgress))
			Expect(cache.invalidated).To(Equal(1))
		})

		It("allows moving a closed issue back to pending", func() {
			id := primitive.NewObjectID()
			issues.EXPECT().SetStatus(gomock.Any(), id, models.Pending).Return(&models.Issue{ID: id, Status: models.Pending}, nil)

			_, err := svc.UpdateStatus(ctx, id, "Pending", admin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports missing issues", func() {
			issues.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.NotFound("Issue not found"))

			_, err := svc.UpdateStatus(ctx, primitive.NewObjectID(), "Closed", admin)
			Expect(errs.HTTPStatus(err)).To(Equal(404))
		})
	})

	Describe("UpdateNotes", func() {
		It("stores notes verbatim for admins", func() {
			id := primitive.NewObjectID()
			issues.EXPECT().SetNotes(gomock.Any(), id, "  crew sent <b>today</b> ").Return(&models.Issue{ID: id}, nil)

			_, err := svc.UpdateNotes(ctx, id, "  crew sent <b>today</b> ", admin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("is forbidden for citizens", func() {
			_, err := svc.UpdateNotes(ctx, primitive.NewObjectID(), "x", citizen)
			Expect(errors.Is(err, errs.ErrForbidden)).To(BeTrue())
		})
	})

	Describe("AssignIssue", func() {
		It("only assigns to admins", func() {
			users.EXPECT().FindByID(gomock.Any(), citizen.ID).Return(citizen, nil)

			_, err := svc.AssignIssue(ctx, primitive.NewObjectID(), citizen.ID, admin)
			Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
		})

		It("sets the assignee", func() {
			id := primitive.NewObjectID()
			users.EXPECT().FindByID(gomock.Any(), admin.ID).Return(admin, nil)
			issues.EXPECT().SetAssignee(gomock.Any(), id, admin.ID).Return(&models.Issue{ID: id, AssignedTo: &admin.ID}, nil)

			issue, err := svc.AssignIssue(ctx, id, admin.ID, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(*issue.AssignedTo).To(Equal(admin.ID))
		})
	})

	Describe("DeleteIssue", func() {
		var issue *models.Issue

		BeforeEach(func() {
			issue = &models.Issue{ID: primitive.NewObjectID(), ReportedBy: citizen.ID}
		})

		It("lets the reporter delete their own issue", func() {
			issues.EXPECT().FindByID(gomock.Any(), issue.ID).Return(issue, nil)
			issues.EXPECT().Delete(gomock.Any(), issue.ID).Return(nil)
			votes.EXPECT().DeleteForIssue(gomock.Any(), issue.ID).Return(nil)

			Expect(svc.DeleteIssue(ctx, issue.ID, citizen)).To(Succeed())
			Expect(cache.invalidated).To(Equal(1))
		})

		It("lets an admin delete any issue", func() {
			issues.EXPECT().FindByID(gomock.Any(), issue.ID).Return(issue, nil)
			issues.EXPECT().Delete(gomock.Any(), issue.ID).Return(nil)
			votes.EXPECT().DeleteForIssue(gomock.Any(), issue.ID).Return(nil)

			Expect(svc.DeleteIssue(ctx, issue.ID, admin)).To(Succeed())
		})

		It("forbids other citizens", func() {
			issues.EXPECT().FindByID(gomock.Any(), issue.ID).Return(issue, nil)
			issues.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

			err := svc.DeleteIssue(ctx, issue.ID, stranger)
			Expect(errors.Is(err, errs.ErrForbidden)).To(BeTrue())
			Expect(errs.PublicMessage(err)).To(Equal("Not authorized to delete this issue"))
		})

		It("reports missing issues", func() {
			issues.EXPECT().FindByID(gomock.Any(), issue.ID).Return(nil, errs.NotFound("Issue not found"))

			err := svc.DeleteIssue(ctx, issue.ID, admin)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		It("removes the stored image", func() {
			path, err := images.Save(ctx, &storage.Upload{Data: pngHeader})
			Expect(err).NotTo(HaveOccurred())
			issue.ImagePath = path

			issues.EXPECT().FindByID(gomock.Any(), issue.ID).Return(issue, nil)
			issues.EXPECT().Delete(gomock.Any(), issue.ID).Return(nil)
			votes.EXPECT().DeleteForIssue(gomock.Any(), issue.ID).Return(nil)

			Expect(svc.DeleteIssue(ctx, issue.ID, citizen)).To(Succeed())
			Expect(path).NotTo(BeAnExistingFile())
		})
	})

	Describe("ToggleVote", func() {
		var id primitive.ObjectID

		BeforeEach(func() {
			id = primitive.NewObjectID()
			issues.EXPECT().FindByID(gomock.Any(), id).Return(&models.Issue{ID: id}, nil)
		})

		It("casts a vote when none exists", func() {
			votes.EXPECT().Exists(gomock.Any(), id, citizen.ID).Return(false, nil)
			votes.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *models.Vote) error {
				Expect(v.Issue).To(Equal(id))
				Expect(v.User).To(Equal(citizen.ID))
				return nil
			})
			votes.EXPECT().CountForIssue(gomock.Any(), id).Return(int64(4), nil)

			voted, count, err := svc.ToggleVote(ctx, id, citizen)
			Expect(err).NotTo(HaveOccurred())
			Expect(voted).To(BeTrue())
			Expect(count).To(Equal(int64(4)))
		})

		It("retracts an existing vote", func() {
			votes.EXPECT().Exists(gomock.Any(), id, citizen.ID).Return(true, nil)
			votes.EXPECT().Delete(gomock.Any(), id, citizen.ID).Return(true, nil)
			votes.EXPECT().CountForIssue(gomock.Any(), id).Return(int64(0), nil)

			voted, count, err := svc.ToggleVote(ctx, id, citizen)
			Expect(err).NotTo(HaveOccurred())
			Expect(voted).To(BeFalse())
			Expect(count).To(BeZero())
		})
	})

	Describe("ListIssuesForUser", func() {
		It("scopes to the caller and normalizes the status filter", func() {
			mine := models.Issue{ID: primitive.NewObjectID(), ReportedBy: citizen.ID, Status: models.InProgress}
			issues.EXPECT().ListByReporter(gomock.Any(), citizen.ID, models.IssueFilter{Status: models.InProgress}).
				Return([]models.Issue{mine}, nil)
			votes.EXPECT().CountForIssues(gomock.Any(), gomock.Any()).Return(map[primitive.ObjectID]int64{}, nil)
			users.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return(map[primitive.ObjectID]models.User{}, nil)
			votes.EXPECT().VotedBy(gomock.Any(), citizen.ID, gomock.Any()).Return(map[primitive.ObjectID]bool{}, nil)

			views, err := svc.ListIssuesForUser(ctx, citizen, services.ListFilter{Status: "in progress"})
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].ID).To(Equal(mine.ID))
		})
	})

	Describe("ClassifyImage", func() {
		It("returns the category and its department", func() {
			svc = services.NewIssueService(issues, users, votes, &stubClassifier{category: "Pothole"}, images, az, cache)

			category, department, err := svc.ClassifyImage(ctx, &storage.Upload{Data: pngHeader, Filename: "road.png"})
			Expect(err).NotTo(HaveOccurred())
			Expect(category).To(Equal("Pothole"))
			Expect(department).To(Equal("Roads"))
		})

		It("surfaces an unreachable image classifier", func() {
			_, _, err := svc.ClassifyImage(ctx, &storage.Upload{Data: pngHeader, Filename: "road.png"})
			Expect(errors.Is(err, errs.ErrClassificationUnavailable)).To(BeTrue())
		})
	})

	Describe("RecentIssues", func() {
		It("drops entries without coordinates and flattens the rest", func() {
			issues.EXPECT().RecentWithLocation(gomock.Any(), gomock.Any()).Return([]models.MapMarker{
				{Title: "a", Geo: models.NewGeoPoint(12.5, 77.5)},
				{Title: "b"},
			}, nil)

			markers, err := svc.RecentIssues(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(markers).To(HaveLen(1))
			Expect(markers[0].Latitude).To(Equal(12.5))
			Expect(markers[0].Longitude).To(Equal(77.5))
		})
	})

	Describe("OpenImage", func() {
		It("serves the legacy embedded payload", func() {
			id := primitive.NewObjectID()
			issues.EXPECT().FindByID(gomock.Any(), id).Return(&models.Issue{
				ID: id, ImageData: &models.ImageData{Data: []byte("jpegbytes"), ContentType: "image/jpeg"},
			}, nil)

			rc, contentType, err := svc.OpenImage(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			defer rc.Close()
			body, _ := io.ReadAll(rc)
			Expect(string(body)).To(Equal("jpegbytes"))
			Expect(contentType).To(Equal("image/jpeg"))
		})

		It("is not found when the issue has no image", func() {
			id := primitive.NewObjectID()
			issues.EXPECT().FindByID(gomock.Any(), id).Return(&models.Issue{ID: id}, nil)

			_, _, err := svc.OpenImage(ctx, id)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})
})
