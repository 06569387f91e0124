package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"cityhelp-be/authz"
	"cityhelp-be/errs"
	"cityhelp-be/mocks"
	"cityhelp-be/models"
	"cityhelp-be/services"
	authUtils "cityhelp-be/utils"
)

var _ = Describe("AuthService", func() {
	var (
		ctx    context.Context
		ctrl   *gomock.Controller
		users  *mocks.MockUserStore
		tokens *authUtils.TokenIssuer
		svc    *services.AuthService
		admin  *models.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		users = mocks.NewMockUserStore(ctrl)
		tokens = authUtils.NewTokenIssuer("test-secret", time.Hour)
		az, err := authz.New()
		Expect(err).NotTo(HaveOccurred())
		svc = services.NewAuthService(users, tokens, az)
		admin = &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin, IsActive: true}
	})

	Describe("Register", func() {
		It("creates an active citizen with a hashed password", func() {
			users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

			user, err := svc.Register(ctx, services.SignupInput{Name: " Asha ", Email: "Asha@Example.com", Password: "secret1"})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Asha"))
			Expect(user.Email).To(Equal("asha@example.com"))
			Expect(user.Role).To(Equal(models.RoleCitizen))
			Expect(user.Points).To(BeZero())
			Expect(user.IsActive).To(BeTrue())
			Expect(user.Password).NotTo(Equal("secret1"))
			Expect(user.ComparePassword("secret1")).To(BeTrue())
		})

		It("reports duplicate emails as a conflict", func() {
			users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errs.Conflict("duplicate key"))

			_, err := svc.Register(ctx, services.SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
			Expect(errs.HTTPStatus(err)).To(Equal(409))
			Expect(errs.PublicMessage(err)).To(Equal("User with this email already exists"))
		})

		It("rejects short passwords", func() {
			_, err := svc.Register(ctx, services.SignupInput{Name: "Asha", Email: "asha@example.com", Password: "123"})
			Expect(errs.PublicMessage(err)).To(Equal("password must be at least 6 characters"))
		})
	})

	Describe("Login and Authenticate", func() {
		var user *models.User

		BeforeEach(func() {
			user = &models.User{ID: primitive.NewObjectID(), Email: "asha@example.com", Password: "secret1", Role: models.RoleCitizen, IsActive: true}
			Expect(user.HashPassword()).To(Succeed())
		})

		It("issues a token that authenticates back to the user", func() {
			users.EXPECT().FindByEmail(gomock.Any(), "asha@example.com").Return(user, nil)
			users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

			session, err := svc.Login(ctx, services.LoginInput{Email: "ASHA@example.com", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(session.Token).NotTo(BeEmpty())

			got, err := svc.Authenticate(ctx, session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(user.ID))
		})

		It("rejects a wrong password", func() {
			users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(user, nil)

			_, err := svc.Login(ctx, services.LoginInput{Email: "asha@example.com", Password: "nope"})
			Expect(errors.Is(err, errs.ErrUnauthorized)).To(BeTrue())
			Expect(errs.PublicMessage(err)).To(Equal("Invalid credentials"))
		})

		It("rejects an unknown email the same way", func() {
			users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errs.NotFound("User not found"))

			_, err := svc.Login(ctx, services.LoginInput{Email: "who@example.com", Password: "secret1"})
			Expect(errs.PublicMessage(err)).To(Equal("Invalid credentials"))
		})

		It("rejects a valid token whose user no longer exists", func() {
			token, err := tokens.GenerateToken(user.ID.Hex(), "citizen")
			Expect(err).NotTo(HaveOccurred())
			users.EXPECT().FindByID(gomock.Any(), user.ID).Return(nil, errs.NotFound("User not found"))

			_, err = svc.Authenticate(ctx, token)
			Expect(errors.Is(err, errs.ErrUnauthorized)).To(BeTrue())
		})

		DescribeTable("rejects bad credentials",
			func(token string) {
				_, err := svc.Authenticate(ctx, token)
				Expect(errs.HTTPStatus(err)).To(Equal(401))
			},
			Entry("missing", ""),
			Entry("garbage", "abc.def.ghi"),
		)
	})

	Describe("admin user management", func() {
		It("lists users for admins only", func() {
			citizen := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCitizen}
			_, err := svc.ListUsers(ctx, citizen)
			Expect(errors.Is(err, errs.ErrForbidden)).To(BeTrue())

			users.EXPECT().List(gomock.Any()).Return([]models.User{*admin}, nil)
			list, err := svc.ListUsers(ctx, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})

		It("validates the role", func() {
			_, err := svc.UpdateRole(ctx, primitive.NewObjectID(), "superuser", admin)
			Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
		})

		It("updates the role", func() {
			id := primitive.NewObjectID()
			users.EXPECT().SetRole(gomock.Any(), id, models.RoleAdmin).Return(&models.User{ID: id, Role: models.RoleAdmin}, nil)

			user, err := svc.UpdateRole(ctx, id, "Admin", admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(models.RoleAdmin))
		})
	})
})
