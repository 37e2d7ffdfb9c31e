//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/user"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/pkg/ptr"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/mock/storemock"
	"court-booking/tests/mock/uowmock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testCode = "4821"

type AuthCommandsTestSuite struct {
	suite.Suite
	uow        *uowmock.UoW
	readStore  *storemock.MockUserReadStore
	sms        *storemock.MockSMSSender
	jwtService *jwt.Service
	commands   commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupSubTest() {
	s.uow = uowmock.New()
	s.readStore = &storemock.MockUserReadStore{}
	s.sms = &storemock.MockSMSSender{}
	s.jwtService = jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	s.commands = commands.NewAuthCommands(
		s.uow,
		s.readStore,
		s.jwtService,
		auth.FixedCodeGenerator{Code: testCode},
		s.sms,
		clock.NewMockClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
	)
}

func (s *AuthCommandsTestSuite) TearDownSubTest() {
	s.uow.AssertExpectations(s.T())
	s.readStore.AssertExpectations(s.T())
	s.sms.AssertExpectations(s.T())
}

func TestAuthCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) existingUser(mutate func(*builder.UserBuilder), code *string) *user.User {
	b := builder.NewUserBuilder()
	if mutate != nil {
		b.With(mutate)
	}
	u, err := b.BuildDomain()
	s.Require().NoError(err)
	return user.ReconstructUser(user.ReconstructParams{
		ID: uuid.New(),
		NewUserParams: user.NewUserParams{
			Email:        u.Email(),
			FirstName:    u.FirstName(),
			LastName:     u.LastName(),
			BirthDate:    u.BirthDate(),
			Phone:        u.Phone(),
			PasswordHash: u.PasswordHash(),
			Role:         u.Role(),
		},
		IsActive:         b.IsActive,
		VerificationCode: code,
	})
}

func (s *AuthCommandsTestSuite) TestRegister() {
	s.Run("正常系: 一般ユーザー登録でコードが発行される", func() {
		req := builder.NewUserBuilder().BuildRegisterDTO()
		view := builder.NewUserBuilder().BuildReadModel()

		s.uow.Users.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.Role() == user.RoleUser && u.PasswordHash() != req.Password && u.BirthDate() != nil
		})).Return(nil, nil).Once()
		s.uow.Users.On("SetVerificationCode", mock.Anything, mock.AnythingOfType("uuid.UUID"), ptr.Of(testCode)).Return(nil).Once()
		s.sms.On("Send", mock.Anything, req.Phone, mock.MatchedBy(func(text string) bool {
			return len(text) > 0 && text[len(text)-4:] == testCode
		})).Return(nil).Once()
		s.readStore.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(view, nil).Once()

		got, err := s.commands.Register(context.Background(), req, nil)

		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("正常系: SMS送信失敗でも登録は成功する", func() {
		req := builder.NewUserBuilder().BuildRegisterDTO()
		s.uow.Users.On("Create", mock.Anything, mock.Anything).Return(nil, nil).Once()
		s.uow.Users.On("SetVerificationCode", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		s.sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway down")).Once()
		s.readStore.On("FindByID", mock.Anything, mock.Anything).Return(&queries.UserView{}, nil).Once()

		_, err := s.commands.Register(context.Background(), req, nil)

		s.Require().NoError(err)
	})

	s.Run("正常系: 管理者は管理者を作成でき、コードは発行されない", func() {
		req := builder.NewUserBuilder().AsAdmin().BuildRegisterDTO()
		actor := &shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
		s.uow.Users.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.Role() == user.RoleAdmin
		})).Return(nil, nil).Once()
		s.readStore.On("FindByID", mock.Anything, mock.Anything).Return(&queries.UserView{Role: "admin"}, nil).Once()

		got, err := s.commands.Register(context.Background(), req, actor)

		s.Require().NoError(err)
		s.Equal("admin", got.Role)
		s.uow.Users.AssertNotCalled(s.T(), "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything)
		s.sms.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("異常系: 一般ユーザーは管理者を作成できない", func() {
		req := builder.NewUserBuilder().AsAdmin().BuildRegisterDTO()

		_, err := s.commands.Register(context.Background(), req, &shared.Actor{ID: uuid.New(), Role: user.RoleUser})

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrAdminCreation))
		s.Equal(errs.CategoryForbidden, errs.CategoryOf(err))
	})

	s.Run("異常系: 入力値不正", func() {
		req := builder.NewUserBuilder().WithPhone("89991234567").BuildRegisterDTO()

		_, err := s.commands.Register(context.Background(), req, nil)

		s.Require().Error(err)
		s.True(errs.Is(err, user.ErrInvalidPhone))
		s.Equal(errs.CategoryValidation, errs.CategoryOf(err))
		s.Zero(s.uow.Calls)
	})

	s.Run("異常系: 短すぎるパスワード", func() {
		req := builder.NewUserBuilder().BuildRegisterDTO()
		req.Password = "123"

		_, err := s.commands.Register(context.Background(), req, nil)

		s.Require().Error(err)
		s.Equal(errs.CategoryValidation, errs.CategoryOf(err))
	})

	s.Run("異常系: メールまたは電話番号の重複", func() {
		req := builder.NewUserBuilder().BuildRegisterDTO()
		s.uow.Users.On("Create", mock.Anything, mock.Anything).
			Return(nil, infra.WrapRepoErr("create user", &pgconn.PgError{Code: "23505", ConstraintName: "users_phone_key"})).Once()

		_, err := s.commands.Register(context.Background(), req, nil)

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrUserAlreadyExists))
		s.Equal(errs.CategoryConflict, errs.CategoryOf(err))
	})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	s.Run("正常系: 新しいコードが保存され送信される", func() {
		u := s.existingUser(nil, ptr.Of("1111"))
		s.uow.Users.On("FindByPhone", mock.Anything, u.Phone()).Return(u, nil).Once()
		s.uow.Users.On("SetVerificationCode", mock.Anything, u.ID(), ptr.Of(testCode)).Return(nil).Once()
		s.sms.On("Send", mock.Anything, u.Phone().Value(), mock.Anything).Return(nil).Once()

		got, err := s.commands.Login(context.Background(), reqdto.LoginRequest{Phone: u.Phone().Value()})

		s.Require().NoError(err)
		s.Equal(u.ID(), got.UserID)
	})

	s.Run("異常系: 未登録の電話番号は404", func() {
		phone := "+7(900)000-00-00"
		s.uow.Users.On("FindByPhone", mock.Anything, user.PhoneFromTrusted(phone)).
			Return(nil, infra.WrapRepoErr("find user", pgx.ErrNoRows)).Once()

		_, err := s.commands.Login(context.Background(), reqdto.LoginRequest{Phone: phone})

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrUserNotFound))
		s.Equal(errs.CategoryNotFound, errs.CategoryOf(err))
	})

	s.Run("異常系: 無効化されたユーザー", func() {
		u := s.existingUser(func(b *builder.UserBuilder) { b.AsInactive() }, nil)
		s.uow.Users.On("FindByPhone", mock.Anything, u.Phone()).Return(u, nil).Once()

		_, err := s.commands.Login(context.Background(), reqdto.LoginRequest{Phone: u.Phone().Value()})

		s.Require().Error(err)
		s.Equal(errs.CategoryForbidden, errs.CategoryOf(err))
	})

	s.Run("異常系: SMS送信失敗", func() {
		u := s.existingUser(nil, nil)
		s.uow.Users.On("FindByPhone", mock.Anything, u.Phone()).Return(u, nil).Once()
		s.uow.Users.On("SetVerificationCode", mock.Anything, u.ID(), mock.Anything).Return(nil).Once()
		s.sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway down")).Once()

		_, err := s.commands.ResendCode(context.Background(), reqdto.ResendCodeRequest{Phone: u.Phone().Value()})

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrCodeDelivery))
		s.Equal(errs.CategoryInfrastructure, errs.CategoryOf(err))
	})

	s.Run("異常系: 電話番号の形式不正", func() {
		_, err := s.commands.Login(context.Background(), reqdto.LoginRequest{Phone: "12345"})

		s.Require().Error(err)
		s.Equal(errs.CategoryValidation, errs.CategoryOf(err))
		s.Zero(s.uow.Calls)
	})
}

func (s *AuthCommandsTestSuite) TestVerify() {
	s.Run("正常系: コードが一致するとトークンが発行されコードは消去される", func() {
		u := s.existingUser(func(b *builder.UserBuilder) { b.AsAdmin() }, ptr.Of(testCode))
		s.uow.Users.On("FindByPhone", mock.Anything, u.Phone()).Return(u, nil).Once()
		s.uow.Users.On("SetVerificationCode", mock.Anything, u.ID(), (*string)(nil)).Return(nil).Once()

		got, err := s.commands.Verify(context.Background(), reqdto.VerifyRequest{Phone: u.Phone().Value(), Code: testCode})

		s.Require().NoError(err)
		s.Equal(u.ID(), got.UserID)
		s.Equal(user.RoleAdmin, got.Role)

		claims, err := s.jwtService.ValidateAccessToken(got.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(u.ID(), claims.UserID)
		s.Equal("admin", claims.Role)
	})

	s.Run("異常系: コード不一致は401でコードは残る", func() {
		u := s.existingUser(nil, ptr.Of("9999"))
		s.uow.Users.On("FindByPhone", mock.Anything, u.Phone()).Return(u, nil).Once()

		_, err := s.commands.Verify(context.Background(), reqdto.VerifyRequest{Phone: u.Phone().Value(), Code: testCode})

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrInvalidCode))
		s.Equal(errs.CategoryUnauthorized, errs.CategoryOf(err))
		s.uow.Users.AssertNotCalled(s.T(), "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("異常系: コード未発行", func() {
		u := s.existingUser(nil, nil)
		s.uow.Users.On("FindByPhone", mock.Anything, u.Phone()).Return(u, nil).Once()

		_, err := s.commands.Verify(context.Background(), reqdto.VerifyRequest{Phone: u.Phone().Value(), Code: testCode})

		s.Require().Error(err)
		s.True(errs.Is(err, auth.ErrCodeNotIssued))
		s.Equal(errs.CategoryUnauthorized, errs.CategoryOf(err))
	})

	s.Run("異常系: 未登録の電話番号もコード不一致と同じ扱い", func() {
		phone := "+7(900)000-00-00"
		s.uow.Users.On("FindByPhone", mock.Anything, user.PhoneFromTrusted(phone)).
			Return(nil, infra.WrapRepoErr("find user", pgx.ErrNoRows)).Once()

		_, err := s.commands.Verify(context.Background(), reqdto.VerifyRequest{Phone: phone, Code: testCode})

		s.Require().Error(err)
		s.Equal(errs.CategoryUnauthorized, errs.CategoryOf(err))
	})

	s.Run("異常系: コード形式不正", func() {
		_, err := s.commands.Verify(context.Background(), reqdto.VerifyRequest{Phone: "+7(900)000-00-00", Code: "12a4"})

		s.Require().Error(err)
		s.Equal(errs.CategoryValidation, errs.CategoryOf(err))
		s.Zero(s.uow.Calls)
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	s.Run("正常系: 最新のロールで再発行される", func() {
		id := uuid.New()
		refresh, err := s.jwtService.GenerateRefreshToken(id, user.RoleUser)
		s.Require().NoError(err)
		s.readStore.On("FindByID", mock.Anything, id).Return(&queries.UserView{ID: id, Role: "admin", IsActive: true}, nil).Once()

		pair, err := s.commands.RefreshToken(context.Background(), refresh)

		s.Require().NoError(err)
		claims, err := s.jwtService.ValidateAccessToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal("admin", claims.Role)
	})

	s.Run("異常系: アクセストークンでは更新できない", func() {
		access, err := s.jwtService.GenerateAccessToken(uuid.New(), user.RoleUser)
		s.Require().NoError(err)

		_, err = s.commands.RefreshToken(context.Background(), access)

		s.Require().Error(err)
		s.Equal(errs.CategoryUnauthorized, errs.CategoryOf(err))
	})

	s.Run("異常系: 不正なトークン", func() {
		_, err := s.commands.RefreshToken(context.Background(), "not-a-token")

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("異常系: 無効化されたユーザー", func() {
		id := uuid.New()
		refresh, err := s.jwtService.GenerateRefreshToken(id, user.RoleUser)
		s.Require().NoError(err)
		s.readStore.On("FindByID", mock.Anything, id).Return(&queries.UserView{ID: id, Role: "user", IsActive: false}, nil).Once()

		_, err = s.commands.RefreshToken(context.Background(), refresh)

		s.Require().Error(err)
		s.Equal(errs.CategoryForbidden, errs.CategoryOf(err))
	})
}
