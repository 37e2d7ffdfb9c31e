package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/user"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/pkg/password"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrUserInactive         = errs.New("user inactive")
	ErrUserAlreadyExists    = errs.New("email or phone already registered")
	ErrInvalidUserData      = errs.New("invalid user data")
	ErrAdminCreation        = errs.New("only admins can create admins")
	ErrInvalidCode          = errs.New("invalid verification code")
	ErrCodeDelivery         = errs.New("verification code delivery failed")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
	ErrUserPersistence      = errs.New("user persistence failed")
)

const verificationText = "Код подтверждения: %s"

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type VerifyResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type CodeIssued struct {
	UserID uuid.UUID
}

//go:generate mockgen -destination=../../../tests/mock/commands/auth.go -package=commandsmock court-booking/internal/usecase/commands AuthCommands
type AuthCommands interface {
	// Register creates a user. actor is nil for anonymous sign-up.
	Register(ctx context.Context, req reqdto.RegisterRequest, actor *shared.Actor) (*queries.UserView, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*CodeIssued, error)
	ResendCode(ctx context.Context, req reqdto.ResendCodeRequest) (*CodeIssued, error)
	Verify(ctx context.Context, req reqdto.VerifyRequest) (*VerifyResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	codes      auth.CodeGenerator
	sms        SMSSender
	clock      clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	codes auth.CodeGenerator,
	sms SMSSender,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		codes:      codes,
		sms:        sms,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest, actor *shared.Actor) (*queries.UserView, error) {
	role := user.RoleUser
	if req.IsAdmin {
		if actor == nil || !actor.IsAdmin() {
			return nil, errs.MarkAll(errs.New("admin role requested by non-admin"), ErrAdminCreation, errs.ErrForbidden)
		}
		role = user.RoleAdmin
	}

	params, err := newUserParams(req, a.clock.Now())
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidUserData, errs.ErrValidation)
	}
	params.Role = role

	hash, err := password.HashPassword(req.Password)
	if err != nil {
		if errs.Is(err, password.ErrHashingFailed) {
			return nil, errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		return nil, errs.MarkAll(err, ErrInvalidUserData, errs.ErrValidation)
	}
	params.PasswordHash = hash

	// admins are created verified
	var code *auth.VerificationCode
	if role != user.RoleAdmin {
		c, err := a.codes.Generate()
		if err != nil {
			return nil, errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		code = &c
	}

	u := user.NewUser(params)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().Create(ctx, tx.DB(), u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.MarkAll(err, ErrUserAlreadyExists, errs.ErrConflict)
			}
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		if code == nil {
			return nil
		}
		value := code.Value()
		if err := tx.Users().SetVerificationCode(ctx, tx.DB(), u.ID(), &value); err != nil {
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if code != nil {
		if err := a.sendCode(ctx, u.Phone(), *code); err != nil {
			// the user can request a new code later
			slog.Warn("failed to deliver registration code", "user_id", u.ID(), "error", err.Error())
		}
	}

	view, err := a.readStore.FindByID(ctx, u.ID())
	if err != nil {
		return nil, errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
	}
	return view, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*CodeIssued, error) {
	return a.issueCode(ctx, req.Phone)
}

func (a *authCommandsImpl) ResendCode(ctx context.Context, req reqdto.ResendCodeRequest) (*CodeIssued, error) {
	return a.issueCode(ctx, req.Phone)
}

// issueCode replaces whatever code the user had with a fresh one and sends it.
func (a *authCommandsImpl) issueCode(ctx context.Context, rawPhone string) (*CodeIssued, error) {
	phone, err := user.NewPhone(rawPhone)
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidUserData, errs.ErrValidation)
	}

	code, err := a.codes.Generate()
	if err != nil {
		return nil, errs.MarkAll(err, ErrCodeDelivery, errs.ErrInfrastructure)
	}

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := a.findByPhone(ctx, tx, phone)
		if err != nil {
			return err
		}
		if !u.IsActive() {
			return errs.MarkAll(errs.New("user is deactivated"), ErrUserInactive, errs.ErrForbidden)
		}
		value := code.Value()
		if err := tx.Users().SetVerificationCode(ctx, tx.DB(), u.ID(), &value); err != nil {
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		userID = u.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.sendCode(ctx, phone, code); err != nil {
		return nil, errs.MarkAll(err, ErrCodeDelivery, errs.ErrInfrastructure)
	}

	return &CodeIssued{UserID: userID}, nil
}

func (a *authCommandsImpl) Verify(ctx context.Context, req reqdto.VerifyRequest) (*VerifyResult, error) {
	phone, err := user.NewPhone(req.Phone)
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidUserData, errs.ErrValidation)
	}
	code, err := auth.NewVerificationCode(req.Code)
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidCode, errs.ErrValidation)
	}

	var verified *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByPhone(ctx, tx.DB(), phone)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// same answer as a wrong code
				return errs.MarkAll(err, ErrInvalidCode, errs.ErrUnauthorized)
			}
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		if err := code.Matches(u.VerificationCode()); err != nil {
			return errs.MarkAll(err, ErrInvalidCode, errs.ErrUnauthorized)
		}
		if !u.IsActive() {
			return errs.MarkAll(errs.New("user is deactivated"), ErrUserInactive, errs.ErrForbidden)
		}
		if err := tx.Users().SetVerificationCode(ctx, tx.DB(), u.ID(), nil); err != nil {
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		verified = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := a.issueTokens(verified.ID(), verified.Role())
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		UserID:    verified.ID(),
		Role:      verified.Role(),
		TokenPair: pair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.MarkAll(err, ErrTokenValidation, errs.ErrUnauthorized)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, errs.MarkAll(errs.New("not a refresh token"), ErrTokenValidation, errs.ErrUnauthorized)
	}

	// Validate user still exists and is active; the role is re-read so promotions apply
	view, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.MarkAll(err, ErrUserNotFound, errs.ErrUnauthorized)
		}
		return nil, errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
	}
	if !view.IsActive {
		return nil, errs.MarkAll(errs.New("user is deactivated"), ErrUserInactive, errs.ErrForbidden)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.MarkAll(err, ErrAuthenticationFailed, errs.ErrUnauthorized)
	}

	return a.issueTokens(claims.UserID, role)
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.MarkAll(err, ErrTokenGeneration, errs.ErrInfrastructure)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.MarkAll(err, ErrTokenGeneration, errs.ErrInfrastructure)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authCommandsImpl) findByPhone(ctx context.Context, tx shared.Tx, phone user.Phone) (*user.User, error) {
	u, err := tx.Users().FindByPhone(ctx, tx.DB(), phone)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.MarkAll(err, ErrUserNotFound, errs.ErrNotFound)
		}
		return nil, errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
	}
	return u, nil
}

func (a *authCommandsImpl) sendCode(ctx context.Context, phone user.Phone, code auth.VerificationCode) error {
	return a.sms.Send(ctx, phone.Value(), fmt.Sprintf(verificationText, code.Value()))
}

func newUserParams(req reqdto.RegisterRequest, now time.Time) (user.NewUserParams, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return user.NewUserParams{}, err
	}
	first, err := user.NewName(req.FirstName)
	if err != nil {
		return user.NewUserParams{}, err
	}
	last, err := user.NewName(req.LastName)
	if err != nil {
		return user.NewUserParams{}, err
	}
	phone, err := user.NewPhone(req.Phone)
	if err != nil {
		return user.NewUserParams{}, err
	}

	params := user.NewUserParams{
		Email:     email,
		FirstName: first,
		LastName:  last,
		Phone:     phone,
		Photo:     req.Photo,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		b, err := user.ParseBirthDate(*req.BirthDate, now)
		if err != nil {
			return user.NewUserParams{}, err
		}
		params.BirthDate = &b
	}
	return params, nil
}
