//go:build unit || e2e

package builder

import (
	reqdto "court-booking/internal/handler/dto/request"
)

type AuthBuilder struct {
	Phone string
	Code  string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Phone: "+7(999)123-45-67",
		Code:  "4821",
	}
}

func (a *AuthBuilder) BuildLoginDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Phone: a.Phone}
}

func (a *AuthBuilder) BuildVerifyDTO() reqdto.VerifyRequest {
	return reqdto.VerifyRequest{
		Phone: a.Phone,
		Code:  a.Code,
	}
}
