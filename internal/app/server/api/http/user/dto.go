package user

import "carnet/internal/domain/user"

type credentialsInput struct {
	Body user.Credentials
}

type SignupResponse struct {
	Message string `json:"message" example:"Account created successfully"`
}

type signupOutput struct {
	Body SignupResponse
}

type LoginResponse struct {
	Token string       `json:"token" doc:"Bearer token valid for seven days"`
	User  user.Summary `json:"user"`
}

type loginOutput struct {
	Body LoginResponse
}

type meOutput struct {
	Body user.Summary
}
