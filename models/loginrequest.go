package models

// SignUpRequest is the body of POST /auth/signup.
type SignUpRequest struct {
	Nickname         string `json:"nickname" binding:"required,min=1,max=64"`
	Email            string `json:"email" binding:"required,email,max=100"`
	Password         string `json:"password" binding:"required,min=6,max=100"`
	RepeatedPassword string `json:"repeated_password" binding:"required,min=6,max=100"`
}

// SignInRequest is the body of POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
