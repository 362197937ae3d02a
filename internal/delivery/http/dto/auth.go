package dto

type RegisterRequest struct {
	Name                string   `json:"name" validate:"required,max=100"`
	Email               string   `json:"email" validate:"required,email"`
	Password            string   `json:"password" validate:"required,min=8,max=72"`
	Role                string   `json:"role" validate:"required,oneof=MENTOR MENTEE"`
	YearOfStudy         *int     `json:"year_of_study" validate:"omitempty,min=1,max=10"`
	Domain              *string  `json:"domain" validate:"omitempty,oneof=SOFTWARE MANAGEMENT MARKETING ANALYST OTHER"`
	Branch              *string  `json:"branch" validate:"omitempty,oneof=CSE ECE ICE MME EEE OTHER"`
	Companies           []string `json:"companies" validate:"omitempty,max=50,dive,max=100"`
	CompaniesInterested []string `json:"companies_interested" validate:"omitempty,max=50,dive,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}
