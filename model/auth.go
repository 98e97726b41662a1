package model

const RoleStaff = 2

type LoginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
}

type RegisterRequest struct {
	Fullname    string `json:"Fullname"`
	Email       string `json:"Email"`
	Password    string `json:"Password"`
	PhoneNumber string `json:"PhoneNumber"`
}

type User struct {
	Id          string `json:"id"`
	Fullname    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        int    `json:"role"`
}

func (u User) IsStaff() bool {
	return u.Role == RoleStaff
}
