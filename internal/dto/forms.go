package dto

// LoginForm is the POST /login form body.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// RegisterForm is the POST /register form body.
type RegisterForm struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

// ReviewForm is the POST /book/:isbn form body. Rating stays a string so
// non-numeric input gets a validation message instead of a bind error.
type ReviewForm struct {
	Rating  string `form:"rating"`
	Comment string `form:"comment"`
}
