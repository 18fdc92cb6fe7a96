package domain

type Board struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BoardMember struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Picture string    `json:"picture,omitempty"`
	Role    BoardRole `json:"role"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
